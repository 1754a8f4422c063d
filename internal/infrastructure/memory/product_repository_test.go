package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/query"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
)

func seed(t *testing.T, repo *memory.ProductRepo, name, category string, price int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: "desc",
		Price:       decimal.NewFromInt(price),
		Category:    category,
		Stock:       1,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func buildQuery(t *testing.T, params map[string]string, perPage int) query.Query {
	t.Helper()
	q, err := query.NewBuilder(params, query.ProductFields).Search().Filter().Pagination(perPage).Query()
	require.NoError(t, err)
	return q
}

func TestFind_Paginacion(t *testing.T) {
	repo := memory.NewProductRepository()
	for i := 1; i <= 12; i++ {
		seed(t, repo, fmt.Sprintf("Producto %02d", i), "Books", int64(i))
	}
	ctx := context.Background()

	page2, err := repo.Find(ctx, buildQuery(t, map[string]string{"page": "2"}, 5))
	require.NoError(t, err)
	require.Len(t, page2, 5)
	assert.Equal(t, "Producto 06", page2[0].Name, "la página 2 salta los 5 primeros")

	page3, err := repo.Find(ctx, buildQuery(t, map[string]string{"page": "3"}, 5))
	require.NoError(t, err)
	assert.Len(t, page3, 2)

	page9, err := repo.Find(ctx, buildQuery(t, map[string]string{"page": "9"}, 5))
	require.NoError(t, err)
	assert.Empty(t, page9)

	total, err := repo.Count(ctx, buildQuery(t, map[string]string{"page": "3"}, 5))
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
}

func TestFind_CategoriaExacta(t *testing.T) {
	repo := memory.NewProductRepository()
	seed(t, repo, "TV", "Electronics", 500)
	seed(t, repo, "Cable", "electronics", 5)
	seed(t, repo, "Novela", "Books", 20)

	got, err := repo.Find(context.Background(), buildQuery(t, map[string]string{"category": "Electronics"}, 5))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TV", got[0].Name)
}

func TestFind_PrecioMayorOIgual(t *testing.T) {
	repo := memory.NewProductRepository()
	seed(t, repo, "A", "X", 99)
	seed(t, repo, "B", "X", 100)
	seed(t, repo, "C", "X", 150)

	got, err := repo.Find(context.Background(), buildQuery(t, map[string]string{"price[gte]": "100"}, 5))
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(100)))
	}
}

func TestFind_KeywordSinMayusculas(t *testing.T) {
	repo := memory.NewProductRepository()
	seed(t, repo, "Gaming Laptop", "Electronics", 1000)
	seed(t, repo, "Mouse", "Electronics", 10)

	got, err := repo.Find(context.Background(), buildQuery(t, map[string]string{"keyword": "LAPTOP"}, 5))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gaming Laptop", got[0].Name)
}

func TestDelete_Inexistente(t *testing.T) {
	repo := memory.NewProductRepository()

	err := repo.Delete(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = repo.Delete(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
