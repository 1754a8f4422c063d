package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

func createRequest(name, category string, price int64) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:        name,
		Description: "descripción de " + name,
		Price:       ptr(decimal.NewFromInt(price)),
		Category:    category,
	}
}

func seedCatalog(t *testing.T, uc *ProductUseCase, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		category := "Books"
		if i%2 == 0 {
			category = "Electronics"
		}
		_, err := uc.Create(context.Background(), uuid.NewString(), createRequest(fmt.Sprintf("item %02d", i), category, int64(i*20)))
		require.NoError(t, err)
	}
}

func TestProductCreate_Defaults(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)
	creator := uuid.NewString()

	p, err := uc.Create(context.Background(), creator, createRequest("Laptop", "Electronics", 999))
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 1, p.Stock)
	assert.Equal(t, creator, p.User)
	assert.Zero(t, p.Rating)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NotNil(t, p.Images)
}

func TestProductCreate_Validacion(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)

	_, err := uc.Create(context.Background(), uuid.NewString(), dto.CreateProductRequest{
		Name:  "x",
		Price: ptr(decimal.RequireFromString("123456789")),
		Stock: ptr(10000),
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["price"])
	assert.True(t, fields["stock"])
	assert.True(t, fields["description"])
	assert.True(t, fields["category"])
}

func TestProductList_Paginacion(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)
	seedCatalog(t, uc, 12)

	page1, err := uc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page1.Products, 5)
	assert.Equal(t, int64(12), page1.ProductsCount)
	assert.Equal(t, 5, page1.ResultPerPage)

	page2, err := uc.List(context.Background(), map[string]string{"page": "2"})
	require.NoError(t, err)
	require.Len(t, page2.Products, 5)
	assert.Equal(t, "item 05", page2.Products[0].Name)

	page3, err := uc.List(context.Background(), map[string]string{"page": "3"})
	require.NoError(t, err)
	assert.Len(t, page3.Products, 2)
}

func TestProductList_FiltrosYConteoFiltrado(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)
	seedCatalog(t, uc, 12)

	res, err := uc.List(context.Background(), map[string]string{"category": "Electronics", "price[gte]": "100"})
	require.NoError(t, err)
	// Electronics: i par; precio i*20 >= 100 -> i en {6, 8, 10}
	assert.Equal(t, int64(3), res.ProductsCount)
	for _, p := range res.Products {
		assert.Equal(t, "Electronics", p.Category)
		assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(100)))
	}
}

func TestProductList_FiltroNoPermitido(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)
	_, err := uc.List(context.Background(), map[string]string{"user": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Parcial(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)
	p, err := uc.Create(context.Background(), uuid.NewString(), createRequest("Laptop", "Electronics", 999))
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Stock: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Laptop", updated.Name)
	assert.True(t, decimal.NewFromInt(999).Equal(updated.Price))

	_, err = uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Stock: ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)

	assert.ErrorIs(t, uc.Delete(context.Background(), uuid.NewString()), domain.ErrProductNotFound)
	_, err := uc.Update(context.Background(), uuid.NewString(), dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = uc.GetByID(context.Background(), "no-es-un-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestProductCreate_NombreSoloEspacios(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)

	_, err := uc.Create(context.Background(), uuid.NewString(), createRequest("   ", "Books", 10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(context.Background(), uuid.NewString(), createRequest("  Laptop ", "Books", 10))
	require.NoError(t, err)
	assert.Equal(t, "Laptop", p.Name)

	_, err = uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Name)
}

func TestProductCreate_PrecioConMasDeDosDecimales(t *testing.T) {
	uc := NewProductUseCase(memory.NewProductRepository(), 5)
	req := createRequest("Laptop", "Books", 0)
	req.Price = ptr(decimal.RequireFromString("99999999.999"))

	_, err := uc.Create(context.Background(), uuid.NewString(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
