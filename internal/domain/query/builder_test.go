package query_test

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/query"
)

func build(t *testing.T, params map[string]string, perPage int) query.Query {
	t.Helper()
	q, err := query.NewBuilder(params, query.ProductFields).Search().Filter().Pagination(perPage).Query()
	require.NoError(t, err)
	return q
}

func TestSearch_SinKeywordNoFiltra(t *testing.T) {
	q := build(t, nil, 5)

	assert.Empty(t, q.Keyword)
	assert.Empty(t, q.Conditions)
}

func TestSearch_Keyword(t *testing.T) {
	q := build(t, map[string]string{"keyword": "  laptop "}, 5)

	assert.Equal(t, "laptop", q.Keyword)
	assert.Empty(t, q.Conditions, "keyword es reservado y no se convierte en filtro")
}

func TestFilter_IgualdadCategoria(t *testing.T) {
	q := build(t, map[string]string{"category": "Electronics", "page": "2", "limit": "50"}, 5)

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, query.Condition{Field: "category", Kind: query.KindString, Op: query.OpEq, Value: "Electronics"}, q.Conditions[0])
}

func TestFilter_Comparadores(t *testing.T) {
	q := build(t, map[string]string{"price[gte]": "100", "price[lt]": "250.5", "rating[gt]": "4"}, 5)

	require.Len(t, q.Conditions, 3)
	// orden estable por clave
	assert.Equal(t, "price", q.Conditions[0].Field)
	assert.Equal(t, query.OpGte, q.Conditions[0].Op)
	assert.True(t, decimal.NewFromInt(100).Equal(q.Conditions[0].Value.(decimal.Decimal)))
	assert.Equal(t, query.OpLt, q.Conditions[1].Op)
	assert.True(t, decimal.RequireFromString("250.5").Equal(q.Conditions[1].Value.(decimal.Decimal)))
	assert.Equal(t, "rating", q.Conditions[2].Field)
	assert.Equal(t, query.OpGt, q.Conditions[2].Op)
}

func TestFilter_CampoNoPermitido(t *testing.T) {
	_, err := query.NewBuilder(map[string]string{"password": "x", "user[gt]": "1"}, query.ProductFields).
		Filter().Query()
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestFilter_OperadorDesconocido(t *testing.T) {
	_, err := query.NewBuilder(map[string]string{"price[ne]": "1"}, query.ProductFields).Filter().Query()
	assert.Error(t, err)

	_, err = query.NewBuilder(map[string]string{"price[gte": "1"}, query.ProductFields).Filter().Query()
	assert.Error(t, err)
}

func TestFilter_ComparadorSobreTexto(t *testing.T) {
	_, err := query.NewBuilder(map[string]string{"category[gt]": "A"}, query.ProductFields).Filter().Query()
	assert.Error(t, err)
}

func TestFilter_NumeroInvalido(t *testing.T) {
	_, err := query.NewBuilder(map[string]string{"price[gte]": "cien"}, query.ProductFields).Filter().Query()
	assert.Error(t, err)
}

func TestPagination(t *testing.T) {
	cases := []struct {
		page     string
		wantPage int
		wantSkip int
	}{
		{"", 1, 0},
		{"1", 1, 0},
		{"2", 2, 5},
		{"4", 4, 15},
		{"0", 1, 0},
		{"-3", 1, 0},
		{"abc", 1, 0},
	}
	for _, tc := range cases {
		t.Run("page="+tc.page, func(t *testing.T) {
			q := build(t, map[string]string{"page": tc.page}, 5)
			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantSkip, q.Skip)
			assert.Equal(t, 5, q.Limit)
		})
	}
}

func TestUnpaginated(t *testing.T) {
	q := build(t, map[string]string{"page": "3", "category": "Books"}, 5)
	u := q.Unpaginated()

	assert.Zero(t, u.Skip)
	assert.Zero(t, u.Limit)
	assert.Equal(t, q.Conditions, u.Conditions)
	assert.Equal(t, 10, q.Skip, "la consulta original no se modifica")
}

func TestPagination_PaginaDesbordada(t *testing.T) {
	_, err := query.NewBuilder(map[string]string{"page": "6917529027641081857"}, query.ProductFields).
		Pagination(5).Query()
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "page", verr.Fields[0].Field)
}

func TestPagination_UltimaPaginaRepresentable(t *testing.T) {
	last := strconv.Itoa(math.MaxInt/5 + 1)
	q := build(t, map[string]string{"page": last}, 5)

	assert.GreaterOrEqual(t, q.Skip, 0)
	assert.Equal(t, 5*(math.MaxInt/5), q.Skip)
}
