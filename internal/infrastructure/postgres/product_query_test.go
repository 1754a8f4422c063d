package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/domain/query"
)

func TestBuildProductWhere_SinFiltros(t *testing.T) {
	where, args, err := buildProductWhere(query.Query{})
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildProductWhere_KeywordYComparadores(t *testing.T) {
	q, err := query.NewBuilder(map[string]string{
		"keyword":    "50%_off",
		"category":   "Electronics",
		"price[gte]": "100",
		"stock[lt]":  "10",
		"page":       "2",
	}, query.ProductFields).Search().Filter().Pagination(5).Query()
	require.NoError(t, err)

	where, args, err := buildProductWhere(q)
	require.NoError(t, err)

	assert.Equal(t,
		` WHERE name ILIKE '%' || $1 || '%' AND category = $2 AND price >= $3::numeric AND stock < $4::numeric`,
		where)
	require.Len(t, args, 4)
	assert.Equal(t, `50\%\_off`, args[0])
	assert.Equal(t, "Electronics", args[1])
	assert.True(t, decimal.NewFromInt(100).Equal(args[2].(decimal.Decimal)))
	assert.True(t, decimal.NewFromInt(10).Equal(args[3].(decimal.Decimal)))
}

func TestBuildProductWhere_CampoDesconocido(t *testing.T) {
	_, _, err := buildProductWhere(query.Query{Conditions: []query.Condition{{Field: "password", Op: query.OpEq, Value: "x"}}})
	assert.Error(t, err, "nunca se interpola un campo fuera del mapa de columnas")
}
