package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/ecommerce-api/internal/domain/query"
)

// productColumnsByField mapea el nombre de campo de la API a su columna.
// Solo los campos de query.ProductFields llegan hasta aquí.
var productColumnsByField = map[string]string{
	"category":     "category",
	"price":        "price",
	"rating":       "rating",
	"stock":        "stock",
	"numOfReviews": "num_of_reviews",
}

var sqlOperators = map[query.Op]string{
	query.OpEq:  "=",
	query.OpGt:  ">",
	query.OpGte: ">=",
	query.OpLt:  "<",
	query.OpLte: "<=",
}

// buildProductWhere renderiza keyword y condiciones a una cláusula WHERE con parámetros posicionales.
// Devuelve "" si la consulta no filtra nada.
func buildProductWhere(q query.Query) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	if q.Keyword != "" {
		args = append(args, escapeLike(q.Keyword))
		clauses = append(clauses, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	for _, c := range q.Conditions {
		col, ok := productColumnsByField[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("campo no filtrable: %s", c.Field)
		}
		op, ok := sqlOperators[c.Op]
		if !ok {
			return "", nil, fmt.Errorf("operador no soportado: %s", c.Op)
		}
		args = append(args, c.Value)
		placeholder := fmt.Sprintf("$%d", len(args))
		if c.Kind == query.KindNumber {
			placeholder += "::numeric"
		}
		clauses = append(clauses, fmt.Sprintf("%s %s %s", col, op, placeholder))
	}
	if len(clauses) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// escapeLike neutraliza los comodines de LIKE para que keyword sea una subcadena literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
