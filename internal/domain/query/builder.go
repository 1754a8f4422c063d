// Package query traduce parámetros libres de la petición (?keyword=..&price[gte]=..&page=..)
// a una descripción tipada de la consulta sobre el catálogo. No ejecuta nada: cada
// adaptador de persistencia la renderiza a su lenguaje (SQL, bson, predicado en memoria).
package query

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-api/internal/domain"
)

// Op operador de comparación.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
)

// Kind tipo del campo filtrable.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

// Parámetros reservados que nunca se interpretan como filtro.
const (
	ParamKeyword = "keyword"
	ParamPage    = "page"
	ParamLimit   = "limit"
)

// ProductFields allow-list de campos filtrables del catálogo (nombre en la API -> tipo).
var ProductFields = map[string]Kind{
	"category":     KindString,
	"price":        KindNumber,
	"rating":       KindNumber,
	"stock":        KindNumber,
	"numOfReviews": KindNumber,
}

// Condition filtro sobre un campo. Value es string para KindString y decimal.Decimal para KindNumber.
type Condition struct {
	Field string
	Kind  Kind
	Op    Op
	Value any
}

// Query descripción final de la consulta.
type Query struct {
	Keyword    string // búsqueda por subcadena en name, sin distinguir mayúsculas
	Conditions []Condition
	Page       int
	Skip       int
	Limit      int // 0 = sin límite
}

// Unpaginated devuelve la misma consulta sin skip/limit (para contar el total filtrado).
func (q Query) Unpaginated() Query {
	q.Skip = 0
	q.Limit = 0
	return q
}

// Builder construye la Query paso a paso; cada método devuelve el mismo builder.
type Builder struct {
	params  map[string]string
	allowed map[string]Kind
	q       Query
	errs    []domain.FieldError
}

// NewBuilder crea un builder sobre los parámetros crudos y la allow-list de campos.
func NewBuilder(params map[string]string, allowed map[string]Kind) *Builder {
	if params == nil {
		params = map[string]string{}
	}
	return &Builder{params: params, allowed: allowed, q: Query{Page: 1}}
}

// Search agrega la búsqueda por keyword; sin keyword no hace nada.
func (b *Builder) Search() *Builder {
	b.q.Keyword = strings.TrimSpace(b.params[ParamKeyword])
	return b
}

// Filter convierte cada parámetro no reservado en una condición.
// Las claves con sufijo de comparador (price[gte]) se traducen al operador tipado.
func (b *Builder) Filter() *Builder {
	keys := make([]string, 0, len(b.params))
	for k := range b.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == ParamKeyword || key == ParamPage || key == ParamLimit {
			continue
		}
		field, op, ok := splitKey(key)
		if !ok {
			b.fail(key, "operator", fmt.Sprintf("operador no soportado en %q", key))
			continue
		}
		kind, allowed := b.allowed[field]
		if !allowed {
			b.fail(field, "filterable", fmt.Sprintf("el campo %q no admite filtros", field))
			continue
		}
		raw := b.params[key]
		switch kind {
		case KindString:
			if op != OpEq {
				b.fail(field, "operator", fmt.Sprintf("el campo %q solo admite igualdad", field))
				continue
			}
			b.q.Conditions = append(b.q.Conditions, Condition{Field: field, Kind: kind, Op: op, Value: raw})
		case KindNumber:
			n, err := decimal.NewFromString(strings.TrimSpace(raw))
			if err != nil {
				b.fail(field, "number", fmt.Sprintf("el valor de %q debe ser numérico", key))
				continue
			}
			b.q.Conditions = append(b.q.Conditions, Condition{Field: field, Kind: kind, Op: op, Value: n})
		}
	}
	return b
}

// Pagination aplica skip = perPage*(page-1) y limit = perPage. page inválido o < 1 se toma como 1;
// un page cuyo skip no cabe en int se rechaza.
func (b *Builder) Pagination(perPage int) *Builder {
	page, err := strconv.Atoi(b.params[ParamPage])
	if err != nil || page < 1 {
		page = 1
	}
	if perPage > 0 && page-1 > math.MaxInt/perPage {
		b.fail(ParamPage, "max", fmt.Sprintf("page no puede superar %d", math.MaxInt/perPage+1))
		return b
	}
	b.q.Page = page
	b.q.Limit = perPage
	b.q.Skip = perPage * (page - 1)
	return b
}

// Query devuelve la consulta construida o un *domain.ValidationError con todos los campos rechazados.
func (b *Builder) Query() (Query, error) {
	if len(b.errs) > 0 {
		return Query{}, &domain.ValidationError{Fields: b.errs}
	}
	return b.q, nil
}

func (b *Builder) fail(field, rule, msg string) {
	b.errs = append(b.errs, domain.FieldError{Field: field, Rule: rule, Message: msg})
}

// splitKey separa "price[gte]" en ("price", OpGte). Una clave sin corchetes es igualdad.
func splitKey(key string) (string, Op, bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, true
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", false
	}
	field := key[:open]
	switch op := Op(key[open+1 : len(key)-1]); op {
	case OpGt, OpGte, OpLt, OpLte, OpEq:
		return field, op, true
	default:
		return "", "", false
	}
}
