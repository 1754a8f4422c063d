package mongo

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/ecommerce-api/internal/domain/query"
)

// buildProductFilter renderiza la Query a un filtro bson. Los comparadores llegan tipados
// y aquí reciben el prefijo "$" que espera el motor.
func buildProductFilter(q query.Query) (bson.M, error) {
	filter := bson.M{}
	if q.Keyword != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.Keyword), "$options": "i"}
	}
	for _, c := range q.Conditions {
		if _, ok := query.ProductFields[c.Field]; !ok {
			return nil, fmt.Errorf("campo no filtrable: %s", c.Field)
		}
		var value any
		switch v := c.Value.(type) {
		case decimal.Decimal:
			value = v.InexactFloat64()
		case string:
			value = v
		default:
			return nil, fmt.Errorf("valor no soportado para %s", c.Field)
		}
		ops, ok := filter[c.Field].(bson.M)
		if !ok {
			ops = bson.M{}
			filter[c.Field] = ops
		}
		ops["$"+string(c.Op)] = value
	}
	return filter, nil
}
