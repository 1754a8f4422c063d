package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Review reseña de un producto.
type Review struct {
	Name    string  `json:"name" bson:"name"`
	Rating  float64 `json:"rating" bson:"rating"`
	Comment string  `json:"comment" bson:"comment"`
}

// Product representa un artículo del catálogo.
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal
	Rating       float64
	Images       []Image
	Category     string
	Stock        int
	NumOfReviews int
	Reviews      []Review
	UserID       string // creador
	CreatedAt    time.Time
}
