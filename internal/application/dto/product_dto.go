package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReviewDTO reseña de un producto.
type ReviewDTO struct {
	Name    string  `json:"name" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
	Comment string  `json:"comment" validate:"required"`
}

// CreateProductRequest entrada para crear un producto. Stock ausente vale 1.
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Description  string           `json:"description" validate:"required"`
	Price        *decimal.Decimal `json:"price" validate:"required,price"`
	Rating       float64          `json:"rating" validate:"gte=0,lte=5"`
	Images       []ImageDTO       `json:"images" validate:"dive"`
	Category     string           `json:"category" validate:"required"`
	Stock        *int             `json:"stock" validate:"omitempty,gte=0,lte=9999"`
	NumOfReviews int              `json:"numOfReviews" validate:"gte=0"`
	Reviews      []ReviewDTO      `json:"reviews" validate:"dive"`
}

// UpdateProductRequest actualización parcial; los campos nil no se tocan.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description" validate:"omitempty,min=1"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty,price"`
	Rating       *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Images       []ImageDTO       `json:"images" validate:"omitempty,dive"`
	Category     *string          `json:"category" validate:"omitempty,min=1"`
	Stock        *int             `json:"stock" validate:"omitempty,gte=0,lte=9999"`
	NumOfReviews *int             `json:"numOfReviews" validate:"omitempty,gte=0"`
	Reviews      []ReviewDTO      `json:"reviews" validate:"omitempty,dive"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Rating       float64         `json:"rating"`
	Images       []ImageDTO      `json:"images"`
	Category     string          `json:"category"`
	Stock        int             `json:"stock"`
	NumOfReviews int             `json:"numOfReviews"`
	Reviews      []ReviewDTO     `json:"reviews"`
	User         string          `json:"user,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ProductEnvelope un producto.
type ProductEnvelope struct {
	Success bool            `json:"success"`
	Product ProductResponse `json:"product"`
}

// ProductListResponse página del catálogo. ProductsCount es el total filtrado sin paginar.
type ProductListResponse struct {
	Success       bool              `json:"success"`
	Products      []ProductResponse `json:"products"`
	ProductsCount int64             `json:"productsCount"`
	ResultPerPage int               `json:"resultPerPage"`
	Page          int               `json:"page"`
}
