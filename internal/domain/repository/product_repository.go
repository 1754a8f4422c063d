package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/query"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Find ejecuta la consulta del catálogo (búsqueda, filtros y paginación).
	Find(ctx context.Context, q query.Query) ([]*entity.Product, error)
	// Count cuenta los productos que cumplen la consulta, ignorando la paginación.
	Count(ctx context.Context, q query.Query) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete borra el producto; devuelve domain.ErrProductNotFound si no existía.
	Delete(ctx context.Context, id string) error
}
