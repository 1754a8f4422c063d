package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/validation"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/query"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// defaultStock stock inicial cuando la creación no lo informa.
const defaultStock = 1

// ProductUseCase casos de uso del catálogo.
type ProductUseCase struct {
	repo    repository.ProductRepository
	perPage int
}

// NewProductUseCase construye el caso de uso. perPage es el tamaño de página del listado.
func NewProductUseCase(repo repository.ProductRepository, perPage int) *ProductUseCase {
	return &ProductUseCase{repo: repo, perPage: perPage}
}

// Create crea un producto a nombre de userID.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	stock := defaultStock
	if in.Stock != nil {
		stock = *in.Stock
	}
	product := &entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		Price:        *in.Price,
		Rating:       in.Rating,
		Images:       dto.ToImages(in.Images),
		Category:     in.Category,
		Stock:        stock,
		NumOfReviews: in.NumOfReviews,
		Reviews:      dto.ToReviews(in.Reviews),
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// List busca, filtra y pagina el catálogo según los parámetros crudos del request.
// ProductsCount es el total que cumple los filtros, sin paginar.
func (uc *ProductUseCase) List(ctx context.Context, params map[string]string) (*dto.ProductListResponse, error) {
	q, err := query.NewBuilder(params, query.ProductFields).
		Search().
		Filter().
		Pagination(uc.perPage).
		Query()
	if err != nil {
		return nil, err
	}
	products, err := uc.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, q.Unpaginated())
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Success:       true,
		Products:      dto.ToProductResponses(products),
		ProductsCount: total,
		ResultPerPage: uc.perPage,
		Page:          q.Page,
	}, nil
}

// GetByID obtiene un producto. Devuelve ErrProductNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Update aplica una actualización parcial y devuelve el producto resultante.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Rating != nil {
		product.Rating = *in.Rating
	}
	if in.Images != nil {
		product.Images = dto.ToImages(in.Images)
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.NumOfReviews != nil {
		product.NumOfReviews = *in.NumOfReviews
	}
	if in.Reviews != nil {
		product.Reviews = dto.ToReviews(in.Reviews)
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Delete borra un producto. Devuelve ErrProductNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}
