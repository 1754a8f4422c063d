package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/query"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, rating, images, category, stock,
	num_of_reviews, reviews, user_id, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Si product.ID está vacío se le asigna un UUID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := checkID(product.ID); err != nil {
		return err
	}
	stmt := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, stmt,
		product.ID, product.Name, product.Description, product.Price, product.Rating,
		nonNilImages(product.Images), product.Category, product.Stock, product.NumOfReviews,
		nonNilReviews(product.Reviews), nullableID(product.UserID), product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Find ejecuta la consulta del catálogo en orden de creación.
func (r *ProductRepo) Find(ctx context.Context, q query.Query) ([]*entity.Product, error) {
	where, args, err := buildProductWhere(q)
	if err != nil {
		return nil, err
	}
	sql := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at ASC, id ASC`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count cuenta los productos que cumplen la consulta, sin paginar.
func (r *ProductRepo) Count(ctx context.Context, q query.Query) (int64, error) {
	where, args, err := buildProductWhere(q.Unpaginated())
	if err != nil {
		return 0, err
	}
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Update reescribe los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if err := checkID(product.ID); err != nil {
		return err
	}
	stmt := `
		UPDATE products SET name = $2, description = $3, price = $4, rating = $5, images = $6,
			category = $7, stock = $8, num_of_reviews = $9, reviews = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, stmt,
		product.ID, product.Name, product.Description, product.Price, product.Rating,
		nonNilImages(product.Images), product.Category, product.Stock, product.NumOfReviews,
		nonNilReviews(product.Reviews),
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p      entity.Product
		userID *string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Rating, &p.Images, &p.Category, &p.Stock,
		&p.NumOfReviews, &p.Reviews, &userID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if userID != nil {
		p.UserID = *userID
	}
	return &p, nil
}

func nonNilImages(v []entity.Image) []entity.Image {
	if v == nil {
		return []entity.Image{}
	}
	return v
}

func nonNilReviews(v []entity.Review) []entity.Review {
	if v == nil {
		return []entity.Review{}
	}
	return v
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
