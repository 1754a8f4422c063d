package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/query"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type storedProduct struct {
	seq int
	p   *entity.Product
}

// ProductRepo almacén de productos en memoria. Find evalúa la Query en Go y respeta
// el orden de inserción, igual que el orden natural de los otros backends.
type ProductRepo struct {
	mu       sync.RWMutex
	nextSeq  int
	products map[string]*storedProduct
}

// NewProductRepository construye un almacén vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{products: make(map[string]*storedProduct)}
}

// Create persiste un nuevo producto. Si product.ID está vacío se le asigna un UUID.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if _, err := uuid.Parse(product.ID); err != nil {
		return domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.nextSeq++
	r.products[product.ID] = &storedProduct{seq: r.nextSeq, p: cloneProduct(product)}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sp, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(sp.p), nil
}

// Find aplica keyword, condiciones y paginación.
func (r *ProductRepo) Find(_ context.Context, q query.Query) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.match(q)
	if q.Skip >= len(matched) {
		return []*entity.Product{}, nil
	}
	matched = matched[q.Skip:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]*entity.Product, 0, len(matched))
	for _, p := range matched {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

// Count cuenta los productos que cumplen la consulta sin paginar.
func (r *ProductRepo) Count(_ context.Context, q query.Query) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(q.Unpaginated()))), nil
}

// Update reemplaza el producto existente.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp, ok := r.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	sp.p = cloneProduct(product)
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepo) match(q query.Query) []*entity.Product {
	all := make([]*storedProduct, 0, len(r.products))
	for _, sp := range r.products {
		all = append(all, sp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	keyword := strings.ToLower(q.Keyword)
	out := make([]*entity.Product, 0, len(all))
	for _, sp := range all {
		if keyword != "" && !strings.Contains(strings.ToLower(sp.p.Name), keyword) {
			continue
		}
		if matchesAll(sp.p, q.Conditions) {
			out = append(out, sp.p)
		}
	}
	return out
}

func matchesAll(p *entity.Product, conds []query.Condition) bool {
	for _, c := range conds {
		switch c.Kind {
		case query.KindString:
			if fieldString(p, c.Field) != c.Value.(string) {
				return false
			}
		case query.KindNumber:
			v, ok := fieldNumber(p, c.Field)
			if !ok || !compare(v, c.Op, c.Value.(decimal.Decimal)) {
				return false
			}
		}
	}
	return true
}

func fieldString(p *entity.Product, field string) string {
	switch field {
	case "category":
		return p.Category
	case "name":
		return p.Name
	}
	return ""
}

func fieldNumber(p *entity.Product, field string) (decimal.Decimal, bool) {
	switch field {
	case "price":
		return p.Price, true
	case "rating":
		return decimal.NewFromFloat(p.Rating), true
	case "stock":
		return decimal.NewFromInt(int64(p.Stock)), true
	case "numOfReviews":
		return decimal.NewFromInt(int64(p.NumOfReviews)), true
	}
	return decimal.Zero, false
}

func compare(v decimal.Decimal, op query.Op, target decimal.Decimal) bool {
	switch op {
	case query.OpEq:
		return v.Equal(target)
	case query.OpGt:
		return v.GreaterThan(target)
	case query.OpGte:
		return v.GreaterThanOrEqual(target)
	case query.OpLt:
		return v.LessThan(target)
	case query.OpLte:
		return v.LessThanOrEqual(target)
	}
	return false
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Images = append([]entity.Image(nil), p.Images...)
	c.Reviews = append([]entity.Review(nil), p.Reviews...)
	return &c
}
