package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/storemanager/store-api/internal/core/domain"
)

// ProductRepository keeps products in a map guarded by one RWMutex. Readers
// always receive copies, so a returned product is a consistent snapshot.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[int64]*domain.Product)}
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *p
	stored.ID = r.nextID
	r.products[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *domain.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *ProductRepository) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[p.ID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	existing.Name = p.Name
	existing.Category = p.Category
	existing.Quantity = p.Quantity
	existing.UnitPrice = p.UnitPrice
	existing.UpdatedAt = p.UpdatedAt
	clone := *existing
	return &clone, nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *ProductRepository) DecrementStock(_ context.Context, id int64, qty int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if !p.HasStock(qty) {
		return nil, domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (r *ProductRepository) IncrementStock(_ context.Context, id int64, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity += qty
	p.UpdatedAt = time.Now().UTC()
	return nil
}
