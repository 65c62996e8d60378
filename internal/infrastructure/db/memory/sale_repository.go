package memory

import (
	"context"
	"sync"

	"github.com/storemanager/store-api/internal/core/domain"
)

// SaleRepository is an append-only log of sales. Ids start at 1 and match
// the position in the log.
type SaleRepository struct {
	mu    sync.RWMutex
	sales []domain.Sale
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func (r *SaleRepository) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *s
	stored.ID = int64(len(r.sales)) + 1
	r.sales = append(r.sales, stored)
	return &stored, nil
}

func (r *SaleRepository) FindByID(_ context.Context, id int64) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id < 1 || id > int64(len(r.sales)) {
		return nil, domain.ErrSaleNotFound
	}
	s := r.sales[id-1]
	return &s, nil
}

func (r *SaleRepository) List(_ context.Context) ([]*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Sale, len(r.sales))
	for i := range r.sales {
		s := r.sales[i]
		out[i] = &s
	}
	return out, nil
}
