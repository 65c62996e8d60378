package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storemanager/store-api/internal/core/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.users[user.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubRevocations struct {
	mu  sync.Mutex
	ids map[string]time.Time
	err error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{ids: make(map[string]time.Time)}
}

func (s *stubRevocations) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.ids[tokenID] = expiresAt
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.ids[tokenID]
	return ok, nil
}

// stubProductRepo is a mutex-guarded catalog. It counts FindByID calls so
// tests can check that ids are resolved strictly.
type stubProductRepo struct {
	mu       sync.Mutex
	items    map[int64]*domain.Product
	nextID   int64
	finds    int
	updates  int
	failNext error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: make(map[int64]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failNext; err != nil {
		r.failNext = nil
		return nil, err
	}
	r.nextID++
	clone := *p
	clone.ID = r.nextID
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Product, 0, len(r.items))
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.items[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	r.updates++
	clone := *p
	r.items[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *stubProductRepo) DecrementStock(_ context.Context, id int64, qty int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if p.Quantity < qty {
		return nil, domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) IncrementStock(_ context.Context, id int64, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity += qty
	return nil
}

func (r *stubProductRepo) quantity(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Quantity
}

type stubSaleRepo struct {
	mu    sync.Mutex
	sales []*domain.Sale
	err   error
}

func (r *stubSaleRepo) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	clone := *s
	clone.ID = int64(len(r.sales) + 1)
	r.sales = append(r.sales, &clone)
	out := clone
	return &out, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id int64) (*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 1 || id > int64(len(r.sales)) {
		return nil, domain.ErrSaleNotFound
	}
	clone := *r.sales[id-1]
	return &clone, nil
}

func (r *stubSaleRepo) List(_ context.Context) ([]*domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubSaleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sales)
}

var errStoreDown = errors.New("store unavailable")

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}
