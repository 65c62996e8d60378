package ports

import (
	"context"

	"github.com/storemanager/store-api/internal/core/domain"
)

// SaleRepository stores immutable sale records.
type SaleRepository interface {
	// Create assigns a fresh id to s and appends it.
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	FindByID(ctx context.Context, id int64) (*domain.Sale, error)
	// List returns all sales in creation order.
	List(ctx context.Context) ([]*domain.Sale, error)
}

// KeySerializer runs fn so that calls sharing a key never overlap.
type KeySerializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
