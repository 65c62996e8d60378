package ports

import (
	"context"

	"github.com/storemanager/store-api/internal/core/domain"
)

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	// Create assigns a fresh id to p and stores it.
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// List returns all products in creation order.
	List(ctx context.Context) ([]*domain.Product, error)
	// Update overwrites the mutable fields of the product with p.ID.
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// DecrementStock atomically subtracts qty when at least qty units are in
	// stock and returns the product as it is after the decrement. It fails
	// with domain.ErrInsufficientStock otherwise, leaving stock untouched.
	DecrementStock(ctx context.Context, id int64, qty int) (*domain.Product, error)
	// IncrementStock puts units back, used to undo a decrement whose sale
	// could not be stored.
	IncrementStock(ctx context.Context, id int64, qty int) error
}
