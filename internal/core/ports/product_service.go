package ports

import (
	"context"

	"github.com/storemanager/store-api/internal/core/domain"
)

// ProductInput carries the mutable fields of a product for create and update.
type ProductInput struct {
	Name      string
	Category  string
	Quantity  int
	UnitPrice float64
}

// ProductService defines catalog use cases.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
