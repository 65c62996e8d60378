package ports

import (
	"context"

	"github.com/storemanager/store-api/internal/core/domain"
)

// SaleOutcome is the business result of a sale attempt.
type SaleOutcome string

const (
	OutcomeRecorded          SaleOutcome = "recorded"
	OutcomeInsufficientStock SaleOutcome = "insufficient_stock"
)

// SaleResult is returned by Record. Sale is set only when Outcome is
// OutcomeRecorded; Available carries the stock seen when it was not.
type SaleResult struct {
	Outcome   SaleOutcome
	Sale      *domain.Sale
	Available int
}

// SaleService defines sales ledger use cases.
type SaleService interface {
	Record(ctx context.Context, productID int64, quantity int) (*SaleResult, error)
	Get(ctx context.Context, id int64) (*domain.Sale, error)
	List(ctx context.Context) ([]*domain.Sale, error)
}
