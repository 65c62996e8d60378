package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
)

type SaleService struct {
	sales      ports.SaleRepository
	products   ports.ProductRepository
	serializer ports.KeySerializer
	logger     zerolog.Logger
	now        func() time.Time
}

// NewSaleService wires the ledger. When serializer is nil every sale runs
// under one process-wide lock.
func NewSaleService(sales ports.SaleRepository, products ports.ProductRepository, serializer ports.KeySerializer, logger zerolog.Logger) *SaleService {
	if serializer == nil {
		serializer = &lockSerializer{}
	}
	return &SaleService{
		sales:      sales,
		products:   products,
		serializer: serializer,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Record runs validate, check stock and commit as one unit per product.
// Insufficient stock is reported through the result, not as an error.
func (s *SaleService) Record(ctx context.Context, productID int64, quantity int) (*ports.SaleResult, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be a positive integer")
	}

	var result *ports.SaleResult
	err := s.serializer.Do(ctx, strconv.FormatInt(productID, 10), func(ctx context.Context) error {
		var err error
		result, err = s.commit(ctx, productID, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SaleService) commit(ctx context.Context, productID int64, quantity int) (*ports.SaleResult, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.NewValidationError("product_id", "references a non-existent product")
		}
		return nil, fmt.Errorf("record sale: %w", err)
	}
	if !product.HasStock(quantity) {
		s.logger.Info().Int64("product_id", productID).Int("requested", quantity).Int("available", product.Quantity).Msg("insufficient stock")
		return &ports.SaleResult{Outcome: ports.OutcomeInsufficientStock, Available: product.Quantity}, nil
	}

	// The conditional decrement still guards against writers outside this
	// process sharing the same store.
	updated, err := s.products.DecrementStock(ctx, productID, quantity)
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return &ports.SaleResult{Outcome: ports.OutcomeInsufficientStock, Available: product.Quantity}, nil
	case errors.Is(err, domain.ErrProductNotFound):
		return nil, domain.NewValidationError("product_id", "references a non-existent product")
	case err != nil:
		return nil, fmt.Errorf("record sale: decrement stock: %w", err)
	}

	created, err := s.sales.Create(ctx, domain.NewSale(updated, quantity, s.now()))
	if err != nil {
		if restoreErr := s.products.IncrementStock(ctx, productID, quantity); restoreErr != nil {
			s.logger.Error().Err(restoreErr).Int64("product_id", productID).Int("quantity", quantity).Msg("failed to restore stock after sale error")
		}
		return nil, fmt.Errorf("record sale: store sale: %w", err)
	}

	s.logger.Info().
		Int64("sale_id", created.ID).
		Int64("product_id", productID).
		Int("quantity", quantity).
		Float64("total", created.Total).
		Int("remaining", updated.Quantity).
		Msg("sale recorded")

	return &ports.SaleResult{Outcome: ports.OutcomeRecorded, Sale: created, Available: updated.Quantity}, nil
}

func (s *SaleService) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale %d: %w", id, err)
	}
	return sale, nil
}

func (s *SaleService) List(ctx context.Context) ([]*domain.Sale, error) {
	items, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return items, nil
}

type lockSerializer struct {
	mu sync.Mutex
}

func (l *lockSerializer) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
