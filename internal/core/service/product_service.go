package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storemanager/store-api/internal/core/domain"
	"github.com/storemanager/store-api/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// ValidateProduct is the single gate for product fields on create and update.
func ValidateProduct(in ports.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("product_name", "is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return domain.NewValidationError("category", "is required")
	}
	if in.Quantity < 0 {
		return domain.NewValidationError("quantity", "must be a non-negative integer")
	}
	if !(in.UnitPrice > 0) || math.IsInf(in.UnitPrice, 0) {
		return domain.NewValidationError("unit_price", "must be a positive number")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := ValidateProduct(in); err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Int("quantity", created.Quantity).Msg("product created")
	return created, nil
}

// Update validates in and then overwrites every mutable field of the
// product identified by id. Nothing is written when validation fails.
func (s *ProductService) Update(ctx context.Context, id int64, in ports.ProductInput) (*domain.Product, error) {
	if err := ValidateProduct(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	existing.Name = strings.TrimSpace(in.Name)
	existing.Category = strings.TrimSpace(in.Category)
	existing.Quantity = in.Quantity
	existing.UnitPrice = in.UnitPrice
	existing.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// Delete removes the product. Sales that reference it are kept.
func (s *ProductService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	if removed {
		s.logger.Info().Int64("product_id", id).Msg("product deleted")
	}
	return removed, nil
}
