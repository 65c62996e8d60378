package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storemanager/store-api/internal/core/domain"
)

// SaleRepository implements ports.SaleRepository using MongoDB.
type SaleRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{col: db.Collection(collectionSales), seq: newSequence(db, collectionSales)}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	stored := *s
	stored.ID = id
	if _, err := r.col.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}
	return &stored, nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id int64) (*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Sale
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}
	items := []*domain.Sale{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return items, nil
}
