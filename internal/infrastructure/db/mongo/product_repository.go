package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storemanager/store-api/internal/core/domain"
)

type ProductRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts), seq: newSequence(db, collectionProducts)}
}

// Create inserts p under a freshly allocated id.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	stored := *p
	stored.ID = id
	if _, err := r.col.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &stored, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	items := []*domain.Product{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return items, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":       p.Name,
		"category":   p.Category,
		"quantity":   p.Quantity,
		"unit_price": p.UnitPrice,
		"updated_at": p.UpdatedAt,
	}}
	var out domain.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &out, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DecrementStock applies the stock check and the decrement in one
// conditional update, so concurrent writers cannot oversell.
func (r *ProductRepository) DecrementStock(ctx context.Context, id int64, qty int) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "quantity": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"quantity": -qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	var out domain.Product
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrProductNotFound
	}
	return nil, domain.ErrInsufficientStock
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id int64, qty int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
