package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PricingRepo struct {
	col *mongo.Collection
}

func NewPricingRepo(db *mongo.Database) *PricingRepo {
	return &PricingRepo{col: db.Collection("pricing")}
}

func (r *PricingRepo) FindByProductID(ctx context.Context, productID primitive.ObjectID) (*model.Pricing, error) {
	var p model.Pricing
	err := r.col.FindOne(ctx, bson.M{"product_id": productID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing: %w", err)
	}
	return &p, nil
}

// Upsert replaces the product's price table, pushing the previous table onto
// the history before overwriting it.
func (r *PricingRepo) Upsert(ctx context.Context, productID primitive.ObjectID, basePrice float64, sizes []model.SizePrice) (*model.Pricing, error) {
	now := time.Now().UTC()

	existing, err := r.FindByProductID(ctx, productID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		p := &model.Pricing{
			ProductID: productID,
			BasePrice: basePrice,
			Sizes:     sizes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		res, err := r.col.InsertOne(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("failed to insert pricing: %w", err)
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			p.ID = oid
		}
		return p, nil
	}

	snapshot := model.PriceSnapshot{
		BasePrice: existing.BasePrice,
		Sizes:     existing.Sizes,
		TakenAt:   now,
	}

	update := bson.M{
		"$set": bson.M{
			"base_price": basePrice,
			"sizes":      sizes,
			"updated_at": now,
		},
		"$push": bson.M{"history": snapshot},
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to update pricing: %w", err)
	}

	existing.BasePrice = basePrice
	existing.Sizes = sizes
	existing.History = append(existing.History, snapshot)
	existing.UpdatedAt = now
	return existing, nil
}
