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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepo is the only reader of the Pricing collection on the hot path:
// a product that references a pricing table leaves the repo with that table
// already folded into SizePricing, so callers never branch on the two
// representations.
type ProductRepo struct {
	col     *mongo.Collection
	pricing *mongo.Collection
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{
		col:     db.Collection("products"),
		pricing: db.Collection("pricing"),
	}
}

func (r *ProductRepo) normalize(ctx context.Context, p *model.Product) error {
	if p.PricingID == nil {
		return nil
	}

	var pr model.Pricing
	err := r.pricing.FindOne(ctx, bson.M{"_id": *p.PricingID}).Decode(&pr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// dangling reference; fall back to whatever the product carries
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load pricing table: %w", err)
	}

	if p.SizePricing == nil {
		p.SizePricing = make(map[string]float64, len(pr.Sizes))
	}
	// referenced table wins over any stale inline values
	for _, sp := range pr.Sizes {
		p.SizePricing[sp.Size] = sp.Price
	}
	if pr.BasePrice > 0 {
		p.Price = pr.BasePrice
	}
	return nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p model.Product
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := r.normalize(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) FindAll(ctx context.Context) ([]*model.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	var out []*model.Product
	for cur.Next(ctx) {
		var p model.Product
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		if err := r.normalize(ctx, &p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *ProductRepo) Insert(ctx context.Context, p *model.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStock sets only the stock fields present in the update document.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	set["updated_at"] = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepo) SetPricingRef(ctx context.Context, productID string, pricingID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"pricing_id": pricingID,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to set pricing reference: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
