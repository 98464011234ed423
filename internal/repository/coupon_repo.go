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

// ErrUsageExhausted means the coupon hit its usage limit between validation
// and redemption.
var ErrUsageExhausted = errors.New("coupon usage limit reached")

type CouponRepo struct {
	col *mongo.Collection
}

func NewCouponRepo(db *mongo.Database) *CouponRepo {
	return &CouponRepo{col: db.Collection("coupons")}
}

func (r *CouponRepo) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var c model.Coupon
	err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return &c, nil
}

func (r *CouponRepo) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cur.Close(ctx)

	var out []*model.Coupon
	for cur.Next(ctx) {
		var c model.Coupon
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (r *CouponRepo) Insert(ctx context.Context, c *model.Coupon) error {
	existing, err := r.FindByCode(ctx, c.Code)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return ErrDuplicate
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to insert coupon: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (r *CouponRepo) SetActive(ctx context.Context, code string, active bool) error {
	update := bson.M{"$set": bson.M{
		"active":     active,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"code": code}, update)
	if err != nil {
		return fmt.Errorf("failed to toggle coupon: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RedeemOnce increments usage_count only while it is still under the limit,
// in a single conditional update, so concurrent redemptions can never push
// the count past the limit.
func (r *CouponRepo) RedeemOnce(ctx context.Context, code string) error {
	filter := bson.M{
		"code":   code,
		"active": true,
		"$or": []bson.M{
			{"usage_limit": bson.M{"$lte": 0}},
			{"$expr": bson.M{"$lt": []string{"$usage_count", "$usage_limit"}}},
		},
	}
	update := bson.M{
		"$inc": bson.M{"usage_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}
	if res.MatchedCount == 0 {
		// either the code vanished or the limit was hit concurrently
		if _, ferr := r.FindByCode(ctx, code); errors.Is(ferr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrUsageExhausted
	}
	return nil
}
