package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepo struct {
	col *mongo.Collection
}

func NewReviewRepo(db *mongo.Database) *ReviewRepo {
	return &ReviewRepo{col: db.Collection("reviews")}
}

// Upsert keeps one review per (product, user); resubmitting replaces it.
func (r *ReviewRepo) Upsert(ctx context.Context, review *model.Review) error {
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	filter := bson.M{"product_id": review.ProductID, "user_id": review.UserID}
	update := bson.M{"$set": bson.M{
		"product_id": review.ProductID,
		"user_id":    review.UserID,
		"user_name":  review.UserName,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"updated_at": review.UpdatedAt,
	}, "$setOnInsert": bson.M{"created_at": review.CreatedAt}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) FindByProductID(ctx context.Context, productID string) ([]*model.Review, error) {
	cur, err := r.col.Find(ctx, bson.M{"product_id": productID}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var out []*model.Review
	for cur.Next(ctx) {
		var review model.Review
		if err := cur.Decode(&review); err != nil {
			return nil, err
		}
		out = append(out, &review)
	}
	return out, cur.Err()
}
