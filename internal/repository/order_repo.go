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

type OrderRepo struct {
	col *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{col: db.Collection("orders")}
}

func (r *OrderRepo) Insert(ctx context.Context, o *model.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var o model.Order
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) FindByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepo) FindAll(ctx context.Context) ([]*model.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepo) FindByStatusCode(ctx context.Context, code string) ([]*model.Order, error) {
	return r.find(ctx, bson.M{"status_code": code})
}

func (r *OrderRepo) find(ctx context.Context, filter bson.M) ([]*model.Order, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	var out []*model.Order
	for cur.Next(ctx) {
		var o model.Order
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	return out, cur.Err()
}

// AppendStatus pushes one history record and brings the order's current
// status and logistics summary in line with it, in a single update. History
// is only ever appended to. Logistics fields are merged field by field so an
// update that carries no courier keeps the courier set earlier.
func (r *OrderRepo) AppendStatus(ctx context.Context, orderID string, record model.StatusRecord, setStatus bool, logistics map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if setStatus {
		set["status"] = record.Status
		set["status_code"] = record.StatusCode
	}
	for field, value := range logistics {
		set["logistics."+field] = value
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"history": record},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to append status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepo) MarkPaid(ctx context.Context, orderID string) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"payment":    true,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
