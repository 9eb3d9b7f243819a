package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection("pulled_orders"),
	}
}

func (r *OrderRepository) Upsert(ctx context.Context, order *domain.PulledOrder) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	order.PulledAt = time.Now()

	filter := bson.M{
		"restaurant_id":      order.RestaurantID,
		"order.pos_order_id": order.Order.POSOrderID,
	}
	update := bson.M{
		"$set": bson.M{
			"restaurant_id": order.RestaurantID,
			"provider":      order.Provider,
			"order":         order.Order,
			"pulled_at":     order.PulledAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert pulled order: %w", err)
	}

	return nil
}

func (r *OrderRepository) ListByRestaurantID(ctx context.Context, restaurantID string, limit int64) ([]domain.PulledOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "pulled_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"restaurant_id": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pulled orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.PulledOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode pulled orders: %w", err)
	}

	return orders, nil
}
