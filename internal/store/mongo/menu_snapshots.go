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

type MenuSnapshotRepository struct {
	collection *mongo.Collection
}

func NewMenuSnapshotRepository(db *mongo.Database) *MenuSnapshotRepository {
	return &MenuSnapshotRepository{
		collection: db.Collection("menu_snapshots"),
	}
}

func (r *MenuSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.MenuSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	snapshot.SyncedAt = time.Now()

	filter := bson.M{"restaurant_id": snapshot.RestaurantID}
	update := bson.M{
		"$set": bson.M{
			"restaurant_id": snapshot.RestaurantID,
			"provider":      snapshot.Provider,
			"items":         snapshot.Items,
			"synced_at":     snapshot.SyncedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert menu snapshot: %w", err)
	}

	return nil
}

func (r *MenuSnapshotRepository) GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.MenuSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var snapshot domain.MenuSnapshot
	err := r.collection.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&snapshot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("menu snapshot not found")
		}
		return nil, fmt.Errorf("failed to get menu snapshot: %w", err)
	}

	return &snapshot, nil
}

func (r *MenuSnapshotRepository) Delete(ctx context.Context, restaurantID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("failed to delete menu snapshot: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("menu snapshot not found")
	}

	return nil
}
