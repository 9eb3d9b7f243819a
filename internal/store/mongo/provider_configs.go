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

type ProviderConfigRepository struct {
	collection *mongo.Collection
}

func NewProviderConfigRepository(db *mongo.Database) *ProviderConfigRepository {
	return &ProviderConfigRepository{
		collection: db.Collection("provider_configs"),
	}
}

func (r *ProviderConfigRepository) Upsert(ctx context.Context, settings *domain.ProviderSettings) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	settings.UpdatedAt = time.Now()

	filter := bson.M{"restaurant_id": settings.RestaurantID}
	update := bson.M{
		"$set": bson.M{
			"restaurant_id": settings.RestaurantID,
			"config":        settings.Config,
			"updated_at":    settings.UpdatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert provider config: %w", err)
	}

	return nil
}

func (r *ProviderConfigRepository) GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.ProviderSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings domain.ProviderSettings
	err := r.collection.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("provider config not found")
		}
		return nil, fmt.Errorf("failed to get provider config: %w", err)
	}

	return &settings, nil
}

func (r *ProviderConfigRepository) List(ctx context.Context) ([]domain.ProviderSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list provider configs: %w", err)
	}
	defer cursor.Close(ctx)

	var configs []domain.ProviderSettings
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, fmt.Errorf("failed to decode provider configs: %w", err)
	}

	return configs, nil
}

func (r *ProviderConfigRepository) Delete(ctx context.Context, restaurantID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("failed to delete provider config: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("provider config not found")
	}

	return nil
}
