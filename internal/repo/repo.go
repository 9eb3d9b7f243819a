package repo

import (
	"context"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/domain"
)

type MenuSnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *domain.MenuSnapshot) error
	GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.MenuSnapshot, error)
	Delete(ctx context.Context, restaurantID string) error
}

type OrderRepository interface {
	Upsert(ctx context.Context, order *domain.PulledOrder) error
	ListByRestaurantID(ctx context.Context, restaurantID string, limit int64) ([]domain.PulledOrder, error)
}

type ProviderConfigRepository interface {
	Upsert(ctx context.Context, settings *domain.ProviderSettings) error
	GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.ProviderSettings, error)
	List(ctx context.Context) ([]domain.ProviderSettings, error)
	Delete(ctx context.Context, restaurantID string) error
}
