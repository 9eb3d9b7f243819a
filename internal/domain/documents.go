package domain

import (
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuSnapshot is one full menu pull from the vendor, replacing any
// previous snapshot for the same restaurant.
type MenuSnapshot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	Provider     string             `bson:"provider" json:"provider"`
	Items        []pos.MenuItem     `bson:"items" json:"items"`
	SyncedAt     time.Time          `bson:"synced_at" json:"synced_at"`
}

// PulledOrder is one vendor order persisted after an order pull. Orders
// are keyed by (restaurant_id, order.pos_order_id) so repeated pulls
// upsert instead of duplicating.
type PulledOrder struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	Provider     string             `bson:"provider" json:"provider"`
	Order        pos.Order          `bson:"order" json:"order"`
	PulledAt     time.Time          `bson:"pulled_at" json:"pulled_at"`
}

// ProviderSettings is the persisted POS configuration for one restaurant.
type ProviderSettings struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RestaurantID string             `bson:"restaurant_id" json:"restaurant_id"`
	Config       pos.ProviderConfig `bson:"config" json:"config"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
