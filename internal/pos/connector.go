package pos

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Connector is the per-vendor strategy behind the adapter: one concrete
// implementation per provider tag, each translating between the normalized
// model and that vendor's wire format.
type Connector interface {
	Name() string
	TestConnection(ctx context.Context) (bool, error)
	SyncMenu(ctx context.Context) ([]MenuItem, error)
	PushMenuItem(ctx context.Context, item MenuItem) (bool, error)
	// FetchOrders pulls orders created inside [start, end]. The window is
	// applied only when both bounds are non-zero; otherwise the vendor's
	// default listing (and its own ceiling) applies.
	FetchOrders(ctx context.Context, start, end time.Time) ([]Order, error)
	PushOrder(ctx context.Context, order Order) (string, error)
}

// NewFunc is a function signature for creating a new connector instance.
// It will be passed the provider configuration captured at adapter
// construction.
type NewFunc func(cfg ProviderConfig, logger *zap.SugaredLogger) Connector

var connectorRegistry = make(map[Provider]NewFunc)

// Register adds a new connector constructor to the registry.
// This is typically called from the connector's package init() function.
func Register(provider Provider, newFunc NewFunc) {
	if _, exists := connectorRegistry[provider]; exists {
		return
	}
	connectorRegistry[provider] = newFunc
}

// Get returns the constructor for the connector registered under provider.
func Get(provider Provider) (NewFunc, error) {
	newFunc, exists := connectorRegistry[provider]
	if !exists {
		return nil, fmt.Errorf("no connector registered for provider: %s", provider)
	}
	return newFunc, nil
}
