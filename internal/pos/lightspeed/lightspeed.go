// Package lightspeed registers the Lightspeed connector stub. The real
// integration is not built yet.
package lightspeed

import (
	"context"
	"fmt"
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"go.uber.org/zap"
)

func init() {
	pos.Register(pos.ProviderLightspeed, New)
}

type Connector struct{}

func New(cfg pos.ProviderConfig, logger *zap.SugaredLogger) pos.Connector {
	return Connector{}
}

func (Connector) Name() string { return string(pos.ProviderLightspeed) }

func (Connector) TestConnection(ctx context.Context) (bool, error) {
	return false, nil
}

func (Connector) SyncMenu(ctx context.Context) ([]pos.MenuItem, error) {
	return nil, errNotImplemented()
}

func (Connector) PushMenuItem(ctx context.Context, item pos.MenuItem) (bool, error) {
	return false, errNotImplemented()
}

func (Connector) FetchOrders(ctx context.Context, start, end time.Time) ([]pos.Order, error) {
	return nil, errNotImplemented()
}

func (Connector) PushOrder(ctx context.Context, order pos.Order) (string, error) {
	return "", errNotImplemented()
}

func errNotImplemented() error {
	return fmt.Errorf("lightspeed: %w", pos.ErrNotImplemented)
}
