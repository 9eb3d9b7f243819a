package pos

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Adapter is the uniform façade over the vendor connectors. The connector
// is selected once at construction from the registry and held for the
// adapter's lifetime; a config with an unregistered provider tag still
// constructs fine and fails lazily at call time.
//
// Every operation performs at most one outbound call, holds no state
// between calls and does no retries: at-most-once, fire-and-forget.
type Adapter struct {
	cfg    ProviderConfig
	conn   Connector
	logger *zap.SugaredLogger
}

func NewAdapter(cfg ProviderConfig, logger *zap.SugaredLogger) *Adapter {
	var conn Connector
	if newFunc, err := Get(cfg.Provider); err == nil {
		conn = newFunc(cfg, logger)
	} else {
		conn = unsupportedConnector{provider: cfg.Provider}
	}

	return &Adapter{
		cfg:    cfg,
		conn:   conn,
		logger: logger,
	}
}

// Provider returns the configured provider tag.
func (a *Adapter) Provider() Provider {
	return a.cfg.Provider
}

// TestConnection reports whether the vendor answers an authenticated
// probe. It never returns an error: transport failures are logged and
// coerced to false, and unimplemented vendors are simply false.
func (a *Adapter) TestConnection(ctx context.Context) bool {
	ok, err := a.conn.TestConnection(ctx)
	if err != nil {
		a.logger.Errorw("pos connection test failed",
			"provider", a.cfg.Provider, "error", err)
		return false
	}
	return ok
}

// SyncMenu pulls the vendor's catalog as normalized menu items, in vendor
// response order, without dedup or sorting.
func (a *Adapter) SyncMenu(ctx context.Context) ([]MenuItem, error) {
	items, err := a.conn.SyncMenu(ctx)
	if err != nil {
		a.logger.Errorw("menu sync from pos failed",
			"provider", a.cfg.Provider, "error", err)
		return nil, err
	}
	return items, nil
}

// PushMenuItem updates one item's name, description and price at the
// vendor. The bool reports whether the vendor accepted the call.
func (a *Adapter) PushMenuItem(ctx context.Context, item MenuItem) (bool, error) {
	ok, err := a.conn.PushMenuItem(ctx, item)
	if err != nil {
		a.logger.Errorw("menu item push to pos failed",
			"provider", a.cfg.Provider, "pos_id", item.POSID, "error", err)
		return false, err
	}
	return ok, nil
}

// FetchOrders pulls orders from the vendor, optionally windowed on
// creation time when both bounds are non-zero.
func (a *Adapter) FetchOrders(ctx context.Context, start, end time.Time) ([]Order, error) {
	orders, err := a.conn.FetchOrders(ctx, start, end)
	if err != nil {
		a.logger.Errorw("order fetch from pos failed",
			"provider", a.cfg.Provider, "error", err)
		return nil, err
	}
	return orders, nil
}

// PushOrder creates the order at the vendor and returns the
// vendor-assigned order identifier.
func (a *Adapter) PushOrder(ctx context.Context, order Order) (string, error) {
	posOrderID, err := a.conn.PushOrder(ctx, order)
	if err != nil {
		a.logger.Errorw("order push to pos failed",
			"provider", a.cfg.Provider, "order_number", order.OrderNumber, "error", err)
		return "", err
	}
	return posOrderID, nil
}

// unsupportedConnector stands in for provider tags with no registered
// connector. TestConnection is false without error; everything else fails
// with ErrNotImplemented.
type unsupportedConnector struct {
	provider Provider
}

func (c unsupportedConnector) Name() string { return string(c.provider) }

func (c unsupportedConnector) TestConnection(ctx context.Context) (bool, error) {
	return false, nil
}

func (c unsupportedConnector) SyncMenu(ctx context.Context) ([]MenuItem, error) {
	return nil, c.err()
}

func (c unsupportedConnector) PushMenuItem(ctx context.Context, item MenuItem) (bool, error) {
	return false, c.err()
}

func (c unsupportedConnector) FetchOrders(ctx context.Context, start, end time.Time) ([]Order, error) {
	return nil, c.err()
}

func (c unsupportedConnector) PushOrder(ctx context.Context, order Order) (string, error) {
	return "", c.err()
}

func (c unsupportedConnector) err() error {
	return fmt.Errorf("pos provider %q not supported: %w", c.provider, ErrNotImplemented)
}
