package pos

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeConnector struct {
	testResult bool
	testErr    error
	items      []MenuItem
	orders     []Order
	orderID    string
	err        error
}

func (f *fakeConnector) Name() string { return "fake" }

func (f *fakeConnector) TestConnection(ctx context.Context) (bool, error) {
	return f.testResult, f.testErr
}

func (f *fakeConnector) SyncMenu(ctx context.Context) ([]MenuItem, error) {
	return f.items, f.err
}

func (f *fakeConnector) PushMenuItem(ctx context.Context, item MenuItem) (bool, error) {
	return f.err == nil, f.err
}

func (f *fakeConnector) FetchOrders(ctx context.Context, start, end time.Time) ([]Order, error) {
	return f.orders, f.err
}

func (f *fakeConnector) PushOrder(ctx context.Context, order Order) (string, error) {
	return f.orderID, f.err
}

// registerFake registers fake under its own provider tag. Register keeps
// the first constructor for a tag, so each test must use a distinct one.
func registerFake(t *testing.T, provider Provider, fake *fakeConnector) ProviderConfig {
	t.Helper()

	Register(provider, func(cfg ProviderConfig, logger *zap.SugaredLogger) Connector {
		return fake
	})

	return ProviderConfig{Provider: provider, Environment: EnvSandbox}
}

func TestAdapter_DispatchesToRegisteredConnector(t *testing.T) {
	fake := &fakeConnector{
		testResult: true,
		items:      []MenuItem{{POSID: "item-1", Name: "Beef Kala Bhuna", Price: 15.5}},
		orderID:    "ord-42",
	}
	cfg := registerFake(t, Provider("fake-dispatch"), fake)
	adapter := NewAdapter(cfg, zap.NewNop().Sugar())

	if !adapter.TestConnection(context.Background()) {
		t.Error("Expected connection test to pass")
	}

	items, err := adapter.SyncMenu(context.Background())
	if err != nil {
		t.Fatalf("SyncMenu failed: %v", err)
	}
	if len(items) != 1 || items[0].POSID != "item-1" {
		t.Errorf("Expected fake connector's menu, got %+v", items)
	}

	id, err := adapter.PushOrder(context.Background(), Order{})
	if err != nil {
		t.Fatalf("PushOrder failed: %v", err)
	}
	if id != "ord-42" {
		t.Errorf("Expected order id 'ord-42', got '%s'", id)
	}
}

func TestRegister_KeepsFirstConstructor(t *testing.T) {
	first := &fakeConnector{testResult: true}
	second := &fakeConnector{testResult: false, testErr: errors.New("should never be constructed")}

	cfg := registerFake(t, Provider("fake-duplicate"), first)
	registerFake(t, Provider("fake-duplicate"), second)

	adapter := NewAdapter(cfg, zap.NewNop().Sugar())
	if !adapter.TestConnection(context.Background()) {
		t.Error("Expected the first registered connector to stay in place")
	}
}

func TestAdapter_TestConnectionCoercesErrorToFalse(t *testing.T) {
	fake := &fakeConnector{testResult: false, testErr: errors.New("connection refused")}
	cfg := registerFake(t, Provider("fake-coerce"), fake)
	adapter := NewAdapter(cfg, zap.NewNop().Sugar())

	if adapter.TestConnection(context.Background()) {
		t.Error("Expected false when the connector errors")
	}
}

func TestAdapter_UnsupportedProvider(t *testing.T) {
	cfg := ProviderConfig{Provider: Provider("micros"), Environment: EnvProduction}
	adapter := NewAdapter(cfg, zap.NewNop().Sugar())

	if adapter.TestConnection(context.Background()) {
		t.Error("Expected connection test to fail for unsupported provider")
	}

	if _, err := adapter.SyncMenu(context.Background()); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}

	if _, err := adapter.PushMenuItem(context.Background(), MenuItem{}); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}

	if _, err := adapter.FetchOrders(context.Background(), time.Time{}, time.Time{}); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}

	if _, err := adapter.PushOrder(context.Background(), Order{}); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}
}

func TestBaseURL(t *testing.T) {
	cases := []struct {
		provider    Provider
		environment Environment
		expected    string
	}{
		{ProviderSquare, EnvSandbox, "https://connect.squareupsandbox.com"},
		{ProviderSquare, EnvProduction, "https://connect.squareup.com"},
		{ProviderToast, EnvSandbox, "https://ws-sandbox-api.toasttab.com"},
		{ProviderClover, EnvProduction, "https://api.clover.com"},
		{ProviderLightspeed, EnvSandbox, "https://api.lightspeedhq.com"},
		{ProviderLightspeed, EnvProduction, "https://api.lightspeedhq.com"},
		{Provider("micros"), EnvSandbox, ""},
		{ProviderSquare, Environment("staging"), ""},
	}

	for _, c := range cases {
		got := BaseURL(c.provider, c.environment)
		if got != c.expected {
			t.Errorf("BaseURL(%s, %s): expected '%s', got '%s'", c.provider, c.environment, c.expected, got)
		}
	}
}
