package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/domain"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/eventstore"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/queue"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/settings"
	"go.uber.org/zap"
)

type fakeAdapter struct {
	connected bool
	items     []pos.MenuItem
	orders    []pos.Order
	orderID   string
	err       error
}

func (f *fakeAdapter) TestConnection(ctx context.Context) bool { return f.connected }

func (f *fakeAdapter) SyncMenu(ctx context.Context) ([]pos.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeAdapter) PushMenuItem(ctx context.Context, item pos.MenuItem) (bool, error) {
	return f.err == nil, f.err
}

func (f *fakeAdapter) FetchOrders(ctx context.Context, start, end time.Time) ([]pos.Order, error) {
	return f.orders, f.err
}

func (f *fakeAdapter) PushOrder(ctx context.Context, order pos.Order) (string, error) {
	return f.orderID, f.err
}

type memMenuRepo struct {
	snapshots map[string]*domain.MenuSnapshot
}

func (r *memMenuRepo) Upsert(ctx context.Context, snapshot *domain.MenuSnapshot) error {
	r.snapshots[snapshot.RestaurantID] = snapshot
	return nil
}

func (r *memMenuRepo) GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.MenuSnapshot, error) {
	snapshot, ok := r.snapshots[restaurantID]
	if !ok {
		return nil, errors.New("not found")
	}
	return snapshot, nil
}

func (r *memMenuRepo) Delete(ctx context.Context, restaurantID string) error {
	delete(r.snapshots, restaurantID)
	return nil
}

type memOrderRepo struct {
	orders []*domain.PulledOrder
}

func (r *memOrderRepo) Upsert(ctx context.Context, order *domain.PulledOrder) error {
	r.orders = append(r.orders, order)
	return nil
}

func (r *memOrderRepo) ListByRestaurantID(ctx context.Context, restaurantID string, limit int64) ([]domain.PulledOrder, error) {
	var result []domain.PulledOrder
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID {
			result = append(result, *o)
		}
	}
	return result, nil
}

type memConfigRepo struct {
	configs map[string]*domain.ProviderSettings
}

func (r *memConfigRepo) Upsert(ctx context.Context, settings *domain.ProviderSettings) error {
	r.configs[settings.RestaurantID] = settings
	return nil
}

func (r *memConfigRepo) GetByRestaurantID(ctx context.Context, restaurantID string) (*domain.ProviderSettings, error) {
	cfg, ok := r.configs[restaurantID]
	if !ok {
		return nil, errors.New("not found")
	}
	return cfg, nil
}

func (r *memConfigRepo) List(ctx context.Context) ([]domain.ProviderSettings, error) {
	var result []domain.ProviderSettings
	for _, cfg := range r.configs {
		result = append(result, *cfg)
	}
	return result, nil
}

func (r *memConfigRepo) Delete(ctx context.Context, restaurantID string) error {
	delete(r.configs, restaurantID)
	return nil
}

type fakeBroker struct {
	published map[string][][]byte
}

func (b *fakeBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if b.published == nil {
		b.published = make(map[string][][]byte)
	}
	b.published[queueName] = append(b.published[queueName], message)
	return nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) IsClosed() bool { return false }

func (b *fakeBroker) Close() error { return nil }

type testHarness struct {
	service   *SyncService
	adapter   *fakeAdapter
	menuRepo  *memMenuRepo
	orderRepo *memOrderRepo
	broker    *fakeBroker
}

func newTestService(t *testing.T, withEvents bool) *testHarness {
	t.Helper()

	adapter := &fakeAdapter{connected: true}
	menuRepo := &memMenuRepo{snapshots: make(map[string]*domain.MenuSnapshot)}
	orderRepo := &memOrderRepo{}
	configRepo := &memConfigRepo{configs: make(map[string]*domain.ProviderSettings)}
	broker := &fakeBroker{}
	logger := zap.NewNop().Sugar()

	var events *eventstore.Store
	if withEvents {
		tmpDir, err := os.MkdirTemp("", "sync_service_test")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.RemoveAll(tmpDir) })

		events, err = eventstore.New(tmpDir, 1, logger)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { events.Close() })
	}

	svc := NewSyncService(
		settings.NewManager(logger),
		menuRepo,
		orderRepo,
		configRepo,
		broker,
		events,
		func(cfg pos.ProviderConfig, logger *zap.SugaredLogger) POSAdapter { return adapter },
		logger,
	)

	return &testHarness{
		service:   svc,
		adapter:   adapter,
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		broker:    broker,
	}
}

func configureSquare(t *testing.T, h *testHarness, restaurantID string) {
	t.Helper()
	err := h.service.SaveConfig(context.Background(), restaurantID, pos.ProviderConfig{
		Provider:    pos.ProviderSquare,
		APIKey:      "key",
		Environment: pos.EnvSandbox,
	})
	if err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
}

func TestSyncService_UnconfiguredRestaurant(t *testing.T) {
	h := newTestService(t, false)

	if h.service.TestProvider(context.Background(), "rest-1") {
		t.Error("Expected test to fail without config")
	}

	if _, err := h.service.EnqueueMenuSync(context.Background(), "rest-1"); !errors.Is(err, ErrNoProviderConfigured) {
		t.Errorf("Expected ErrNoProviderConfigured, got %v", err)
	}

	if err := h.service.RunMenuSync(context.Background(), "rest-1"); !errors.Is(err, ErrNoProviderConfigured) {
		t.Errorf("Expected ErrNoProviderConfigured, got %v", err)
	}
}

func TestSyncService_EnqueueMenuSync(t *testing.T) {
	h := newTestService(t, false)
	configureSquare(t, h, "rest-1")

	taskID, err := h.service.EnqueueMenuSync(context.Background(), "rest-1")
	if err != nil {
		t.Fatalf("EnqueueMenuSync failed: %v", err)
	}
	if taskID == "" {
		t.Error("Expected a task id")
	}

	published := h.broker.published["pos-menu-sync"]
	if len(published) != 1 {
		t.Fatalf("Expected 1 published message, got %d", len(published))
	}

	var msg domain.MenuSyncMessage
	if err := json.Unmarshal(published[0], &msg); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if msg.TaskID != taskID {
		t.Errorf("Expected task id %s in message, got %s", taskID, msg.TaskID)
	}
	if msg.RestaurantID != "rest-1" {
		t.Errorf("Expected restaurant rest-1, got %s", msg.RestaurantID)
	}
}

func TestSyncService_RunMenuSync(t *testing.T) {
	h := newTestService(t, false)
	configureSquare(t, h, "rest-1")
	h.adapter.items = []pos.MenuItem{
		{POSID: "item-1", Name: "Beef Tehari", Price: 12.5},
	}

	if err := h.service.RunMenuSync(context.Background(), "rest-1"); err != nil {
		t.Fatalf("RunMenuSync failed: %v", err)
	}

	snapshot, err := h.service.GetMenuSnapshot(context.Background(), "rest-1")
	if err != nil {
		t.Fatalf("GetMenuSnapshot failed: %v", err)
	}
	if snapshot.Provider != "square" {
		t.Errorf("Expected provider square, got '%s'", snapshot.Provider)
	}
	if len(snapshot.Items) != 1 || snapshot.Items[0].POSID != "item-1" {
		t.Errorf("Unexpected snapshot items: %+v", snapshot.Items)
	}
}

func TestSyncService_RunMenuSync_AdapterError(t *testing.T) {
	h := newTestService(t, false)
	configureSquare(t, h, "rest-1")
	h.adapter.err = errors.New("vendor down")

	if err := h.service.RunMenuSync(context.Background(), "rest-1"); err == nil {
		t.Error("Expected the adapter error to surface")
	}

	if len(h.menuRepo.snapshots) != 0 {
		t.Error("Expected no snapshot to be stored on failure")
	}
}

func TestSyncService_RunOrderPull(t *testing.T) {
	h := newTestService(t, false)
	configureSquare(t, h, "rest-1")
	h.adapter.orders = []pos.Order{
		{POSOrderID: "sq-1", OrderStatus: pos.OrderCompleted},
		{POSOrderID: "sq-2", OrderStatus: pos.OrderPending},
	}

	if err := h.service.RunOrderPull(context.Background(), "rest-1", nil, nil); err != nil {
		t.Fatalf("RunOrderPull failed: %v", err)
	}

	orders, err := h.service.ListOrders(context.Background(), "rest-1", 50)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 stored orders, got %d", len(orders))
	}
	if orders[0].Provider != "square" {
		t.Errorf("Expected provider square, got '%s'", orders[0].Provider)
	}
}

func TestSyncService_PushOrder(t *testing.T) {
	h := newTestService(t, false)
	configureSquare(t, h, "rest-1")
	h.adapter.orderID = "sq-new"

	id, err := h.service.PushOrder(context.Background(), "rest-1", pos.Order{})
	if err != nil {
		t.Fatalf("PushOrder failed: %v", err)
	}
	if id != "sq-new" {
		t.Errorf("Expected 'sq-new', got '%s'", id)
	}
}

func TestSyncService_LoadConfigs(t *testing.T) {
	h := newTestService(t, false)
	configureSquare(t, h, "rest-1")

	// a fresh service over the same repo should rehydrate the manager
	logger := zap.NewNop().Sugar()
	manager := settings.NewManager(logger)
	fresh := NewSyncService(
		manager,
		h.menuRepo,
		h.orderRepo,
		h.service.configRepo,
		h.broker,
		nil,
		func(cfg pos.ProviderConfig, logger *zap.SugaredLogger) POSAdapter { return h.adapter },
		logger,
	)

	if err := fresh.LoadConfigs(context.Background()); err != nil {
		t.Fatalf("LoadConfigs failed: %v", err)
	}

	cfg := fresh.GetConfig("rest-1")
	if cfg == nil || cfg.Provider != pos.ProviderSquare {
		t.Errorf("Expected rehydrated square config, got %+v", cfg)
	}
}

func TestSyncService_WebhookEvents(t *testing.T) {
	h := newTestService(t, true)

	payload := map[string]interface{}{"type": "order.updated"}
	eventID, err := h.service.RecordWebhookEvent("rest-1", "square", payload)
	if err != nil {
		t.Fatalf("RecordWebhookEvent failed: %v", err)
	}
	if eventID == "" {
		t.Error("Expected an event id")
	}

	// peek leaves the inbox intact
	events, err := h.service.PendingEvents("rest-1", 10, false)
	if err != nil {
		t.Fatalf("PendingEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}

	// consuming read delivers and deletes
	events, err = h.service.PendingEvents("rest-1", 10, true)
	if err != nil {
		t.Fatalf("PendingEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}

	events, err = h.service.PendingEvents("rest-1", 10, false)
	if err != nil {
		t.Fatalf("PendingEvents failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected empty inbox after consume, got %d", len(events))
	}
}
