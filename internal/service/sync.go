package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/domain"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/eventstore"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/queue"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/repo"
	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/settings"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoProviderConfigured is returned when an operation needs a POS
// integration that the restaurant has not set up.
var ErrNoProviderConfigured = fmt.Errorf("no pos provider configured")

// POSAdapter is what the service needs from the pos package; *pos.Adapter
// satisfies it, tests substitute fakes.
type POSAdapter interface {
	TestConnection(ctx context.Context) bool
	SyncMenu(ctx context.Context) ([]pos.MenuItem, error)
	PushMenuItem(ctx context.Context, item pos.MenuItem) (bool, error)
	FetchOrders(ctx context.Context, start, end time.Time) ([]pos.Order, error)
	PushOrder(ctx context.Context, order pos.Order) (string, error)
}

// AdapterFactory builds an adapter for one provider configuration. A new
// adapter is constructed per operation batch; configs are immutable so
// there is nothing to share between calls.
type AdapterFactory func(cfg pos.ProviderConfig, logger *zap.SugaredLogger) POSAdapter

// SyncService ties the settings manager, the POS adapter, the repos, the
// job queue and the webhook event inbox together.
type SyncService struct {
	settings   *settings.Manager
	menuRepo   repo.MenuSnapshotRepository
	orderRepo  repo.OrderRepository
	configRepo repo.ProviderConfigRepository
	broker     queue.Broker
	events     *eventstore.Store
	newAdapter AdapterFactory
	logger     *zap.SugaredLogger
}

func NewSyncService(
	settingsManager *settings.Manager,
	menuRepo repo.MenuSnapshotRepository,
	orderRepo repo.OrderRepository,
	configRepo repo.ProviderConfigRepository,
	broker queue.Broker,
	events *eventstore.Store,
	newAdapter AdapterFactory,
	logger *zap.SugaredLogger,
) *SyncService {
	return &SyncService{
		settings:   settingsManager,
		menuRepo:   menuRepo,
		orderRepo:  orderRepo,
		configRepo: configRepo,
		broker:     broker,
		events:     events,
		newAdapter: newAdapter,
		logger:     logger,
	}
}

// LoadConfigs seeds the settings manager from persisted provider configs.
// Called once at startup.
func (s *SyncService) LoadConfigs(ctx context.Context) error {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load provider configs: %w", err)
	}

	for i := range configs {
		cfg := configs[i].Config
		s.settings.UpdateConfig(configs[i].RestaurantID, &cfg)
	}

	s.logger.Infow("provider configs loaded", "count", len(configs))
	return nil
}

// SaveConfig persists a restaurant's POS configuration and activates it.
func (s *SyncService) SaveConfig(ctx context.Context, restaurantID string, cfg pos.ProviderConfig) error {
	settingsDoc := &domain.ProviderSettings{
		RestaurantID: restaurantID,
		Config:       cfg,
	}

	if err := s.configRepo.Upsert(ctx, settingsDoc); err != nil {
		return fmt.Errorf("failed to persist provider config: %w", err)
	}

	s.settings.UpdateConfig(restaurantID, &cfg)
	return nil
}

// GetConfig returns the active configuration for a restaurant, or nil.
func (s *SyncService) GetConfig(restaurantID string) *pos.ProviderConfig {
	return s.settings.GetConfig(restaurantID)
}

// RemoveConfig deactivates and deletes a restaurant's POS integration.
func (s *SyncService) RemoveConfig(ctx context.Context, restaurantID string) error {
	if err := s.configRepo.Delete(ctx, restaurantID); err != nil {
		return err
	}
	s.settings.UpdateConfig(restaurantID, nil)
	return nil
}

func (s *SyncService) adapterFor(restaurantID string) (POSAdapter, *pos.ProviderConfig, error) {
	cfg := s.settings.GetConfig(restaurantID)
	if cfg == nil {
		return nil, nil, ErrNoProviderConfigured
	}
	return s.newAdapter(*cfg, s.logger), cfg, nil
}

// TestProvider probes the configured vendor. An unconfigured restaurant
// tests false, same as an unreachable vendor.
func (s *SyncService) TestProvider(ctx context.Context, restaurantID string) bool {
	adapter, _, err := s.adapterFor(restaurantID)
	if err != nil {
		return false
	}
	return adapter.TestConnection(ctx)
}

// EnqueueMenuSync publishes a menu sync job and returns its task id.
func (s *SyncService) EnqueueMenuSync(ctx context.Context, restaurantID string) (string, error) {
	if s.settings.GetConfig(restaurantID) == nil {
		return "", ErrNoProviderConfigured
	}

	message := domain.MenuSyncMessage{
		TaskID:       uuid.NewString(),
		RestaurantID: restaurantID,
		RequestedAt:  time.Now(),
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueMenuSync, messageBytes); err != nil {
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("menu sync enqueued", "task_id", message.TaskID, "restaurant_id", restaurantID)
	return message.TaskID, nil
}

// RunMenuSync pulls the vendor's full catalog and replaces the stored
// snapshot for the restaurant.
func (s *SyncService) RunMenuSync(ctx context.Context, restaurantID string) error {
	adapter, cfg, err := s.adapterFor(restaurantID)
	if err != nil {
		return err
	}

	items, err := adapter.SyncMenu(ctx)
	if err != nil {
		return fmt.Errorf("menu sync failed: %w", err)
	}

	snapshot := &domain.MenuSnapshot{
		RestaurantID: restaurantID,
		Provider:     string(cfg.Provider),
		Items:        items,
	}

	if err := s.menuRepo.Upsert(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to store menu snapshot: %w", err)
	}

	s.logger.Infow("menu synced", "restaurant_id", restaurantID, "items", len(items))
	return nil
}

// GetMenuSnapshot returns the last synced menu for a restaurant.
func (s *SyncService) GetMenuSnapshot(ctx context.Context, restaurantID string) (*domain.MenuSnapshot, error) {
	return s.menuRepo.GetByRestaurantID(ctx, restaurantID)
}

// PushMenuItem pushes one item's fields to the vendor.
func (s *SyncService) PushMenuItem(ctx context.Context, restaurantID string, item pos.MenuItem) (bool, error) {
	adapter, _, err := s.adapterFor(restaurantID)
	if err != nil {
		return false, err
	}
	return adapter.PushMenuItem(ctx, item)
}

// EnqueueOrderPull publishes an order pull job and returns its task id.
func (s *SyncService) EnqueueOrderPull(ctx context.Context, restaurantID string, start, end *time.Time) (string, error) {
	if s.settings.GetConfig(restaurantID) == nil {
		return "", ErrNoProviderConfigured
	}

	message := domain.OrderPullMessage{
		TaskID:       uuid.NewString(),
		RestaurantID: restaurantID,
		StartTime:    start,
		EndTime:      end,
		RequestedAt:  time.Now(),
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderPull, messageBytes); err != nil {
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("order pull enqueued", "task_id", message.TaskID, "restaurant_id", restaurantID)
	return message.TaskID, nil
}

// RunOrderPull fetches vendor orders (optionally windowed) and upserts
// each into the order repository.
func (s *SyncService) RunOrderPull(ctx context.Context, restaurantID string, start, end *time.Time) error {
	adapter, cfg, err := s.adapterFor(restaurantID)
	if err != nil {
		return err
	}

	var startTime, endTime time.Time
	if start != nil {
		startTime = *start
	}
	if end != nil {
		endTime = *end
	}

	orders, err := adapter.FetchOrders(ctx, startTime, endTime)
	if err != nil {
		return fmt.Errorf("order pull failed: %w", err)
	}

	for i := range orders {
		pulled := &domain.PulledOrder{
			RestaurantID: restaurantID,
			Provider:     string(cfg.Provider),
			Order:        orders[i],
		}
		if err := s.orderRepo.Upsert(ctx, pulled); err != nil {
			return fmt.Errorf("failed to store pulled order %s: %w", orders[i].POSOrderID, err)
		}
	}

	s.logger.Infow("orders pulled", "restaurant_id", restaurantID, "count", len(orders))
	return nil
}

// ListOrders returns recently pulled orders for a restaurant.
func (s *SyncService) ListOrders(ctx context.Context, restaurantID string, limit int64) ([]domain.PulledOrder, error) {
	return s.orderRepo.ListByRestaurantID(ctx, restaurantID, limit)
}

// PushOrder sends a storefront order to the vendor and returns the
// vendor-assigned order id.
func (s *SyncService) PushOrder(ctx context.Context, restaurantID string, order pos.Order) (string, error) {
	adapter, _, err := s.adapterFor(restaurantID)
	if err != nil {
		return "", err
	}
	return adapter.PushOrder(ctx, order)
}

// RecordWebhookEvent journals one raw vendor webhook payload for later
// consumption by the back-office.
func (s *SyncService) RecordWebhookEvent(restaurantID, provider string, payload map[string]interface{}) (string, error) {
	event := eventstore.Event{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Provider:     provider,
		Payload:      payload,
		ReceivedAt:   time.Now(),
	}

	if err := s.events.Append(event); err != nil {
		return "", err
	}

	return event.ID, nil
}

// PendingEvents reads journaled webhook events. A consuming read deletes
// what it returns; a plain read leaves the inbox untouched.
func (s *SyncService) PendingEvents(restaurantID string, limit int, consume bool) ([]eventstore.Event, error) {
	if consume {
		return s.events.Consume(restaurantID, limit)
	}
	return s.events.Peek(restaurantID, limit)
}
