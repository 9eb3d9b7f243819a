package settings

import (
	"sync"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
	"go.uber.org/zap"
)

// Manager handles the storage and retrieval of POS configurations,
// keyed by restaurant. It holds the in-memory view; durable persistence
// lives in the provider config repository.
type Manager struct {
	sync.RWMutex
	logger         *zap.SugaredLogger
	configs        map[string]*pos.ProviderConfig
	changeChan     chan struct{}
	updateCallback func(restaurantID string, cfg *pos.ProviderConfig)
}

// NewManager creates a new configuration manager.
func NewManager(logger *zap.SugaredLogger) *Manager {
	return &Manager{
		logger:     logger,
		configs:    make(map[string]*pos.ProviderConfig),
		changeChan: make(chan struct{}, 1),
	}
}

// UpdateConfig sets or clears the configuration for one restaurant.
// A nil config deactivates the integration.
func (m *Manager) UpdateConfig(restaurantID string, cfg *pos.ProviderConfig) {
	m.Lock()
	defer m.Unlock()

	if cfg != nil {
		cfgCopy := *cfg
		m.configs[restaurantID] = &cfgCopy
		m.logger.Infow("pos configuration updated",
			"restaurant_id", restaurantID, "provider", cfg.Provider, "environment", cfg.Environment)
	} else {
		delete(m.configs, restaurantID)
		m.logger.Infow("pos configuration deactivated", "restaurant_id", restaurantID)
	}

	if m.updateCallback != nil {
		m.updateCallback(restaurantID, cfg)
	}

	m.notifyChange()
}

// GetConfig returns a copy of the configuration for a restaurant, or nil
// when no integration is configured.
func (m *Manager) GetConfig(restaurantID string) *pos.ProviderConfig {
	m.RLock()
	defer m.RUnlock()

	cfg, ok := m.configs[restaurantID]
	if !ok {
		return nil
	}

	cfgCopy := *cfg
	return &cfgCopy
}

// All returns copies of every configured restaurant's POS config.
func (m *Manager) All() map[string]*pos.ProviderConfig {
	m.RLock()
	defer m.RUnlock()

	result := make(map[string]*pos.ProviderConfig, len(m.configs))
	for restaurantID, cfg := range m.configs {
		cfgCopy := *cfg
		result[restaurantID] = &cfgCopy
	}
	return result
}

// Changes returns a channel that signals when settings have been updated.
func (m *Manager) Changes() <-chan struct{} {
	return m.changeChan
}

// SetUpdateCallback sets the function to call when a restaurant's
// configuration changes.
func (m *Manager) SetUpdateCallback(callback func(restaurantID string, cfg *pos.ProviderConfig)) {
	m.Lock()
	defer m.Unlock()
	m.updateCallback = callback
}

func (m *Manager) notifyChange() {
	select {
	case m.changeChan <- struct{}{}:
	default:
	}
}
