package lightspeed

import (
	"context"
	"errors"
	"testing"

	"github.com/TechDeitySpark/deshibites-pos-bridge/internal/pos"
)

func TestConnector_NotImplemented(t *testing.T) {
	conn := New(pos.ProviderConfig{Provider: pos.ProviderLightspeed}, nil)

	ok, err := conn.TestConnection(context.Background())
	if err != nil {
		t.Errorf("TestConnection should not error, got %v", err)
	}
	if ok {
		t.Error("Expected connection test to answer false")
	}

	if _, err := conn.SyncMenu(context.Background()); !errors.Is(err, pos.ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}

	if _, err := conn.PushOrder(context.Background(), pos.Order{}); !errors.Is(err, pos.ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}
}
