package eventstore

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "eventstore_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Errorf("Failed to clean up temp dir: %v", err)
		}
	})

	store, err := New(tmpDir, 1, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close store: %v", err)
		}
	})

	return store
}

func testEvent(id, restaurantID string) Event {
	return Event{
		ID:           id,
		RestaurantID: restaurantID,
		Provider:     "square",
		Payload: map[string]interface{}{
			"type": "order.created",
		},
		ReceivedAt: time.Now(),
	}
}

func TestStore_AppendAndConsume(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append(testEvent("evt-1", "rest-1")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(testEvent("evt-2", "rest-1")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	events, err := store.Consume("rest-1", 10)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Provider != "square" {
		t.Errorf("Expected provider square, got '%s'", events[0].Provider)
	}

	// fetched means delivered; a second consume finds nothing
	events, err = store.Consume("rest-1", 10)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected consumed events to be gone, got %d", len(events))
	}
}

func TestStore_ConsumeIsScopedToRestaurant(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append(testEvent("evt-1", "rest-1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(testEvent("evt-2", "rest-2")); err != nil {
		t.Fatal(err)
	}

	events, err := store.Consume("rest-1", 10)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if len(events) != 1 || events[0].RestaurantID != "rest-1" {
		t.Errorf("Expected only rest-1 events, got %+v", events)
	}

	remaining, err := store.Peek("rest-2", 10)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("Expected rest-2 event to remain, got %d", len(remaining))
	}
}

func TestStore_PeekDoesNotDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append(testEvent("evt-1", "rest-1")); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		events, err := store.Peek("rest-1", 10)
		if err != nil {
			t.Fatalf("Peek failed: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("Peek %d: expected 1 event, got %d", i, len(events))
		}
	}
}

func TestStore_ConsumeRespectsLimit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		event := testEvent(string(rune('a'+i)), "rest-1")
		event.ReceivedAt = time.Now().Add(time.Duration(i) * time.Millisecond)
		if err := store.Append(event); err != nil {
			t.Fatal(err)
		}
	}

	events, err := store.Consume("rest-1", 3)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("Expected 3 events, got %d", len(events))
	}

	events, err = store.Consume("rest-1", 10)
	if err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Expected 2 remaining events, got %d", len(events))
	}
}

func TestStore_DrainAll(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append(testEvent("evt-1", "rest-1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(testEvent("evt-2", "rest-2")); err != nil {
		t.Fatal(err)
	}

	drained, err := store.DrainAll()
	if err != nil {
		t.Fatalf("DrainAll failed: %v", err)
	}
	if len(drained) != 2 {
		t.Errorf("Expected 2 drained events, got %d", len(drained))
	}

	remaining, err := store.Peek("rest-1", 10)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected empty inbox after drain, got %d", len(remaining))
	}
}
