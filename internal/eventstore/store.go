// Package eventstore is a store-and-forward inbox for raw vendor webhook
// events. Events are journaled per restaurant and handed to the
// back-office on a "fetched = delivered" model: a consuming read deletes
// what it returns.
package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Single TTL constant for all events (business rule)
const eventTTL = 72 * time.Hour

// Event is one raw vendor webhook payload awaiting delivery.
type Event struct {
	ID           string                 `json:"id"`
	RestaurantID string                 `json:"restaurant_id"`
	Provider     string                 `json:"provider"`
	Payload      map[string]interface{} `json:"payload"`
	ReceivedAt   time.Time              `json:"received_at"`
}

// Store manages the badger-backed event inbox.
type Store struct {
	db      *badger.DB
	maxSize int64
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.SugaredLogger
}

func New(dir string, maxSizeGB int, logger *zap.SugaredLogger) (*Store, error) {
	maxSize := int64(maxSizeGB) * 1024 * 1024 * 1024

	if err := cleanupStaleLock(dir, logger); err != nil {
		logger.Warnw("failed to cleanup potential stale lock", "error", err)
	}

	opts := badger.DefaultOptions(dir).
		WithValueLogFileSize(1 << 20).
		WithMemTableSize(32 << 20).
		WithNumMemtables(3).
		WithNumCompactors(4).
		WithSyncWrites(false).
		WithBlockCacheSize(64 << 20).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	store := &Store{
		db:      db,
		maxSize: maxSize,
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
	}

	go store.maintenanceWorker()

	return store, nil
}

// Append journals one event for future delivery.
func (s *Store) Append(event Event) error {
	// Restaurant-prefixed key for fast per-restaurant iteration.
	// Format: "pending_<restaurantID>_<timestamp>_<id>"
	key := fmt.Sprintf("pending_%s_%d_%s", event.RestaurantID, event.ReceivedAt.UnixNano(), event.ID)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}

	s.logger.Debugw("event journaled", "event_id", event.ID, "restaurant_id", event.RestaurantID)
	return nil
}

// Consume returns up to limit pending events for a restaurant and deletes
// them in the same transaction.
func (s *Store) Consume(restaurantID string, limit int) ([]Event, error) {
	var events []Event
	var keysToDelete [][]byte

	err := s.db.Update(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.PrefetchValues = false
		it := txn.NewIterator(itOpts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("pending_%s_", restaurantID))
		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			item := it.Item()
			var data []byte
			err := item.Value(func(val []byte) error {
				data = append([]byte{}, val...)
				return nil
			})
			if err != nil {
				return err
			}

			var event Event
			if err := json.Unmarshal(data, &event); err != nil {
				continue
			}

			events = append(events, event)
			keysToDelete = append(keysToDelete, item.KeyCopy(nil))
		}

		for _, key := range keysToDelete {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(events) > 0 {
		s.logger.Debugw("events delivered", "count", len(events), "restaurant_id", restaurantID)
	}

	return events, nil
}

// Peek returns pending events WITHOUT deleting them, so monitoring reads
// can't drain the inbox.
func (s *Store) Peek(restaurantID string, limit int) ([]Event, error) {
	var events []Event

	err := s.db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		itOpts.PrefetchValues = false
		it := txn.NewIterator(itOpts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("pending_%s_", restaurantID))
		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			item := it.Item()
			var data []byte
			err := item.Value(func(val []byte) error {
				data = append([]byte{}, val...)
				return nil
			})
			if err != nil {
				return err
			}

			var event Event
			if err := json.Unmarshal(data, &event); err != nil {
				continue
			}

			events = append(events, event)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// DrainAll clears every pending event across all restaurants and returns
// what was cleared. Intended for testing/QA resets.
func (s *Store) DrainAll() ([]Event, error) {
	var events []Event

	err := s.db.View(func(txn *badger.Txn) error {
		itOpts := badger.DefaultIteratorOptions
		it := txn.NewIterator(itOpts)
		defer it.Close()

		prefix := []byte("pending_")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var data []byte
			err := item.Value(func(val []byte) error {
				data = append([]byte{}, val...)
				return nil
			})
			if err != nil {
				return err
			}

			var event Event
			if err := json.Unmarshal(data, &event); err != nil {
				continue
			}

			events = append(events, event)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.DropPrefix([]byte("pending_")); err != nil {
		return nil, err
	}

	if len(events) > 0 {
		s.logger.Infow("drained all pending events", "count", len(events))
	}

	return events, nil
}

func (s *Store) maintenanceWorker() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runMaintenance()
		}
	}
}

func (s *Store) runMaintenance() {
	s.cleanupByAge()
	s.cleanupBySize()

	if err := s.db.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
		s.logger.Errorw("event store value log GC failed", "error", err)
	}
}

func (s *Store) cleanupByAge() {
	now := time.Now()
	var keysToDelete [][]byte

	if err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("pending_")); it.ValidForPrefix([]byte("pending_")); it.Next() {
			var event Event
			if it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &event) }) == nil {
				if now.Sub(event.ReceivedAt) > eventTTL {
					keysToDelete = append(keysToDelete, it.Item().KeyCopy(nil))
				}
			}
		}
		return nil
	}); err != nil {
		s.logger.Errorw("age cleanup scan failed", "error", err)
		return
	}

	if len(keysToDelete) > 0 {
		if err := s.db.Update(func(txn *badger.Txn) error {
			for _, key := range keysToDelete {
				if err := txn.Delete(key); err != nil {
					s.logger.Errorw("failed to delete key", "error", err)
				}
			}
			return nil
		}); err != nil {
			s.logger.Errorw("age cleanup delete failed", "error", err)
		} else {
			s.logger.Infow("cleaned up expired events", "count", len(keysToDelete), "ttl", eventTTL)
		}
	}
}

func (s *Store) cleanupBySize() {
	currentSize := s.getApproximateSize()

	if currentSize > s.maxSize*70/100 && currentSize < s.maxSize*80/100 {
		s.logger.Warnw("event store at 70% capacity",
			"current_mb", currentSize/1024/1024, "max_mb", s.maxSize/1024/1024)
	}

	if currentSize < s.maxSize*80/100 {
		return
	}

	s.logger.Errorw("event store at 80% capacity, starting cleanup",
		"current_mb", currentSize/1024/1024, "max_mb", s.maxSize/1024/1024)
	targetSize := s.maxSize * 60 / 100
	var keysToDelete [][]byte

	// oldest first; key order is already per-restaurant chronological
	if err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("pending_")); it.ValidForPrefix([]byte("pending_")); it.Next() {
			if s.getApproximateSize() <= targetSize {
				break
			}
			keysToDelete = append(keysToDelete, it.Item().KeyCopy(nil))
		}
		return nil
	}); err != nil {
		s.logger.Errorw("size cleanup scan failed", "error", err)
		return
	}

	if len(keysToDelete) > 0 {
		if err := s.db.Update(func(txn *badger.Txn) error {
			for _, key := range keysToDelete {
				if err := txn.Delete(key); err != nil {
					s.logger.Errorw("failed to delete key", "error", err)
				}
			}
			return nil
		}); err != nil {
			s.logger.Errorw("size cleanup delete failed", "error", err)
		} else {
			s.logger.Infow("size cleanup deleted oldest events", "count", len(keysToDelete))
		}
	}
}

func (s *Store) getApproximateSize() int64 {
	lsm, vlog := s.db.Size()
	return lsm + vlog
}

func (s *Store) Close() error {
	s.cancel()
	return s.db.Close()
}

// cleanupStaleLock attempts to remove stale badger lock files left by an
// ungraceful shutdown. Safe in containers: orchestration guarantees one
// instance per volume, and Open() would fail anyway if another process
// held the directory.
func cleanupStaleLock(dir string, logger *zap.SugaredLogger) error {
	lockFile := filepath.Join(dir, "LOCK")

	if _, err := os.Stat(lockFile); os.IsNotExist(err) {
		return nil
	}

	logger.Infow("found potential stale lock file, attempting cleanup", "path", lockFile)

	if err := os.Remove(lockFile); err != nil {
		return fmt.Errorf("failed to remove stale lock file: %w", err)
	}

	logger.Infow("removed stale lock file", "path", lockFile)
	return nil
}
