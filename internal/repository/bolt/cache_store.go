// Package bolt provides a CacheStore persisted to a local BoltDB file.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"docverify/internal/domain"
	"docverify/internal/port"
)

// bucketName is the BoltDB bucket holding cache items.
const bucketName = "cache"

// CacheStore is a BoltDB-backed port.CacheStore. Every write runs in its own
// bolt transaction, so Put, Delete and Touch are atomic.
type CacheStore struct {
	db *bbolt.DB
}

// Open opens (or creates) the BoltDB file at path.
func Open(path string) (*CacheStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating cache bucket: %w", err)
	}

	return &CacheStore{db: db}, nil
}

// Close closes the cache database.
func (s *CacheStore) Close() error {
	return s.db.Close()
}

func (s *CacheStore) Get(_ context.Context, key string) (*port.StoreItem, error) {
	var item port.StoreItem
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &item)
	})
	if err != nil {
		return nil, fmt.Errorf("boltCacheStore.Get: %w", err)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (s *CacheStore) Put(_ context.Context, item port.StoreItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("boltCacheStore.Put: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(item.Key), data)
	})
	if err != nil {
		return fmt.Errorf("boltCacheStore.Put: %w", err)
	}
	return nil
}

func (s *CacheStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("boltCacheStore.Delete: %w", err)
	}
	return nil
}

func (s *CacheStore) Touch(_ context.Context, key string, at time.Time) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		data := b.Get([]byte(key))
		if data == nil {
			return domain.ErrNotFound
		}
		var item port.StoreItem
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		item.AccessedAt = at
		updated, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), updated)
	})
	if err != nil {
		return fmt.Errorf("boltCacheStore.Touch: %w", err)
	}
	return nil
}

func (s *CacheStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	removed := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var item port.StoreItem
			if err := json.Unmarshal(v, &item); err != nil {
				// Unreadable items can never be served; reclaim them too.
				stale = append(stale, append([]byte(nil), k...))
				return nil
			}
			if item.ExpiresAt != nil && !now.Before(*item.ExpiresAt) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("boltCacheStore.DeleteExpired: %w", err)
	}
	return removed, nil
}

func (s *CacheStore) Ping(_ context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(bucketName)) == nil {
			return fmt.Errorf("bucket %q missing", bucketName)
		}
		return nil
	})
}
