// Package cache implements the two cache tiers (extracted documents and
// finished workflow reports) over a shared port.CacheStore.
//
// Expiry is lazy: an entry whose TTL has elapsed is reported as a miss on
// read whether or not the store still holds it. A disabled tier misses on
// every read and ignores writes and deletes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"docverify/internal/domain"
	"docverify/internal/port"
)

// tier is the shared plumbing of both caches: JSON entries in one store.
type tier struct {
	store   port.CacheStore
	enabled bool
	now     func() time.Time
}

// get decodes the value at key into out. A nil item with a nil error is a miss.
func (t *tier) get(ctx context.Context, key string, out any) (*port.StoreItem, error) {
	if !t.enabled {
		return nil, nil
	}
	item, err := t.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, &domain.CacheUnavailableError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal(item.Value, out); err != nil {
		return nil, &domain.CacheUnavailableError{Op: "decode", Key: key, Err: err}
	}
	return item, nil
}

func (t *tier) put(ctx context.Context, key string, value any, createdAt time.Time, ttl time.Duration) error {
	if !t.enabled {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return &domain.CacheUnavailableError{Op: "encode", Key: key, Err: err}
	}
	item := port.StoreItem{
		Key:        key,
		Value:      data,
		CreatedAt:  createdAt,
		AccessedAt: createdAt,
	}
	if ttl > 0 {
		exp := createdAt.Add(ttl)
		item.ExpiresAt = &exp
	}
	if err := t.store.Put(ctx, item); err != nil {
		return &domain.CacheUnavailableError{Op: "put", Key: key, Err: err}
	}
	return nil
}

func (t *tier) delete(ctx context.Context, key string) error {
	if !t.enabled {
		return nil
	}
	if err := t.store.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return &domain.CacheUnavailableError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (t *tier) touch(ctx context.Context, key string) error {
	if !t.enabled {
		return nil
	}
	if err := t.store.Touch(ctx, key, t.now()); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return &domain.CacheUnavailableError{Op: "touch", Key: key, Err: err}
	}
	return nil
}
