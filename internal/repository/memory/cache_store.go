// Package memory provides an in-process CacheStore for single-instance
// deployments and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"docverify/internal/domain"
	"docverify/internal/port"
)

type cacheStore struct {
	mu    sync.RWMutex
	items map[string]port.StoreItem
}

// NewCacheStore creates an empty in-memory CacheStore.
func NewCacheStore() port.CacheStore {
	return &cacheStore{items: make(map[string]port.StoreItem)}
}

func (s *cacheStore) Get(_ context.Context, key string) (*port.StoreItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneItem(item), nil
}

func (s *cacheStore) Put(_ context.Context, item port.StoreItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.Key] = *cloneItem(item)
	return nil
}

func (s *cacheStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *cacheStore) Touch(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[key]
	if !ok {
		return domain.ErrNotFound
	}
	item.AccessedAt = at
	s.items[key] = item
	return nil
}

func (s *cacheStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, item := range s.items {
		if item.ExpiresAt != nil && !now.Before(*item.ExpiresAt) {
			delete(s.items, key)
			removed++
		}
	}
	return removed, nil
}

func (s *cacheStore) Ping(_ context.Context) error {
	return nil
}

func cloneItem(item port.StoreItem) *port.StoreItem {
	out := item
	out.Value = append([]byte(nil), item.Value...)
	if item.ExpiresAt != nil {
		exp := *item.ExpiresAt
		out.ExpiresAt = &exp
	}
	return &out
}
