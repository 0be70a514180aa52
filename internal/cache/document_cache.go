package cache

import (
	"context"
	"time"

	"docverify/internal/config"
	"docverify/internal/domain"
	"docverify/internal/port"
)

// DocumentCache maps (fingerprint, kind) to a previously extracted record.
type DocumentCache struct {
	tier
	ttl time.Duration
}

// NewDocumentCache creates a DocumentCache over store using the configured TTL.
func NewDocumentCache(store port.CacheStore, cfg config.CacheConfig) *DocumentCache {
	return &DocumentCache{
		tier: tier{store: store, enabled: cfg.Enabled, now: time.Now},
		ttl:  cfg.TTL,
	}
}

// WithClock replaces the time source used for expiry decisions.
func (c *DocumentCache) WithClock(now func() time.Time) *DocumentCache {
	c.now = now
	return c
}

// TTL returns the configured time-to-live for new entries.
func (c *DocumentCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached record for key. Absent and expired entries are misses.
func (c *DocumentCache) Get(ctx context.Context, key domain.DocumentCacheKey) (*domain.ShippingRecord, bool, error) {
	var entry domain.DocumentCacheEntry
	item, err := c.get(ctx, key.String(), &entry)
	if err != nil || item == nil {
		return nil, false, err
	}
	if entry.Key != key || domain.Expired(entry.CreatedAt, entry.TTL, c.now()) {
		return nil, false, nil
	}
	return &entry.Record, true, nil
}

// Put overwrites the entry for key and resets its creation time to now.
func (c *DocumentCache) Put(ctx context.Context, key domain.DocumentCacheKey, record domain.ShippingRecord, ttl time.Duration) error {
	now := c.now()
	entry := domain.DocumentCacheEntry{
		Key:       key,
		Record:    record,
		CreatedAt: now,
		TTL:       ttl,
	}
	return c.put(ctx, key.String(), entry, now, ttl)
}

// Delete removes the entry for key. Deleting an absent key is not an error.
func (c *DocumentCache) Delete(ctx context.Context, key domain.DocumentCacheKey) error {
	return c.delete(ctx, key.String())
}
