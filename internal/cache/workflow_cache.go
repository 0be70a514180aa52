package cache

import (
	"context"
	"time"

	"docverify/internal/config"
	"docverify/internal/domain"
	"docverify/internal/port"
)

// WorkflowCache maps a workflow fingerprint to a finished report and the
// document keys the report was built from.
type WorkflowCache struct {
	tier
	ttl time.Duration
}

// NewWorkflowCache creates a WorkflowCache over store using the configured TTL.
func NewWorkflowCache(store port.CacheStore, cfg config.CacheConfig) *WorkflowCache {
	return &WorkflowCache{
		tier: tier{store: store, enabled: cfg.Enabled, now: time.Now},
		ttl:  cfg.TTL,
	}
}

// WithClock replaces the time source used for expiry decisions.
func (c *WorkflowCache) WithClock(now func() time.Time) *WorkflowCache {
	c.now = now
	return c
}

// TTL returns the configured time-to-live for new entries.
func (c *WorkflowCache) TTL() time.Duration {
	return c.ttl
}

// Lookup returns the full entry for wf, including its constituent document keys.
func (c *WorkflowCache) Lookup(ctx context.Context, wf domain.WorkflowFingerprint) (*domain.WorkflowCacheEntry, bool, error) {
	var entry domain.WorkflowCacheEntry
	item, err := c.get(ctx, wf.StoreKey(), &entry)
	if err != nil || item == nil {
		return nil, false, err
	}
	if entry.Workflow != wf || domain.Expired(entry.CreatedAt, entry.TTL, c.now()) {
		return nil, false, nil
	}
	if item.AccessedAt.After(entry.LastAccess) {
		entry.LastAccess = item.AccessedAt
	}
	return &entry, true, nil
}

// Get returns the cached report for wf. Absent and expired entries are misses.
func (c *WorkflowCache) Get(ctx context.Context, wf domain.WorkflowFingerprint) (*domain.Report, bool, error) {
	entry, found, err := c.Lookup(ctx, wf)
	if err != nil || !found {
		return nil, false, err
	}
	return &entry.Report, true, nil
}

// Put overwrites the entry for wf and resets its creation time to now.
func (c *WorkflowCache) Put(ctx context.Context, wf domain.WorkflowFingerprint, report domain.Report, docs []domain.DocumentCacheKey, ttl time.Duration) error {
	now := c.now()
	entry := domain.WorkflowCacheEntry{
		Workflow:   wf,
		Report:     report,
		Documents:  docs,
		CreatedAt:  now,
		TTL:        ttl,
		LastAccess: now,
	}
	return c.put(ctx, wf.StoreKey(), entry, now, ttl)
}

// Delete removes the entry for wf. Deleting an absent key is not an error.
func (c *WorkflowCache) Delete(ctx context.Context, wf domain.WorkflowFingerprint) error {
	return c.delete(ctx, wf.StoreKey())
}

// MarkAccessed records a cache hit on wf without rewriting the entry.
func (c *WorkflowCache) MarkAccessed(ctx context.Context, wf domain.WorkflowFingerprint) error {
	return c.touch(ctx, wf.StoreKey())
}
