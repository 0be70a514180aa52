package port

import (
	"context"
	"time"
)

// StoreItem is one raw value held by a CacheStore.
type StoreItem struct {
	Key        string     `db:"cache_key" json:"key"`
	Value      []byte     `db:"value" json:"value"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"` // nil never expires
	AccessedAt time.Time  `db:"accessed_at" json:"accessed_at"`
}

// CacheStore is the shared key-value store behind both cache tiers.
// Each Put and Delete is atomic; Get returns domain.ErrNotFound for absent keys.
// Expiry is decided by the caller on read; DeleteExpired only reclaims space.
type CacheStore interface {
	Get(ctx context.Context, key string) (*StoreItem, error)
	Put(ctx context.Context, item StoreItem) error
	Delete(ctx context.Context, key string) error
	Touch(ctx context.Context, key string, at time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
	Ping(ctx context.Context) error
}
