package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"docverify/internal/domain"
	"docverify/internal/port"
)

type cacheStoreRepo struct {
	db *sqlx.DB
}

// NewCacheStoreRepo creates a new PostgreSQL-backed CacheStore.
func NewCacheStoreRepo(db *sqlx.DB) port.CacheStore {
	return &cacheStoreRepo{db: db}
}

func (r *cacheStoreRepo) Get(ctx context.Context, key string) (*port.StoreItem, error) {
	var item port.StoreItem
	err := r.db.GetContext(ctx, &item,
		`SELECT cache_key, value, created_at, expires_at, accessed_at
		 FROM cache_entries WHERE cache_key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("cacheStoreRepo.Get: %w", err)
	}
	return &item, nil
}

func (r *cacheStoreRepo) Put(ctx context.Context, item port.StoreItem) error {
	query := `INSERT INTO cache_entries (cache_key, value, created_at, expires_at, accessed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cache_key) DO UPDATE SET
			value = EXCLUDED.value,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at,
			accessed_at = EXCLUDED.accessed_at`

	_, err := r.db.ExecContext(ctx, query,
		item.Key, item.Value, item.CreatedAt, item.ExpiresAt, item.AccessedAt)
	if err != nil {
		return fmt.Errorf("cacheStoreRepo.Put: %w", err)
	}
	return nil
}

func (r *cacheStoreRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE cache_key = $1", key)
	if err != nil {
		return fmt.Errorf("cacheStoreRepo.Delete: %w", err)
	}
	return nil
}

func (r *cacheStoreRepo) Touch(ctx context.Context, key string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cache_entries SET accessed_at = $1 WHERE cache_key = $2", at, key)
	if err != nil {
		return fmt.Errorf("cacheStoreRepo.Touch: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *cacheStoreRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= $1", now)
	if err != nil {
		return 0, fmt.Errorf("cacheStoreRepo.DeleteExpired: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *cacheStoreRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
