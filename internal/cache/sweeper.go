package cache

import (
	"context"
	"log"
	"time"

	"docverify/internal/port"
)

// Sweeper periodically removes expired items from a CacheStore. Reads never
// depend on it: expired entries already miss.
type Sweeper struct {
	store    port.CacheStore
	interval time.Duration
	now      func() time.Time
}

// NewSweeper creates a Sweeper running every interval.
func NewSweeper(store port.CacheStore, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval, now: time.Now}
}

// Start runs the sweep loop until ctx is canceled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("cacheSweeper: started (interval=%s)", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("cacheSweeper: shutdown complete")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce deletes every item expired at the current time.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	removed, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("cacheSweeper: DeleteExpired error: %v", err)
		}
		return 0
	}
	if removed > 0 {
		log.Printf("cacheSweeper: removed %d expired entries", removed)
	}
	return removed
}
