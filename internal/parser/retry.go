package parser

import (
	"context"
	"errors"
	"log"
	"time"

	"docverify/internal/port"
)

// RetryExtractor retries transient provider failures. Rate-limit errors are
// returned immediately so a FallbackExtractor can open its circuit.
type RetryExtractor struct {
	next       port.DocumentExtractor
	name       string
	maxRetries int
	backoff    time.Duration
}

// NewRetryExtractor wraps next with up to maxRetries additional attempts.
func NewRetryExtractor(next port.DocumentExtractor, name string, maxRetries int) *RetryExtractor {
	return &RetryExtractor{next: next, name: name, maxRetries: maxRetries, backoff: 2 * time.Second}
}

// WithBackoff sets the delay before the first retry; it doubles on each attempt.
func (r *RetryExtractor) WithBackoff(d time.Duration) *RetryExtractor {
	r.backoff = d
	return r
}

func (r *RetryExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	delay := r.backoff
	for attempt := 0; ; attempt++ {
		out, err := r.next.Extract(ctx, input)
		if err == nil {
			return out, nil
		}

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) || attempt >= r.maxRetries || ctx.Err() != nil {
			return nil, err
		}

		log.Printf("parser.RetryExtractor: %s attempt %d for %s failed, retrying in %s: %v",
			r.name, attempt+1, input.Kind, delay, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
