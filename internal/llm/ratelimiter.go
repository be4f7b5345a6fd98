package llm

import (
	"context"
	"sync"
	"time"
)

// pollInterval is how often a blocked caller re-checks the bucket.
const pollInterval = 100 * time.Millisecond

// RateLimitedProvider caps completion throughput at a fixed number of
// requests per minute using a token bucket. Configured through the
// rate_limit_rpm setting; safe for concurrent use.
type RateLimitedProvider struct {
	inner Provider
	rpm   int

	mu         sync.Mutex
	available  int
	lastRefill time.Time
}

// NewRateLimitedProvider wraps inner so that at most rpm Complete calls
// per minute reach it. The bucket starts full.
func NewRateLimitedProvider(inner Provider, rpm int) Provider {
	return &RateLimitedProvider{
		inner:      inner,
		rpm:        rpm,
		available:  rpm,
		lastRefill: time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string { return r.inner.Name() }

// Complete blocks until a request token is available or ctx is done.
func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	for !r.take() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return r.inner.Complete(ctx, req)
}

// take refills the bucket proportionally to the time elapsed since the last
// refill, then claims one token if any are available.
func (r *RateLimitedProvider) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	earned := int(now.Sub(r.lastRefill).Seconds() * float64(r.rpm) / 60.0)
	if earned > 0 {
		r.available += earned
		if r.available > r.rpm {
			r.available = r.rpm
		}
		r.lastRefill = now
	}

	if r.available == 0 {
		return false
	}
	r.available--
	return true
}
