package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a refreshed value is served before the next refresh.
const DefaultTTL = 5 * time.Second

// RefreshFunc produces a fresh value on a miss.
type RefreshFunc[T any] func(ctx context.Context) (T, error)

// TTL holds one value and the time it was stored. Refreshes run outside the
// lock, so concurrent misses each refresh and the last one to finish is kept.
// Failed refreshes leave the previous entry untouched.
type TTL[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	value    T
	storedAt time.Time
	valid    bool
}

// Option configures a TTL cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock injects the clock used to age entries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// New constructs an empty cache. A non-positive ttl means DefaultTTL.
func New[T any](ttl time.Duration, opts ...Option) *TTL[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTL[T]{ttl: ttl, now: o.now}
}

// Get returns the cached value while it is younger than the ttl. Otherwise
// it calls refresh, stores a successful result with a new timestamp and
// returns it. The bool reports whether the value came from the cache.
func (c *TTL[T]) Get(ctx context.Context, refresh RefreshFunc[T]) (T, bool, error) {
	c.mu.Lock()
	if c.freshLocked() {
		v := c.value
		c.mu.Unlock()
		return v, true, nil
	}
	c.mu.Unlock()

	v, err := refresh(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	c.mu.Lock()
	c.value = v
	c.storedAt = c.now()
	c.valid = true
	c.mu.Unlock()
	return v, false, nil
}

// Invalidate forces the next Get to refresh.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.storedAt = time.Time{}
	c.valid = false
}

func (c *TTL[T]) freshLocked() bool {
	return c.valid && c.now().Sub(c.storedAt) < c.ttl
}
