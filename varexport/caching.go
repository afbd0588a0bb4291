package varexport

import (
	"io"
	"strconv"
	"sync"
	"time"
)

// CachingVariable serves a stored value until its ttl has elapsed since the
// last computation.
type CachingVariable struct {
	inner Variable
	ttl   time.Duration

	mu       sync.Mutex
	clock    func() time.Time
	value    any
	updated  time.Time
	computed bool
}

func newCachingVariable(inner Variable, ttl time.Duration, clock func() time.Time) *CachingVariable {
	if clock == nil {
		clock = time.Now
	}
	return &CachingVariable{inner: inner, ttl: ttl, clock: clock}
}

// SetClock replaces the time source. A nil clock restores time.Now.
func (c *CachingVariable) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	c.mu.Lock()
	c.clock = clock
	c.mu.Unlock()
}

func (c *CachingVariable) TTL() time.Duration { return c.ttl }

// LastUpdate is the time of the last computation, zero before the first.
func (c *CachingVariable) LastUpdate() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updated
}

func (c *CachingVariable) Name() string { return c.inner.Name() }
func (c *CachingVariable) Doc() string  { return c.inner.Doc() }

// Value recomputes once now - last update >= ttl. The lock is not held while
// the inner value is computed, so concurrent readers of a stale value may
// each recompute it.
func (c *CachingVariable) Value() any {
	c.mu.Lock()
	clock := c.clock
	if c.computed && clock().Sub(c.updated) < c.ttl {
		v := c.value
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := c.inner.Value()
	now := clock()

	c.mu.Lock()
	c.value, c.updated, c.computed = v, now, true
	c.mu.Unlock()
	return v
}

func (c *CachingVariable) WriteValue(w io.Writer) error { return writeValue(w, c) }
func (c *CachingVariable) String() string               { return formatVariable(c) }

func (c *CachingVariable) live() bool { return c.inner.live() }

func (c *CachingVariable) docText() string {
	var millis int64
	if updated := c.LastUpdate(); !updated.IsZero() {
		millis = updated.UnixMilli()
	}
	return c.inner.Doc() + " (last update: " + strconv.FormatInt(millis, 10) + ")"
}

func (c *CachingVariable) expansion(name string) ([]Variable, bool) {
	return c.inner.expansion(name)
}
