package prefetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives the cache deterministically.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewCache(ttl)
	c.now = clock.now
	return c, clock
}

func TestShouldPrefetchWindow(t *testing.T) {
	c, clock := newFakeCache(0)

	assert.True(t, c.ShouldPrefetch("cart"), "first access always prefetches")
	c.MarkPrefetched("cart")

	assert.False(t, c.ShouldPrefetch("cart"))
	clock.advance(29 * time.Second)
	assert.False(t, c.ShouldPrefetch("cart"), "still inside the 30s window")

	clock.advance(1*time.Second + time.Millisecond)
	assert.True(t, c.ShouldPrefetch("cart"), "window elapsed")
}

func TestEvictionIsLazy(t *testing.T) {
	c, clock := newFakeCache(0)
	c.MarkPrefetched("a")
	clock.advance(time.Minute)

	// The expired entry is evicted by the read itself.
	assert.True(t, c.ShouldPrefetch("a"))
	c.mu.Lock()
	_, present := c.entries["a"]
	c.mu.Unlock()
	assert.False(t, present)
}

func TestMarkRefreshesEntry(t *testing.T) {
	c, clock := newFakeCache(0)
	c.MarkPrefetched("k")
	clock.advance(25 * time.Second)
	c.MarkPrefetched("k")
	clock.advance(25 * time.Second)
	assert.False(t, c.ShouldPrefetch("k"), "refresh restarts the window")
}

func TestKeysAreIndependent(t *testing.T) {
	c, _ := newFakeCache(0)
	c.MarkPrefetched("a")
	assert.False(t, c.ShouldPrefetch("a"))
	assert.True(t, c.ShouldPrefetch("b"))
}

func TestClear(t *testing.T) {
	c, _ := newFakeCache(0)
	c.MarkPrefetched("a")
	c.Clear()
	assert.True(t, c.ShouldPrefetch("a"))
}
