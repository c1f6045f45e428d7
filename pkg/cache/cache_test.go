package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New()
	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiredEntryIsDroppedOnRead(t *testing.T) {
	c := New()
	c.Set("k", "v", -time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "lazy expiry removes the entry")
}

func TestOverwriteResetsTTL(t *testing.T) {
	c := New()
	c.Set("k", "old", -time.Second)
	c.Set("k", "new", time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestInvalidate(t *testing.T) {
	c := New()
	c.Set("k", 1, time.Minute)
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)

	// Invalidating an absent key is a no-op.
	c.Invalidate("missing")
}

func TestInvalidatePrefix(t *testing.T) {
	c := New()
	c.Set("gen-ctx:a:newsletter", 1, time.Minute)
	c.Set("gen-ctx:a:offer", 2, time.Minute)
	c.Set("gen-ctx:b:newsletter", 3, time.Minute)
	c.Set("company:a", 4, time.Minute)

	c.InvalidatePrefix("gen-ctx:a:")

	_, ok := c.Get("gen-ctx:a:newsletter")
	assert.False(t, ok)
	_, ok = c.Get("gen-ctx:a:offer")
	assert.False(t, ok)
	_, ok = c.Get("gen-ctx:b:newsletter")
	assert.True(t, ok)
	_, ok = c.Get("company:a")
	assert.True(t, ok)
}

func TestJanitorSweepsExpiredEntries(t *testing.T) {
	c := New()
	c.Set("stale", 1, time.Millisecond)
	c.Set("fresh", 2, time.Minute)

	stop := c.StartJanitor(5 * time.Millisecond)
	defer stop()

	require.Eventually(t, func() bool {
		return c.Len() == 1
	}, time.Second, 5*time.Millisecond)

	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestJanitorStopIsIdempotent(t *testing.T) {
	c := New()
	stop := c.StartJanitor(time.Millisecond)
	stop()
	stop()
}
