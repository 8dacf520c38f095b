package cache

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTL_GetSet(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 42)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestTTL_Expiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewWithClock(5*time.Minute, clock)

	c.Set("a", "fresh")

	clock.Advance(4 * time.Minute)
	_, ok := c.Get("a")
	assert.True(t, ok)

	clock.Advance(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)

	// The expired entry is dropped on access.
	assert.Equal(t, 0, c.Len())
}

func TestTTL_SetRefreshesExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewWithClock(5*time.Minute, clock)

	c.Set("a", 1)
	clock.Advance(4 * time.Minute)
	c.Set("a", 2)
	clock.Advance(4 * time.Minute)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestTTL_Invalidate(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	require.Equal(t, 2, c.Len())

	c.Invalidate()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
