package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestTTLCacheExpiry(t *testing.T) {
	c := New(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("a", "x")

	// masih hidup tepat sebelum TTL habis
	c.now = func() time.Time { return base.Add(59 * time.Second) }
	_, ok := c.Get("a")
	assert.True(t, ok)

	// lewat TTL → hilang
	c.now = func() time.Time { return base.Add(61 * time.Second) }
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTTLCacheInvalidate(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Invalidate()
	assert.Equal(t, 0, c.Len())
}
