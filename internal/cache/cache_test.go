package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c := New(true)
	etag := c.Set("k", []byte(`{"a":1}`), time.Minute)
	require.NotEmpty(t, etag)

	data, gotTag, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), data)
	assert.Equal(t, etag, gotTag)

	_, _, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	c := New(true)
	c.Set("k", []byte("v"), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, _, ok := c.Get("k")
	assert.False(t, ok)

	c.evict()
	stats := c.Stats()
	assert.Equal(t, 0, stats["total_keys"])
}

func TestCache_DisabledIsNoOp(t *testing.T) {
	t.Parallel()

	c := New(false)
	etag := c.Set("k", []byte("v"), time.Minute)
	// Disabled caches still hand back a usable ETag for the response.
	assert.NotEmpty(t, etag)

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	c := New(true)
	c.Set("leaderboard:2025", []byte("a"), time.Minute)
	c.Set("squad", []byte("b"), time.Minute)

	c.Invalidate()

	_, _, ok := c.Get("leaderboard:2025")
	assert.False(t, ok)
	_, _, ok = c.Get("squad")
	assert.False(t, ok)
}

func TestComputeETag_Deterministic(t *testing.T) {
	t.Parallel()

	a := ComputeETag([]byte("same"))
	b := ComputeETag([]byte("same"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ComputeETag([]byte("different")))
	assert.True(t, len(a) > 4 && a[:3] == `W/"`)
}

func TestCheckETagMatch(t *testing.T) {
	t.Parallel()

	etag := ComputeETag([]byte("x"))
	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
