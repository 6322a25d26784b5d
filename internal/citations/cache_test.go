// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache", "citations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachePutGet(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "2301.07041", time.Hour)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, c.Put(ctx, "2301.07041", 42))
	count, ok := c.Get(ctx, "2301.07041", time.Hour)
	require.True(t, ok)
	assert.Equal(t, 42, count)
}

func TestCacheUpsert(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "2301.07041", 1))
	require.NoError(t, c.Put(ctx, "2301.07041", 2))

	count, ok := c.Get(ctx, "2301.07041", time.Hour)
	require.True(t, ok)
	assert.Equal(t, 2, count)
}

func TestCacheTTLExpiry(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "2301.07041", 42))
	time.Sleep(10 * time.Millisecond)

	_, ok := c.Get(ctx, "2301.07041", time.Millisecond)
	assert.False(t, ok, "entry older than TTL should miss")

	_, ok = c.Get(ctx, "2301.07041", time.Hour)
	assert.True(t, ok, "entry younger than TTL should hit")
}
