package parsecache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(file)
	require.NoError(t, err)
	defer c.Close()

	const src = "(set-logic QF_BV)"

	_, ok, err := c.Get(ctx, src)
	require.NoError(t, err)
	assert.False(t, ok)

	elements := []any{"set-logic", "QF_BV"}
	require.NoError(t, c.Put(ctx, src, elements))

	got, ok, err := c.Get(ctx, src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, elements, got)
}

func Test_Cache_KeyIsContentAddressed(t *testing.T) {
	assert.Equal(t, Key("abc"), Key("abc"))
	assert.NotEqual(t, Key("abc"), Key("abd"))
}

func Test_Cache_PutOverwritesExistingEntry(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "cache.db")

	c, err := Open(file)
	require.NoError(t, err)
	defer c.Close()

	const src = "(check-sat)"
	require.NoError(t, c.Put(ctx, src, []any{"check-sat"}))
	require.NoError(t, c.Put(ctx, src, []any{"check-sat", "extra"}))

	got, ok, err := c.Get(ctx, src)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []any{"check-sat", "extra"}, got)
}
