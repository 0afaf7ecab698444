package xsenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIsStableAndContentSensitive(t *testing.T) {
	a := Hash("int x = 1;")
	b := Hash("int x = 1;")
	c := Hash("int x = 2;")

	assert.True(t, HashEqual(a, b))
	assert.False(t, HashEqual(a, c))
}

func TestAstCachePopRemovesEntry(t *testing.T) {
	c := NewAstCache()
	c.Store("a.xs", Hash("src"), AstInfo{})

	entry, ok := c.Pop("a.xs")
	require.True(t, ok)
	assert.True(t, HashEqual(entry.Hash, Hash("src")))

	_, ok = c.Pop("a.xs")
	assert.False(t, ok)
}

func TestAstCacheInProgressLifecycle(t *testing.T) {
	c := NewAstCache()
	assert.False(t, c.InProgress("a.xs"))

	c.MarkInProgress("a.xs")
	assert.True(t, c.InProgress("a.xs"))

	c.Store("a.xs", Hash("src"), AstInfo{})
	assert.False(t, c.InProgress("a.xs"), "Store clears the in-progress flag")
}

func TestSrcCacheRoundTrip(t *testing.T) {
	c := NewSrcCache()
	_, ok := c.Get("a.xs")
	assert.False(t, ok)

	c.Set("a.xs", "int x;")
	got, ok := c.Get("a.xs")
	require.True(t, ok)
	assert.Equal(t, "int x;", got)
}
