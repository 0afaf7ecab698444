package xsenv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/span"
)

func TestLoadPersistedCacheMissingFileReturnsEmptyCache(t *testing.T) {
	c, err := LoadPersistedCache(filepath.Join(t.TempDir(), "does-not-exist.cache"))
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
}

func TestPersistedCacheSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xscheck.cache")
	hash := Hash("int x = 1;")
	diags := []diag.Diagnostic{diag.NewUndefinedName(span.Zero, "y")}

	c, err := LoadPersistedCache(path)
	require.NoError(t, err)
	c.Store("a.xs", hash, diags)
	require.NoError(t, c.Save(path))

	reloaded, err := LoadPersistedCache(path)
	require.NoError(t, err)

	got, ok := reloaded.Lookup("a.xs", hash)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "UndefinedName", got[0].Kind)
}

func TestPersistedCacheLookupMissesOnHashChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xscheck.cache")
	c, err := LoadPersistedCache(path)
	require.NoError(t, err)
	c.Store("a.xs", Hash("int x = 1;"), nil)

	_, ok := c.Lookup("a.xs", Hash("int x = 2;"))
	assert.False(t, ok)
}
