package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/diag"
)

func TestSplitIgnoresHandlesCommaAndWhitespace(t *testing.T) {
	got := splitIgnores([]string{"DupCase NumDownCast", "FirstOprArith,NoNumPromo"})
	assert.ElementsMatch(t, []string{"DupCase", "NumDownCast", "FirstOprArith", "NoNumPromo"}, got)
}

func TestCheckOneReportsUndefinedName(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.xs")
	require.NoError(t, os.WriteFile(target, []byte(`
void run() {
	health = 1;
}
`), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	failed, err := checkOne(cmd, target, nil, nil, nil, &options{}, false)
	require.NoError(t, err)
	assert.True(t, failed)
	assert.Contains(t, out.String(), "undefined name")
}

func TestCheckOneWithIgnoresSuppressesNamedWarning(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.xs")
	require.NoError(t, os.WriteFile(target, []byte(`string greeting = "hi";`), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	ignoreCodes := map[diag.WarningKind]bool{diag.TopStrInit: true}
	failed, err := checkOne(cmd, target, nil, nil, ignoreCodes, &options{}, false)
	require.NoError(t, err)
	assert.False(t, failed)
	assert.Contains(t, out.String(), "ignored")
}

func TestCheckOneReturnsErrorForMissingFile(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	_, err := checkOne(cmd, filepath.Join(t.TempDir(), "missing.xs"), nil, nil, nil, &options{}, false)
	assert.Error(t, err)
}

func TestOverrideListPrefersCliWhenGiven(t *testing.T) {
	assert.Equal(t, []string{"cli1", "cli2"}, overrideList([]string{"cfg1"}, []string{"cli1", "cli2"}))
}

func TestOverrideListFallsBackToConfigWhenCliEmpty(t *testing.T) {
	assert.Equal(t, []string{"cfg1"}, overrideList([]string{"cfg1"}, nil))
}

func TestCheckOnePersistsAndReusesCacheFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.xs")
	require.NoError(t, os.WriteFile(target, []byte(`
void run() {
	health = 1;
}
`), 0o644))
	cachePath := filepath.Join(dir, "xscheck.cache")

	cmd := newRootCmd()
	var out1 bytes.Buffer
	cmd.SetOut(&out1)
	opts := &options{cacheFile: cachePath}
	failed, err := checkOne(cmd, target, nil, nil, nil, opts, false)
	require.NoError(t, err)
	assert.True(t, failed)

	var out2 bytes.Buffer
	cmd.SetOut(&out2)
	failed, err = checkOne(cmd, target, nil, nil, nil, opts, false)
	require.NoError(t, err)
	assert.True(t, failed)
	assert.Equal(t, out1.String(), out2.String(), "second run replays the cached diagnostics identically")
}
