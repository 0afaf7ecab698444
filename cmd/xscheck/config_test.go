package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingDefaultFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(cwd) }()

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Files)
}

func TestLoadConfigParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xscheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
includeDirs:
  - vendor/xs
ignores:
  - DupCase
files:
  - main.xs
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/xs"}, cfg.IncludeDirs)
	assert.Equal(t, []string{"DupCase"}, cfg.Ignores)
	assert.Equal(t, []string{"main.xs"}, cfg.Files)
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xscheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
notARealField: true
`), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingExplicitPathIsAnError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
