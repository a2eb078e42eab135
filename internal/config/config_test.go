package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9090"
export_dir: /var/exports
default_chunk_size: 2500
debug: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "/var/exports", cfg.ExportDir)
	assert.Equal(t, 2500, cfg.DefaultChunkSize)
	assert.True(t, cfg.Debug)
	// Untouched keys keep their defaults
	assert.Equal(t, "export.db", cfg.DBPath)
	assert.Equal(t, 100, cfg.PreviewLimit)
}

func TestLoadClampsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
preview_limit: 5000
default_chunk_size: -1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.PreviewLimit)
	assert.Equal(t, 10000, cfg.DefaultChunkSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
