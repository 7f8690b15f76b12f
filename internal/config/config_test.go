package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: "localhost:8082"
backend:
  base_url: "http://backend.local"
address_cache:
  path: "storage/cache.db"
`)
	// Some shells export ENV; pin it so the file value is what we read.
	t.Setenv("ENV", "dev")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:8082", cfg.Addr)
	assert.Equal(t, "http://backend.local", cfg.Backend.BaseURL)
	assert.Empty(t, cfg.ViaCEP.BaseURL)
	assert.Equal(t, "storage/cache.db", cfg.AddressCache.Path)

	// Defaults.
	assert.Equal(t, "userId", cfg.Session.CookieName)
	assert.Equal(t, 2592000, cfg.Session.MaxAge)
	assert.False(t, cfg.Session.Secure)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: "localhost:8082"
`)
	t.Setenv("ENV", "prod")
	t.Setenv("BACKEND_BASE_URL", "https://api.example")
	t.Setenv("SESSION_SECURE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "https://api.example", cfg.Backend.BaseURL)
	assert.True(t, cfg.Session.Secure)
}

func TestLoadMissingRequired(t *testing.T) {
	path := writeConfig(t, "env: dev\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}
