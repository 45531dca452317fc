package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "depot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "sqlite3", c.Database.Driver)
	assert.Equal(t, "depot.db", c.Database.DSN)
	assert.Equal(t, 2*time.Hour, c.Session.TTL)
	assert.Equal(t, 16, c.Cache.Size)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
database:
  driver: pgx
  dsn: postgres://depot@localhost/depot
session:
  ttl: 30m
cache:
  size: 4
log:
  level: debug
  color: true
`)
	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "pgx", c.Database.Driver)
	assert.Equal(t, "postgres://depot@localhost/depot", c.Database.DSN)
	assert.Equal(t, 30*time.Minute, c.Session.TTL)
	assert.Equal(t, 4, c.Cache.Size)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.True(t, c.Log.Color)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadFile_Invalid(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "addr: [unterminated"))
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "addr: \":9000\"\nlog:\n  level: debug\n")
	t.Setenv("DEPOT_ADDR", "")
	t.Setenv("PORT", "7070")
	t.Setenv("DEPOT_LOG_LEVEL", "warn")
	t.Setenv("DEPOT_SESSION_TTL", "15m")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", c.Addr)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, 15*time.Minute, c.Session.TTL)
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("DEPOT_SESSION_TTL", "soon")
	_, err := Load("")
	require.Error(t, err)
}

func TestCache_Disabled(t *testing.T) {
	c, err := LoadFile(writeConfig(t, "cache:\n  disabled: true\n"))
	require.NoError(t, err)
	assert.True(t, c.Cache.Disabled)
	assert.Equal(t, 0, c.Cache.Capacity())

	assert.Equal(t, 16, Default().Cache.Capacity())
}

func TestLoad_CacheDisabledFromEnv(t *testing.T) {
	t.Setenv("DEPOT_CACHE_DISABLED", "true")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Cache.Capacity())
}
