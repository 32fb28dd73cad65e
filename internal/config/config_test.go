package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lattice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", noEnv)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, ".lattice/snapshots", cfg.Store.Dir)
	assert.Equal(t, 30*time.Second, cfg.Store.Redis.LockTTL)
	assert.Equal(t, time.Duration(0), cfg.Store.Redis.TTL)
	assert.Equal(t, 6, cfg.Conway.Cycles)
	assert.Equal(t, 3, cfg.Conway.Dimensions)
	assert.Equal(t, 100, cfg.Cups.Moves)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  format: json
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 1h
conway:
  dimensions: 4
`)
	cfg, err := load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "untouched keys keep their defaults")
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "lattice:", cfg.Store.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	assert.Equal(t, 4, cfg.Conway.Dimensions)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "cups:\n  moves: 10\n")
	cfg, err := load(path, envOf(map[string]string{
		"LATTICE_CUPS_MOVES":     "250",
		"LATTICE_STORE_REDIS_DB": "2",
		"LATTICE_LOG_LEVEL":      "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Cups.Moves)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "log: [", "failed to parse"},
		{"unknown key", "colour: red\n", "failed to decode"},
		{"bad backend", "store:\n  backend: s3\n", "unknown store backend"},
		{"bad dimensions", "conway:\n  dimensions: 7\n", "dimensions 7"},
		{"bad level", "log:\n  level: loud\n", "invalid log level"},
		{"negative moves", "cups:\n  moves: -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(writeConfig(t, tt.body), noEnv)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"), noEnv)
	assert.ErrorContains(t, err, "failed to read config")
}
