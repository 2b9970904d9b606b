package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps a stray config.yaml in the package dir from leaking in.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.Equal(t, BackendBadger, cfg.Cache.Backend)
	assert.Equal(t, 30*24*time.Hour, cfg.Cache.TTL)
	assert.InDelta(t, 0.40, cfg.Engine.Weights.Genre, 1e-9)
	assert.True(t, cfg.Engine.Parallel)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("CACHE_TTL", "48h")
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("ENGINE_PARALLEL", "false")
	t.Setenv("ENGINE_WEIGHT_GENRE", "0.5")
	t.Setenv("ENGINE_WEIGHT_DISCOVERY", "0.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 48*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, SourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Engine.Parallel)
	assert.InDelta(t, 0.5, cfg.Engine.Weights.Genre, 1e-9)
	assert.InDelta(t, 0.0, cfg.Engine.Weights.Discovery, 1e-9)
}

func TestLoadFileThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 7070
cache:
  backend: redis
engine:
  reason_threshold: 0.1
`), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "7171")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7171, cfg.Port)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.InDelta(t, 0.1, cfg.Engine.ReasonThreshold, 1e-9)
	assert.InDelta(t, 0.30, cfg.Engine.Weights.Director, 1e-9)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad backend", "CACHE_BACKEND", "memcached"},
		{"bad source", "CATALOG_SOURCE", "s3"},
		{"bad port", "PORT", "70000"},
		{"weights off", "ENGINE_WEIGHT_GENRE", "0.9"},
		{"zero ttl", "CACHE_TTL", "0s"},
		{"bad format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnvTransformIgnoresUnknown(t *testing.T) {
	assert.Equal(t, "cache.ttl", envTransformFunc("CACHE_TTL"))
	assert.Equal(t, "engine.weights.era", envTransformFunc("ENGINE_WEIGHT_ERA"))
	assert.Empty(t, envTransformFunc("HOME"))
}
