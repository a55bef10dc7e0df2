package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

func loadIn(t *testing.T, path string) (*Config, error) {
	t.Helper()
	// Keep the lookup away from any config.yaml next to the test binary
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	return Load(viper.New(), path)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadIn(t, "")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.FilePath)
	assert.Equal(t, ProviderStub, cfg.Search.Provider)
	assert.Equal(t, 50*time.Millisecond, cfg.Search.StubLatency)
	assert.Equal(t, time.Duration(0), cfg.Search.Debounce)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.True(t, cfg.Search.DetailEnabled)
	assert.Equal(t, "127.0.0.1:7345", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.False(t, cfg.Auth.Disabled)
	assert.ErrorIs(t, cfg.RequireAuthSecret(), domain.ErrInvalidInput)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEEP_SEARCH_PROVIDER", "filesystem")
	t.Setenv("DEEP_SEARCH_DEBOUNCE", "120ms")
	t.Setenv("DEEP_SERVER_PORT", "9000")
	t.Setenv("DEEP_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("DEEP_LOG_LEVEL", "debug")
	t.Setenv("DEEP_SEARCH_DETAIL_ENABLED", "false")

	cfg, err := loadIn(t, "")
	require.NoError(t, err)

	assert.Equal(t, ProviderFilesystem, cfg.Search.Provider)
	assert.Equal(t, 120*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.False(t, cfg.Search.DetailEnabled)
	assert.NoError(t, cfg.RequireAuthSecret())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: redis
  redis_url: redis://cache:6379/1
search:
  provider: all
  max_results: 20
auth:
  disabled: true
log:
  format: json
`), 0o644))

	cfg, err := loadIn(t, path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://cache:6379/1", cfg.Storage.RedisURL)
	assert.Equal(t, ProviderAll, cfg.Search.Provider)
	assert.Equal(t, 20, cfg.Search.MaxResults)
	assert.True(t, cfg.Auth.Disabled)
	assert.NoError(t, cfg.RequireAuthSecret())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := loadIn(t, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"backend", map[string]string{"DEEP_STORAGE_BACKEND": "sqlite"}},
		{"postgres without url", map[string]string{"DEEP_STORAGE_BACKEND": "postgres"}},
		{"provider", map[string]string{"DEEP_SEARCH_PROVIDER": "spotlight"}},
		{"port", map[string]string{"DEEP_SERVER_PORT": "70000"}},
		{"log format", map[string]string{"DEEP_LOG_FORMAT": "xml"}},
		{"negative debounce", map[string]string{"DEEP_SEARCH_DEBOUNCE": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadIn(t, "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSlogLevel_Unknown(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "chatty"}}
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
