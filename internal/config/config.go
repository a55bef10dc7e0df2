// Package config loads deep settings from defaults, an optional YAML file and DEEP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/custodia-labs/deep-core/internal/core/domain"
)

// EnvPrefix is prepended to every environment override, e.g. DEEP_SERVER_PORT
const EnvPrefix = "DEEP"

// Storage backends
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Provider selections
const (
	ProviderStub       = "stub"
	ProviderFilesystem = "filesystem"
	ProviderAll        = "all"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Search  SearchConfig  `mapstructure:"search"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	FilePath    string `mapstructure:"file_path"`
	RedisURL    string `mapstructure:"redis_url"`
	DatabaseURL string `mapstructure:"database_url"`
}

type SearchConfig struct {
	Provider      string        `mapstructure:"provider"`
	Debounce      time.Duration `mapstructure:"debounce"`
	StubLatency   time.Duration `mapstructure:"stub_latency"`
	MaxResults    int           `mapstructure:"max_results"`
	MaxDepth      int           `mapstructure:"max_depth"`
	DetailEnabled bool          `mapstructure:"detail_enabled"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Disabled  bool          `mapstructure:"disabled"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration into v. An explicit path must exist; otherwise
// config.yaml is looked up in the working directory and ~/.deep and may be absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".deep"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults registers every key so environment overrides reach Unmarshal
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.file_path", defaultStorePath())
	v.SetDefault("storage.redis_url", "redis://localhost:6379/0")
	v.SetDefault("storage.database_url", "")

	v.SetDefault("search.provider", ProviderStub)
	v.SetDefault("search.debounce", time.Duration(0))
	v.SetDefault("search.stub_latency", 50*time.Millisecond)
	v.SetDefault("search.max_results", 50)
	v.SetDefault("search.max_depth", 8)
	v.SetDefault("search.detail_enabled", true)

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 7345)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.disabled", false)
	v.SetDefault("auth.token_ttl", 30*24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks enumerated values and ranges
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("%w: storage.backend %q", domain.ErrInvalidInput, c.Storage.Backend)
	}
	if c.Storage.Backend == BackendPostgres && c.Storage.DatabaseURL == "" {
		return fmt.Errorf("%w: storage.database_url is required for postgres", domain.ErrInvalidInput)
	}

	switch c.Search.Provider {
	case ProviderStub, ProviderFilesystem, ProviderAll:
	default:
		return fmt.Errorf("%w: search.provider %q", domain.ErrInvalidInput, c.Search.Provider)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("%w: search.debounce must not be negative", domain.ErrInvalidInput)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", domain.ErrInvalidInput, c.Server.Port)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", domain.ErrInvalidInput, c.Log.Format)
	}
	return nil
}

// RequireAuthSecret reports an error when the control API would run with
// auth enabled but nothing to sign tokens with
func (c *Config) RequireAuthSecret() error {
	if !c.Auth.Disabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required unless auth.disabled is set", domain.ErrInvalidInput)
	}
	return nil
}

// Addr returns host:port for the HTTP listener
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// SlogLevel maps log.level to a slog.Level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func defaultStorePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "deep", "prefs.json")
	}
	return filepath.Join(".deep", "prefs.json")
}
