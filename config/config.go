// Package config loads subcipher settings from YAML and SUBCIPHER_* env vars.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/unkn0wn-root/subcipher/method"
)

// Config is the root configuration of an engine owner.
type Config struct {
	// Policy: global or scoped
	Policy string `mapstructure:"policy"`
	// DefaultMethod optional method bound before any Select
	DefaultMethod string `mapstructure:"default_method"`
	// PersistTimeout bounds each write-through of a selection
	PersistTimeout time.Duration `mapstructure:"persist_timeout"`

	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

// StoreConfig selects where the chosen method is persisted.
type StoreConfig struct {
	// Kind: none, local, redis, redis-record, sqlite, bigcache, ristretto
	Kind      string `mapstructure:"kind"`
	Namespace string `mapstructure:"namespace"`
	// Codec for record kinds (redis-record, bigcache, ristretto): json, msgpack, cbor, protobuf
	Codec  string       `mapstructure:"codec"`
	Redis  RedisConfig  `mapstructure:"redis"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: stdout, stderr, or file paths
	Outputs     []string       `mapstructure:"outputs"`
	Rotation    RotationConfig `mapstructure:"rotation"`
	Development bool           `mapstructure:"development"`
}

// RotationConfig controls rotation for file outputs.
type RotationConfig struct {
	Enable     bool `mapstructure:"enable"`
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Policy:         "global",
		PersistTimeout: 2 * time.Second,
		Store: StoreConfig{
			Kind:      "none",
			Namespace: "default",
			Codec:     "json",
			Redis:     RedisConfig{Addr: "127.0.0.1:6379"},
			SQLite:    SQLiteConfig{Path: "subcipher.db"},
		},
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
	}
}

// Load reads configuration from path (if non-empty) and applies environment
// overrides. Env vars use the prefix SUBCIPHER with `.` replaced by `_`.
// Example: SUBCIPHER_STORE_KIND=sqlite
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SUBCIPHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed defaults so env-only configs work
	v.SetDefault("policy", cfg.Policy)
	v.SetDefault("default_method", cfg.DefaultMethod)
	v.SetDefault("persist_timeout", cfg.PersistTimeout)
	v.SetDefault("store.kind", cfg.Store.Kind)
	v.SetDefault("store.namespace", cfg.Store.Namespace)
	v.SetDefault("store.codec", cfg.Store.Codec)
	v.SetDefault("store.redis.addr", cfg.Store.Redis.Addr)
	v.SetDefault("store.redis.password", cfg.Store.Redis.Password)
	v.SetDefault("store.redis.db", cfg.Store.Redis.DB)
	v.SetDefault("store.sqlite.path", cfg.Store.SQLite.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("subcipher")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerations and the default method name.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Policy) {
	case "global", "scoped":
	default:
		return fmt.Errorf("config: policy must be global or scoped, got %q", c.Policy)
	}
	if strings.TrimSpace(c.DefaultMethod) != "" {
		if _, err := method.Parse(c.DefaultMethod); err != nil {
			return fmt.Errorf("config: default_method: %w", err)
		}
	}
	switch strings.ToLower(c.Store.Kind) {
	case "", "none", "local", "bigcache", "ristretto":
	case "redis", "redis-record":
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("config: store.redis.addr is required for kind %s", c.Store.Kind)
		}
	case "sqlite":
		if c.Store.SQLite.Path == "" {
			return errors.New("config: store.sqlite.path is required for kind sqlite")
		}
	default:
		return fmt.Errorf("config: unknown store.kind %q", c.Store.Kind)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: log.format must be console or json, got %q", c.Log.Format)
	}
	if c.PersistTimeout < 0 {
		return fmt.Errorf("config: persist_timeout must be >= 0, got %s", c.PersistTimeout)
	}
	return nil
}
