package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/notewerk/blocktree/pkg/cache"
)

// Config holds settings loaded from the TOML config file. Flags
// override config values, which override the built-in defaults.
type Config struct {
	// Cache selects the render cache backend: "file", "redis", or "none".
	Cache string `toml:"cache"`

	// RedisAddr is the Redis address when Cache is "redis".
	RedisAddr string `toml:"redis_addr"`

	Serve ServeConfig `toml:"serve"`
}

// ServeConfig holds preview server settings.
type ServeConfig struct {
	Addr            string `toml:"addr"`
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDB         string `toml:"mongo_db"`
	MongoCollection string `toml:"mongo_collection"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Cache:     "file",
		RedisAddr: "localhost:6379",
		Serve: ServeConfig{
			Addr:            ":8080",
			Dir:             ".",
			MongoDB:         "blocktree",
			MongoCollection: "documents",
		},
	}
}

// DefaultConfigPath returns the XDG config file location
// (~/.config/blocktree/config.toml).
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, applying defaults for any
// unset field. A missing file is not an error; the defaults are
// returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache {
	case "file", "redis", "none":
		return nil
	default:
		return fmt.Errorf("invalid cache backend: %q (must be 'file', 'redis', or 'none')", c.Cache)
	}
}

// newConfiguredCache builds the cache backend the config selects.
func newConfiguredCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	switch cfg.Cache {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}
