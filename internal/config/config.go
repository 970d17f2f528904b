// Package config loads gridpack settings.
//
// Settings come from three layers, later layers winning:
//  1. built-in defaults
//  2. ~/.config/gridpack/config.toml (or an explicit path)
//  3. GRIDPACK_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	apperrors "github.com/matzehuels/gridpack/pkg/errors"
	"github.com/matzehuels/gridpack/pkg/grid"
)

// EnvPrefix is prepended to every environment variable, e.g. GRIDPACK_ADDR.
const EnvPrefix = "GRIDPACK"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
)

// Config holds all runtime settings.
type Config struct {
	BoxSize     float64 `toml:"box_size" envconfig:"BOX_SIZE"`
	Unplaceable string  `toml:"unplaceable" envconfig:"UNPLACEABLE"`

	Cache     string `toml:"cache" envconfig:"CACHE"`
	CacheDir  string `toml:"cache_dir" envconfig:"CACHE_DIR"`
	RedisAddr string `toml:"redis_addr" envconfig:"REDIS_ADDR"`

	Store    string `toml:"store" envconfig:"STORE"`
	BoardDir string `toml:"board_dir" envconfig:"BOARD_DIR"`
	MongoURI string `toml:"mongo_uri" envconfig:"MONGO_URI"`

	Addr string `toml:"addr" envconfig:"ADDR"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BoxSize:     50,
		Unplaceable: grid.PolicyDrop.String(),
		Cache:       CacheFile,
		RedisAddr:   "localhost:6379",
		Store:       StoreFile,
		Addr:        ":8080",
	}
}

// DefaultPath returns ~/.config/gridpack/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "gridpack", "config.toml"), nil
}

// Load reads the config file at path and applies environment overrides.
// An empty path selects [DefaultPath], which may be absent; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := cfg.loadFile(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, os.ErrNotExist) {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.BoxSize <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "box_size must be positive, got %v", c.BoxSize)
	}
	if _, err := grid.ParsePolicy(c.Unplaceable); err != nil {
		return err
	}
	switch c.Cache {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "cache must be file, redis or none, got %q", c.Cache)
	}
	if c.Cache == CacheRedis && c.RedisAddr == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "redis_addr is required for the redis cache")
	}
	switch c.Store {
	case StoreFile:
	case StoreMongo:
		if c.MongoURI == "" {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "mongo_uri is required for the mongo store")
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "store must be file or mongo, got %q", c.Store)
	}
	return nil
}

// Policy returns the parsed unplaceable-widget policy.
func (c *Config) Policy() grid.Policy {
	p, _ := grid.ParsePolicy(c.Unplaceable)
	return p
}
