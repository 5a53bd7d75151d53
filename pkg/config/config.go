// Package config loads orgchart settings from a TOML file and ORGCHART_*
// environment variables. Environment values override the file, and command
// flags override both.
//
//	[server]
//	addr = ":8080"
//
//	[directory]
//	kind = "http"
//	url = "https://hr.example.com/api"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[layout]
//	viewport_width = 1440
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/directory"
	"github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

type Config struct {
	Server    ServerConfig     `toml:"server"`
	Directory directory.Config `toml:"directory"`
	Cache     CacheConfig      `toml:"cache"`
	Layout    LayoutConfig     `toml:"layout"`
}

type ServerConfig struct {
	Addr         string        `toml:"addr"`          // ORGCHART_ADDR (default ":8080")
	ReadTimeout  time.Duration `toml:"read_timeout"`  // default 10s
	WriteTimeout time.Duration `toml:"write_timeout"` // default 30s
}

type CacheConfig struct {
	Backend  string `toml:"backend"`   // ORGCHART_CACHE_BACKEND: file, redis or none
	Dir      string `toml:"dir"`       // ORGCHART_CACHE_DIR (default ~/.cache/orgchart)
	RedisURL string `toml:"redis_url"` // ORGCHART_REDIS_URL
	Prefix   string `toml:"prefix"`    // key prefix for shared backends
}

type LayoutConfig struct {
	Profile        string        `toml:"profile"`         // ORGCHART_PROFILE forces a tier
	ViewportWidth  float64       `toml:"viewport_width"`  // ORGCHART_VIEWPORT_WIDTH
	ViewportHeight float64       `toml:"viewport_height"` // ORGCHART_VIEWPORT_HEIGHT
	Debounce       time.Duration `toml:"debounce"`        // ORGCHART_DEBOUNCE
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Directory: directory.Config{
			Kind:    directory.KindFile,
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Prefix:  "orgchart:",
		},
		Layout: LayoutConfig{
			ViewportWidth:  responsive.DefaultViewportWidth,
			ViewportHeight: responsive.DefaultViewportWidth * 9 / 16,
			Debounce:       responsive.DefaultDebounce,
		},
	}
}

// DefaultPath returns ~/.config/orgchart/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "orgchart", "config.toml")
}

// Load reads path (or the default path when it exists), then applies
// environment overrides and validates the result. An explicit path that
// does not exist is an error; a missing default file is not.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
			}
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes TOML text over the defaults without reading the environment.
func Parse(text string) (*Config, error) {
	c := Default()
	if _, err := toml.Decode(text, c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.Server.Addr = envOrDefault("ORGCHART_ADDR", c.Server.Addr)
	c.Directory.Kind = envOrDefault("ORGCHART_DIRECTORY_KIND", c.Directory.Kind)
	c.Directory.Path = envOrDefault("ORGCHART_DIRECTORY_PATH", c.Directory.Path)
	c.Directory.URL = envOrDefault("ORGCHART_DIRECTORY_URL", c.Directory.URL)
	c.Directory.Token = envOrDefault("ORGCHART_DIRECTORY_TOKEN", c.Directory.Token)
	c.Directory.MongoURI = envOrDefault("ORGCHART_MONGO_URI", c.Directory.MongoURI)
	c.Cache.Backend = envOrDefault("ORGCHART_CACHE_BACKEND", c.Cache.Backend)
	c.Cache.Dir = envOrDefault("ORGCHART_CACHE_DIR", c.Cache.Dir)
	c.Cache.RedisURL = envOrDefault("ORGCHART_REDIS_URL", c.Cache.RedisURL)
	c.Layout.Profile = envOrDefault("ORGCHART_PROFILE", c.Layout.Profile)

	if v := os.Getenv("ORGCHART_VIEWPORT_WIDTH"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ORGCHART_VIEWPORT_WIDTH: %w", err)
		}
		c.Layout.ViewportWidth = w
	}
	if v := os.Getenv("ORGCHART_VIEWPORT_HEIGHT"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("ORGCHART_VIEWPORT_HEIGHT: %w", err)
		}
		c.Layout.ViewportHeight = h
	}
	if v := os.Getenv("ORGCHART_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ORGCHART_DEBOUNCE: %w", err)
		}
		c.Layout.Debounce = d
	}
	return nil
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Layout.Profile != "" {
		if _, ok := responsive.ByName(c.Layout.Profile); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown profile %q", c.Layout.Profile)
		}
	}
	if err := responsive.ValidateWidth(c.Layout.ViewportWidth); err != nil {
		return err
	}
	if c.Layout.Debounce < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "debounce must not be negative")
	}
	return nil
}

// ResolveProfile returns the forced profile, or the one resolved from the
// configured viewport width.
func (c LayoutConfig) ResolveProfile() responsive.Profile {
	if p, ok := responsive.ByName(c.Profile); ok {
		return p
	}
	return responsive.Resolve(c.ViewportWidth)
}

// Screen returns the configured viewport size.
func (c LayoutConfig) Screen() responsive.Size {
	return responsive.Size{Width: c.ViewportWidth, Height: c.ViewportHeight}
}

// Open returns the configured cache backend.
func (c CacheConfig) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.DialRedis(ctx, c.RedisURL, c.Prefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect redis")
		}
		return rc, nil
	default:
		dir := c.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
