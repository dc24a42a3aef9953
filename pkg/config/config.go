// Package config loads bracket settings from a TOML file, a .env file and
// BRACKET_* environment variables, in that order of increasing precedence.
// Command-line flags are applied last by the CLI.
//
// A config file looks like:
//
//	[layout]
//	width = 1800
//	match_gap = 70
//
//	[render]
//	style = "simple"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["https://brackets.example.com"]
package config

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/bracket/pkg/cache"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/pipeline"
	"github.com/matzehuels/bracket/pkg/server"
	"github.com/matzehuels/bracket/pkg/store"
)

const appName = "bracket"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full set of file/env configurable settings.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig mirrors the layout options of pipeline.Options.
type LayoutConfig struct {
	Width          float64  `toml:"width"`
	MatchGap       float64  `toml:"match_gap"`
	MinGapFraction *float64 `toml:"min_gap_fraction"`
	TopOffset      *float64 `toml:"top_offset"`
	Padding        float64  `toml:"padding"`
}

// RenderConfig mirrors the render options of pipeline.Options.
type RenderConfig struct {
	VizType    string   `toml:"viz_type"`
	Style      string   `toml:"style"`
	Formats    []string `toml:"formats"`
	Background string   `toml:"background"`
	Scale      float64  `toml:"scale"`
}

// StoreConfig selects the tournament store.
type StoreConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig selects the layout/artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"` // namespaces keys on a shared backend
}

// ServerConfig configures `bracket serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	CORSOrigins  []string      `toml:"cors_origins"`
	RateLimit    float64       `toml:"rate_limit"` // requests per second per client
	RateBurst    int           `toml:"rate_burst"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxViews     int           `toml:"max_views"` // renders held for last-good fallback
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Width:     pipeline.DefaultWidth,
			MatchGap:  pipeline.DefaultMatchGap,
			TopOffset: pipeline.Float(pipeline.DefaultTopOffset),
		},
		Render: RenderConfig{
			VizType: pipeline.DefaultVizType,
			Style:   pipeline.DefaultStyle,
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Store: StoreConfig{
			Backend:         store.BackendFile,
			MongoDatabase:   store.DefaultMongoDatabase,
			MongoCollection: store.DefaultMongoCollection,
		},
		Cache: CacheConfig{Backend: CacheFile},
		Server: ServerConfig{
			Addr:         ":8080",
			CORSOrigins:  []string{"*"},
			RateLimit:    10,
			RateBurst:    20,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxViews:     server.DefaultMaxViews,
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path, then
// a .env file in the working directory, then the environment.
//
// An empty path means [DefaultPath]; a missing default file is not an error,
// but a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			if explicit || !errors.Is(err, errors.ErrCodeFileNotFound) {
				return Config{}, err
			}
		}
	}

	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile merges the TOML file at path into c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", f)
		}
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/bracket/config.toml, falling back to
// ~/.config/bracket/config.toml. It returns "" when no home is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// CacheDir returns the cache directory using XDG standard (~/.cache/bracket/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Conversions
// =============================================================================

// PipelineOptions converts the layout and render sections.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		VizType:        c.Render.VizType,
		Width:          c.Layout.Width,
		MatchGap:       c.Layout.MatchGap,
		MinGapFraction: c.Layout.MinGapFraction,
		TopOffset:      c.Layout.TopOffset,
		Padding:        c.Layout.Padding,
		Formats:        append([]string(nil), c.Render.Formats...),
		Style:          c.Render.Style,
		Background:     c.Render.Background,
		Scale:          c.Render.Scale,
	}
}

// StoreConfig converts the store section.
func (c Config) StoreConfig(logger *log.Logger) store.Config {
	return store.Config{
		Backend: c.Store.Backend,
		Dir:     c.Store.Dir,
		Mongo: store.MongoConfig{
			URI:        c.Store.MongoURI,
			Database:   c.Store.MongoDatabase,
			Collection: c.Store.MongoCollection,
		},
		Logger: logger,
	}
}

// Keyer returns the cache keyer, scoped by Cache.Prefix when set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}

// OpenCache opens the configured cache backend. A file cache without a
// directory uses [CacheDir].
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", CacheFile:
		dir := c.Cache.Dir
		if dir == "" {
			d, err := CacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	case CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		})
	case CacheNone:
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
}
