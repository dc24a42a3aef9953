package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/bracket/pkg/cache"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/pipeline"
	"github.com/matzehuels/bracket/pkg/server"
	"github.com/matzehuels/bracket/pkg/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Layout.Width != pipeline.DefaultWidth || c.Layout.MatchGap != pipeline.DefaultMatchGap {
		t.Errorf("layout defaults = %+v", c.Layout)
	}
	if c.Store.Backend != store.BackendFile || c.Cache.Backend != CacheFile {
		t.Errorf("backend defaults = %s/%s", c.Store.Backend, c.Cache.Backend)
	}
	if c.Server.MaxViews != server.DefaultMaxViews {
		t.Errorf("MaxViews = %d, want %d", c.Server.MaxViews, server.DefaultMaxViews)
	}
	if c.Layout.TopOffset == nil || *c.Layout.TopOffset != pipeline.DefaultTopOffset {
		t.Errorf("TopOffset = %v, want %v", c.Layout.TopOffset, pipeline.DefaultTopOffset)
	}
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("default config yields invalid pipeline options: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "config.toml", `
[layout]
width = 1800
min_gap_fraction = 0.0
top_offset = 0.0

[render]
style = "simple"
formats = ["svg", "json"]

[store]
backend = "mongo"
mongo_uri = "mongodb://db:27017"

[server]
read_timeout = "5s"
max_views = 10
`)
	c := Default()
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if c.Layout.Width != 1800 {
		t.Errorf("Width = %v, want 1800", c.Layout.Width)
	}
	if c.Layout.MatchGap != pipeline.DefaultMatchGap {
		t.Errorf("MatchGap = %v, absent key should keep the default", c.Layout.MatchGap)
	}
	if c.Layout.MinGapFraction == nil || *c.Layout.MinGapFraction != 0 {
		t.Errorf("MinGapFraction = %v, want explicit 0", c.Layout.MinGapFraction)
	}
	if c.Layout.TopOffset == nil || *c.Layout.TopOffset != 0 {
		t.Errorf("TopOffset = %v, want explicit 0", c.Layout.TopOffset)
	}
	if got := c.PipelineOptions().TopOffset; got == nil || *got != 0 {
		t.Errorf("PipelineOptions().TopOffset = %v, want explicit 0", got)
	}
	if c.Render.Style != "simple" || len(c.Render.Formats) != 2 {
		t.Errorf("render = %+v", c.Render)
	}
	if c.Store.Backend != "mongo" || c.Store.MongoURI != "mongodb://db:27017" {
		t.Errorf("store = %+v", c.Store)
	}
	if c.Server.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", c.Server.ReadTimeout)
	}
	if c.Server.MaxViews != 10 {
		t.Errorf("MaxViews = %d, want 10", c.Server.MaxViews)
	}
}

func TestLoadFileErrors(t *testing.T) {
	c := Default()
	err := c.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: error = %v, want FILE_NOT_FOUND", err)
	}

	err = c.LoadFile(writeFile(t, "bad.toml", "[layout\nwidth = "))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad syntax: error = %v, want INVALID_INPUT", err)
	}

	err = c.LoadFile(writeFile(t, "typo.toml", "[layout]\nwdith = 10\n"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown key: error = %v, want INVALID_INPUT", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"BRACKET_WIDTH":            "1200",
		"BRACKET_MIN_GAP_FRACTION": "0.5",
		"BRACKET_FORMATS":          "svg, png ,",
		"BRACKET_STORE_BACKEND":    "memory",
		"BRACKET_REDIS_DB":         "3",
		"BRACKET_WRITE_TIMEOUT":    "2m",
		"BRACKET_STYLE":            "   ",
		"BRACKET_TOP_OFFSET":       "0",
		"BRACKET_MAX_VIEWS":        "16",
	}
	c := Default()
	if err := c.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}

	if c.Layout.Width != 1200 {
		t.Errorf("Width = %v", c.Layout.Width)
	}
	if c.Layout.MinGapFraction == nil || *c.Layout.MinGapFraction != 0.5 {
		t.Errorf("MinGapFraction = %v", c.Layout.MinGapFraction)
	}
	if len(c.Render.Formats) != 2 || c.Render.Formats[1] != "png" {
		t.Errorf("Formats = %q", c.Render.Formats)
	}
	if c.Render.Style != pipeline.DefaultStyle {
		t.Errorf("blank variable should be ignored, Style = %q", c.Render.Style)
	}
	if c.Layout.TopOffset == nil || *c.Layout.TopOffset != 0 {
		t.Errorf("TopOffset = %v, want explicit 0", c.Layout.TopOffset)
	}
	if c.Server.MaxViews != 16 {
		t.Errorf("MaxViews = %d, want 16", c.Server.MaxViews)
	}
	if c.Store.Backend != "memory" || c.Cache.RedisDB != 3 || c.Server.WriteTimeout != 2*time.Minute {
		t.Errorf("store/cache/server = %+v %+v %+v", c.Store, c.Cache, c.Server)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(func(k string) string {
		if k == "BRACKET_MATCH_GAP" {
			return "wide"
		}
		return ""
	})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ApplyEnv() error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "bracket"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bracket", "config.toml"), []byte("[layout]\nwidth = 1000\nmatch_gap = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BRACKET_WIDTH", "1500")
	t.Chdir(t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Layout.Width != 1500 {
		t.Errorf("Width = %v, env should beat the file", c.Layout.Width)
	}
	if c.Layout.MatchGap != 40 {
		t.Errorf("MatchGap = %v, file should beat defaults", c.Layout.MatchGap)
	}
}

func TestLoadMissingDefaultIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	if _, err := Load(""); err != nil {
		t.Errorf("Load() with no config file: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "BRACKET_TEST_DOTENV=from-file\n")
	t.Setenv("BRACKET_TEST_DOTENV", "")
	os.Unsetenv("BRACKET_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("BRACKET_TEST_DOTENV"); got != "from-file" {
		t.Errorf("BRACKET_TEST_DOTENV = %q, want from-file", got)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	c := Default()
	c.Cache.Dir = t.TempDir()
	got, err := c.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*cache.FileCache); !ok {
		t.Errorf("OpenCache() = %T, want *cache.FileCache", got)
	}

	c.Cache.Backend = CacheNone
	got, _ = c.OpenCache(ctx)
	if _, ok := got.(cache.NullCache); !ok {
		t.Errorf("OpenCache() = %T, want cache.NullCache", got)
	}

	c.Cache.Backend = "memcached"
	if _, err := c.OpenCache(ctx); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown backend: error = %v", err)
	}
}

func TestStoreConfig(t *testing.T) {
	c := Default()
	c.Store.MongoURI = "mongodb://x"
	sc := c.StoreConfig(nil)
	if sc.Backend != store.BackendFile || sc.Mongo.URI != "mongodb://x" || sc.Mongo.Database != store.DefaultMongoDatabase {
		t.Errorf("StoreConfig() = %+v", sc)
	}
}

func TestKeyer(t *testing.T) {
	c := Default()
	plain := c.Keyer().LayoutKey("abc", cache.LayoutKeyOpts{VizType: "bracket"})

	c.Cache.Prefix = "api:"
	scoped := c.Keyer().LayoutKey("abc", cache.LayoutKeyOpts{VizType: "bracket"})
	if scoped != "api:"+plain {
		t.Errorf("scoped key = %q, want %q", scoped, "api:"+plain)
	}
}
