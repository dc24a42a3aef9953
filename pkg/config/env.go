package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/bracket/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "BRACKET_"

// ApplyEnv overrides c with BRACKET_* variables read through getenv.
// Empty variables are ignored.
//
//	BRACKET_WIDTH, BRACKET_MATCH_GAP, BRACKET_MIN_GAP_FRACTION, BRACKET_TOP_OFFSET,
//	BRACKET_PADDING, BRACKET_VIZ_TYPE, BRACKET_STYLE, BRACKET_FORMATS,
//	BRACKET_BACKGROUND, BRACKET_SCALE, BRACKET_STORE_BACKEND, BRACKET_STORE_DIR,
//	BRACKET_MONGO_URI, BRACKET_MONGO_DATABASE, BRACKET_MONGO_COLLECTION,
//	BRACKET_CACHE_BACKEND, BRACKET_CACHE_DIR, BRACKET_REDIS_ADDR,
//	BRACKET_REDIS_PASSWORD, BRACKET_REDIS_DB, BRACKET_CACHE_PREFIX, BRACKET_SERVER_ADDR,
//	BRACKET_CORS_ORIGINS, BRACKET_RATE_LIMIT, BRACKET_RATE_BURST,
//	BRACKET_READ_TIMEOUT, BRACKET_WRITE_TIMEOUT, BRACKET_MAX_VIEWS
func (c *Config) ApplyEnv(getenv func(string) string) error {
	e := envReader{getenv: getenv}

	e.float("WIDTH", &c.Layout.Width)
	e.float("MATCH_GAP", &c.Layout.MatchGap)
	e.floatPtr("MIN_GAP_FRACTION", &c.Layout.MinGapFraction)
	e.floatPtr("TOP_OFFSET", &c.Layout.TopOffset)
	e.float("PADDING", &c.Layout.Padding)

	e.str("VIZ_TYPE", &c.Render.VizType)
	e.str("STYLE", &c.Render.Style)
	e.list("FORMATS", &c.Render.Formats)
	e.str("BACKGROUND", &c.Render.Background)
	e.float("SCALE", &c.Render.Scale)

	e.str("STORE_BACKEND", &c.Store.Backend)
	e.str("STORE_DIR", &c.Store.Dir)
	e.str("MONGO_URI", &c.Store.MongoURI)
	e.str("MONGO_DATABASE", &c.Store.MongoDatabase)
	e.str("MONGO_COLLECTION", &c.Store.MongoCollection)

	e.str("CACHE_BACKEND", &c.Cache.Backend)
	e.str("CACHE_DIR", &c.Cache.Dir)
	e.str("REDIS_ADDR", &c.Cache.RedisAddr)
	e.str("REDIS_PASSWORD", &c.Cache.RedisPassword)
	e.int("REDIS_DB", &c.Cache.RedisDB)
	e.str("CACHE_PREFIX", &c.Cache.Prefix)

	e.str("SERVER_ADDR", &c.Server.Addr)
	e.list("CORS_ORIGINS", &c.Server.CORSOrigins)
	e.float("RATE_LIMIT", &c.Server.RateLimit)
	e.int("RATE_BURST", &c.Server.RateBurst)
	e.duration("READ_TIMEOUT", &c.Server.ReadTimeout)
	e.duration("WRITE_TIMEOUT", &c.Server.WriteTimeout)
	e.int("MAX_VIEWS", &c.Server.MaxViews)

	return e.err
}

// envReader records the first parse failure and skips later variables.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) lookup(name string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v := strings.TrimSpace(e.getenv(EnvPrefix + name))
	return v, v != ""
}

func (e *envReader) fail(name, v string, err error) {
	e.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "%s%s=%q", EnvPrefix, name, v)
}

func (e *envReader) str(name string, dst *string) {
	if v, ok := e.lookup(name); ok {
		*dst = v
	}
}

func (e *envReader) list(name string, dst *[]string) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}

func (e *envReader) float(name string, dst *float64) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = f
}

func (e *envReader) floatPtr(name string, dst **float64) {
	var f float64
	if _, ok := e.lookup(name); !ok {
		return
	}
	e.float(name, &f)
	if e.err == nil {
		*dst = &f
	}
}

func (e *envReader) int(name string, dst *int) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = n
}

func (e *envReader) duration(name string, dst *time.Duration) {
	v, ok := e.lookup(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = d
}
