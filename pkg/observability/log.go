package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level.
// It implements all hook interfaces in this package.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l. A nil logger uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("obs")}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, vizType string, matchCount int) {
	h.logger.Debug("layout start", "viz", vizType, "matches", matchCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	h.done("layout done", err, "viz", vizType, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render done", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnStoreOp(_ context.Context, backend, op string, d time.Duration, err error) {
	h.done("store", err, "backend", backend, "op", op, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.logger.Warn(msg, append(kv, "err", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ StoreHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
