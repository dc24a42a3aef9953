package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/cache"
	"github.com/matzehuels/bracket/pkg/observability"
	"github.com/matzehuels/bracket/pkg/render/chart/layout"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, rounds []bracket.Round, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.RoundCount = len(rounds)
	for _, rd := range rounds {
		result.Stats.MatchCount += len(rd.Matches)
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, roundsHash, layoutHit, err := r.computeLayout(ctx, rounds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.RoundsHash = roundsHash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Debug("computed layout",
		"rounds", result.Stats.RoundCount,
		"matches", result.Stats.MatchCount,
		"height", l.Height,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderLayout(ctx, rounds, roundsHash, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Render runs the full pipeline and returns only the artifacts.
func (r *Runner) Render(ctx context.Context, rounds []bracket.Round, opts Options) (map[string][]byte, error) {
	res, err := r.Execute(ctx, rounds, opts)
	if err != nil {
		return nil, err
	}
	return res.Artifacts, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether it came from the cache.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, rounds []bracket.Round, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}
	l, _, hit, err := r.computeLayout(ctx, rounds, opts)
	return l, hit, err
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, rounds []bracket.Round, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, rounds, opts)
	return l, err
}

// RenderLayoutWithCacheInfo renders an existing layout with caching and
// reports whether every artifact came from the cache.
func (r *Runner) RenderLayoutWithCacheInfo(ctx context.Context, rounds []bracket.Round, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	roundsHash, err := cache.HashJSON(rounds)
	if err != nil {
		return nil, false, err
	}
	return r.renderLayout(ctx, rounds, roundsHash, l, opts)
}

// RenderLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) RenderLayout(ctx context.Context, rounds []bracket.Round, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderLayoutWithCacheInfo(ctx, rounds, l, opts)
	return artifacts, err
}

func (r *Runner) computeLayout(ctx context.Context, rounds []bracket.Round, opts Options) (layout.Layout, string, bool, error) {
	hooks := observability.Pipeline()
	matchCount := 0
	for _, rd := range rounds {
		matchCount += len(rd.Matches)
	}

	roundsHash, err := cache.HashJSON(rounds)
	if err != nil {
		return layout.Layout{}, "", false, err
	}
	cacheKey := r.Keyer.LayoutKey(roundsHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, roundsHash, true, nil
			}
			// Undecodable entry: fall through and recompute.
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	hooks.OnLayoutStart(ctx, opts.VizType, matchCount)
	l, err := ComputeLayout(rounds, opts)
	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, "", false, err
	}

	if data, err := MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, roundsHash, false, nil
}

func (r *Runner) renderLayout(ctx context.Context, rounds []bracket.Round, roundsHash string, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	layoutData, err := MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	// Artifacts depend on team data as well as positions.
	baseHash := cache.Hash([]byte(roundsHash + ":" + cache.Hash(layoutData)))

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := RenderLayout(ctx, rounds, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
