// Package cache provides content-addressed caching for bracket layouts and
// rendered artifacts.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entries under a directory, for CLI usage
//   - [RedisCache]: shared cache for multi-instance API servers
//
// Keys are produced by a [Keyer] from a hash of the input rounds and the
// options that affect the output, so a change to either yields a new key.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayoutKey(cache.Hash(roundsJSON), cache.LayoutKeyOpts{
//	    VizType: "bracket",
//	    Width:   2400,
//	})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional TTL.
//
// Get reports a miss with hit=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Entry lifetimes.
const (
	// TTLLayout is how long computed layouts are kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered SVG/PNG/PDF/JSON outputs are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	VizType        string  `json:"viz_type"`
	Width          float64 `json:"width"`
	MatchGap       float64 `json:"match_gap"`
	MinGapFraction float64 `json:"min_gap_fraction"`
	TopOffset      float64 `json:"top_offset"`
	Padding        float64 `json:"padding"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	Title      string  `json:"title,omitempty"`
	Background string  `json:"background,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
}

// Keyer builds cache keys. Wrap one in [NewScopedKeyer] to namespace keys.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its input rounds.
	LayoutKey(roundsHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered output by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "layout:<sha256>" and
// "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(roundsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", roundsHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
