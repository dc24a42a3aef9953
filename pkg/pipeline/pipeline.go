// Package pipeline runs the layout → render pipeline for tournament brackets.
//
// The CLI and the API server both go through a [Runner] so that option
// defaults, validation, and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: compute column and vertical positions from the rounds
//  2. Render: draw the laid-out bracket in one or more formats
//     (SVG, PNG, PDF, JSON)
//
// Two visualization types share the layout stage:
//   - bracket: the classic side-by-side columns with orthogonal connectors
//   - tree: a Graphviz node-link diagram of the same matches
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, rounds, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Style:   "classic",
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.ComputeLayout(ctx, rounds, opts)
//	artifacts, err := runner.RenderLayout(ctx, rounds, l, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracket/pkg/cache"
	"github.com/matzehuels/bracket/pkg/errors"
	"github.com/matzehuels/bracket/pkg/render/chart/layout"
	"github.com/matzehuels/bracket/pkg/render/chart/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = layout.DefaultWidth

	// DefaultMatchGap is the default vertical spacing between first-round matches.
	DefaultMatchGap = layout.DefaultMatchGap

	// DefaultMinGapFraction is the default minimum separation between
	// adjacent matches as a fraction of the match gap.
	DefaultMinGapFraction = layout.DefaultMinGapFraction

	// DefaultTopOffset is the default band reserved above the first match
	// for round headers.
	DefaultTopOffset = layout.DefaultTopOffset

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Visualization types.
const (
	VizTypeBracket = "bracket"
	VizTypeTree    = "tree"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeBracket

// DefaultStyle is the default visual style.
const DefaultStyle = styles.DefaultName

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeBracket: true,
	VizTypeTree:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	VizType  string  `json:"viz_type,omitempty"`
	Width    float64 `json:"width,omitempty"`
	MatchGap float64 `json:"match_gap,omitempty"`
	Padding  float64 `json:"padding,omitempty"`

	// MinGapFraction and TopOffset are pointers so that an explicit 0
	// (correction off, no header band) is distinguishable from unset.
	MinGapFraction *float64 `json:"min_gap_fraction,omitempty"`
	TopOffset      *float64 `json:"top_offset,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Title      string   `json:"title,omitempty"`
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // tree view: show ids and scores

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed (or cached) layout.
	Layout layout.Layout

	// RoundsHash is the content hash of the input rounds.
	RoundsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RoundCount int
	MatchCount int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Float returns a pointer to f, for setting Options.MinGapFraction.
func Float(f float64) *float64 { return &f }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	if _, ok := styles.Lookup(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: bracket, tree)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.MatchGap == 0 {
		o.MatchGap = DefaultMatchGap
	}
	if o.TopOffset == nil {
		o.TopOffset = Float(DefaultTopOffset)
	}
	if o.MinGapFraction == nil {
		o.MinGapFraction = Float(DefaultMinGapFraction)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateVizType(o.VizType)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatDOT) && !o.IsTree() {
		return errors.New(errors.ErrCodeInvalidFormat, "format %q requires viz_type %q", FormatDOT, VizTypeTree)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// ValidateAndSetDefaults applies every default and validates the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	return o.ValidateForRender()
}

// IsTree returns true if this is a node-link tree visualization.
func (o *Options) IsTree() bool {
	return o.VizType == VizTypeTree
}

// LayoutOptions converts the options into layout engine options.
func (o *Options) LayoutOptions() []layout.Option {
	opts := []layout.Option{
		layout.WithWidth(o.Width),
		layout.WithMatchGap(o.MatchGap),
		layout.WithPadding(o.Padding),
	}
	if o.TopOffset != nil {
		opts = append(opts, layout.WithTopOffset(*o.TopOffset))
	}
	if o.MinGapFraction != nil {
		opts = append(opts, layout.WithMinGapFraction(*o.MinGapFraction))
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		VizType:   o.VizType,
		Width:     o.Width,
		MatchGap:  o.MatchGap,
		TopOffset: DefaultTopOffset,
		Padding:   o.Padding,
	}
	if o.TopOffset != nil {
		k.TopOffset = *o.TopOffset
	}
	if o.MinGapFraction != nil {
		k.MinGapFraction = *o.MinGapFraction
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		Title:      o.Title,
		Background: o.Background,
		Detailed:   o.Detailed,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
