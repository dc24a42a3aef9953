package layout

import (
	"math"

	"github.com/matzehuels/bracket/pkg/errors"
)

// Defaults used when no option overrides them.
const (
	DefaultWidth          = 2400.0
	DefaultMatchGap       = 65.0
	DefaultMinGapFraction = 1.0
	DefaultTopOffset      = 60.0
	DefaultPadding        = 0.0
)

// Option configures [Compute].
type Option func(*config)

type config struct {
	width          float64
	matchGap       float64
	minGapFraction float64
	topOffset      float64
	padding        float64
}

// WithWidth sets the total canvas width shared by all round columns.
func WithWidth(w float64) Option { return func(c *config) { c.width = w } }

// WithMatchGap sets the vertical distance between first-round matches.
func WithMatchGap(g float64) Option { return func(c *config) { c.matchGap = g } }

// WithMinGapFraction sets the minimum spacing between neighbouring matches in
// later rounds, as a fraction of the match gap. Zero turns the correction off.
func WithMinGapFraction(f float64) Option { return func(c *config) { c.minGapFraction = f } }

// WithTopOffset sets the height of the header band above the first match.
func WithTopOffset(o float64) Option { return func(c *config) { c.topOffset = o } }

// WithPadding adds extra space below the last match.
func WithPadding(p float64) Option { return func(c *config) { c.padding = p } }

func newConfig(opts ...Option) config {
	c := config{
		width:          DefaultWidth,
		matchGap:       DefaultMatchGap,
		minGapFraction: DefaultMinGapFraction,
		topOffset:      DefaultTopOffset,
		padding:        DefaultPadding,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) validate() error {
	switch {
	case !finite(c.width) || c.width <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %v", c.width)
	case !finite(c.matchGap) || c.matchGap <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "match gap must be positive, got %v", c.matchGap)
	case !finite(c.minGapFraction) || c.minGapFraction < 0 || c.minGapFraction > 1:
		return errors.New(errors.ErrCodeInvalidInput, "min gap fraction must be within [0, 1], got %v", c.minGapFraction)
	case !finite(c.topOffset) || c.topOffset < 0:
		return errors.New(errors.ErrCodeInvalidInput, "top offset cannot be negative, got %v", c.topOffset)
	case !finite(c.padding) || c.padding < 0:
		return errors.New(errors.ErrCodeInvalidInput, "padding cannot be negative, got %v", c.padding)
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
