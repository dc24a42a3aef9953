package styles

import (
	"bytes"
	"slices"
)

// Style defines the visual appearance for bracket rendering.
type Style interface {
	// Name returns the identifier used on the command line and in caches.
	Name() string
	// RenderDefs writes SVG <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderHeader writes the label of one round column.
	RenderHeader(buf *bytes.Buffer, h Header)
	// RenderEdge writes one connector between two matches.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderBox writes one match box with both teams.
	RenderBox(buf *bytes.Buffer, b Box)
}

// Side is one team as drawn inside a match box.
type Side struct {
	Name        string
	Score       float64
	Logo        string
	Won         bool
	Placeholder bool
}

// Box contains all data needed to render a single match.
type Box struct {
	ID           string  // Match id
	Round, Slot  int     // Column and position within it
	X, Y, W, H   float64 // Top-left corner and size
	CX, CY       float64 // Center
	Team1, Team2 Side
	Final        bool // Box belongs to the last round
}

// Point is a vertex of an edge path.
type Point struct {
	X, Y float64
}

// Edge is an orthogonal connector from a match to its successor.
type Edge struct {
	FromID, ToID string
	Points       []Point
}

// Header is the label drawn above a round column.
type Header struct {
	Round  int
	Label  string
	CX, CY float64
	W, H   float64
}

// Style names accepted by [Lookup].
const (
	NameSimple  = "simple"
	NameClassic = "classic"
)

// DefaultName is the style used when none is requested.
const DefaultName = NameClassic

var registry = map[string]Style{
	NameSimple:  Simple{},
	NameClassic: Classic{},
}

// Lookup returns the style registered under name.
func Lookup(name string) (Style, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns all registered style names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
