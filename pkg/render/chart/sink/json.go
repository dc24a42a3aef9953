package sink

import (
	"encoding/json"

	"github.com/matzehuels/bracket/pkg/render/chart"
	"github.com/matzehuels/bracket/pkg/render/chart/styles"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
	title string
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONTitle records the tournament name in the output.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

type jsonOutput struct {
	Title   string       `json:"title,omitempty"`
	Style   string       `json:"style,omitempty"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Headers []jsonHeader `json:"headers"`
	Boxes   []jsonBox    `json:"boxes"`
	Edges   []jsonEdge   `json:"edges"`
}

type jsonHeader struct {
	Round int     `json:"round"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type jsonBox struct {
	ID     string     `json:"id"`
	Round  int        `json:"round"`
	Slot   int        `json:"slot"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Teams  []jsonTeam `json:"teams"`
	Final  bool       `json:"final,omitempty"`
}

type jsonTeam struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Logo   string  `json:"logo,omitempty"`
	Winner bool    `json:"winner,omitempty"`
	TBD    bool    `json:"tbd,omitempty"`
}

type jsonEdge struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Points [][2]float64 `json:"points"`
}

// RenderJSON exports the scene as pretty-printed JSON. Box coordinates are
// top-left corners; header coordinates are centers.
func RenderJSON(s chart.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:   r.title,
		Style:   r.style,
		Width:   s.Width,
		Height:  s.Height,
		Headers: make([]jsonHeader, len(s.Headers)),
		Boxes:   make([]jsonBox, len(s.Boxes)),
		Edges:   make([]jsonEdge, len(s.Edges)),
	}
	for i, h := range s.Headers {
		out.Headers[i] = jsonHeader{Round: h.Round, Label: h.Label, X: h.CX, Y: h.CY}
	}
	for i, b := range s.Boxes {
		out.Boxes[i] = jsonBox{
			ID: b.ID, Round: b.Round, Slot: b.Slot,
			X: b.X, Y: b.Y, Width: b.W, Height: b.H,
			Teams: []jsonTeam{toJSONTeam(b.Team1), toJSONTeam(b.Team2)},
			Final: b.Final,
		}
	}
	for i, e := range s.Edges {
		pts := make([][2]float64, len(e.Points))
		for j, p := range e.Points {
			pts[j] = [2]float64{p.X, p.Y}
		}
		out.Edges[i] = jsonEdge{From: e.FromID, To: e.ToID, Points: pts}
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONTeam(s styles.Side) jsonTeam {
	return jsonTeam{Name: s.Name, Score: s.Score, Logo: s.Logo, Winner: s.Won, TBD: s.Placeholder}
}
