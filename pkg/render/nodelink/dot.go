package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/render"
	"github.com/matzehuels/bracket/pkg/render/chart/layout"
	"github.com/matzehuels/bracket/pkg/render/chart/styles"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds scores and the match id to node labels.
	// When false, only team names are shown.
	Detailed bool
}

// ToDOT converts a laid-out bracket to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Matches with a decided winner are filled; placeholder pairings are dashed.
func ToDOT(rounds []bracket.Round, l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Arial\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for k, r := range rounds {
		fmt.Fprintf(&buf, "\n  subgraph round_%d {\n    rank=same;\n", k)
		for _, m := range r.Matches {
			fmt.Fprintf(&buf, "    %q [%s];\n", m.ID, strings.Join(fmtAttrs(m, opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, link := range l.Links {
		fmt.Fprintf(&buf, "  %q -> %q;\n", link.From, link.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(m bracket.Match, detailed bool) string {
	line := func(t bracket.Team, won bool) string {
		s := t.Name
		if detailed && !t.IsPlaceholder() {
			s += "  " + styles.FormatScore(t.Score)
		}
		if won {
			s = "* " + s
		}
		return s
	}
	label := line(m.Team1, m.Winner == bracket.WinnerTeam1) + "\n" + line(m.Team2, m.Winner == bracket.WinnerTeam2)
	if detailed {
		label = m.ID + "\n" + label
	}
	return label
}

func fmtAttrs(m bracket.Match, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(m, detailed))}
	switch {
	case m.Team1.IsPlaceholder() && m.Team2.IsPlaceholder():
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case m.Winner != bracket.WinnerNone:
		attrs = append(attrs, "fillcolor=\"#e0e7ff\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
