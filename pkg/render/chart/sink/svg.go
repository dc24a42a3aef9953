package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/bracket/pkg/render/chart"
	"github.com/matzehuels/bracket/pkg/render/chart/styles"
)

const matchInteractionCSS = `
    .match-box { transition: stroke-width 0.2s ease, stroke 0.2s ease; }
    .match:hover .match-box { stroke-width: 2.5; }
    .match:hover .team-name { text-decoration: underline; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	title      string
	background string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTitle(t string) SVGOption       { return func(r *svgRenderer) { r.title = t } }

// WithBackground fills the canvas with color; empty leaves it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG writes the scene as a standalone SVG document.
//
// Drawing order is headers, edges, then boxes, so boxes sit on top of the
// connectors that touch them.
func RenderSVG(s chart.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	r.style.RenderDefs(&buf)
	renderInteraction(&buf)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			s.Width, s.Height, styles.EscapeXML(r.background))
	}

	for _, h := range s.Headers {
		r.style.RenderHeader(&buf, h)
	}
	for _, e := range s.Edges {
		r.style.RenderEdge(&buf, e)
	}
	for _, b := range s.Boxes {
		r.style.RenderBox(&buf, b)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Classic{}, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", matchInteractionCSS)
}
