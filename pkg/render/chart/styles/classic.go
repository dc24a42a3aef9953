package styles

import (
	"bytes"
	"fmt"
)

const (
	classicStroke     = "#333333"
	classicHover      = "#2563eb"
	classicEdge       = "#8b7ab8"
	classicHeaderFill = "#e0e7ff"
	classicHeaderLine = "#6366f1"
	classicHeaderText = "#4f46e5"
	classicFont       = "Raleway, sans-serif"
)

// Classic draws outlined boxes with shaded winner rows, boxed round
// headers and a soft glow around the final.
type Classic struct{}

func (Classic) Name() string { return NameClassic }

func (Classic) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="champion-glow" x="-50%" y="-50%" width="200%" height="200%">
      <feGaussianBlur stdDeviation="2" result="blur"/>
      <feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge>
    </filter>
  </defs>
`)
	fmt.Fprintf(buf, "  <style>\n    .match:hover .match-box { stroke: %s; }\n  </style>\n", classicHover)
}

func (Classic) RenderHeader(buf *bytes.Buffer, h Header) {
	fmt.Fprintf(buf, `  <g class="round-title">`+"\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		h.CX-h.W/2, h.CY-h.H/2, h.W, h.H, classicHeaderFill, classicHeaderLine)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="14" font-weight="bold" fill="%s">%s</text>`+"\n",
		h.CX, h.CY+5, classicHeaderText, EscapeXML(h.Label))
	buf.WriteString("  </g>\n")
}

func (Classic) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <path class="link" d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round"/>`+"\n",
		PathData(e.Points), classicEdge)
	if n := len(e.Points); n >= 3 {
		// Junction dot where the connector turns toward its successor.
		j := e.Points[n-2]
		fmt.Fprintf(buf, `  <circle class="junction" cx="%.2f" cy="%.2f" r="3" fill="%s"/>`+"\n", j.X, j.Y, classicEdge)
	}
}

func (Classic) RenderBox(buf *bytes.Buffer, b Box) {
	openMatch(buf, b)
	for _, row := range teamRows(b) {
		if row.side.Won {
			fmt.Fprintf(buf, `    <rect class="winner" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s" opacity="0.1"/>`+"\n",
				b.X, row.y-b.H/4, b.W, b.H/2, classicStroke)
		}
	}

	filter := ""
	if b.Final {
		filter = ` filter="url(#champion-glow)"`
	}
	fmt.Fprintf(buf, `    <rect class="match-box" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="white" fill-opacity="0" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		b.X, b.Y, b.W, b.H, classicStroke, filter)

	for _, row := range teamRows(b) {
		writeSide(buf, b, row.side, sideLayout{pad: 12, fontSize: 14, rowY: row.y}, classicStroke, "#000000", classicFont)
	}
	closeMatch(buf)
}
