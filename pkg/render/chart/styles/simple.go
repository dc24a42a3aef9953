package styles

import (
	"bytes"
	"fmt"
)

const (
	simpleAccent = "#0070f3"
	simpleHover  = "#0051a8"
	simpleWinner = "#e8f1fe"
	simpleFont   = "Arial, sans-serif"
)

// Simple is a light style with blue accents.
type Simple struct{}

func (Simple) Name() string { return NameSimple }

func (Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>\n    .match:hover .match-box { stroke: %s; }\n  </style>\n", simpleHover)
}

func (Simple) RenderHeader(buf *bytes.Buffer, h Header) {
	fmt.Fprintf(buf, `  <text class="round-title" x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="16" font-weight="bold" fill="%s">%s</text>`+"\n",
		h.CX, h.CY+5, simpleFont, simpleAccent, EscapeXML(h.Label))
}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <path class="link" d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
		PathData(e.Points), simpleAccent)
}

func (Simple) RenderBox(buf *bytes.Buffer, b Box) {
	openMatch(buf, b)
	fmt.Fprintf(buf, `    <rect class="match-box" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="white" stroke="%s" stroke-width="1.5"/>`+"\n",
		b.X, b.Y, b.W, b.H, simpleAccent)

	for _, row := range teamRows(b) {
		if row.side.Won {
			fmt.Fprintf(buf, `    <rect class="winner" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
				b.X+1, row.y-b.H/4+1, b.W-2, b.H/2-2, simpleWinner)
		}
		writeSide(buf, b, row.side, sideLayout{pad: 10, fontSize: 13, rowY: row.y}, "#111", simpleAccent, simpleFont)
	}
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="0.3"/>`+"\n",
		b.X, b.CY, b.X+b.W, b.CY, simpleAccent)
	closeMatch(buf)
}
