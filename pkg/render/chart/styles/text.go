package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

const (
	fontCharWidth = 0.55
	minLabelChars = 3
)

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FormatScore renders a score without trailing zeros: 3, 2.5, 10.25.
func FormatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// TruncateLabel shortens label so it fits availW at fontSize.
func TruncateLabel(label string, availW, fontSize float64) string {
	runes := []rune(label)
	maxChars := int(availW / (fontSize * fontCharWidth))
	if maxChars < minLabelChars {
		maxChars = minLabelChars
	}
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// PathData converts edge points into an SVG path "d" attribute.
func PathData(pts []Point) string {
	var buf bytes.Buffer
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%s%.2f %.2f", cmd, p.X, p.Y)
	}
	return buf.String()
}

type teamRow struct {
	side Side
	y    float64
}

// teamRows pairs each team of b with the vertical center of its row.
func teamRows(b Box) [2]teamRow {
	return [2]teamRow{
		{b.Team1, b.Y + b.H/4},
		{b.Team2, b.Y + 3*b.H/4},
	}
}

// logoSize returns the square size of a team logo inside b.
func logoSize(b Box) float64 {
	return max(0, b.H/2-6)
}

type sideLayout struct {
	pad      float64
	fontSize float64
	rowY     float64
}

// writeSide writes the logo, name and score of one team row.
func writeSide(buf *bytes.Buffer, b Box, s Side, l sideLayout, nameFill, scoreFill, font string) {
	nameX := b.X + l.pad
	if s.Logo != "" {
		size := logoSize(b)
		fmt.Fprintf(buf, `    <image href="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
			EscapeXML(s.Logo), nameX, l.rowY-size/2, size, size)
		nameX += size + 6
	}

	score := FormatScore(s.Score)
	if s.Placeholder {
		score = ""
	}
	scoreW := float64(len(score)+1) * l.fontSize * fontCharWidth
	availW := b.X + b.W - l.pad - scoreW - nameX
	name := TruncateLabel(s.Name, availW, l.fontSize)

	weight := "normal"
	if s.Won {
		weight = "bold"
	}
	baseline := l.rowY + l.fontSize*0.35
	fmt.Fprintf(buf, `    <text class="team-name" x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" font-weight="%s" fill="%s">%s</text>`+"\n",
		nameX, baseline, font, l.fontSize, weight, nameFill, EscapeXML(name))
	if score != "" {
		fmt.Fprintf(buf, `    <text class="team-score" x="%.2f" y="%.2f" text-anchor="end" font-family="%s" font-size="%.0f" font-weight="bold" fill="%s">%s</text>`+"\n",
			b.X+b.W-l.pad, baseline, font, l.fontSize, scoreFill, score)
	}
}

// openMatch writes the <g> wrapper shared by all styles.
func openMatch(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <g class="match" id="match-r%d-%d" data-id="%s">`+"\n", b.Round, b.Slot, EscapeXML(b.ID))
}

func closeMatch(buf *bytes.Buffer) {
	buf.WriteString("  </g>\n")
}
