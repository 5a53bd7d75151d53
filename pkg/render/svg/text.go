package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/orgchart/pkg/layout"
)

const (
	fontHeightRatio = 0.22
	fontCharWidth   = 0.55
	fontWidthRatio  = 0.9
	fontSizeMin     = 8.0
	fontSizeMax     = 18.0
	titleSizeRatio  = 0.8
)

// fontSize picks the largest size at which the label fits the box width,
// clamped to a readable range.
func fontSize(n layout.Node, text string) float64 {
	chars := max(1, utf8.RuneCountInString(text))
	byHeight := n.Height * fontHeightRatio
	byWidth := (n.Width * fontWidthRatio) / (float64(chars) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// truncate shortens s with ".." so it fits width at size.
func truncate(s string, width, size float64) string {
	maxChars := max(3, int(width*fontWidthRatio/(size*fontCharWidth)))
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars-2]) + ".."
}

func renderLabel(buf *bytes.Buffer, n layout.Node) {
	name := n.Employee.FullName()
	if name == "" {
		name = n.ID
	}
	size := fontSize(n, name)
	title := n.Employee.Title

	nameY := n.CenterY()
	if title != "" {
		nameY = n.Y + n.Height*0.42
	}
	fmt.Fprintf(buf, `    <text class="name" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f">%s</text>`+"\n",
		n.CenterX(), nameY, size, escapeXML(truncate(name, n.Width, size)))

	if title != "" {
		ts := max(fontSizeMin, size*titleSizeRatio)
		fmt.Fprintf(buf, `    <text class="title" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f">%s</text>`+"\n",
			n.CenterX(), n.Y+n.Height*0.7, ts, escapeXML(truncate(title, n.Width, ts)))
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
