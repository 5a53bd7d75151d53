package render

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output format for a rendered chart.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// Formats lists every supported output format.
var Formats = []Format{FormatJSON, FormatSVG, FormatDOT, FormatPNG, FormatPDF}

// ParseFormat validates a format name. Matching ignores case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want json, svg, dot, png or pdf)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer format from %q", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// IsRaster reports whether f requires SVG conversion through rsvg-convert.
func (f Format) IsRaster() bool { return f == FormatPNG || f == FormatPDF }
