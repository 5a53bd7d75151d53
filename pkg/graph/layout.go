package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

// =============================================================================
// Layout - Serialized Org Chart
// =============================================================================

// Layout is the serialized form of a computed org chart.
type Layout struct {
	Mode      layout.Mode         `json:"mode" bson:"mode"`
	Root      string              `json:"root,omitempty" bson:"root,omitempty"`
	Profile   responsive.Profile  `json:"profile" bson:"profile"`
	Bounds    responsive.Rect     `json:"bounds" bson:"bounds"`
	Viewport  responsive.Viewport `json:"viewport" bson:"viewport"`
	Nodes     []layout.Node       `json:"nodes" bson:"nodes"`
	Edges     []layout.Edge       `json:"edges" bson:"edges"`
	Highlight *layout.Highlight   `json:"highlight,omitempty" bson:"highlight,omitempty"`
}

// Export serializes l. The viewport is fitted to screen; a zero screen uses
// the profile's own width and a 16:9 height. A non-empty highlight is
// recorded alongside the flagged nodes and edges.
func Export(l layout.Layout, screen responsive.Size, h layout.Highlight) Layout {
	if screen.Width <= 0 || screen.Height <= 0 {
		w := max(l.Profile.MinWidth, responsive.DefaultViewportWidth)
		screen = responsive.Size{Width: w, Height: w * 9 / 16}
	}
	lit := layout.Apply(l, h)
	out := Layout{
		Mode:     lit.Mode,
		Root:     lit.Root,
		Profile:  lit.Profile,
		Bounds:   lit.Bounds(),
		Viewport: responsive.Fit(lit.Bounds(), screen, lit.Profile),
		Nodes:    lit.Nodes,
		Edges:    lit.Edges,
	}
	if !h.IsEmpty() {
		out.Highlight = &h
	}
	return out
}

// Internal converts the serialized layout back to a [layout.Layout].
func (l Layout) Internal() layout.Layout {
	return layout.Layout{
		Mode:    l.Mode,
		Root:    l.Root,
		Profile: l.Profile,
		Nodes:   l.Nodes,
		Edges:   l.Edges,
	}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	switch l.Mode {
	case layout.ModeTree, layout.ModeGrid:
		if len(l.Nodes) == 0 {
			return Layout{}, fmt.Errorf("%s layout must contain nodes", l.Mode)
		}
	case layout.ModeEmpty:
	default:
		return Layout{}, fmt.Errorf("unknown layout mode %q", l.Mode)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
