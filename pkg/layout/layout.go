package layout

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

// Mode records how a layout was produced.
type Mode string

const (
	ModeTree  Mode = "tree"  // single hierarchy, edges drawn
	ModeGrid  Mode = "grid"  // flat fallback, no edges
	ModeEmpty Mode = "empty" // no employees
)

// Node is a positioned employee box.
type Node struct {
	ID           string       `json:"id"`
	Employee     org.Employee `json:"employee"`
	X            float64      `json:"x"` // left edge
	Y            float64      `json:"y"` // top edge
	Width        float64      `json:"width"`
	Height       float64      `json:"height"`
	Depth        int          `json:"depth"`
	SubtreeWidth float64      `json:"subtree_width,omitempty"`
	Highlighted  bool         `json:"highlighted,omitempty"`
}

// CenterX returns the horizontal center of the node box.
func (n Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node box.
func (n Node) CenterY() float64 { return n.Y + n.Height/2 }

// Right returns the right edge of the node box.
func (n Node) Right() float64 { return n.X + n.Width }

// Bottom returns the bottom edge of the node box.
func (n Node) Bottom() float64 { return n.Y + n.Height }

// Edge links a manager (Source) to a direct report (Target).
type Edge struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Highlighted bool   `json:"highlighted,omitempty"`
}

// EdgeID returns the identifier of the edge from manager to report. Each
// part is escaped so that "-" only ever separates the two IDs: "_" becomes
// "_5f" and "-" becomes "_2d". IDs without either character read as-is,
// e.g. "e-ceo-cto".
func EdgeID(source, target string) string {
	return "e-" + edgeIDEscaper.Replace(source) + "-" + edgeIDEscaper.Replace(target)
}

var edgeIDEscaper = strings.NewReplacer("_", "_5f", "-", "_2d")

// Layout is the positioned org chart.
type Layout struct {
	Mode    Mode               `json:"mode"`
	Root    string             `json:"root,omitempty"`
	Profile responsive.Profile `json:"profile"`
	Nodes   []Node             `json:"nodes"`
	Edges   []Edge             `json:"edges"`
}

// Build lays out c using the dimensions of profile p.
func Build(c *org.Chart, p responsive.Profile) Layout {
	l := Layout{Profile: p, Nodes: []Node{}, Edges: []Edge{}}
	if c == nil || c.Len() == 0 {
		l.Mode = ModeEmpty
		return l
	}
	if root, ok := c.Tree(); ok {
		l.Mode = ModeTree
		l.Root = root
		placeTree(&l, c, root)
		return l
	}
	l.Mode = ModeGrid
	placeGrid(&l, c)
	return l
}

// Node returns the node for an employee ID.
func (l Layout) Node(id string) (Node, bool) {
	i := slices.IndexFunc(l.Nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Bounds returns the smallest rectangle containing every node box.
// An empty layout has empty bounds.
func (l Layout) Bounds() responsive.Rect {
	if len(l.Nodes) == 0 {
		return responsive.Rect{}
	}
	r := responsive.Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, n := range l.Nodes {
		r.MinX = math.Min(r.MinX, n.X)
		r.MinY = math.Min(r.MinY, n.Y)
		r.MaxX = math.Max(r.MaxX, n.Right())
		r.MaxY = math.Max(r.MaxY, n.Bottom())
	}
	return r
}

// Clone returns a deep copy of the layout's node and edge slices.
func (l Layout) Clone() Layout {
	l.Nodes = slices.Clone(l.Nodes)
	l.Edges = slices.Clone(l.Edges)
	return l
}

// IsEmpty reports whether the layout has no nodes.
func (l Layout) IsEmpty() bool { return len(l.Nodes) == 0 }
