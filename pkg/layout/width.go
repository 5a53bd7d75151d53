package layout

import (
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

// ComputeWidths returns the subtree width of root and every employee below
// it, keyed by employee ID. Each subtree is computed once, bottom-up.
// Employees not reachable from root are absent from the result.
func ComputeWidths(c *org.Chart, root string, p responsive.Profile) map[string]float64 {
	widths := make(map[string]float64, c.Len())
	if _, ok := c.Employee(root); !ok {
		return widths
	}

	var visit func(id string) float64
	visit = func(id string) float64 {
		if w, done := widths[id]; done {
			return w
		}
		// Provisional entry so a manager cycle cannot recurse forever.
		widths[id] = p.NodeWidth

		kids := c.Children(id)
		kidWidths := make([]float64, len(kids))
		for i, kid := range kids {
			kidWidths[i] = visit(kid)
		}
		w := SubtreeWidth(kidWidths, p)
		widths[id] = w
		return w
	}
	visit(root)
	return widths
}

// SubtreeWidth returns the width a node needs given its children's subtree
// widths: one node width for a leaf, otherwise the children's span floored at
// one node width.
func SubtreeWidth(childWidths []float64, p responsive.Profile) float64 {
	if len(childWidths) == 0 {
		return p.NodeWidth
	}
	return max(ChildrenSpan(childWidths, p), p.NodeWidth)
}

// ChildrenSpan returns the total horizontal span of sibling subtrees laid
// side by side with one horizontal gap between neighbours.
func ChildrenSpan(childWidths []float64, p responsive.Profile) float64 {
	if len(childWidths) == 0 {
		return 0
	}
	var sum float64
	for _, w := range childWidths {
		sum += w
	}
	return sum + float64(len(childWidths)-1)*p.HorizontalSpacing
}
