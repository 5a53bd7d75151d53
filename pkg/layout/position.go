package layout

import (
	"github.com/matzehuels/orgchart/pkg/org"
)

// placeTree positions every employee under root. The root box is centered on
// x=0 at y=0; reports are laid out left to right beneath their manager.
func placeTree(l *Layout, c *org.Chart, root string) {
	p := l.Profile
	widths := ComputeWidths(c, root, p)
	visited := make(map[string]bool, c.Len())

	var place func(id string, x, y float64, depth int)
	place = func(id string, x, y float64, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true

		e, _ := c.Employee(id)
		l.Nodes = append(l.Nodes, Node{
			ID:           id,
			Employee:     e,
			X:            x,
			Y:            y,
			Width:        p.NodeWidth,
			Height:       p.NodeHeight,
			Depth:        depth,
			SubtreeWidth: widths[id],
		})

		kids := c.Children(id)
		if len(kids) == 0 {
			return
		}
		kidWidths := make([]float64, len(kids))
		for i, kid := range kids {
			kidWidths[i] = widths[kid]
		}

		center := x + p.NodeWidth/2
		slot := center - ChildrenSpan(kidWidths, p)/2
		for i, kid := range kids {
			w := kidWidths[i]
			l.Edges = append(l.Edges, Edge{ID: EdgeID(id, kid), Source: id, Target: kid})
			place(kid, slot+w/2-p.NodeWidth/2, y+p.VerticalSpacing, depth+1)
			slot += w + p.HorizontalSpacing
		}
	}
	place(root, -p.NodeWidth/2, 0, 0)
}
