package layout

import (
	"github.com/matzehuels/orgchart/pkg/org"
)

// placeGrid positions employees row-major in input order. The grid is
// centered on x=0 and rows stack down from y=0.
func placeGrid(l *Layout, c *org.Chart) {
	p := l.Profile
	employees := c.Employees()
	cols := max(1, min(p.GridColumns, len(employees)))
	gridWidth := float64(cols)*p.NodeWidth + float64(cols-1)*p.HorizontalSpacing
	left := -gridWidth / 2

	for i, e := range employees {
		row, col := i/cols, i%cols
		l.Nodes = append(l.Nodes, Node{
			ID:       e.ID,
			Employee: e,
			X:        left + float64(col)*(p.NodeWidth+p.HorizontalSpacing),
			Y:        float64(row) * p.VerticalSpacing,
			Width:    p.NodeWidth,
			Height:   p.NodeHeight,
		})
	}
}

// GridColumns returns the number of columns a grid layout of n employees
// uses under the given column limit.
func GridColumns(limit, n int) int {
	return max(1, min(limit, n))
}
