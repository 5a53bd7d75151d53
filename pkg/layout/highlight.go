package layout

import "slices"

// Highlight is the set of elements on the path from a hovered node to the root.
// NodeIDs runs from the hovered node upward; EdgeIDs is in the same order.
type Highlight struct {
	NodeIDs []string `json:"node_ids"`
	EdgeIDs []string `json:"edge_ids"`
}

// HasNode reports whether id is on the highlighted path.
func (h Highlight) HasNode(id string) bool { return slices.Contains(h.NodeIDs, id) }

// HasEdge reports whether id is on the highlighted path.
func (h Highlight) HasEdge(id string) bool { return slices.Contains(h.EdgeIDs, id) }

// IsEmpty reports whether nothing is highlighted.
func (h Highlight) IsEmpty() bool { return len(h.NodeIDs) == 0 }

// HighlightPath walks from hoveredID to the root by repeatedly following the
// edge whose target is the current node. The walk ends at a node without an
// incoming edge or when it would revisit a node. An unknown hoveredID
// highlights nothing. Both slices are always non-nil.
func HighlightPath(l Layout, hoveredID string) Highlight {
	if _, ok := l.Node(hoveredID); !ok {
		return Highlight{NodeIDs: []string{}, EdgeIDs: []string{}}
	}

	incoming := make(map[string]Edge, len(l.Edges))
	for _, e := range l.Edges {
		if _, seen := incoming[e.Target]; !seen {
			incoming[e.Target] = e
		}
	}

	h := Highlight{NodeIDs: []string{hoveredID}, EdgeIDs: []string{}}
	visited := map[string]bool{hoveredID: true}
	for cur := hoveredID; ; {
		e, ok := incoming[cur]
		if !ok || visited[e.Source] {
			return h
		}
		visited[e.Source] = true
		h.EdgeIDs = append(h.EdgeIDs, e.ID)
		h.NodeIDs = append(h.NodeIDs, e.Source)
		cur = e.Source
	}
}

// Apply returns a copy of l with the Highlighted flag set on every node and
// edge in h and cleared everywhere else.
func Apply(l Layout, h Highlight) Layout {
	out := l.Clone()
	for i := range out.Nodes {
		out.Nodes[i].Highlighted = h.HasNode(out.Nodes[i].ID)
	}
	for i := range out.Edges {
		out.Edges[i].Highlighted = h.HasEdge(out.Edges[i].ID)
	}
	return out
}
