package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orgchart/pkg/layout"
)

const highlightColor = "#2563eb"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds department and employee ID lines to node labels.
	// When false, only name and title are shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"sans-serif\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#9ca3af\"];\n")
	fmt.Fprintf(&buf, "  ranksep=%.2f;\n", pointsToInches(l.Profile.VerticalSpacing-l.Profile.NodeHeight))
	fmt.Fprintf(&buf, "  nodesep=%.2f;\n", pointsToInches(l.Profile.HorizontalSpacing))
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	if len(l.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range l.Edges {
		attrs := fmt.Sprintf("id=%q", e.ID)
		if e.Highlighted {
			attrs += fmt.Sprintf(", color=%q, penwidth=3", highlightColor)
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.Node, detailed bool) string {
	name := n.Employee.FullName()
	if name == "" {
		name = n.ID
	}
	parts := []string{name}
	if n.Employee.Title != "" {
		parts = append(parts, n.Employee.Title)
	}
	if detailed {
		if n.Employee.Department != "" {
			parts = append(parts, n.Employee.Department)
		}
		parts = append(parts, "id: "+n.ID)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n layout.Node, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n, detailed)),
		fmt.Sprintf("id=%q", "node-"+n.ID),
	}
	if n.Highlighted {
		attrs = append(attrs, fmt.Sprintf("color=%q", highlightColor), "penwidth=3")
	}
	return attrs
}

func pointsToInches(px float64) float64 {
	return max(0.1, px/72)
}

// RenderSVG lets Graphviz position and draw a DOT graph. The result has
// a unitless root element so it scales with its container.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start graphviz: %w", err)
	}
	defer gv.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &out); err != nil {
		return nil, fmt.Errorf("graphviz: %w", err)
	}
	return scalableRoot(out.Bytes()), nil
}

var rootTag = regexp.MustCompile(`<svg[^>]*viewBox="[-0-9.]+ [-0-9.]+ ([0-9.]+) ([0-9.]+)"[^>]*>`)

// scalableRoot swaps Graphviz's point-sized <svg> tag for one sized in
// user units. Output without a usable viewBox is returned unchanged.
func scalableRoot(doc []byte) []byte {
	m := rootTag.FindSubmatchIndex(doc)
	if m == nil {
		return doc
	}
	w, _ := strconv.ParseFloat(string(doc[m[2]:m[3]]), 64)
	h, _ := strconv.ParseFloat(string(doc[m[4]:m[5]]), 64)
	if w <= 0 || h <= 0 {
		return doc
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return slices.Concat(doc[:m[0]], []byte(tag), doc[m[1]:])
}
