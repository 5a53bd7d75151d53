package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/orgchart/pkg/layout"
)

const interactionCSS = `
    .node rect { fill: #ffffff; stroke: #4b5563; stroke-width: 1.5; transition: stroke-width 0.2s ease; }
    .node.highlight rect { stroke: #2563eb; stroke-width: 3.5; }
    .node .name { font-weight: bold; }
    .edge { fill: none; stroke: #9ca3af; stroke-width: 1.5; }
    .edge.highlight { stroke: #2563eb; stroke-width: 3; }`

const interactionJS = `
    function pathFrom(id) {
      const nodes = [], edges = [], seen = new Set();
      let cur = document.getElementById('node-' + id);
      while (cur && !seen.has(cur.id)) {
        seen.add(cur.id);
        nodes.push(cur);
        const mgr = cur.dataset.manager;
        if (!mgr) break;
        const edge = document.querySelector('.edge[data-source="' + CSS.escape(mgr) + '"][data-target="' + CSS.escape(cur.dataset.id) + '"]');
        if (!edge) break;
        edges.push(edge);
        cur = document.getElementById('node-' + mgr);
      }
      return nodes.concat(edges);
    }
    function clearHighlight() {
      document.querySelectorAll('.node, .edge').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node').forEach(el => {
      el.addEventListener('mouseenter', () => { clearHighlight(); pathFrom(el.dataset.id).forEach(x => x.classList.add('highlight')); });
      el.addEventListener('mouseleave', clearHighlight);
    });`

// DefaultPadding is the margin kept around the chart.
const DefaultPadding = 24.0

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	padding     float64
	title       string
	interactive bool
	highlight   *layout.Highlight
}

// WithPadding sets the margin around the chart.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = max(0, p) } }

// WithTitle adds a <title> element to the document.
func WithTitle(s string) Option { return func(r *renderer) { r.title = s } }

// WithInteraction embeds the hover highlighting script.
func WithInteraction() Option { return func(r *renderer) { r.interactive = true } }

// WithHighlight marks a precomputed path before rendering.
func WithHighlight(h layout.Highlight) Option {
	return func(r *renderer) { r.highlight = &h }
}

// Render draws l as an SVG document. An empty layout produces a small
// document containing a placeholder message.
func Render(l layout.Layout, opts ...Option) []byte {
	r := renderer{padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}
	if r.highlight != nil {
		l = layout.Apply(l, *r.highlight)
	}

	var buf bytes.Buffer
	if l.IsEmpty() {
		renderEmpty(&buf, r)
		return buf.Bytes()
	}

	b := l.Bounds()
	x, y := b.MinX-r.padding, b.MinY-r.padding
	w, h := b.Width()+2*r.padding, b.Height()+2*r.padding
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f" data-mode="%s">`+"\n",
		x, y, w, h, w, h, l.Mode)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)

	renderEdges(&buf, l)
	renderNodes(&buf, l)

	if r.interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEmpty(buf *bytes.Buffer, r renderer) {
	const w, h = 320.0, 80.0
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" data-mode="%s">`+"\n",
		w, h, w, h, layout.ModeEmpty)
	if r.title != "" {
		fmt.Fprintf(buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(buf, `  <text class="empty" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="14">No employees to display</text>`+"\n",
		w/2, h/2)
	buf.WriteString("</svg>\n")
}

func renderEdges(buf *bytes.Buffer, l layout.Layout) {
	byID := make(map[string]layout.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		byID[n.ID] = n
	}
	for _, e := range l.Edges {
		src, okS := byID[e.Source]
		dst, okD := byID[e.Target]
		if !okS || !okD {
			continue
		}
		x1, y1 := src.CenterX(), src.Bottom()
		x2, y2 := dst.CenterX(), dst.Y
		ym := y1 + (y2-y1)/2
		fmt.Fprintf(buf, `  <path id="%s" class="%s" data-source="%s" data-target="%s" d="M %.1f %.1f V %.1f H %.1f V %.1f"/>`+"\n",
			escapeXML(e.ID), classes("edge", e.Highlighted), escapeXML(e.Source), escapeXML(e.Target), x1, y1, ym, x2, y2)
	}
}

func renderNodes(buf *bytes.Buffer, l layout.Layout) {
	for _, n := range l.Nodes {
		manager := ""
		if n.Employee.HasManager() && l.Mode == layout.ModeTree {
			manager = n.Employee.ManagerID
		}
		fmt.Fprintf(buf, `  <g id="node-%s" class="%s" data-id="%s"`, escapeXML(n.ID), classes("node", n.Highlighted), escapeXML(n.ID))
		if manager != "" {
			fmt.Fprintf(buf, ` data-manager="%s"`, escapeXML(manager))
		}
		buf.WriteString(">\n")
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" ry="6"/>`+"\n",
			n.X, n.Y, n.Width, n.Height)
		renderLabel(buf, n)
		buf.WriteString("  </g>\n")
	}
}

func classes(base string, highlighted bool) string {
	if highlighted {
		return base + " highlight"
	}
	return base
}
