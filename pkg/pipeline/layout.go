package pipeline

import (
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout positions c and exports it without touching any cache.
// This is the entry point for callers that already hold a chart, such as
// the interactive browser, which re-lays out on every resize.
func GenerateLayout(c *org.Chart, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	return exportLayout(layout.Build(c, opts.ResolvedProfile()), opts), nil
}

// exportLayout serializes l with the hover highlight and fitted viewport
// from opts.
func exportLayout(l layout.Layout, opts Options) graph.Layout {
	var h layout.Highlight
	if opts.Hover != "" {
		h = layout.HighlightPath(l, opts.Hover)
	}
	return graph.Export(l, opts.Screen(), h)
}
