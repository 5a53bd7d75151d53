// Package nodelink renders org charts as Graphviz node-link diagrams.
//
// # Overview
//
// This package is the alternative to the native [svg] renderer for readers
// who want Graphviz output: a DOT file they can edit, or an SVG laid out by
// Graphviz's own hierarchical engine instead of the subtree-width
// positioner.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, convert that SVG with render.ToPDF or render.ToPNG.
//
// # DOT Format
//
// Nodes are emitted in layout order so sibling order matches the tree
// layout. Highlighted nodes and edges are drawn with a thicker blue
// outline. Grid layouts carry no reporting lines, so their DOT has no
// edges either.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [svg]: github.com/matzehuels/orgchart/pkg/render/svg
package nodelink
