// Package render turns computed org chart layouts into visual outputs.
//
// # Overview
//
// This package holds what every renderer shares: the list of output
// [Format] values and conversion from SVG to raster or print formats.
//
//   - Native SVG with hover highlighting (in [svg] subpackage)
//   - Node-link diagrams through Graphviz (in [nodelink] subpackage)
//
// # Format Conversion
//
// [ToPNG] and [ToPDF] shell out to rsvg-convert from librsvg. When it is
// missing they fail with an UNSUPPORTED error; check [Available] first to
// offer only the formats the host can produce.
//
//	doc := svg.Render(l, svg.WithInteraction())
//	png, err := render.ToPNG(ctx, doc, 2)
//
// [svg]: github.com/matzehuels/orgchart/pkg/render/svg
// [nodelink]: github.com/matzehuels/orgchart/pkg/render/nodelink
package render
