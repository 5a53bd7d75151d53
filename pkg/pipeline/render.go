package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/render"
	"github.com/matzehuels/orgchart/pkg/render/nodelink"
	"github.com/matzehuels/orgchart/pkg/render/svg"
)

// RenderFromLayout renders every requested format from a serialized layout.
// Highlight flags already set on the layout are drawn as-is.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svgDoc []byte // shared by svg, png and pdf

	for _, name := range opts.Formats {
		format, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case render.FormatJSON:
			data, err = graph.MarshalLayout(l)
		case render.FormatDOT:
			data = []byte(nodelink.ToDOT(l.Internal(), nodelink.Options{Detailed: opts.Detailed}))
		case render.FormatSVG, render.FormatPNG, render.FormatPDF:
			if svgDoc == nil {
				svgDoc, err = renderSVG(ctx, l, opts)
				if err != nil {
					return nil, fmt.Errorf("render svg: %w", err)
				}
			}
			switch format {
			case render.FormatSVG:
				data = svgDoc
			case render.FormatPNG:
				data, err = render.ToPNG(ctx, svgDoc, opts.Scale)
			case render.FormatPDF:
				data, err = render.ToPDF(ctx, svgDoc)
			}
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[string(format)] = data
	}

	return artifacts, nil
}

func renderSVG(ctx context.Context, l graph.Layout, opts Options) ([]byte, error) {
	if opts.IsGraphviz() {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(l.Internal(), nodelink.Options{Detailed: opts.Detailed}))
	}
	var svgOpts []svg.Option
	if opts.Interactive {
		svgOpts = append(svgOpts, svg.WithInteraction())
	}
	return svg.Render(l.Internal(), svgOpts...), nil
}
