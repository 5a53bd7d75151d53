package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/render"
)

// stdoutPath selects standard output in --output flags.
const stdoutPath = "-"

// renderOpts holds the render-only flags.
type renderOpts struct {
	output      string  // output file (single format) or base path
	formats     string  // comma-separated formats
	engine      string  // native or graphviz
	hover       string  // employee ID or name to highlight
	detailed    bool    // graphviz labels include department and ID
	interactive bool    // native SVG embeds the hover script
	scale       float64 // PNG scale factor
}

func (c *CLI) renderCommand() *cobra.Command {
	var flags chartFlags
	ro := renderOpts{engine: pipeline.DefaultEngine, interactive: true, scale: render.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [employees.yaml]",
		Short: "Render the org chart to SVG, PNG, PDF, DOT or JSON",
		Long: `Render the org chart to one or more formats.

The native engine draws the computed layout (tree or grid) directly as SVG,
with the hover script that highlights reporting paths in a browser. The
graphviz engine hands the reporting lines to Graphviz instead. PNG and PDF
are converted from the SVG and need rsvg-convert on PATH.

With a single format, --output names the file. With several formats it is a
base path and the format is appended as extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args, flags, ro)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&ro.engine, "engine", "e", ro.engine, "rendering engine: native, graphviz")
	cmd.Flags().StringVar(&ro.hover, "hover", "", "employee ID or name whose reporting path is highlighted")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "include department and ID in graphviz labels")
	cmd.Flags().BoolVar(&ro.interactive, "interactive", ro.interactive, "embed the hover script in native SVG")
	cmd.Flags().Float64Var(&ro.scale, "scale", ro.scale, "PNG scale factor")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("engine", completeEngines)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout io.Writer, args []string, flags chartFlags, ro renderOpts) error {
	formats := parseFormats(ro.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if err := pipeline.ValidateEngine(ro.engine); err != nil {
		return err
	}

	s, err := c.loadChart(ctx, args, flags)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	s.opts.Formats = formats
	s.opts.Engine = ro.engine
	s.opts.Detailed = ro.detailed
	s.opts.Interactive = ro.interactive
	s.opts.Scale = ro.scale
	s.opts.SetRenderDefaults()
	if ro.hover != "" {
		m, err := resolveEmployee(s.chart, ro.hover)
		if err != nil {
			return err
		}
		s.opts.Hover = m.Employee.ID
	}

	ui := c.ui()
	spin := c.spinner(ctx, fmt.Sprintf("Laying out %d employees...", s.chart.Len()))
	l, layoutHit, err := s.layout(ctx)
	if err != nil {
		spin.fail(ui, "Layout failed")
		return err
	}

	spin.update("Rendering " + strings.Join(s.opts.Formats, ", ") + "...")
	artifacts, renderHit, err := s.runner.RenderWithCacheInfo(ctx, s.runner.Export(l, s.opts), s.opts)
	if err != nil {
		spin.fail(ui, "Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spin.end()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(ro.output, args, s.opts.Formats)
	for _, f := range s.opts.Formats {
		if err := writeOutput(stdout, paths[f], artifacts[f]); err != nil {
			return err
		}
	}
	if paths[s.opts.Formats[0]] == stdoutPath {
		return nil
	}

	ui.success("Rendered %s (%s profile, %s engine)", strings.Join(s.opts.Formats, ", "), l.Profile.Name, s.opts.Engine)
	for _, f := range s.opts.Formats {
		ui.file(paths[f])
	}
	ui.stats(s.chart.Len(), len(l.Edges), string(l.Mode), layoutHit && renderHit)
	if s.opts.Hover != "" {
		ui.detail("Highlighted reporting path of %s", s.opts.Hover)
	}
	return nil
}

// outputPaths maps each format to its destination file.
func outputPaths(output string, args []string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, inputBase(args))
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output. An empty output
// uses fallback.
func basePath(output, fallback string) string {
	if output == "" || output == stdoutPath {
		return fallback
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
