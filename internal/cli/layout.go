package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/config"
	"github.com/matzehuels/orgchart/pkg/directory"
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/selection"
)

// chartSession is a loaded directory plus the runner that loaded it.
type chartSession struct {
	cfg    *config.Config
	runner *pipeline.Runner
	source directory.Source
	chart  *org.Chart
	opts   pipeline.Options
}

// loadChart opens the directory named by args (or the configured one),
// loads it and validates the layout options.
func (c *CLI) loadChart(ctx context.Context, args []string, flags chartFlags) (*chartSession, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	src, err := c.openSource(ctx, cfg, runner, args)
	if err != nil {
		runner.Close()
		return nil, err
	}
	s := &chartSession{cfg: cfg, runner: runner, source: src, opts: flags.options(cfg)}
	s.opts.Logger = c.Logger
	if err := s.opts.ValidateForLayout(); err != nil {
		s.Close(ctx)
		return nil, err
	}

	prog := newProgress(c.Logger)
	chart, err := runner.Load(ctx, src)
	if err != nil {
		s.Close(ctx)
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	prog.done("Loaded directory", "source", src.Name(), "employees", chart.Len())
	s.chart = chart
	return s, nil
}

// Close releases the source and the cache.
func (s *chartSession) Close(ctx context.Context) {
	_ = directory.Close(ctx, s.source)
	_ = s.runner.Close()
}

// layout computes (or fetches) the layout for the session options.
func (s *chartSession) layout(ctx context.Context) (layout.Layout, bool, error) {
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(ctx, s.chart, s.opts)
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("compute layout: %w", err)
	}
	return l, hit, nil
}

// resolveEmployee finds an employee by ID, then by name. A miss is an error
// that carries the closest suggestions.
func resolveEmployee(chart *org.Chart, query string) (selection.Match, error) {
	emps := chart.Employees()
	if m, ok := selection.ByID(emps, query); ok {
		return m, nil
	}
	if m, ok := selection.ByName(emps, query); ok {
		return m, nil
	}
	msg := fmt.Sprintf("no employee matches %q", query)
	if sugg := selection.Suggest(emps, query, 3); len(sugg) > 0 {
		names := make([]string, len(sugg))
		for i, s := range sugg {
			names[i] = s.Employee.FullName()
		}
		msg += " (did you mean " + strings.Join(names, ", ") + "?)"
	}
	return selection.Match{}, orgerrors.New(orgerrors.ErrCodeEmployeeNotFound, "%s", msg)
}

// inputBase returns the output base name derived from the employee file, or
// appName when the configured directory is used.
func inputBase(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return appName
	}
	return strings.TrimSuffix(args[0], filepath.Ext(args[0]))
}

// =============================================================================
// layout command
// =============================================================================

func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  chartFlags
		output string
		hover  string
	)

	cmd := &cobra.Command{
		Use:   "layout [employees.yaml]",
		Short: "Compute the positioned org chart as JSON",
		Long: `Compute the positioned org chart as JSON.

The employee file may be JSON or YAML. Without a file argument the directory
configured in the [directory] config section is used (file, http or mongo).

The profile is chosen from --width unless --profile forces one. When the
reporting lines do not form a single tree the employees are laid out in a
grid. With --hover the reporting path of that employee is highlighted.

Layouts are cached by directory content and profile.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args, flags, hover, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().StringVar(&hover, "hover", "", "employee ID or name whose reporting path is highlighted")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, stdout io.Writer, args []string, flags chartFlags, hover, output string) error {
	s, err := c.loadChart(ctx, args, flags)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	if hover != "" {
		m, err := resolveEmployee(s.chart, hover)
		if err != nil {
			return err
		}
		s.opts.Hover = m.Employee.ID
	}

	ui := c.ui()
	spin := c.spinner(ctx, fmt.Sprintf("Laying out %d employees...", s.chart.Len()))
	l, cacheHit, err := s.layout(ctx)
	if err != nil {
		spin.fail(ui, "Layout failed")
		return err
	}
	spin.end()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	exported := s.runner.Export(l, s.opts)
	data, err := graph.MarshalLayout(exported)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = inputBase(args) + ".layout.json"
	}
	if err := writeOutput(stdout, outputPath, data); err != nil {
		return err
	}
	if outputPath == stdoutPath {
		return nil
	}

	ui.success("Layout complete (%s profile)", l.Profile.Name)
	ui.file(outputPath)
	ui.stats(s.chart.Len(), len(l.Edges), string(l.Mode), cacheHit)
	if l.Mode == layout.ModeGrid {
		ui.warn("Reporting lines do not form a single tree; employees are shown in a grid")
	}
	ui.nextStep("Render", strings.TrimSpace("orgchart render "+strings.Join(args, " ")))

	return nil
}
