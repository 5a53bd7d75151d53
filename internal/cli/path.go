package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
)

type pathResult struct {
	Employee  string           `json:"employee"`
	Profile   string           `json:"profile"`
	Mode      layout.Mode      `json:"mode"`
	Highlight layout.Highlight `json:"highlight"`
}

func (c *CLI) pathCommand() *cobra.Command {
	var (
		flags  chartFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "path EMPLOYEE [employees.yaml]",
		Short: "Show the reporting path from an employee to the top",
		Long: `Show the reporting path from an employee to the top of the chart.

This is the path that is highlighted when the employee is hovered: the
employee, each manager above them, and the reporting lines between them.
EMPLOYEE is an ID or a name. In grid layouts there are no reporting lines,
so only the employee itself is on the path.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(cmd.Context(), cmd.OutOrStdout(), args[0], args[1:], flags, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the highlighted node and edge IDs as JSON")

	return cmd
}

func (c *CLI) runPath(ctx context.Context, w io.Writer, query string, args []string, flags chartFlags, asJSON bool) error {
	s, err := c.loadChart(ctx, args, flags)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	m, err := resolveEmployee(s.chart, query)
	if err != nil {
		return err
	}
	l, _, err := s.layout(ctx)
	if err != nil {
		return err
	}
	h := layout.HighlightPath(l, m.Employee.ID)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pathResult{Employee: m.Employee.ID, Profile: l.Profile.Name, Mode: l.Mode, Highlight: h})
	}

	c.ui().success("Reporting path of %s", StyleHighlight.Render(m.Employee.FullName()))
	for _, line := range pathLines(s.chart, h) {
		fmt.Fprintln(w, line)
	}
	if l.Mode == layout.ModeGrid {
		c.ui().warn("Reporting lines do not form a single tree; only the employee is highlighted")
	}
	return nil
}

// pathLines renders one line per highlighted employee, hovered first.
func pathLines(chart *org.Chart, h layout.Highlight) []string {
	lines := make([]string, 0, len(h.NodeIDs))
	for i, id := range h.NodeIDs {
		e, ok := chart.Employee(id)
		if !ok {
			continue
		}
		prefix := "  "
		if i > 0 {
			prefix = "  " + StyleDim.Render(iconUp) + " "
		}
		line := prefix + StylePath.Render(e.FullName())
		if e.Title != "" {
			line += StyleDim.Render(" · " + e.Title)
		}
		lines = append(lines, line)
	}
	return lines
}
