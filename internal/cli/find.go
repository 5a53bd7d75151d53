package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/selection"
)

const (
	findByAuto = "auto"
	findByID   = "id"
	findByName = "name"
)

type findOpts struct {
	by      string
	asJSON  bool
	suggest int
}

type findResult struct {
	Query       string                 `json:"query"`
	Found       bool                   `json:"found"`
	Match       *selection.Match       `json:"match,omitempty"`
	Suggestions []selection.Suggestion `json:"suggestions,omitempty"`
}

func (c *CLI) findCommand() *cobra.Command {
	var flags chartFlags
	fo := findOpts{by: findByAuto, suggest: 5}

	cmd := &cobra.Command{
		Use:   "find QUERY [employees.yaml]",
		Short: "Select an employee by ID or name",
		Long: `Select an employee by ID or name.

Names are matched in tiers and the first tier with a hit wins: exact full
name, a query that starts with the full name ("Jean Dupont, DRH"), first
name, last name, then any part of the full name. Matching ignores case and
accents. Ties go to the employee listed first in the directory.

With --by auto an exact ID match is tried before the name tiers. A query
that matches nobody selects nothing and lists close suggestions.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFind(cmd.Context(), cmd.OutOrStdout(), args[0], args[1:], flags, fo)
		},
	}

	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&fo.by, "by", fo.by, "match on: auto, id, name")
	cmd.Flags().BoolVar(&fo.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().IntVar(&fo.suggest, "suggest", fo.suggest, "suggestions to list when nothing matches")

	return cmd
}

func (c *CLI) runFind(ctx context.Context, w io.Writer, query string, args []string, flags chartFlags, fo findOpts) error {
	switch fo.by {
	case findByAuto, findByID, findByName:
	default:
		return fmt.Errorf("invalid --by %q (must be auto, id or name)", fo.by)
	}

	s, err := c.loadChart(ctx, args, flags)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	res := find(s.chart.Employees(), query, fo)
	if fo.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	out := printer{w: w}
	if !res.Found {
		out.warn("No employee matches %q", query)
		for _, sg := range res.Suggestions {
			out.detail("%s (%s)", sg.Employee.FullName(), sg.Employee.ID)
		}
		return nil
	}
	out.match(s.chart, *res.Match)
	return nil
}

// find applies the selection rules for fo.by. Suggestions are only
// computed on a miss.
func find(emps []org.Employee, query string, fo findOpts) findResult {
	res := findResult{Query: query}
	var (
		m  selection.Match
		ok bool
	)
	if fo.by != findByName {
		m, ok = selection.ByID(emps, query)
	}
	if !ok && fo.by != findByID {
		m, ok = selection.ByName(emps, query)
	}
	if ok {
		res.Found = true
		res.Match = &m
		return res
	}
	if fo.suggest > 0 {
		res.Suggestions = selection.Suggest(emps, query, fo.suggest)
	}
	return res
}

// match prints the selected employee with their manager and team size.
func (p printer) match(chart *org.Chart, m selection.Match) {
	e := m.Employee
	p.success("%s %s", StyleHighlight.Render(e.FullName()), StyleDim.Render("("+m.Tier.String()+" match)"))
	p.keyValue("ID", e.ID)
	if e.Title != "" {
		p.keyValue("Title", e.Title)
	}
	if e.Department != "" {
		p.keyValue("Department", e.Department)
	}
	if mgr, ok := chart.Manager(e.ID); ok {
		p.keyValue("Manager", mgr.FullName()+" ("+mgr.ID+")")
	}
	if n := chart.ChildCount(e.ID); n > 0 {
		p.keyValue("Reports", fmt.Sprintf("%d direct", n))
	}
}
