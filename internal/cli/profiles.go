package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/responsive"
)

func (c *CLI) profilesCommand() *cobra.Command {
	var (
		width  float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the responsive layout profiles",
		Long: `List the responsive layout profiles.

Each tier applies from its minimum viewport width up to the next tier. Wider
tiers use bigger boxes, more spacing, more grid columns and a smaller default
zoom. With --width the tier selected for that width is marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active := ""
			if cmd.Flags().Changed("width") {
				if err := responsive.ValidateWidth(width); err != nil {
					return err
				}
				active = responsive.Resolve(width).Name
			}
			if asJSON {
				return writeProfilesJSON(cmd.OutOrStdout(), active)
			}
			fmt.Fprintln(cmd.OutOrStdout(), profilesTable(responsive.Profiles(), active))
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "mark the tier chosen for this viewport width")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the profiles as JSON")

	return cmd
}

func writeProfilesJSON(w io.Writer, active string) error {
	out := struct {
		Profiles []responsive.Profile `json:"profiles"`
		Resolved string               `json:"resolved,omitempty"`
	}{responsive.Profiles(), active}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// profilesTable renders profiles with the active tier emphasized.
func profilesTable(profiles []responsive.Profile, active string) string {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		marker := "  "
		if p.Name == active {
			marker = "▸ "
		}
		rows = append(rows, []string{
			marker + p.Name,
			tierRange(profiles, p),
			fmt.Sprintf("%s×%s", fmtPx(p.NodeWidth), fmtPx(p.NodeHeight)),
			fmt.Sprintf("%s / %s", fmtPx(p.HorizontalSpacing), fmtPx(p.VerticalSpacing)),
			strconv.FormatFloat(p.Zoom, 'f', 2, 64),
			strconv.Itoa(p.GridColumns),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tier", "Viewport", "Node", "Spacing h/v", "Zoom", "Grid").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row >= 0 && row < len(profiles) && profiles[row].Name == active {
				return StyleHighlight.Bold(true)
			}
			if col == 0 {
				return StyleValue
			}
			return styleNote
		}).
		Render()
}

// tierRange describes the viewport widths covered by p.
func tierRange(profiles []responsive.Profile, p responsive.Profile) string {
	for i, q := range profiles {
		if q.Name != p.Name {
			continue
		}
		if i+1 < len(profiles) {
			return fmt.Sprintf("%s–%s", fmtPx(p.MinWidth), fmtPx(profiles[i+1].MinWidth-1))
		}
		return "≥" + fmtPx(p.MinWidth)
	}
	return ""
}

func fmtPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
