package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/responsive"
	"github.com/matzehuels/orgchart/pkg/selection"
)

// cellWidthPx approximates one terminal column in CSS pixels, so that the
// terminal width selects a profile the way a browser viewport would.
const cellWidthPx = 8

// browseChrome is the number of lines used by the header and footer.
const browseChrome = 6

var (
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	browseDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// layoutFunc positions the chart for a profile.
type layoutFunc func(responsive.Profile) (layout.Layout, error)

// relayoutMsg reports the settled terminal width after a resize burst.
type relayoutMsg struct{ cols int }

// =============================================================================
// browseModel - interactive chart explorer
// =============================================================================

// browseModel lists the laid-out chart as an outline. The cursor is the
// hovered employee: its reporting path is highlighted on every move.
type browseModel struct {
	chart     *org.Chart
	layoutFor layoutFunc
	resize    *responsive.Debouncer[int] // nil relayouts on every resize
	pinned    bool                       // profile forced, ignore resizes

	profile   responsive.Profile
	layout    layout.Layout
	highlight layout.Highlight

	cursor int
	offset int
	height int
	cols   int

	searching bool
	query     string
	status    string

	selected string
}

func newBrowseModel(chart *org.Chart, p responsive.Profile, pinned bool, layoutFor layoutFunc, resize *responsive.Debouncer[int]) (browseModel, error) {
	m := browseModel{
		chart:     chart,
		layoutFor: layoutFor,
		resize:    resize,
		pinned:    pinned,
		height:    15,
	}
	if err := m.relayout(p); err != nil {
		return browseModel{}, err
	}
	return m, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown":
			m.move(m.height)
		case "home", "g":
			m.move(-len(m.layout.Nodes))
		case "end", "G":
			m.move(len(m.layout.Nodes))
		case "/":
			m.searching = true
			m.query = ""
			m.status = ""
		case "enter":
			if n, ok := m.current(); ok {
				m.selected = n.ID
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(3, msg.Height-browseChrome)
		m.scroll()
		if m.pinned {
			m.cols = msg.Width
			return m, nil
		}
		if m.resize != nil {
			m.resize.Trigger(msg.Width)
			return m, nil
		}
		cols := msg.Width
		return m, func() tea.Msg { return relayoutMsg{cols: cols} }
	case relayoutMsg:
		m.cols = msg.cols
		p := responsive.Resolve(float64(msg.cols * cellWidthPx))
		if p.Name != m.profile.Name {
			if err := m.relayout(p); err != nil {
				m.status = err.Error()
			}
		}
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
	case tea.KeyEnter:
		m.searching = false
		m.jumpTo(m.query)
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	}
	return m, nil
}

// jumpTo moves the cursor to the employee selected by query.
func (m *browseModel) jumpTo(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	match, ok := selection.ByName(m.chart.Employees(), query)
	if !ok {
		m.status = fmt.Sprintf("no employee matches %q", query)
		return
	}
	m.status = fmt.Sprintf("%s (%s match)", match.Employee.FullName(), match.Tier)
	m.focus(match.Employee.ID)
}

// relayout positions the chart for p, keeping the cursor on the same employee.
func (m *browseModel) relayout(p responsive.Profile) error {
	keep := ""
	if n, ok := m.current(); ok {
		keep = n.ID
	}
	l, err := m.layoutFor(p)
	if err != nil {
		return err
	}
	m.layout = l
	m.profile = p
	m.cursor = 0
	if keep != "" {
		m.focus(keep)
		return nil
	}
	m.hover()
	return nil
}

func (m *browseModel) focus(id string) {
	for i, n := range m.layout.Nodes {
		if n.ID == id {
			m.cursor = i
			break
		}
	}
	m.scroll()
	m.hover()
}

func (m *browseModel) move(delta int) {
	if len(m.layout.Nodes) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.layout.Nodes)-1, m.cursor+delta))
	m.scroll()
	m.hover()
}

func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// hover highlights the reporting path of the employee under the cursor.
func (m *browseModel) hover() {
	n, ok := m.current()
	if !ok {
		m.highlight = layout.Highlight{}
		return
	}
	m.highlight = layout.HighlightPath(m.layout, n.ID)
}

func (m browseModel) current() (layout.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.layout.Nodes) {
		return layout.Node{}, false
	}
	return m.layout.Nodes[m.cursor], true
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Org Chart"))
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  %s profile · %s · %d employees", m.profile.Name, m.layout.Mode, len(m.layout.Nodes))))
	if m.cols > 0 {
		b.WriteString(browseDimStyle.Render(fmt.Sprintf(" · %d cols ≈ %dpx", m.cols, m.cols*cellWidthPx)))
	}
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ move  / search  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if m.layout.IsEmpty() {
		b.WriteString(browseDimStyle.Render("  No employees to display"))
		b.WriteString("\n")
	}

	end := min(m.offset+m.height, len(m.layout.Nodes))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.row(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.searching:
		b.WriteString(StyleHighlight.Render("/" + m.query + "▏"))
	case m.status != "":
		b.WriteString(browseDimStyle.Render("  " + m.status))
	default:
		b.WriteString(browseDimStyle.Render(fmt.Sprintf("  [%d/%d]  path: %d employees", m.cursor+1, len(m.layout.Nodes), len(m.highlight.NodeIDs))))
	}
	return b.String()
}

func (m browseModel) row(i int) string {
	n := m.layout.Nodes[i]
	cursor := "  "
	if i == m.cursor {
		cursor = "▸ "
	}
	indent := strings.Repeat("  ", n.Depth)
	name := n.Employee.FullName()

	style := browseNormalStyle
	switch {
	case i == m.cursor:
		style = browseCursorStyle
	case m.highlight.HasNode(n.ID):
		style = StylePath
	}

	line := cursor + indent + style.Render(name)
	if n.Employee.Title != "" {
		line += browseDimStyle.Render(" · " + n.Employee.Title)
	}
	line += browseDimStyle.Render(fmt.Sprintf("  (%g, %g)", n.X, n.Y))
	return line
}

// =============================================================================
// browse command
// =============================================================================

func (c *CLI) browseCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "browse [employees.yaml]",
		Short: "Explore the org chart interactively",
		Long: `Explore the org chart interactively.

Moving the cursor hovers an employee and highlights their reporting path.
Resizing the terminal picks the profile for the new width once resizing
settles, unless --profile or --width pins one. Press / to jump to an
employee by name and enter to print the selected employee.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), cmd.OutOrStdout(), args, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, stdout io.Writer, args []string, flags chartFlags) error {
	s, err := c.loadChart(ctx, args, flags)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	pinned := flags.profile != "" || flags.width != 0 || s.cfg.Layout.Profile != ""

	// Logging would draw over the alternate screen.
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	layoutFor := func(p responsive.Profile) (layout.Layout, error) {
		opts := s.opts
		opts.Profile = p.Name
		opts.Logger = quiet
		return s.runner.ComputeLayout(ctx, s.chart, opts)
	}

	var p *tea.Program
	resize := responsive.NewDebouncer(s.cfg.Layout.Debounce, func(cols int) {
		p.Send(relayoutMsg{cols: cols})
	})
	defer resize.Stop()

	m, err := newBrowseModel(s.chart, s.opts.ResolvedProfile(), pinned, layoutFor, resize)
	if err != nil {
		return err
	}
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	if bm, ok := final.(browseModel); ok && bm.selected != "" {
		if match, ok := selection.ByID(s.chart.Employees(), bm.selected); ok {
			printer{w: stdout}.match(s.chart, match)
		}
	}
	return nil
}
