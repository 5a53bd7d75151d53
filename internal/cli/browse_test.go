package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

func browseChart() *org.Chart {
	return org.MustChart([]org.Employee{
		{ID: "ceo", Name: "Claire Durand", Title: "CEO"},
		{ID: "cto", Name: "Marc Lefèvre", Title: "CTO", ManagerID: "ceo"},
		{ID: "dev", Name: "Éloïse Martin", Title: "Developer", ManagerID: "cto"},
		{ID: "cfo", Name: "Jean Dupont", Title: "CFO", ManagerID: "ceo"},
	})
}

func buildLayout(c *org.Chart) layoutFunc {
	return func(p responsive.Profile) (layout.Layout, error) {
		return layout.Build(c, p), nil
	}
}

func newTestBrowse(t *testing.T, pinned bool) browseModel {
	t.Helper()
	c := browseChart()
	m, err := newBrowseModel(c, responsive.Resolve(600), pinned, buildLayout(c), nil)
	if err != nil {
		t.Fatalf("newBrowseModel: %v", err)
	}
	return m
}

func press(m browseModel, keys ...tea.KeyMsg) browseModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(browseModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestBrowseCursorHighlightsPath(t *testing.T) {
	m := newTestBrowse(t, false)
	if diff := cmp.Diff([]string{"ceo"}, m.highlight.NodeIDs); diff != "" {
		t.Errorf("initial highlight mismatch (-want +got):\n%s", diff)
	}

	// Pre-order: ceo, cto, dev, cfo.
	m = press(m, keyDown, keyDown)
	if n, _ := m.current(); n.ID != "dev" {
		t.Fatalf("cursor on %q, want dev", n.ID)
	}
	want := layout.Highlight{
		NodeIDs: []string{"dev", "cto", "ceo"},
		EdgeIDs: []string{"e-cto-dev", "e-ceo-cto"},
	}
	if diff := cmp.Diff(want, m.highlight); diff != "" {
		t.Errorf("highlight mismatch (-want +got):\n%s", diff)
	}

	m = press(m, keyUp, keyUp, keyUp)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}
}

func TestBrowseResizeRelayouts(t *testing.T) {
	m := newTestBrowse(t, false)
	if m.profile.Name != responsive.TierMobile {
		t.Fatalf("profile = %q, want mobile", m.profile.Name)
	}
	m = press(m, keyDown)

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	if cmd == nil {
		t.Fatal("resize without debouncer should return a relayout command")
	}
	next, _ = next.(browseModel).Update(cmd())
	m = next.(browseModel)

	if m.profile.Name != responsive.TierDesktop {
		t.Errorf("profile after resize = %q, want desktop", m.profile.Name)
	}
	if m.layout.Profile.Name != responsive.TierDesktop {
		t.Errorf("layout profile = %q, want desktop", m.layout.Profile.Name)
	}
	if n, _ := m.current(); n.ID != "cto" {
		t.Errorf("cursor moved to %q across relayout, want cto", n.ID)
	}
	if m.height != 40-browseChrome {
		t.Errorf("height = %d", m.height)
	}
}

func TestBrowsePinnedIgnoresResize(t *testing.T) {
	m := newTestBrowse(t, true)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 300, Height: 20})
	if cmd != nil {
		t.Error("pinned profile should not relayout")
	}
	if got := next.(browseModel).profile.Name; got != responsive.TierMobile {
		t.Errorf("profile = %q, want mobile", got)
	}
}

func TestBrowseSearch(t *testing.T) {
	m := newTestBrowse(t, false)
	m = press(m, runes("/"), runes("eloise"), keyEnter)
	if m.searching {
		t.Fatal("enter should leave search mode")
	}
	if n, _ := m.current(); n.ID != "dev" {
		t.Errorf("search moved cursor to %q, want dev", n.ID)
	}
	if !strings.Contains(m.status, "first_name") {
		t.Errorf("status = %q, want the match tier", m.status)
	}

	m = press(m, runes("/"), runes("nobody"), keyEnter)
	if n, _ := m.current(); n.ID != "dev" {
		t.Errorf("failed search moved cursor to %q", n.ID)
	}
	if !strings.Contains(m.status, "no employee matches") {
		t.Errorf("status = %q", m.status)
	}
}

func TestBrowseSelectQuits(t *testing.T) {
	m := newTestBrowse(t, false)
	m = press(m, keyDown)
	next, cmd := m.Update(keyEnter)
	if cmd == nil {
		t.Fatal("enter should quit")
	}
	if got := next.(browseModel).selected; got != "cto" {
		t.Errorf("selected = %q, want cto", got)
	}
}

func TestBrowseView(t *testing.T) {
	m := newTestBrowse(t, false)
	m = press(m, keyDown, keyDown)
	view := m.View()
	for _, want := range []string{"Org Chart", "mobile profile", "Claire Durand", "Éloïse Martin", "[3/4]", "path: 3 employees"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseEmptyChart(t *testing.T) {
	c := org.MustChart(nil)
	m, err := newBrowseModel(c, responsive.Resolve(1280), false, buildLayout(c), nil)
	if err != nil {
		t.Fatal(err)
	}
	m = press(m, keyDown, keyEnter)
	if m.selected != "" {
		t.Errorf("selected = %q on empty chart", m.selected)
	}
	if !strings.Contains(m.View(), "No employees to display") {
		t.Error("empty view should say so")
	}
}
