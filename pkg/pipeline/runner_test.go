package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/directory"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/org"
)

func sampleSource() directory.Source {
	return directory.NewStaticSource([]org.Employee{
		{ID: "ceo", Name: "Ada Lovelace", Title: "CEO"},
		{ID: "cto", Name: "Grace Hopper", Title: "CTO", ManagerID: "ceo"},
		{ID: "cfo", Name: "Mary Jackson", Title: "CFO", ManagerID: "ceo"},
		{ID: "dev", Name: "Linus Torvalds", ManagerID: "cto"},
	})
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRunnerExecute(t *testing.T) {
	r := newFileRunner(t)
	opts := Options{ViewportWidth: 1280, ViewportHeight: 720, Hover: "dev", Formats: []string{"json", "svg", "dot"}}

	res, err := r.Execute(context.Background(), sampleSource(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.EmployeeCount != 4 || res.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Layout.Mode != layout.ModeTree || res.Layout.Root != "ceo" {
		t.Errorf("layout mode/root = %s/%s", res.Layout.Mode, res.Layout.Root)
	}
	if res.ChartHash == "" {
		t.Error("ChartHash should be set")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	decoded, err := graph.UnmarshalLayout(res.Artifacts["json"])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if decoded.Highlight == nil || strings.Join(decoded.Highlight.NodeIDs, ",") != "dev,cto,ceo" {
		t.Errorf("highlight = %+v", decoded.Highlight)
	}
	if !strings.Contains(string(res.Artifacts["svg"]), `id="node-dev" class="node highlight"`) {
		t.Error("svg artifact missing highlight")
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "digraph G {") {
		t.Error("dot artifact malformed")
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()
	opts := Options{Profile: "tablet", Formats: []string{"svg"}}

	first, err := r.Execute(ctx, sampleSource(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, sampleSource(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, sampleSource(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerProfileChangesLayoutKey(t *testing.T) {
	r := newFileRunner(t)
	ctx := context.Background()
	chart, err := r.Load(ctx, sampleSource())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := r.ComputeLayoutWithCacheInfo(ctx, chart, Options{Profile: "mobile"}); hit {
		t.Error("first mobile layout should miss")
	}
	l, hit, err := r.ComputeLayoutWithCacheInfo(ctx, chart, Options{Profile: "desktop"})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("desktop layout should not reuse the mobile entry")
	}
	if l.Profile.Name != "desktop" {
		t.Errorf("profile = %s", l.Profile.Name)
	}
}

func TestRunnerGridFallback(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	src := directory.NewStaticSource([]org.Employee{
		{ID: "a", Name: "A", ManagerID: "b"},
		{ID: "b", Name: "B", ManagerID: "a"},
		{ID: "c", Name: "C"},
	})
	res, err := r.Execute(context.Background(), src, Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Layout.Mode != layout.ModeGrid || len(res.Layout.Edges) != 0 {
		t.Errorf("mode = %s edges = %d, want grid without edges", res.Layout.Mode, len(res.Layout.Edges))
	}
}

func TestRunnerEmptyDirectory(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), directory.NewStaticSource(nil), Options{Formats: []string{"json", "svg"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Layout.Mode != layout.ModeEmpty {
		t.Errorf("mode = %s, want empty", res.Layout.Mode)
	}
	if !strings.Contains(string(res.Artifacts["svg"]), "No employees") {
		t.Error("empty svg should carry placeholder")
	}
}

func TestRunnerLoadRejectsDuplicates(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	src := directory.NewStaticSource([]org.Employee{{ID: "a"}, {ID: "a"}})
	if _, err := r.Execute(context.Background(), src, Options{}); err == nil {
		t.Error("expected duplicate ID error")
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), sampleSource(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("expected invalid format error")
	}
}

func TestGenerateLayout(t *testing.T) {
	c := org.MustChart([]org.Employee{
		{ID: "ceo", Name: "Ada"},
		{ID: "cto", Name: "Grace", ManagerID: "ceo"},
	})
	l, err := GenerateLayout(c, Options{ViewportWidth: 400, Hover: "cto"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Profile.Name != "mobile-s" {
		t.Errorf("profile = %s", l.Profile.Name)
	}
	if l.Highlight == nil || len(l.Highlight.EdgeIDs) != 1 {
		t.Errorf("highlight = %+v", l.Highlight)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, s)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingHooks) OnLayoutComplete(_ context.Context, _, mode string, _ time.Duration, _ error) {
	h.record("layout:" + mode)
}
func (h *recordingHooks) OnRenderStart(_ context.Context, formats []string) {
	h.record("render:" + strings.Join(formats, ","))
}

func TestRunnerFiresHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), sampleSource(), Options{}); err != nil {
		t.Fatal(err)
	}

	got := strings.Join(hooks.events, " ")
	if got != "load layout:tree render:svg" {
		t.Errorf("events = %q", got)
	}
}

func TestRunnerRendersOnlyMissingFormats(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newFileRunner(t)
	ctx := context.Background()
	chart, err := r.Load(ctx, sampleSource())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Profile: "desktop"}
	l, err := r.ComputeLayout(ctx, chart, opts)
	if err != nil {
		t.Fatal(err)
	}
	exported := r.Export(l, opts)

	opts.Formats = []string{"svg"}
	first, _, err := r.RenderWithCacheInfo(ctx, exported, opts)
	if err != nil {
		t.Fatal(err)
	}

	opts.Formats = []string{"svg", "dot"}
	both, hit, err := r.RenderWithCacheInfo(ctx, exported, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("dot was never rendered, want a partial miss")
	}
	if string(both["svg"]) != string(first["svg"]) || len(both["dot"]) == 0 {
		t.Errorf("artifacts = %d svg bytes, %d dot bytes", len(both["svg"]), len(both["dot"]))
	}

	if _, hit, _ := r.RenderWithCacheInfo(ctx, exported, opts); !hit {
		t.Error("third render should come entirely from the cache")
	}

	want := "load layout:tree render:svg render:dot"
	if got := strings.Join(hooks.events, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}
