package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/directory"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/layout"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Runner runs the load, layout and render stages against a shared cache.
// The CLI and the HTTP server both go through it. It keeps no per-run
// state and is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a Runner. Nil arguments select the default keyer, a
// NullCache and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads src, lays the chart out and renders every requested format.
func (r *Runner) Execute(ctx context.Context, src directory.Source, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	loadStart := time.Now()
	chart, err := r.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Chart = chart
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.EmployeeCount = chart.Len()
	result.ChartHash = ChartHash(chart)

	r.Logger.Info("loaded directory",
		"source", src.Name(),
		"employees", chart.Len(),
		"duration", result.Stats.LoadTime)

	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, chart, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = r.Export(l, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EdgeCount = len(l.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"mode", l.Mode,
		"profile", l.Profile.Name,
		"nodes", len(l.Nodes),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load fetches employees from src and indexes them.
func (r *Runner) Load(ctx context.Context, src directory.Source) (*org.Chart, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Name())
	start := time.Now()

	emps, err := src.Employees(ctx)
	if err != nil {
		hooks.OnLoadComplete(ctx, src.Name(), 0, time.Since(start), err)
		return nil, err
	}
	chart, err := org.NewChart(emps)
	hooks.OnLoadComplete(ctx, src.Name(), len(emps), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return chart, nil
}

// ChartHash returns the content hash of a chart's employees.
func ChartHash(c *org.Chart) string {
	if c == nil {
		return cache.HashEmployees(nil)
	}
	return cache.HashEmployees(c.Employees())
}

// ComputeLayoutWithCacheInfo lays c out for the resolved profile, reusing a
// cached layout of the same employees and options. The bool reports a hit.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, c *org.Chart, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	profile := opts.ResolvedProfile()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, profile.Name, chartLen(c))
	start := time.Now()

	cacheKey := r.Keyer.LayoutKey(ChartHash(c), opts.LayoutKeyOpts())

	if !opts.Refresh {
		var cached layout.Layout
		if hit, err := cache.GetJSON(ctx, r.Cache, cacheKey, &cached); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "layout")
			hooks.OnLayoutComplete(ctx, profile.Name, string(cached.Mode), time.Since(start), nil)
			return cached, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l := layout.Build(c, profile)
	hooks.OnLayoutComplete(ctx, profile.Name, string(l.Mode), time.Since(start), nil)

	if l.Mode != layout.ModeTree && chartLen(c) > 0 {
		opts.Logger.Warn("manager data does not form a single tree, using grid layout",
			"roots", len(c.Roots()),
			"employees", c.Len())
	}

	if err := cache.SetJSON(ctx, r.Cache, cacheKey, l, cache.TTLLayout); err == nil {
		observability.Cache().OnCacheSet(ctx, "layout", len(l.Nodes))
	}

	return l, false, nil
}

// ComputeLayout is ComputeLayoutWithCacheInfo without the hit flag.
func (r *Runner) ComputeLayout(ctx context.Context, c *org.Chart, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, c, opts)
	return l, err
}

// Export serializes l with the hover highlight and fitted viewport from opts.
func (r *Runner) Export(l layout.Layout, opts Options) graph.Layout {
	out := exportLayout(l, opts)
	if opts.Hover != "" && out.Highlight == nil {
		r.Logger.Debug("hovered employee not in layout", "id", opts.Hover)
	}
	return out
}

// RenderWithCacheInfo renders opts.Formats from l. Formats already cached
// for this exact layout are reused and only the rest are rendered. The
// bool reports whether every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(data)
	key := func(format string) string {
		return r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	missing := opts.Formats
	if !opts.Refresh {
		missing = nil
		for _, format := range opts.Formats {
			if b, hit, err := r.Cache.Get(ctx, key(format)); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = b
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
			missing = append(missing, format)
		}
		if len(missing) == 0 {
			return artifacts, true, nil
		}
	}

	sub := opts
	sub.Formats = missing
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := RenderFromLayout(ctx, l, sub)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, b := range rendered {
		artifacts[format] = b
		if err := r.Cache.Set(ctx, key(format), b, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(b))
		}
	}
	if len(missing) < len(opts.Formats) {
		opts.Logger.Debug("reused cached artifacts", "rendered", missing, "requested", opts.Formats)
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func chartLen(c *org.Chart) int {
	if c == nil {
		return 0
	}
	return c.Len()
}
