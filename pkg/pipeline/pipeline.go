// Package pipeline turns a directory of employees into laid-out, rendered
// org charts. The CLI and the HTTP server both call into it, so profile
// resolution, caching and rendering behave the same from either side.
//
// A run has three stages, each callable on its own through [Runner]:
//
//  1. Load reads a [directory.Source] into an [org.Chart].
//  2. Layout places the chart for a responsive profile. A single rooted
//     hierarchy becomes a tree; anything else falls back to a grid.
//  3. Render writes JSON, SVG, DOT, PNG or PDF from the exported layout.
//
// Layouts are cached by employee content hash and layout options;
// artifacts by layout hash and render options.
//
//	r := pipeline.NewRunner(fc, nil, logger)
//	res, err := r.Execute(ctx, src, pipeline.Options{
//	    ViewportWidth: 1280,
//	    Hover:         "e42",
//	    Formats:       []string{"svg", "png"},
//	})
//
// Callers holding a chart already skip the load stage:
//
//	l, err := r.ComputeLayout(ctx, chart, opts)
//	artifacts, err := r.Render(ctx, r.Export(l, opts), opts)
package pipeline

import (
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/render"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

// Rendering engines.
const (
	// EngineNative draws the computed layout directly as SVG.
	EngineNative = "native"
	// EngineGraphviz hands the chart to Graphviz, which positions it itself.
	EngineGraphviz = "graphviz"
)

const (
	DefaultEngine = EngineNative
	DefaultFormat = render.FormatSVG // rendered when no formats are requested
)

var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// Options configures one pipeline run. It doubles as the JSON body of the
// HTTP render endpoint.
type Options struct {
	Profile        string  `json:"profile,omitempty"`         // tier name; overrides ViewportWidth
	ViewportWidth  float64 `json:"viewport_width,omitempty"`  // resolves the tier when Profile is empty
	ViewportHeight float64 `json:"viewport_height,omitempty"` // used with ViewportWidth to fit the viewport

	Hover       string   `json:"hover,omitempty"` // employee whose path to the root is highlighted
	Formats     []string `json:"formats,omitempty"`
	Engine      string   `json:"engine,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`    // graphviz labels include department and ID
	Interactive bool     `json:"interactive,omitempty"` // native SVG embeds the hover script
	Scale       float64  `json:"scale,omitempty"`       // PNG scale factor

	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	profile   responsive.Profile
	validated bool
}

// Result is what [Runner.Execute] produced.
type Result struct {
	Chart     *org.Chart
	ChartHash string            // content hash of the employees, see [ChartHash]
	Layout    graph.Layout      // exported with viewport and highlight
	Artifacts map[string][]byte // keyed by format name
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds counts and per-stage durations.
type Stats struct {
	EmployeeCount int
	EdgeCount     int
	LoadTime      time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every requested format was cached
}

// ValidateFormats rejects unknown format names.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return orgerrors.Wrap(orgerrors.ErrCodeInvalidFormat, err, "invalid format")
		}
	}
	return nil
}

// ValidateEngine rejects unknown rendering engines.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ValidateAndSetDefaults prepares o for a full run. Repeated calls are
// no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout resolves the responsive profile from Profile, or from
// ViewportWidth when no profile is named.
func (o *Options) ValidateForLayout() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Profile != "" {
		p, ok := responsive.ByName(o.Profile)
		if !ok {
			return orgerrors.New(orgerrors.ErrCodeInvalidInput, "unknown profile %q", o.Profile)
		}
		o.profile = p
		return nil
	}
	if o.ViewportWidth == 0 {
		o.ViewportWidth = responsive.DefaultViewportWidth
	}
	if err := responsive.ValidateWidth(o.ViewportWidth); err != nil {
		return err
	}
	o.profile = responsive.Resolve(o.ViewportWidth)
	o.Profile = o.profile.Name
	return nil
}

// SetRenderDefaults fills in formats, engine and scale and normalizes
// format names.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	for i, f := range o.Formats {
		if p, err := render.ParseFormat(f); err == nil {
			o.Formats[i] = string(p)
		}
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Scale <= 0 {
		o.Scale = render.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// ResolvedProfile returns the profile chosen by ValidateForLayout.
func (o *Options) ResolvedProfile() responsive.Profile {
	if o.profile.Name == "" {
		_ = o.ValidateForLayout()
	}
	return o.profile
}

// Screen returns the screen size used to fit the viewport. A zero size lets
// [graph.Export] pick a default.
func (o *Options) Screen() responsive.Size {
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		return responsive.Size{}
	}
	return responsive.Size{Width: o.ViewportWidth, Height: o.ViewportHeight}
}

// IsGraphviz reports whether Graphviz positions the chart.
func (o *Options) IsGraphviz() bool {
	return o.Engine == EngineGraphviz
}

// LayoutKeyOpts is the option part of the layout cache key.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Profile: o.ResolvedProfile().Name}
}

// ArtifactKeyOpts is the option part of an artifact cache key. Every flag
// that changes the rendered bytes is folded into Engine.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	engine := o.Engine
	if o.Detailed {
		engine += "+detailed"
	}
	if o.Interactive {
		engine += "+interactive"
	}
	if format == string(render.FormatPNG) {
		engine += "@" + strconv.FormatFloat(o.Scale, 'f', 2, 64)
	}
	return cache.ArtifactKeyOpts{
		Format:  format,
		Hovered: o.Hover,
		Engine:  engine,
	}
}
