// Package cli implements the orgchart command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/buildinfo"
	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/config"
	"github.com/matzehuels/orgchart/pkg/directory"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "orgchart"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// status receives progress and summary lines. Results go to the
	// command's stdout instead.
	status     io.Writer
	configPath string
}

// New creates a CLI that logs and reports status to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), status: w}
}

func (c *CLI) ui() printer { return printer{w: c.status} }

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "orgchart lays out company org charts",
		Long: `orgchart turns a flat employee directory into a positioned org chart.

It picks a layout profile from the viewport width, places every employee in a
tree (or a grid when the reporting lines do not form one), highlights the
reporting path of a selected employee and renders the result as JSON, SVG,
DOT, PNG or PDF. The same pipeline is served over HTTP by 'orgchart serve'.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.surveyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewDefaultKeyer()
	if cfg.Cache.Prefix != "" && cfg.Cache.Backend == config.CacheRedis {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Prefix)
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func newCache(ctx context.Context, cc config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cc.Backend == config.CacheFile && cc.Dir == "" {
		if _, err := cache.DefaultDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cc.Open(ctx)
}

// openSource returns the directory to read. An explicit file argument wins
// over the configured source.
func (c *CLI) openSource(ctx context.Context, cfg *config.Config, r *pipeline.Runner, args []string) (directory.Source, error) {
	if len(args) > 0 && args[0] != "" {
		return directory.NewFileSource(args[0]), nil
	}
	if cfg.Directory.Kind == directory.KindFile && cfg.Directory.Path == "" {
		return nil, fmt.Errorf("no employee file given and no directory configured")
	}
	src, err := directory.Open(ctx, cfg.Directory, r.Cache, r.Keyer)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	return src, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// chartFlags are the layout flags shared by every command that lays out the
// directory. Zero values fall back to the [layout] config section.
type chartFlags struct {
	profile string
	width   float64
	height  float64
	noCache bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "force a layout profile (see 'orgchart profiles')")
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width in CSS pixels (selects the profile)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height in CSS pixels")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("profile", completeProfiles)
}

// options builds pipeline options from the flags and the config.
func (f *chartFlags) options(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		Profile:        cfg.Layout.Profile,
		ViewportWidth:  cfg.Layout.ViewportWidth,
		ViewportHeight: cfg.Layout.ViewportHeight,
	}
	if f.width != 0 {
		opts.ViewportWidth = f.width
		opts.Profile = ""
	}
	if f.height != 0 {
		opts.ViewportHeight = f.height
	}
	if f.profile != "" {
		opts.Profile = f.profile
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{string(pipeline.DefaultFormat)}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
