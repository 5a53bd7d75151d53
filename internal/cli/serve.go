package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/directory"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [employees.yaml]",
		Short: "Serve the org chart API over HTTP",
		Long: `Serve the org chart API over HTTP.

The directory, cache and server settings come from the config file and the
ORGCHART_* environment variables. An employee file argument replaces the
configured directory. Layouts and rendered charts are cached in the
configured backend (file, redis or none), so several instances can share a
Redis cache.

Routes: /healthz and /api/{employees,orgchart,profiles,surveys}.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, args []string, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src, err := c.openSource(ctx, cfg, runner, args)
	if err != nil {
		return err
	}
	defer directory.Close(context.WithoutCancel(ctx), src)

	observability.Register(observability.NewLogHooks(c.Logger))
	defer observability.Reset()

	srv := server.New(src, runner,
		server.WithLogger(c.Logger),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
	)

	ui := c.ui()
	ui.success("Serving org chart on %s", StyleHighlight.Render(addr))
	ui.detail("Directory: %s", src.Name())
	backend := cfg.Cache.Backend
	if noCache {
		backend = "none"
	}
	ui.detail("Cache: %s", backend)
	return srv.ListenAndServe(ctx, addr)
}
