package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the local file cache",
		Long: `Inspect or empty the local file cache of layouts, rendered artifacts and
directory responses. A Redis cache is shared with other instances and is
left alone.`,
	}
	cmd.AddCommand(
		c.cacheSweepCommand("clear", "Remove every cached entry", (*cache.FileCache).Clear),
		c.cacheSweepCommand("prune", "Remove expired and unreadable entries", (*cache.FileCache).Prune),
		c.cacheStatsCommand(),
		c.cachePathCommand(),
	)
	return cmd
}

// localCacheDir resolves the file cache directory from the config.
func (c *CLI) localCacheDir() (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Cache.Backend != config.CacheFile {
		return "", fmt.Errorf("cache backend is %q; only the file cache is managed locally", cfg.Cache.Backend)
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// openLocalCache opens the file cache, or returns nil when it was never
// created.
func (c *CLI) openLocalCache() (*cache.FileCache, error) {
	dir, err := c.localCacheDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheSweepCommand(use, short string, sweep func(*cache.FileCache) (int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui := c.ui()
			fc, err := c.openLocalCache()
			if err != nil {
				return err
			}
			if fc == nil {
				ui.info("Cache is empty")
				return nil
			}
			n, err := sweep(fc)
			if err != nil {
				return fmt.Errorf("%s cache: %w", use, err)
			}
			ui.success("Removed %d cached %s", n, plural(n, "entry", "entries"))
			ui.detail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.openLocalCache()
			if err != nil {
				return err
			}
			out := printer{w: cmd.OutOrStdout()}
			if fc == nil {
				out.keyValue("entries", "0")
				return nil
			}
			n, size, err := fc.Usage()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			out.keyValue("directory", fc.Dir())
			out.keyValue("entries", fmt.Sprint(n))
			out.keyValue("size", humanBytes(size))
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.localCacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// humanBytes formats n with a binary unit, e.g. "1.5 KiB".
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
