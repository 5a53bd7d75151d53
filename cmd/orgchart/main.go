package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRoot().ExecuteContext(ctx)
	stop()

	code := cli.ExitCode(err)
	if err != nil && code != cli.ExitCancelled {
		fmt.Fprintln(os.Stderr, cli.StyleWarning.Render("error:"), err)
	}
	os.Exit(code)
}

// newRoot wires --verbose, whose value is only known after flag parsing.
func newRoot() *cobra.Command {
	var verbose bool
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
	}
	return root
}
