package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/render"
	"github.com/matzehuels/orgchart/pkg/responsive"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for orgchart.

Completion covers commands, flags, profile names, output formats and
rendering engines.

  bash:        source <(orgchart completion bash)
  zsh:         orgchart completion zsh > "${fpath[1]}/_orgchart"
  fish:        orgchart completion fish | source
  powershell:  orgchart completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return root.GenBashCompletion(out)
			}
		},
	}
}

// completeProfiles completes --profile with the tier names and their
// breakpoints as descriptions.
func completeProfiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	profiles := responsive.Profiles()
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Name + "\t" + tierRange(profiles, p) + " px"
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the comma-separated --format list, offering only
// formats not already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done := strings.Split(toComplete, ",")
	prefix := strings.Join(done[:len(done)-1], ",")
	if prefix != "" {
		prefix += ","
	}
	var out []string
	for _, f := range render.Formats {
		if !containsFold(done[:len(done)-1], string(f)) {
			out = append(out, prefix+string(f))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeEngines(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		pipeline.EngineNative + "\tdraw the computed layout",
		pipeline.EngineGraphviz + "\tlet Graphviz position the chart",
	}, cobra.ShellCompDirectiveNoFileComp
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
