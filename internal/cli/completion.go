package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/objective"
	"github.com/matzehuels/jigsaw/pkg/partition"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for jigsaw and print it to stdout.

Completions cover subcommands, flags and the --objective, --strategy and
--aggregation values.

  $ source <(jigsaw completion bash)
  $ jigsaw completion zsh > "${fpath[1]}/_jigsaw"
  $ jigsaw completion fish > ~/.config/fish/completions/jigsaw.fish
  PS> jigsaw completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.out, true)
			case "zsh":
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(c.out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// registerLayoutCompletions completes the named values of the shared
// layout flags.
func registerLayoutCompletions(cmd *cobra.Command) {
	values := map[string][]string{
		"objective":   objective.Names(),
		"strategy":    {partition.StrategyDynamic, partition.StrategyExhaustive},
		"aggregation": {partition.Mean.String(), partition.Sum.String()},
	}
	for flag, vals := range values {
		_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
	}
}
