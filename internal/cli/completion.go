package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/racklayout/pkg/cache"
)

// configExtensions are offered when completing configuration arguments.
var configExtensions = []string{"json", "toml", "yaml", "yml"}

// configArgs completes the single configuration (or layout) file argument.
func configArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return configExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// registerCompletions wires argument and flag completion into the command tree.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "layout", "validate", "inspect":
			cmd.ValidArgsFunction = configArgs
			_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
				[]string{"json", "toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
		case "serve":
			_ = cmd.RegisterFlagCompletionFunc("cache", cobra.FixedCompletions(
				cache.Backends, cobra.ShellCompDirectiveNoFileComp))
		}
	}
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for racklayout.

To load completions:

  bash:       source <(racklayout completion bash)
  zsh:        racklayout completion zsh > "${fpath[1]}/_racklayout"
  fish:       racklayout completion fish | source
  powershell: racklayout completion powershell | Out-String | Invoke-Expression

Configuration arguments complete to .json, .toml and .yaml files, and the
--format and --cache flags complete to their accepted values.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
