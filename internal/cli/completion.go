package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ioxu/boxer/pkg/container"
	"github.com/ioxu/boxer/pkg/view/plugins"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for boxer.

Bash:
  $ source <(boxer completion bash)

Zsh:
  $ boxer completion zsh > "${fpath[1]}/_boxer"

Fish:
  $ boxer completion fish | source

PowerShell:
  PS> boxer completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeStep completes --step values: action labels and view names after
// the leaf index.
func completeStep(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	leaf, _, ok := strings.Cut(toComplete, ":")
	if !ok {
		return nil, cobra.ShellCompDirectiveNoSpace
	}
	var out []cobra.Completion
	for _, a := range container.Actions() {
		out = append(out, leaf+":"+strings.ReplaceAll(a.String(), " ", "-"))
	}
	for _, n := range plugins.NewCatalog().Names() {
		out = append(out, leaf+":view="+n)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
