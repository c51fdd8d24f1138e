package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/filter"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a shell completion script for daylog on standard output.

Completion covers commands, flags and the category names accepted by
--category.

Examples:
  source <(daylog completion bash)
  daylog completion bash > ~/.local/share/bash-completion/completions/daylog
  daylog completion zsh > "${fpath[1]}/_daylog"
  daylog completion fish > ~/.config/fish/completions/daylog.fish
  daylog completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// completeCategories completes --category with the known category names.
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := []string{filter.CategoryAll}
	if cmd != rootCmd && cmd != searchCmd {
		names = nil
	}
	for _, c := range entry.Categories {
		names = append(names, string(c))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(out io.Writer, shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(out)
	case "zsh":
		err = rootCmd.GenZshCompletion(out)
	case "fish":
		err = rootCmd.GenFishCompletion(out, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(out)
	default:
		_, _ = fmt.Fprintf(stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(stderr, "Supported shells: bash, zsh, fish, powershell")
		exitFunc(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		exitFunc(1)
		return
	}
}
