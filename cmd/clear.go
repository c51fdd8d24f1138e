package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry",
	Long: `Delete every entry in your journal. You are asked to confirm unless
--yes is given. With the local backend the previous file is kept as a backup
that 'daylog restore' can bring back.

Examples:
  daylog clear
  daylog clear --yes`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.ClearEntries(cmd.Context(), d, yes)
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
