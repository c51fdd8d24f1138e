package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"stats"},
	Short:   "Show the weekly summary, trends and insights",
	Long: `Show the journal dashboard: entries this week, average mood, energy and
sleep, the mood and energy of the last 7 days, the category distribution and
the insights derived from them.

Examples:
  daylog dashboard
  daylog stats`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.ShowDashboard(cmd.Context(), d)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
