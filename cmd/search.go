package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search entries by text",
	Long: `Search entries for text in the title, content, tags and descriptive
details such as mood, exercise type or skill.

The search is case-insensitive. The filter flags narrow the results further.

Examples:
  daylog search coffee                     Entries mentioning coffee
  daylog search "code review"              Multi-word search
  daylog search happy -c wellness          Wellness entries with a happy mood
  daylog search run --date 2024-03-10      Matches on a given day`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		searchEntries(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("category", "c", "", "Only entries of this category (or 'all')")
	searchCmd.Flags().StringP("date", "d", "", "Only entries on this date")
	searchCmd.Flags().String("time", "", "Only entries at this time (HH:MM)")
	_ = searchCmd.RegisterFlagCompletionFunc("category", completeCategories)
}

// searchEntries handles the search command logic
func searchEntries(cmd *cobra.Command, args []string) {
	f := filterFromFlags(cmd)
	if f == nil {
		return
	}
	d := requireDeps(cmd.Context())
	if d == nil {
		return
	}
	handlers.SearchEntries(cmd.Context(), d, strings.Join(args, " "), f)
}
