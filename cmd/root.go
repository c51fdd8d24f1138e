package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
	"github.com/xolan/daylog/internal/entry"
	"github.com/xolan/daylog/internal/filter"
	"github.com/xolan/daylog/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "daylog",
	Short: "A personal journal for the terminal",
	Long: `daylog is a personal journaling client. Entries belong to a category
(journal, wellness, food, exercise, social, learning, creative, career or
events) and are stored in your hosted account, a local file or a Postgres
database.

Usage:
  daylog                                     List your entries, newest first
  daylog --category wellness --date today    List filtered entries
  daylog add -c journal -t "Morning pages"   Add an entry
  daylog search <text>                       Search titles, content, tags and details
  daylog dashboard                           Weekly summary, trends and insights
  daylog export csv|json                     Export every entry
  daylog import <file>                       Import a JSON export
  daylog clear                               Delete every entry (with confirmation)
  daylog login | signup | logout | whoami    Manage your account
  daylog tui                                 Open the interactive journal`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		listEntries(cmd)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check local storage file health",
	Long:  `Validate the local entries file and report on its health status, including any corrupted lines.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.ValidateStorage(d)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	addFilterFlags(rootCmd)
	_ = rootCmd.RegisterFlagCompletionFunc("category", completeCategories)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"daylog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command. An interrupt cancels in-flight requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer ResetDeps()
	return rootCmd.ExecuteContext(ctx)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Only entries containing this text")
	cmd.Flags().StringP("category", "c", "", "Only entries of this category (or 'all')")
	cmd.Flags().StringP("date", "d", "", "Only entries on this date (YYYY-MM-DD, DD/MM/YYYY, today, yesterday)")
	cmd.Flags().String("time", "", "Only entries at this time (HH:MM)")
}

// filterFromFlags builds the entry filter from the filter flags. It
// reports invalid values and returns nil.
func filterFromFlags(cmd *cobra.Command) *filter.Filter {
	text, _ := cmd.Flags().GetString("text")
	category, _ := cmd.Flags().GetString("category")
	date, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")

	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && category != filter.CategoryAll {
		c, err := entry.ParseCategory(category)
		if err != nil {
			flagError(err, "Valid categories: all, "+categoryNames())
			return nil
		}
		category = string(c)
	}

	if date != "" {
		normalized, err := resolveDate(date)
		if err != nil {
			flagError(err, "")
			return nil
		}
		date = normalized
	}

	if clock != "" {
		normalized, err := timeutil.NormalizeClock(clock)
		if err != nil {
			flagError(err, "Use 24-hour HH:MM, for example 07:30 or 21:05")
			return nil
		}
		clock = normalized
	}

	return filter.NewFilter(text, category, date, clock)
}

// resolveDate accepts "today", "yesterday" and the formats of
// timeutil.ParseDate, and returns YYYY-MM-DD.
func resolveDate(input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "today":
		return timeutil.DateString(now()), nil
	case "yesterday":
		return timeutil.DateString(now().AddDate(0, 0, -1)), nil
	}
	return timeutil.NormalizeDate(input)
}

func flagError(err error, hint string) {
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	if hint != "" {
		_, _ = fmt.Fprintf(stderr, "Hint: %s\n", hint)
	}
	exitFunc(1)
}

func categoryNames() string {
	names := make([]string, len(entry.Categories))
	for i, c := range entry.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// listEntries lists the entries matching the filter flags
func listEntries(cmd *cobra.Command) {
	f := filterFromFlags(cmd)
	if f == nil {
		return
	}
	d := requireDeps(cmd.Context())
	if d == nil {
		return
	}
	handlers.ListEntries(cmd.Context(), d, f)
}
