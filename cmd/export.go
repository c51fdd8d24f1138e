package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:       "export <csv|json>",
	Short:     "Export every entry as CSV or JSON",
	ValidArgs: []string{"csv", "json"},
	Long: `Export every entry, newest first, as CSV or JSON.

Without --output the file is written to the export directory from the config
file (the current directory by default) and named daylog-export-<date>.<ext>.
Use "-" to write to standard output, or an s3:// URL to upload the export to
a bucket.

Examples:
  daylog export csv                                   Write daylog-export-<date>.csv
  daylog export json -o backup.json                   Write to a file
  daylog export json -o - | jq length                 Pipe to another tool
  daylog export csv -o s3://my-bucket/journal.csv     Upload to S3`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.ExportEntries(cmd.Context(), d, args[0], output)
		}
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import entries from a JSON export",
	Long: `Import entries from a JSON file produced by 'daylog export json'.

Imported entries are added to your journal; existing entries are kept. Use
"-" to read from standard input.

Examples:
  daylog import daylog-export-2024-03-10.json
  cat backup.json | daylog import -`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if d := requireDeps(cmd.Context()); d != nil {
			handlers.ImportEntries(cmd.Context(), d, args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringP("output", "o", "", "Destination: a file path, - for stdout, or s3://bucket/key")
}
