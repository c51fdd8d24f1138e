package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for daylog.

Shows the configuration file location, whether it exists, and the settings
after defaults, .env files and DAYLOG_* environment variables are applied.
Secrets are masked.

By default daylog talks to a hosted account backend, which needs its URL and
anon key. Set backend = "local" to keep entries in a file on this machine, or
backend = "postgres" with a DSN to use your own database.

Examples:
  daylog config              Show all current settings
  daylog config --init       Create a sample config file

Configuration file location:
  ~/.config/daylog/config.toml          Linux/macOS
  %APPDATA%\daylog\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d := configDeps()
		if d == nil {
			return
		}
		if create, _ := cmd.Flags().GetBool("init"); create {
			handlers.InitConfig(d)
			return
		}
		handlers.ShowConfig(d)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Create a sample config file")
}
