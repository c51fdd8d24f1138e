package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/daylog/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore the local entries file from a backup",
	Long: `Restore the local entries file from a backup. Only the local backend
keeps backups; every write rotates up to 3 of them.

By default, restores from the most recent backup (.bak.1).
Optionally specify a backup number to restore from (1-3).

Examples:
  daylog restore          Restore from most recent backup
  daylog restore 2        Restore from backup #2
  daylog restore --list   Show the available backups`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := requireDeps(cmd.Context())
		if d == nil {
			return
		}
		if list, _ := cmd.Flags().GetBool("list"); list {
			handlers.ListBackups(d)
			return
		}
		n := "1"
		if len(args) > 0 {
			n = args[0]
		}
		handlers.RestoreBackup(cmd.Context(), d, n)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolP("list", "l", false, "List the available backups")
}
