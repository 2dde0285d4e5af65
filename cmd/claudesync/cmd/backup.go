package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barysiuk/claudesync/internal/tui"
)

// backupListLimit is how many backups 'backup list' shows.
const backupListLimit = 10

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Inspect pre-sync backups",
	Long:  `Every sync snapshots both environments first. These commands inspect the snapshots.`,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		records, err := d.backups.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(out, "No backups found.")
			return nil
		}

		fmt.Fprintln(out, tui.Heading("Backups:"))
		for _, r := range records[:min(len(records), backupListLimit)] {
			fmt.Fprintf(out, "  %s  %-15s  %s\n", r.Timestamp, r.Direction,
				tui.Muted(fmt.Sprintf("%d %s", len(r.ItemsSynced), tui.Plural(len(r.ItemsSynced), "item"))))
		}
		if extra := len(records) - backupListLimit; extra > 0 {
			fmt.Fprintln(out, tui.Muted(fmt.Sprintf("  ... and %d more", extra)))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, tui.Muted("Location: "+d.backups.Dir()))
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupListCmd)
	rootCmd.AddCommand(backupCmd)
}
