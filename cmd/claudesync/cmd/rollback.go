package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/claudesync/internal/core"
	"github.com/barysiuk/claudesync/internal/tui"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback [timestamp]",
	Short: "Restore a backup",
	Long: `Restore both environments from a backup taken before a sync.

The timestamp is the backup name shown by 'claudesync backup list'. Use
--latest to restore the most recent backup. Without either, an interactive
terminal offers the list of backups to choose from. Restoring overwrites
the current settings files, skills and extensions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		latest, _ := cmd.Flags().GetBool("latest")
		yes, _ := cmd.Flags().GetBool("yes")

		pick := !latest && len(args) == 0 && isTerminal()
		if (latest && len(args) == 1) || (!latest && len(args) == 0 && !pick) {
			return errors.New("specify either a backup timestamp or --latest")
		}

		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var record *core.BackupRecord
		switch {
		case pick:
			record, err = chooseBackup(d.backups)
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(out, tui.Muted("Cancelled."))
				return nil
			}
		case latest:
			record, err = d.backups.Latest()
		default:
			record, err = d.backups.Find(args[0])
		}
		if errors.Is(err, core.ErrBackupNotFound) && len(args) == 0 {
			return errors.New("no backups found")
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Backup: %s\n", record.Timestamp)
		fmt.Fprintf(out, "  Direction: %s\n", record.Direction)
		if len(record.ItemsSynced) > 0 {
			fmt.Fprintf(out, "  Items: %s\n", strings.Join(record.ItemsSynced, ", "))
		}

		if !yes {
			if !isTerminal() {
				return fmt.Errorf("%w: pass --yes to restore without confirmation", errNeedsTerminal)
			}
			ok, err := tui.RunConfirm("Restore this backup? This will overwrite current configs.", false, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, tui.Muted("Cancelled."))
				return nil
			}
		}

		res, err := d.backups.Restore(*record)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, tui.Success("Restored:"))
		for _, label := range res.Restored {
			fmt.Fprintf(out, "  ✓ %s\n", label)
		}

		forgotten, err := forgetItems(d.manifests, record.ItemsSynced)
		if err != nil {
			return err
		}
		if forgotten > 0 {
			fmt.Fprintln(out, tui.Muted(fmt.Sprintf("%d %s will be offered again on the next sync.", forgotten, tui.Plural(forgotten, "item"))))
		}
		return nil
	},
}

// chooseBackup lets the user pick one of the available backups.
func chooseBackup(backups *core.BackupManager) (*core.BackupRecord, error) {
	records, err := backups.List()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, core.ErrBackupNotFound
	}

	options := make([]tui.Option, len(records))
	for i, r := range records {
		options[i] = tui.Option{ID: r.Timestamp, Label: r.Timestamp, Hint: backupHint(r)}
	}
	ts, err := tui.RunChoose("Select a backup to restore", options, os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Timestamp == ts {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", core.ErrBackupNotFound, ts)
}

func backupHint(r core.BackupRecord) string {
	n := len(r.ItemsSynced)
	return fmt.Sprintf("%s, %d %s", r.Direction, n, tui.Plural(n, "item"))
}

// forgetItems drops the manifest records of items whose sync was undone.
func forgetItems(store *core.ManifestStore, ids []string) (int, error) {
	manifest, err := store.Load()
	if err != nil {
		return 0, err
	}
	var n int
	for _, id := range ids {
		if _, ok := manifest.Items[id]; ok {
			manifest = manifest.WithoutItem(id)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if err := store.Save(manifest); err != nil {
		return 0, fmt.Errorf("updating manifest: %w", err)
	}
	return n, nil
}

func init() {
	rollbackCmd.Flags().Bool("latest", false, "Restore the most recent backup")
	rollbackCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(rollbackCmd)
}
