package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/barysiuk/claudesync/internal/core"
	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show both environments and the sync state",
	Long: `Show whether Claude Code and Claude Desktop are present, how many
items each holds, and when the last sync ran.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		env := d.scanner.CheckEnvironments()
		fmt.Fprintln(out, tui.Heading("Environment Status:"))
		fmt.Fprintf(out, "  Claude Code:    %s\n", tui.Found(env.CodeExists))
		fmt.Fprintf(out, "  Claude Desktop: %s\n", tui.Found(env.DesktopExists))

		if !env.CodeExists || !env.DesktopExists {
			fmt.Fprintln(out)
			fmt.Fprintln(out, tui.Warning("Both Claude Code and Claude Desktop must be configured to sync."))
			return nil
		}

		scan, err := d.scanner.Scan()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		showItemCounts(out, scan)

		manifest, err := d.manifests.Load()
		if err != nil {
			return err
		}
		backups, err := d.backups.List()
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		showSyncStatus(out, manifest, len(backups), time.Now())
		fmt.Fprintln(out, tui.Muted("  Data: "+d.config.ConfigDir()))
		return nil
	},
}

func showItemCounts(out io.Writer, scan *core.ScanResult) {
	counts := func(items []asset.ScannedItem) map[asset.Kind]int {
		m := make(map[asset.Kind]int)
		for _, it := range items {
			m[it.Kind]++
		}
		return m
	}
	code := counts(scan.CodeItems)
	desktop := counts(scan.DesktopItems)

	fmt.Fprintln(out, tui.Heading("Found Items:"))
	fmt.Fprintln(out, "  Claude Code:")
	fmt.Fprintf(out, "    • %d skill(s)\n", code[asset.KindSkill])
	fmt.Fprintf(out, "    • %d plugin(s)\n", code[asset.KindPlugin])
	fmt.Fprintf(out, "    • %d MCP server(s)\n", len(scan.CodeMCPServers))
	fmt.Fprintln(out, "  Claude Desktop:")
	fmt.Fprintf(out, "    • %d extension(s)\n", desktop[asset.KindExtension])
	fmt.Fprintf(out, "    • %d MCP server(s)\n", len(scan.DesktopMCPServers))
}

func showSyncStatus(out io.Writer, manifest *core.SyncManifest, backups int, now time.Time) {
	fmt.Fprintln(out, tui.Heading("Sync Status:"))
	if manifest.LastSync == "" {
		fmt.Fprintln(out, tui.Muted("  No syncs performed yet"))
	} else {
		fmt.Fprintf(out, "  Last sync: %s\n", tui.FormatTimestamp(manifest.LastSync, now))
	}
	fmt.Fprintf(out, "  Synced items: %d\n", len(manifest.Items))
	fmt.Fprintf(out, "  Backups: %d\n", backups)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
