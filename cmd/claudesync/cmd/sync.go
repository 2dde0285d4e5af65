package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/claudesync/internal/core"
	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/tui"
)

const mcpIDPrefix = "mcp:"

var syncCmd = &cobra.Command{
	Use:   "sync <code-to-desktop|desktop-to-code>",
	Short: "Sync new and modified items in one direction",
	Long: `Sync skills, plugins, extensions and MCP servers in one direction.

New and modified items are offered in an interactive picker. Use --all to
take everything or --items to name items explicitly (as shown by
'claudesync diff'). A backup is taken before anything is written.

Examples:
  claudesync sync code-to-desktop
  claudesync sync code-to-desktop --all --yes
  claudesync sync desktop-to-code --items extension:ant.dir.ant.pdf,mcp:fs`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(asset.CodeToDesktop), string(asset.DesktopToCode)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction, err := asset.ParseDirection(args[0])
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")
		itemsFlag, _ := cmd.Flags().GetString("items")
		noMCP, _ := cmd.Flags().GetBool("no-mcp")
		yes, _ := cmd.Flags().GetBool("yes")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if all && itemsFlag != "" {
			return errors.New("--all and --items cannot be used together")
		}

		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		p, err := buildPlan(d, direction)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var pendingMCP []string
		if !noMCP {
			pendingMCP = p.mcp.Pending()
		}
		options := tui.BuildOptions(p.comparisons, pendingMCP)
		if len(options) == 0 {
			fmt.Fprintln(out, tui.Success("No items to sync - everything is up to date!"))
			return nil
		}

		var selected []string
		switch {
		case all:
			for _, o := range options {
				selected = append(selected, o.ID)
			}
		case itemsFlag != "":
			selected, err = resolveItems(splitList(itemsFlag), options)
			if err != nil {
				return err
			}
		case isTerminal():
			selected, err = tui.RunSelect(fmt.Sprintf("Select items to sync (%s)", direction.Label()), options, os.Stdin, os.Stdout)
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(out, tui.Muted("Cancelled."))
				return nil
			}
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: pass --all or --items to choose what to sync", errNeedsTerminal)
		}

		if len(selected) == 0 {
			fmt.Fprintln(out, tui.Muted("No items selected."))
			return nil
		}

		if dryRun {
			fmt.Fprintf(out, "Would sync %d item(s) (%s):\n", len(selected), direction.Label())
			for _, id := range selected {
				fmt.Fprintf(out, "  • %s\n", id)
			}
			return nil
		}

		if !yes {
			if !isTerminal() {
				return fmt.Errorf("%w: pass --yes to sync without confirmation", errNeedsTerminal)
			}
			ok, err := tui.RunConfirm(fmt.Sprintf("Sync %d item(s)?", len(selected)), true, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, tui.Muted("Cancelled."))
				return nil
			}
		}

		items, mcpNames := splitSelection(selected, p.comparisons)
		source := p.scan.MCPServers(direction.Source()).Subset(mcpNames)
		target := p.scan.MCPServers(direction.Target())

		res, err := d.executor().Execute(direction, items, source, target)
		if err != nil {
			if core.KindOf(err) == core.KindFatal {
				return fmt.Errorf("sync aborted, nothing was changed: %w", err)
			}
			return err
		}

		fmt.Fprint(out, tui.RenderSyncResult(res))
		if !res.Success {
			return fmt.Errorf("sync finished with %d %s", len(res.Errors), tui.Plural(len(res.Errors), "error"))
		}
		return nil
	},
}

// resolveItems checks that every requested id is one of the offered rows.
func resolveItems(ids []string, options []tui.Option) ([]string, error) {
	offered := make([]string, len(options))
	for i, o := range options {
		offered[i] = o.ID
	}
	var unknown []string
	for _, id := range ids {
		if !slices.Contains(offered, id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("not available to sync: %s (run 'claudesync diff' to see pending items)", strings.Join(unknown, ", "))
	}
	return ids, nil
}

// splitSelection separates the chosen rows into scanned items and MCP
// server names.
func splitSelection(selected []string, comparisons []core.Comparison) ([]asset.ScannedItem, []string) {
	var (
		items    []asset.ScannedItem
		mcpNames []string
	)
	for _, id := range selected {
		if name, ok := strings.CutPrefix(id, mcpIDPrefix); ok {
			mcpNames = append(mcpNames, name)
			continue
		}
		for _, c := range comparisons {
			if c.Item.ID == id {
				items = append(items, c.Item)
				break
			}
		}
	}
	return items, mcpNames
}

func init() {
	syncCmd.Flags().Bool("all", false, "Sync every new and modified item without prompting")
	syncCmd.Flags().String("items", "", "Comma-separated item ids to sync (e.g. skill:pdf,mcp:fs)")
	syncCmd.Flags().Bool("no-mcp", false, "Leave MCP servers out of the sync")
	syncCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	syncCmd.Flags().Bool("dry-run", false, "Show what would be synced without writing anything")
	rootCmd.AddCommand(syncCmd)
}
