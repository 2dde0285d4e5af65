package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/claudesync/internal/core"
	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/tui"
)

// previewLines is how much of a modified SKILL.md is shown when no earlier
// copy is available to diff against.
const previewLines = 10

var diffCmd = &cobra.Command{
	Use:   "diff <code-to-desktop|desktop-to-code>",
	Short: "Show what a sync would change",
	Long: `Compare the source environment against the sync manifest and show new,
modified and removed items. Modified skills are shown as a unified diff of
SKILL.md against the most recent backup.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(asset.CodeToDesktop), string(asset.DesktopToCode)},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction, err := asset.ParseDirection(args[0])
		if err != nil {
			return err
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

		summary := core.CategorizeDiffs(p.comparisons)
		pending := p.mcp.Pending()
		if len(summary.Added)+len(summary.Modified)+len(summary.Removed)+len(pending) == 0 {
			fmt.Fprintln(out, tui.Success("No differences - everything is up to date!"))
			return nil
		}

		fmt.Fprintln(out, tui.Heading(direction.Label()))
		fmt.Fprint(out, tui.RenderDiffSummary(summary))
		if len(pending) > 0 {
			fmt.Fprintf(out, "%s\n", tui.Warning(fmt.Sprintf("~ %d MCP %s to write", len(pending), tui.Plural(len(pending), "server"))))
		}
		fmt.Fprintln(out)

		latest, err := d.backups.Latest()
		if err != nil && !errors.Is(err, core.ErrBackupNotFound) {
			return err
		}

		md := tui.NewMarkdownRenderer(0)
		for _, c := range p.comparisons {
			switch c.Status {
			case core.ComparisonNew, core.ComparisonModified:
				body, err := comparisonBody(c, latest, md)
				if err != nil {
					return err
				}
				fmt.Fprint(out, tui.RenderComparison(c, body))
			case core.ComparisonRemoved:
				fmt.Fprintln(out, tui.Error("- "+c.Item.ID)+tui.Muted("  no longer present"))
			}
		}

		if len(pending) > 0 {
			showMCPDiff(out, p.mcp, p.scan.MCPServers(direction.Source()))
		}
		return nil
	},
}

// comparisonBody renders the detail shown inside an item's box. Only
// skills carry a body.
func comparisonBody(c core.Comparison, latest *core.BackupRecord, md *tui.MarkdownRenderer) (string, error) {
	if c.Item.Kind != asset.KindSkill {
		return "", nil
	}

	if c.Status == core.ComparisonNew {
		if isTerminal() {
			data, err := os.ReadFile(filepath.Join(c.Item.Path, asset.SkillFileName))
			if err == nil {
				return md.Render(string(data)), nil
			}
		}
		return core.SkillDiff(c.Item.Path, "")
	}

	var previous string
	if latest != nil {
		previous = core.BackedUpSkill(*latest, c.Item.Name)
	}
	if previous == "" {
		return headLines(filepath.Join(c.Item.Path, asset.SkillFileName), previewLines), nil
	}
	diff, err := core.SkillDiff(c.Item.Path, previous)
	if err != nil {
		return "", err
	}
	if diff == "" {
		return tui.Muted("SKILL.md unchanged; other files differ"), nil
	}
	return tui.ColorizeDiff(diff), nil
}

// headLines returns the first n lines of a file, or a marker when it is
// unreadable.
func headLines(path string, n int) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "[SKILL.md not found]"
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > n {
		lines = append(lines[:n], "...")
	}
	return strings.Join(lines, "\n")
}

func showMCPDiff(out io.Writer, diff core.MCPDiff, source asset.MCPServers) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, tui.Heading("MCP servers:"))
	for _, name := range diff.ToAdd {
		fmt.Fprintln(out, tui.Success("  + "+name)+"  "+tui.Muted(serverTarget(source[name])))
	}
	for _, name := range diff.ToUpdate {
		fmt.Fprintln(out, tui.Warning("  ~ "+name)+"  "+tui.Muted(serverTarget(source[name])))
	}
	if n := len(diff.Existing); n > 0 {
		fmt.Fprintln(out, tui.Muted(fmt.Sprintf("  %d already in sync", n)))
	}
}

// serverTarget describes what a server entry launches or connects to.
func serverTarget(cfg asset.McpServerConfig) string {
	switch {
	case cfg.IsStdio():
		return strings.Join(append([]string{cfg.Command}, cfg.Args...), " ")
	case cfg.IsRemote():
		return "remote " + cfg.URL
	}
	return ""
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
