package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"

	"github.com/barysiuk/claudesync/internal/core"
	"github.com/barysiuk/claudesync/internal/core/asset"
)

// errNeedsTerminal is returned when a prompt is required but stdin is not
// interactive.
var errNeedsTerminal = errors.New("not running in a terminal")

// isTerminal reports whether stdin and stdout are both attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// requireEnvironments fails with an operator hint when either environment
// is missing.
func requireEnvironments(d *deps) error {
	err := d.scanner.RequireEnvironments()
	if err == nil {
		return nil
	}
	status := d.scanner.CheckEnvironments()
	if !status.CodeExists {
		return fmt.Errorf("%w. Please ensure %s exists", err, d.paths.Code.Settings)
	}
	return fmt.Errorf("%w. Please ensure Claude Desktop is installed (%s)", err, d.paths.Desktop.Root)
}

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// plan is the comparison of one direction, ready for selection.
type plan struct {
	direction   asset.Direction
	scan        *core.ScanResult
	manifest    *core.SyncManifest
	comparisons []core.Comparison
	mcp         core.MCPDiff
}

// buildPlan scans both environments and compares the source side against
// the manifest.
func buildPlan(d *deps, direction asset.Direction) (*plan, error) {
	if err := requireEnvironments(d); err != nil {
		return nil, err
	}
	scan, err := d.scanner.Scan()
	if err != nil {
		return nil, err
	}
	manifest, err := d.manifests.Load()
	if err != nil {
		return nil, err
	}
	return &plan{
		direction:   direction,
		scan:        scan,
		manifest:    manifest,
		comparisons: core.CompareWithManifest(scan.Items(direction.Source()), manifest, direction),
		mcp:         core.MCPServerDiff(scan.MCPServers(direction.Source()), scan.MCPServers(direction.Target())),
	}, nil
}
