package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/barysiuk/claudesync/internal/core"
)

// RenderSyncResult renders the synced, skipped and failed items of a run
// followed by any registry recommendations.
func RenderSyncResult(res *core.SyncResult) string {
	var b strings.Builder

	if len(res.Synced) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Synced %d item(s)", len(res.Synced))) + "\n")
		for _, id := range res.Synced {
			b.WriteString(mutedStyle.Render("  ✓ "+id) + "\n")
		}
	}

	if len(res.Skipped) > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Skipped %d item(s)", len(res.Skipped))) + "\n")
		for _, s := range res.Skipped {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  ⊘ %s: %s", s.ID, s.Reason)) + "\n")
		}
	}

	if len(res.Errors) > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Errors: %d", len(res.Errors))) + "\n")
		for _, e := range res.Errors {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %s", e.ID, e.Error)) + "\n")
		}
	}

	if len(res.RegistryRecommendations) > 0 {
		b.WriteString("\n" + infoStyle.Render("Registry recommendations:") + "\n")
		for _, r := range res.RegistryRecommendations {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  • %s: Consider installing %q from registry", r.ID, r.ExtensionID)) + "\n")
		}
	}

	if res.Backup != nil {
		b.WriteString("\n" + mutedStyle.Render("Backup: "+res.Backup.Timestamp) + "\n")
	}

	return b.String()
}

// RenderDiffSummary renders the counts of new, modified and removed items.
// Unchanged items are not mentioned.
func RenderDiffSummary(d core.DiffResult) string {
	var b strings.Builder
	if n := len(d.Added); n > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("+ %d new %s", n, Plural(n, "item"))) + "\n")
	}
	if n := len(d.Modified); n > 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("~ %d modified %s", n, Plural(n, "item"))) + "\n")
	}
	if n := len(d.Removed); n > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("- %d removed %s", n, Plural(n, "item"))) + "\n")
	}
	return b.String()
}

// RenderComparison renders one item as a boxed header: name on the first
// line, kind and path on the second, then body lines.
func RenderComparison(c core.Comparison, body string) string {
	var b strings.Builder
	b.WriteString(statusBadge(c.Status) + " " + headingStyle.Render("┌ "+c.Item.DisplayName) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  │ %s • %s", c.Item.Kind, c.Item.Path)) + "\n")
	if body != "" {
		b.WriteString(mutedStyle.Render("  │") + "\n")
		for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
			b.WriteString("  " + mutedStyle.Render("│") + " " + line + "\n")
		}
	}
	b.WriteString(mutedStyle.Render("  └") + "\n")
	return b.String()
}

// ColorizeDiff colors a unified diff: additions green, removals red,
// hunk headers cyan and everything else muted.
func ColorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			lines[i] = successStyle.Render(line)
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			lines[i] = errorStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = diffHunkStyle.Render(line)
		case line != "":
			lines[i] = mutedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Found renders an environment presence marker.
func Found(ok bool) string {
	if ok {
		return successStyle.Render("✓ Found")
	}
	return errorStyle.Render("✗ Not found")
}

// Heading renders bold section text.
func Heading(s string) string { return headingStyle.Render(s) }

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Warning renders warning text.
func Warning(s string) string { return warningStyle.Render(s) }

// Success renders success text.
func Success(s string) string { return successStyle.Render(s) }

// Error renders error text.
func Error(s string) string { return errorStyle.Render(s) }

// Plural returns word, suffixed with "s" unless n is 1.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatTimestamp renders an ISO-8601 timestamp relative to now, falling
// back to the calendar date after a week. Unparsable input is returned as is.
func FormatTimestamp(iso string, now time.Time) string {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}

	d := now.Sub(t)
	mins := int(d / time.Minute)
	hours := mins / 60
	days := hours / 24

	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%d %s ago", mins, Plural(mins, "minute"))
	case hours < 24:
		return fmt.Sprintf("%d %s ago", hours, Plural(hours, "hour"))
	case days < 7:
		return fmt.Sprintf("%d %s ago", days, Plural(days, "day"))
	}
	return t.Local().Format("2006-01-02")
}
