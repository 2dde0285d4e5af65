package core

import (
	"sort"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

// CompareWithManifest classifies every scanned item of the direction's source
// environment against the manifest. Manifest records from that environment
// with no scanned counterpart are reported as removed.
func CompareWithManifest(items []asset.ScannedItem, manifest *SyncManifest, direction asset.Direction) []Comparison {
	if manifest == nil {
		manifest = NewManifest()
	}

	comparisons := make([]Comparison, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		seen[item.ID] = true

		rec, ok := manifest.Items[item.ID]
		switch {
		case !ok:
			c := Comparison{Item: item, Status: ComparisonNew}
			if linked, found := manifest.FindLinked(item); found {
				c.LinkedItem = &linked
			}
			comparisons = append(comparisons, c)
		case rec.SourceHash != item.Hash:
			comparisons = append(comparisons, Comparison{
				Item:         item,
				Status:       ComparisonModified,
				PreviousHash: rec.SourceHash,
			})
		default:
			comparisons = append(comparisons, Comparison{Item: item, Status: ComparisonUnchanged})
		}
	}

	source := direction.Source()
	for _, id := range manifest.SortedIDs() {
		rec := manifest.Items[id]
		if rec.SourceApp != source || seen[id] {
			continue
		}
		comparisons = append(comparisons, Comparison{
			Item: asset.ScannedItem{
				ID:          rec.ID,
				Kind:        rec.Type,
				Name:        rec.Name,
				DisplayName: rec.DisplayName,
				Path:        rec.SourcePath,
				Hash:        rec.SourceHash,
				App:         rec.SourceApp,
			},
			Status:       ComparisonRemoved,
			PreviousHash: rec.SourceHash,
		})
	}

	return comparisons
}

// CategorizeDiffs projects comparisons into id lists by status.
func CategorizeDiffs(comparisons []Comparison) DiffResult {
	var r DiffResult
	for _, c := range comparisons {
		switch c.Status {
		case ComparisonNew:
			r.Added = append(r.Added, c.Item.ID)
		case ComparisonModified:
			r.Modified = append(r.Modified, c.Item.ID)
		case ComparisonUnchanged:
			r.Unchanged = append(r.Unchanged, c.Item.ID)
		case ComparisonRemoved:
			r.Removed = append(r.Removed, c.Item.ID)
		}
	}
	return r
}

// Selectable reports whether a comparison can be chosen for a sync.
func (c Comparison) Selectable() bool {
	return c.Status == ComparisonNew || c.Status == ComparisonModified
}

// MCPServerDiff classifies the source servers against the target ones.
// Servers present only in the target are ignored.
func MCPServerDiff(source, target asset.MCPServers) MCPDiff {
	var d MCPDiff
	for _, name := range source.Names() {
		existing, ok := target[name]
		switch {
		case !ok:
			d.ToAdd = append(d.ToAdd, name)
		case !existing.Equal(source[name]):
			d.ToUpdate = append(d.ToUpdate, name)
		default:
			d.Existing = append(d.Existing, name)
		}
	}
	sort.Strings(d.ToAdd)
	sort.Strings(d.ToUpdate)
	sort.Strings(d.Existing)
	return d
}
