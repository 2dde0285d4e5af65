// Package core provides the reconciliation engine for claudesync.
// It has zero UI dependencies and is independently testable.
package core

import (
	"github.com/barysiuk/claudesync/internal/core/asset"
)

// Config represents the claudesync configuration stored at ~/.claude-sync/config.json.
type Config struct {
	Settings Settings          `json:"settings"`
	Registry map[string]string `json:"registry,omitempty"` // plugin name -> desktop extension id
}

// Settings holds user preferences. Command-line flags take precedence.
type Settings struct {
	LogLevel  string `json:"logLevel,omitempty"`
	LogFormat string `json:"logFormat,omitempty"`
}

// SyncStatus is the recorded state of a manifest item.
type SyncStatus string

const (
	StatusSynced   SyncStatus = "synced"
	StatusModified SyncStatus = "modified"
	StatusNew      SyncStatus = "new"
	StatusRemoved  SyncStatus = "removed"
	StatusSkipped  SyncStatus = "skipped"
)

// SyncItem is the durable record of an item the executor has synced.
type SyncItem struct {
	ID              string     `json:"id"`
	Type            asset.Kind `json:"type"`
	Name            string     `json:"name"`
	DisplayName     string     `json:"displayName"`
	SourceApp       asset.App  `json:"sourceApp"`
	SourcePath      string     `json:"sourcePath"`
	SourceHash      string     `json:"sourceHash"`
	TargetApp       asset.App  `json:"targetApp,omitempty"`
	TargetPath      string     `json:"targetPath,omitempty"`
	TargetHash      string     `json:"targetHash,omitempty"`
	RegistryID      string     `json:"registryId,omitempty"`
	RegistryVersion string     `json:"registryVersion,omitempty"`
	Status          SyncStatus `json:"status"`
	LastSynced      string     `json:"lastSynced,omitempty"`
	SkipReason      string     `json:"skipReason,omitempty"`
	LinkedTo        string     `json:"linkedTo,omitempty"`
}

// SyncManifest is the persisted sync state at ~/.claude-sync/manifest.json.
type SyncManifest struct {
	Version  int                 `json:"version"`
	LastSync string              `json:"lastSync,omitempty"`
	Items    map[string]SyncItem `json:"items"`
	Backups  []BackupRecord      `json:"backups"`
}

// BackupRecord describes one pre-sync snapshot.
type BackupRecord struct {
	Timestamp   string          `json:"timestamp"`
	Path        string          `json:"path"`
	Direction   asset.Direction `json:"direction"`
	ItemsSynced []string        `json:"itemsSynced"`
}

// ComparisonStatus classifies a scanned item against the manifest.
type ComparisonStatus string

const (
	ComparisonNew       ComparisonStatus = "new"
	ComparisonModified  ComparisonStatus = "modified"
	ComparisonUnchanged ComparisonStatus = "unchanged"
	ComparisonRemoved   ComparisonStatus = "removed"
)

// Comparison is the differ's verdict for one item.
type Comparison struct {
	Item         asset.ScannedItem
	Status       ComparisonStatus
	PreviousHash string    // stored source hash, set for modified items
	LinkedItem   *SyncItem // counterpart from the other environment, set for new items
}

// DiffResult groups comparison ids by status.
type DiffResult struct {
	Added     []string
	Removed   []string
	Modified  []string
	Unchanged []string
}

// MCPDiff classifies source MCP servers against a target map.
type MCPDiff struct {
	ToAdd    []string
	ToUpdate []string
	Existing []string
}

// Pending returns the servers needing a write: ToAdd followed by ToUpdate.
func (d MCPDiff) Pending() []string {
	out := make([]string, 0, len(d.ToAdd)+len(d.ToUpdate))
	out = append(out, d.ToAdd...)
	return append(out, d.ToUpdate...)
}

// ScanResult holds both environments' inventories.
type ScanResult struct {
	CodeItems         []asset.ScannedItem
	DesktopItems      []asset.ScannedItem
	CodeMCPServers    asset.MCPServers
	DesktopMCPServers asset.MCPServers
}

// Items returns the items scanned in the given environment.
func (r *ScanResult) Items(app asset.App) []asset.ScannedItem {
	if app == asset.AppDesktop {
		return r.DesktopItems
	}
	return r.CodeItems
}

// MCPServers returns the MCP servers registered in the given environment.
func (r *ScanResult) MCPServers(app asset.App) asset.MCPServers {
	if app == asset.AppDesktop {
		return r.DesktopMCPServers
	}
	return r.CodeMCPServers
}

// EnvironmentStatus reports which environments are present.
type EnvironmentStatus struct {
	CodeExists    bool
	DesktopExists bool
}

// SkippedItem is an item left alone with a reason.
type SkippedItem struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ItemError is an item that failed to sync.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// RegistryRecommendation suggests installing an official extension instead.
type RegistryRecommendation struct {
	ID          string `json:"id"`
	ExtensionID string `json:"extensionId"`
}

// SyncResult is the full accounting of one sync run.
type SyncResult struct {
	Success                 bool                     `json:"success"`
	Synced                  []string                 `json:"synced"`
	Skipped                 []SkippedItem            `json:"skipped"`
	Errors                  []ItemError              `json:"errors"`
	RegistryRecommendations []RegistryRecommendation `json:"registryRecommendations"`
	Backup                  *BackupRecord            `json:"backup,omitempty"`
}

// RestoreResult lists the artifacts a restore overwrote.
type RestoreResult struct {
	Restored []string
}
