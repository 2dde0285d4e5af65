package system

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/core/fingerprint"
)

// ClaudeDesktop implements the System interface for the Claude Desktop
// application support directory.
type ClaudeDesktop struct {
	paths  DesktopPaths
	mcp    mcpSettings
	logger *slog.Logger
}

// NewClaudeDesktop creates a Claude Desktop system rooted at the given paths.
func NewClaudeDesktop(paths DesktopPaths, logger *slog.Logger) *ClaudeDesktop {
	logger = loggerOrDiscard(logger).With("app", string(asset.AppDesktop))
	return &ClaudeDesktop{
		paths:  paths,
		mcp:    newMCPSettings(paths.Config, logger),
		logger: logger,
	}
}

func (d *ClaudeDesktop) App() asset.App      { return asset.AppDesktop }
func (d *ClaudeDesktop) DisplayName() string { return asset.AppDesktop.DisplayName() }

// Paths returns the locations this system reads and writes.
func (d *ClaudeDesktop) Paths() DesktopPaths { return d.paths }

// IsInstalled reports whether the desktop root directory exists.
func (d *ClaudeDesktop) IsInstalled() bool { return dirExists(d.paths.Root) }

// ScanItems lists the extensions recorded in the installations index.
func (d *ClaudeDesktop) ScanItems() ([]asset.ScannedItem, error) {
	data, err := readSettingsFile(d.paths.Installations, d.logger)
	if err != nil || data == nil {
		return nil, nil
	}
	extensions := gjson.GetBytes(data, "extensions")
	if !extensions.IsObject() {
		return nil, nil
	}

	var items []asset.ScannedItem
	extensions.ForEach(func(key, value gjson.Result) bool {
		items = append(items, d.extensionItem(key.String(), value))
		return true
	})
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (d *ClaudeDesktop) extensionItem(extID string, entry gjson.Result) asset.ScannedItem {
	var manifest *asset.DxtManifest
	if raw := entry.Get("manifest"); raw.IsObject() {
		var m asset.DxtManifest
		if err := json.Unmarshal([]byte(raw.Raw), &m); err == nil {
			manifest = &m
		} else {
			d.logger.Debug("ignoring unparsable extension manifest", "extension", extID, "error", err)
		}
	}

	displayName := extID
	if manifest != nil && manifest.Title() != "" {
		displayName = manifest.Title()
	}

	hash := entry.Get("hash").String()
	if hash == "" {
		hash = fingerprint.HashString(compactJSON(entry.Raw))
	}

	return asset.ScannedItem{
		ID:          asset.ItemID(asset.KindExtension, extID),
		Kind:        asset.KindExtension,
		Name:        extID,
		DisplayName: displayName,
		Path:        filepath.Join(d.paths.Extensions, extID),
		Hash:        hash,
		App:         asset.AppDesktop,
		Meta: asset.ExtensionMeta{
			Version:  entry.Get("version").String(),
			Manifest: manifest,
		},
	}
}

// MCPConfigPath returns the desktop config file holding the MCP servers.
func (d *ClaudeDesktop) MCPConfigPath() string { return d.paths.Config }

// MCPServers returns the servers registered in the desktop config.
func (d *ClaudeDesktop) MCPServers() asset.MCPServers { return d.mcp.read() }

// InstallMCPServers adds or replaces servers in the desktop config.
func (d *ClaudeDesktop) InstallMCPServers(servers asset.MCPServers) error {
	return d.mcp.write(servers)
}

func compactJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return raw
	}
	return buf.String()
}
