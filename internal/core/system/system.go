// Package system defines the System abstraction for claudesync.
//
// A System represents one of the two environments being reconciled: the
// Claude Code configuration directory or the Claude Desktop application
// support directory. Each system knows its own paths, how to detect that it
// is present, how to discover its items and how to read and write its MCP
// server settings. Paths are always injected, never looked up globally.
package system

import (
	"path/filepath"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

// System defines how claudesync talks to one environment.
type System interface {
	// Identity
	App() asset.App
	DisplayName() string

	// Detection
	IsInstalled() bool

	// Discovery. Items are returned sorted by ID.
	ScanItems() ([]asset.ScannedItem, error)

	// MCP settings
	MCPConfigPath() string
	MCPServers() asset.MCPServers
	InstallMCPServers(servers asset.MCPServers) error
}

// Well-known names inside the code root.
const (
	CodeSettingsFile     = "settings.json"
	CodeSkillsDir        = "skills"
	CodeCommandsDir      = "commands"
	CodeAgentsDir        = "agents"
	CodeInstalledPlugins = "plugins/installed_plugins.json"
)

// Well-known names inside the desktop root.
const (
	DesktopConfigFile         = "claude_desktop_config.json"
	DesktopExtensionsDir      = "Claude Extensions"
	DesktopExtensionSettings  = "Claude Extensions Settings"
	DesktopInstallationsIndex = "extensions-installations.json"
)

// CodePaths locates the code environment's files.
type CodePaths struct {
	Root             string
	Settings         string
	Skills           string
	InstalledPlugins string
	Commands         string
	Agents           string
}

// CodePathsFor derives the code environment's paths from its root directory.
func CodePathsFor(root string) CodePaths {
	return CodePaths{
		Root:             root,
		Settings:         filepath.Join(root, CodeSettingsFile),
		Skills:           filepath.Join(root, CodeSkillsDir),
		InstalledPlugins: filepath.Join(root, filepath.FromSlash(CodeInstalledPlugins)),
		Commands:         filepath.Join(root, CodeCommandsDir),
		Agents:           filepath.Join(root, CodeAgentsDir),
	}
}

// DesktopPaths locates the desktop environment's files.
type DesktopPaths struct {
	Root              string
	Config            string
	Extensions        string
	ExtensionSettings string
	Installations     string
}

// DesktopPathsFor derives the desktop environment's paths from its root directory.
func DesktopPathsFor(root string) DesktopPaths {
	return DesktopPaths{
		Root:              root,
		Config:            filepath.Join(root, DesktopConfigFile),
		Extensions:        filepath.Join(root, DesktopExtensionsDir),
		ExtensionSettings: filepath.Join(root, DesktopExtensionSettings),
		Installations:     filepath.Join(root, DesktopInstallationsIndex),
	}
}
