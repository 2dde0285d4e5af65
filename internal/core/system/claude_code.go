package system

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/core/fingerprint"
)

// ClaudeCode implements the System interface for the Claude Code
// configuration directory.
type ClaudeCode struct {
	paths  CodePaths
	mcp    mcpSettings
	logger *slog.Logger
}

// NewClaudeCode creates a Claude Code system rooted at the given paths.
func NewClaudeCode(paths CodePaths, logger *slog.Logger) *ClaudeCode {
	logger = loggerOrDiscard(logger).With("app", string(asset.AppCode))
	return &ClaudeCode{
		paths:  paths,
		mcp:    newMCPSettings(paths.Settings, logger),
		logger: logger,
	}
}

func (c *ClaudeCode) App() asset.App      { return asset.AppCode }
func (c *ClaudeCode) DisplayName() string { return asset.AppCode.DisplayName() }

// Paths returns the locations this system reads and writes.
func (c *ClaudeCode) Paths() CodePaths { return c.paths }

// IsInstalled reports whether both the root directory and the settings file exist.
func (c *ClaudeCode) IsInstalled() bool {
	return dirExists(c.paths.Root) && fileExists(c.paths.Settings)
}

// ScanItems discovers skills and enabled plugins.
func (c *ClaudeCode) ScanItems() ([]asset.ScannedItem, error) {
	skills, err := c.scanSkills()
	if err != nil {
		return nil, err
	}
	items := append(skills, c.scanPlugins()...)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// MCPConfigPath returns the settings file holding the MCP servers.
func (c *ClaudeCode) MCPConfigPath() string { return c.paths.Settings }

// MCPServers returns the servers registered in the code settings.
func (c *ClaudeCode) MCPServers() asset.MCPServers { return c.mcp.read() }

// InstallMCPServers adds or replaces servers in the code settings.
func (c *ClaudeCode) InstallMCPServers(servers asset.MCPServers) error {
	return c.mcp.write(servers)
}

// scanSkills finds skill directories (or symlinks to them) holding a SKILL.md.
// Hidden entries are ignored; unreadable entries are skipped.
func (c *ClaudeCode) scanSkills() ([]asset.ScannedItem, error) {
	entries, err := os.ReadDir(c.paths.Skills)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading skills directory %s: %w", c.paths.Skills, err)
	}

	var items []asset.ScannedItem
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		item, ok := c.scanSkill(name)
		if ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (c *ClaudeCode) scanSkill(name string) (asset.ScannedItem, bool) {
	skillPath := filepath.Join(c.paths.Skills, name)

	linfo, err := os.Lstat(skillPath)
	if err != nil {
		return asset.ScannedItem{}, false
	}
	isSymlink := linfo.Mode()&os.ModeSymlink != 0
	if !isSymlink && !linfo.IsDir() {
		return asset.ScannedItem{}, false
	}

	realPath := skillPath
	if isSymlink {
		realPath, err = filepath.EvalSymlinks(skillPath)
		if err != nil {
			c.logger.Debug("skipping dangling skill symlink", "path", skillPath, "error", err)
			return asset.ScannedItem{}, false
		}
	}
	if !dirExists(realPath) || !fileExists(filepath.Join(realPath, asset.SkillFileName)) {
		return asset.ScannedItem{}, false
	}

	hash, err := fingerprint.HashDirectory(realPath)
	if err != nil {
		c.logger.Debug("skipping unreadable skill", "path", realPath, "error", err)
		return asset.ScannedItem{}, false
	}

	displayName := name
	meta := asset.SkillMeta{
		IsSymlink: isSymlink,
		HasReadme: fileExists(filepath.Join(realPath, asset.ReadmeFileName)),
	}
	if isSymlink {
		meta.RealPath = realPath
	}
	if doc, err := asset.ReadSkillDoc(realPath); err == nil {
		if doc.Title != "" {
			displayName = doc.Title
		}
		meta.Description = doc.Frontmatter.Description
	}

	return asset.ScannedItem{
		ID:          asset.ItemID(asset.KindSkill, name),
		Kind:        asset.KindSkill,
		Name:        name,
		DisplayName: displayName,
		Path:        skillPath,
		Hash:        hash,
		App:         asset.AppCode,
		Meta:        meta,
	}, true
}

// scanPlugins lists enabled plugins that resolve in the installed-plugins
// registry. Unresolved plugins are skipped.
func (c *ClaudeCode) scanPlugins() []asset.ScannedItem {
	settings, err := readSettingsFile(c.paths.Settings, c.logger)
	if err != nil || settings == nil {
		return nil
	}
	enabled := gjson.GetBytes(settings, "enabledPlugins")
	if !enabled.IsObject() {
		return nil
	}

	installed, err := readSettingsFile(c.paths.InstalledPlugins, c.logger)
	if err != nil || installed == nil {
		return nil
	}
	registry := gjson.GetBytes(installed, "plugins").Map()

	var items []asset.ScannedItem
	enabled.ForEach(func(key, value gjson.Result) bool {
		if !value.Bool() {
			return true
		}
		pluginID := key.String()
		name, marketplace, _ := strings.Cut(pluginID, "@")

		versions := registry[pluginID].Array()
		if len(versions) == 0 {
			c.logger.Debug("skipping plugin missing from installed registry", "plugin", pluginID)
			return true
		}
		latest := versions[0]
		installPath := latest.Get("installPath").String()
		hash := latest.Get("gitCommitSha").String()
		if hash == "" {
			hash = fingerprint.HashString(installPath)
		}

		items = append(items, asset.ScannedItem{
			ID:          asset.ItemID(asset.KindPlugin, name),
			Kind:        asset.KindPlugin,
			Name:        name,
			DisplayName: name,
			Path:        installPath,
			Hash:        hash,
			App:         asset.AppCode,
			Meta: asset.PluginMeta{
				Marketplace: marketplace,
				Version:     latest.Get("version").String(),
			},
		})
		return true
	})
	return items
}
