package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

// ExtensionResult is the outcome of converting an extension for the code side.
type ExtensionResult struct {
	SkillPath string                 // generated skill directory; empty when the extension has no prompts
	MCPName   string                 // registration name; empty when the extension has no server
	MCPConfig *asset.McpServerConfig // launch descriptor for the code settings
}

// ExtensionToSkill derives an MCP registration from the extension's server
// and, when it ships prompts, writes <SkillsDir>/<manifest name>/SKILL.md.
// An extension with neither yields an empty result.
func (c *Converter) ExtensionToSkill(item asset.ScannedItem) (*ExtensionResult, error) {
	meta, _ := item.Meta.(asset.ExtensionMeta)
	manifest := meta.Manifest
	if manifest == nil && item.Path != "" {
		// The installations index may omit the manifest; fall back to the
		// unpacked package.
		manifest, _ = asset.ReadDxtManifest(item.Path)
	}
	if manifest == nil {
		return nil, ErrNoManifest
	}
	if !validName(manifest.Name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, manifest.Name)
	}

	result := &ExtensionResult{}

	if manifest.Server != nil && manifest.Server.MCPConfig != nil {
		mc := manifest.Server.MCPConfig
		var args []string
		if mc.Args != nil {
			args = make([]string, len(mc.Args))
			for i, arg := range mc.Args {
				args[i] = strings.ReplaceAll(arg, asset.DirnamePlaceholder, item.Path)
			}
		}
		result.MCPName = manifest.Name
		result.MCPConfig = &asset.McpServerConfig{
			Command: mc.Command,
			Args:    args,
			Env:     mc.Env,
		}
	}

	if len(manifest.Prompts) > 0 {
		skillDir := filepath.Join(c.paths.SkillsDir, manifest.Name)
		if err := os.MkdirAll(skillDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", skillDir, err)
		}
		content := SkillDocument(manifest)
		if err := os.WriteFile(filepath.Join(skillDir, asset.SkillFileName), []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", asset.SkillFileName, err)
		}
		if _, err := copyIfExists(filepath.Join(item.Path, asset.ReadmeFileName), filepath.Join(skillDir, asset.ReadmeFileName)); err != nil {
			return nil, err
		}
		result.SkillPath = skillDir
	}

	return result, nil
}

// validName reports whether name is a single path element.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}

// SkillDocument renders a SKILL.md describing an extension's prompts and tools.
func SkillDocument(m *asset.DxtManifest) string {
	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add("# "+m.Title(), "")
	if m.Description != "" {
		add(m.Description, "")
	}
	if m.LongDescription != "" {
		add(m.LongDescription, "")
	}

	if len(m.Prompts) > 0 {
		add("## Prompts", "")
		for _, p := range m.Prompts {
			add("### "+p.Name, "")
			if p.Description != "" {
				add(p.Description, "")
			}
			if p.Text != "" {
				add("```", p.Text, "```", "")
			}
		}
	}

	if len(m.Tools) > 0 {
		add("## Available Tools", "", "This extension provides the following MCP tools:", "")
		for _, t := range m.Tools {
			add(fmt.Sprintf("- **%s**: %s", t.Name, t.Description))
		}
		add("")
	}

	return strings.Join(lines, "\n")
}
