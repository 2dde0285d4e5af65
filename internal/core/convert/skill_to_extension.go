package convert

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

const (
	skillPromptName    = "skill_prompt"
	serverEntryPoint   = "server/index.js"
	iconFileName       = "icon.svg"
	convertedVersion   = "1.0.0"
	convertedDxtFormat = "0.1"
)

var convertedAuthor = asset.DxtAuthor{
	Name: "claudesync",
	URL:  "https://github.com/barysiuk/claudesync",
}

// SkillResult is the outcome of converting a skill into an extension.
type SkillResult struct {
	OutputPath string // extension directory written; empty when skipped
	Skipped    bool
	SkipReason string
}

// SkillToExtension packages a code skill as a desktop extension under
// <ExtensionsDir>/<item name>. Incompatible skills are skipped without
// writing anything. Any existing package of the same name is replaced.
func (c *Converter) SkillToExtension(item asset.ScannedItem) (*SkillResult, error) {
	if _, err := os.Lstat(item.Path); err != nil {
		return nil, fmt.Errorf("skill path %s does not exist: %w", item.Path, err)
	}
	realPath, err := filepath.EvalSymlinks(item.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", item.Path, err)
	}

	doc, err := asset.ReadSkillDoc(realPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrMarkerMissing, realPath)
		}
		return nil, err
	}

	if reason := c.compatibility()(doc.Content); reason != "" {
		return &SkillResult{Skipped: true, SkipReason: reason}, nil
	}

	manifest := buildManifest(item, doc)
	outputDir := filepath.Join(c.paths.ExtensionsDir, item.Name)

	if err := replaceDir(outputDir, "server"); err != nil {
		return nil, err
	}
	if err := asset.WriteDxtManifest(outputDir, manifest); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outputDir, iconFileName), []byte(PlaceholderIcon(item.Name)), 0o644); err != nil {
		return nil, fmt.Errorf("writing icon: %w", err)
	}

	server, err := ServerStub(item.Name, manifest.Prompts)
	if err != nil {
		return nil, err
	}
	serverPath := filepath.Join(outputDir, filepath.FromSlash(serverEntryPoint))
	if err := os.WriteFile(serverPath, server, 0o755); err != nil {
		return nil, fmt.Errorf("writing server: %w", err)
	}

	if _, err := copyIfExists(filepath.Join(realPath, asset.ReadmeFileName), filepath.Join(outputDir, asset.ReadmeFileName)); err != nil {
		return nil, err
	}

	return &SkillResult{OutputPath: outputDir}, nil
}

func buildManifest(item asset.ScannedItem, doc asset.SkillDoc) *asset.DxtManifest {
	displayName := doc.Title
	if displayName == "" {
		displayName = item.DisplayName
	}
	description := doc.Description
	if description == "" {
		description = "Converted from Claude Code skill: " + item.Name
	}
	promptDescription := doc.Description
	if promptDescription == "" {
		promptDescription = "Main skill prompt"
	}

	author := convertedAuthor
	return &asset.DxtManifest{
		DxtVersion:      convertedDxtFormat,
		Name:            item.Name,
		DisplayName:     displayName,
		Version:         convertedVersion,
		Description:     description,
		LongDescription: doc.Content,
		Author:          &author,
		Icon:            iconFileName,
		Server: &asset.DxtServer{
			Type:       "node",
			EntryPoint: serverEntryPoint,
			MCPConfig: &asset.DxtMCPConfig{
				Command: "node",
				Args:    []string{asset.DirnamePlaceholder + "/" + serverEntryPoint},
			},
		},
		Prompts: []asset.DxtPrompt{{
			Name:        skillPromptName,
			Description: promptDescription,
			Text:        doc.Content,
		}},
		Keywords: []string{"converted", "claude-code", "skill"},
		License:  "MIT",
		Compatibility: &asset.Compatibility{
			ClaudeDesktop: ">=0.10.0",
			Platforms:     []string{"darwin", "win32", "linux"},
			Runtimes:      map[string]string{"node": ">=16.0.0"},
		},
	}
}
