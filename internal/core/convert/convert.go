// Package convert translates items between the code and desktop formats.
//
// A code skill becomes a desktop extension package (manifest, icon and a
// generated MCP server serving the skill as a prompt). A desktop extension
// becomes an MCP registration for the code settings plus, when it ships
// prompts, a generated skill document. Converters only write into the
// directories they are given.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMarkerMissing is returned when a skill directory has no SKILL.md.
	ErrMarkerMissing = errors.New("SKILL.md not found")

	// ErrNoManifest is returned when an extension item carries no parsed manifest.
	ErrNoManifest = errors.New("no manifest found for extension")

	// ErrInvalidName is returned when an extension name cannot be used as a
	// skill directory or MCP server name.
	ErrInvalidName = errors.New("invalid extension name")
)

// Paths are the output locations converters write into.
type Paths struct {
	ExtensionsDir string // desktop extensions root
	SkillsDir     string // code skills root
	AgentsDir     string // code custom agents directory, used by the compatibility check
}

// CompatibilityCheck inspects a skill's SKILL.md content and returns a
// human-readable reason when the skill cannot work in the desktop app.
// An empty reason means the skill is compatible.
type CompatibilityCheck func(content string) string

// Converter converts items between environments.
type Converter struct {
	paths Paths

	// Compatible decides whether a skill may be converted. Nil means
	// DefaultCompatibility for the configured agents directory.
	Compatible CompatibilityCheck
}

// New creates a converter writing into the given paths.
func New(paths Paths) *Converter {
	return &Converter{paths: paths}
}

func (c *Converter) compatibility() CompatibilityCheck {
	if c.Compatible != nil {
		return c.Compatible
	}
	return DefaultCompatibility(c.paths.AgentsDir)
}

// DefaultCompatibility rejects skills relying on features the desktop app
// lacks: subagents, hooks, and custom agents when an agents directory exists.
func DefaultCompatibility(agentsDir string) CompatibilityCheck {
	return func(content string) string {
		switch {
		case strings.Contains(content, "subagent") || strings.Contains(content, "Task tool"):
			return "Uses subagents which are not supported in Desktop"
		case strings.Contains(content, "hooks:") || strings.Contains(content, "PreToolUse"):
			return "Uses hooks which are not supported in Desktop"
		case strings.Contains(content, "agents/") && agentsDir != "" && dirExists(agentsDir):
			return "References custom agents which are not supported in Desktop"
		}
		return ""
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// copyIfExists copies src to dst when src exists. It reports whether a copy happened.
func copyIfExists(src, dst string) (bool, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", dst, err)
	}
	return true, nil
}

// replaceDir removes dir if present and creates it empty along with subdirs.
func replaceDir(dir string, subdirs ...string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}
	for _, sub := range append([]string{""}, subdirs...) {
		path := filepath.Join(dir, sub)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
