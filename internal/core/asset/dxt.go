package asset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DxtManifestFileName is the package descriptor inside a desktop extension.
const DxtManifestFileName = "manifest.json"

// DirnamePlaceholder is substituted with the extension's installed path in
// server launch arguments.
const DirnamePlaceholder = "${__dirname}"

// DxtManifest is a desktop extension package descriptor.
type DxtManifest struct {
	DxtVersion      string         `json:"dxt_version,omitempty"`
	ManifestVersion string         `json:"manifest_version,omitempty"`
	Name            string         `json:"name"`
	DisplayName     string         `json:"display_name,omitempty"`
	Version         string         `json:"version"`
	Description     string         `json:"description"`
	LongDescription string         `json:"long_description,omitempty"`
	Author          *DxtAuthor     `json:"author,omitempty"`
	Homepage        string         `json:"homepage,omitempty"`
	Documentation   string         `json:"documentation,omitempty"`
	Support         string         `json:"support,omitempty"`
	Icon            string         `json:"icon,omitempty"`
	Server          *DxtServer     `json:"server,omitempty"`
	Tools           []DxtTool      `json:"tools,omitempty"`
	Prompts         []DxtPrompt    `json:"prompts,omitempty"`
	Keywords        []string       `json:"keywords,omitempty"`
	License         string         `json:"license,omitempty"`
	Compatibility   *Compatibility `json:"compatibility,omitempty"`
}

// DxtAuthor identifies who produced a package.
type DxtAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// DxtServer describes how the desktop app launches the package's server.
type DxtServer struct {
	Type       string        `json:"type"`
	EntryPoint string        `json:"entry_point"`
	MCPConfig  *DxtMCPConfig `json:"mcp_config,omitempty"`
}

// DxtMCPConfig is the launch command of a packaged server.
type DxtMCPConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// DxtTool is a tool advertised by a package.
type DxtTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DxtPrompt is a prompt served by a package.
type DxtPrompt struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Arguments   []json.RawMessage `json:"arguments,omitempty"`
	Text        string            `json:"text,omitempty"`
}

// Compatibility lists the hosts and runtimes a package supports.
type Compatibility struct {
	ClaudeDesktop string            `json:"claude_desktop,omitempty"`
	Platforms     []string          `json:"platforms,omitempty"`
	Runtimes      map[string]string `json:"runtimes,omitempty"`
}

// Title returns the display name, falling back to the package name.
func (m *DxtManifest) Title() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// ReadDxtManifest reads manifest.json from an extension directory.
func ReadDxtManifest(dir string) (*DxtManifest, error) {
	path := filepath.Join(dir, DxtManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m DxtManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// WriteDxtManifest writes manifest.json into an extension directory.
func WriteDxtManifest(dir string, m *DxtManifest) error {
	data, err := EncodeJSON(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(dir, DxtManifestFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
