// Package asset defines the items claudesync moves between environments.
//
// A ScannedItem is an environment-agnostic view of something found on disk
// (a skill, a plugin, a desktop extension). Each kind carries its own typed
// metadata through the Meta interface. Items are rebuilt on every scan and
// never persisted directly.
package asset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies an item type.
type Kind string

const (
	KindSkill     Kind = "skill"
	KindPlugin    Kind = "plugin"
	KindExtension Kind = "extension"
	KindMCPServer Kind = "mcp-server"
)

// App identifies one of the two environments.
type App string

const (
	AppCode    App = "code"
	AppDesktop App = "desktop"
)

// Other returns the opposite environment.
func (a App) Other() App {
	if a == AppCode {
		return AppDesktop
	}
	return AppCode
}

// DisplayName returns the human-readable environment name.
func (a App) DisplayName() string {
	switch a {
	case AppCode:
		return "Claude Code"
	case AppDesktop:
		return "Claude Desktop"
	default:
		return string(a)
	}
}

// Direction is the direction of a sync run.
type Direction string

const (
	CodeToDesktop Direction = "code-to-desktop"
	DesktopToCode Direction = "desktop-to-code"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case CodeToDesktop, DesktopToCode:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction %q; expected %s or %s", s, CodeToDesktop, DesktopToCode)
	}
}

// Source returns the environment items are read from.
func (d Direction) Source() App {
	if d == DesktopToCode {
		return AppDesktop
	}
	return AppCode
}

// Target returns the environment items are written to.
func (d Direction) Target() App { return d.Source().Other() }

// Label returns a short human-readable form, e.g. "Code → Desktop".
func (d Direction) Label() string {
	if d == DesktopToCode {
		return "Desktop → Code"
	}
	return "Code → Desktop"
}

// ScannedItem is an artifact discovered in one environment.
type ScannedItem struct {
	ID          string // kind-prefixed identifier, e.g. "skill:pdf"
	Kind        Kind
	Name        string
	DisplayName string
	Path        string // path as found (may be a symlink)
	Hash        string // content fingerprint
	App         App
	Meta        Meta // kind-specific typed metadata; may be nil
}

// ItemID builds the kind-prefixed identifier for an item.
func ItemID(kind Kind, name string) string {
	return string(kind) + ":" + name
}

// Meta is the interface for kind-specific metadata.
type Meta interface {
	AssetKind() Kind
}

// SkillMeta holds metadata for a code-side skill.
type SkillMeta struct {
	IsSymlink   bool
	RealPath    string // resolved path when IsSymlink
	HasReadme   bool
	Description string // frontmatter description, if any
}

// AssetKind implements Meta.
func (m SkillMeta) AssetKind() Kind { return KindSkill }

// PluginMeta holds metadata for an enabled code-side plugin.
type PluginMeta struct {
	Marketplace string
	Version     string
}

// AssetKind implements Meta.
func (m PluginMeta) AssetKind() Kind { return KindPlugin }

// ExtensionMeta holds metadata for an installed desktop extension.
type ExtensionMeta struct {
	Version  string
	Manifest *DxtManifest
}

// AssetKind implements Meta.
func (m ExtensionMeta) AssetKind() Kind { return KindExtension }

// EncodeJSON renders v as two-space indented JSON with a trailing newline.
// HTML characters are not escaped so markdown content stays readable.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
