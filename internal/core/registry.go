package core

import (
	"fmt"
	"sort"
	"strings"
)

// builtinRegistry maps plugin names to official desktop extension ids.
var builtinRegistry = map[string]string{
	"context7":   "context7",
	"playwright": "ant.dir.ant.playwright",
}

// RegistryLookup is the outcome of looking a plugin up in the registry.
type RegistryLookup struct {
	Found                        bool
	ExtensionID                  string
	RecommendInstallFromRegistry bool
}

// Registry resolves plugin names to official desktop extensions.
type Registry struct {
	entries map[string]string
}

// NewRegistry returns the built-in registry with extra mappings merged over it.
// Keys are matched case-insensitively.
func NewRegistry(extra map[string]string) *Registry {
	entries := make(map[string]string, len(builtinRegistry)+len(extra))
	for name, id := range builtinRegistry {
		entries[name] = id
	}
	for name, id := range extra {
		name = strings.ToLower(strings.TrimSpace(name))
		id = strings.TrimSpace(id)
		if name == "" || id == "" {
			continue
		}
		entries[name] = id
	}
	return &Registry{entries: entries}
}

// Lookup finds the official extension for a plugin name.
func (r *Registry) Lookup(pluginName string) RegistryLookup {
	id, ok := r.entries[strings.ToLower(pluginName)]
	if !ok {
		return RegistryLookup{}
	}
	return RegistryLookup{
		Found:                        true,
		ExtensionID:                  id,
		RecommendInstallFromRegistry: true,
	}
}

// Names returns the registered plugin names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegistryInstallInstructions renders how to install an extension by hand.
func RegistryInstallInstructions(extensionID string) string {
	return fmt.Sprintf(`To install from the official registry:
1. Open Claude Desktop
2. Go to Settings > Extensions
3. Search for %q
4. Click Install

This is recommended over local conversion for better compatibility and updates.`, extensionID)
}
