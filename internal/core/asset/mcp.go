package asset

import (
	"encoding/json"
	"sort"
)

// McpServerConfig is an MCP server launch descriptor as stored in either
// environment's settings. It is compared as a whole value and never merged
// field by field.
type McpServerConfig struct {
	Type    string            `json:"type,omitempty"` // "stdio", "http", "sse"; usually omitted for stdio
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
}

// IsStdio returns true if the server is launched as a local process.
func (c McpServerConfig) IsStdio() bool { return c.Command != "" }

// IsRemote returns true if the server is reached over the network.
func (c McpServerConfig) IsRemote() bool { return c.URL != "" }

// Valid reports whether the descriptor names something to launch or reach.
func (c McpServerConfig) Valid() bool { return c.Command != "" || c.URL != "" }

// Canonical returns the serialized form used for equality. Argument order is
// preserved because launch order matters; env keys are sorted by the encoder.
func (c McpServerConfig) Canonical() string {
	data, _ := json.Marshal(c)
	return string(data)
}

// Equal reports whether two descriptors have the same serialized form.
func (c McpServerConfig) Equal(other McpServerConfig) bool {
	return c.Canonical() == other.Canonical()
}

// MCPServers maps server names to their descriptors.
type MCPServers map[string]McpServerConfig

// Names returns the server names in sorted order.
func (s MCPServers) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subset returns the servers whose names are listed. Unknown names are ignored.
func (s MCPServers) Subset(names []string) MCPServers {
	out := make(MCPServers, len(names))
	for _, name := range names {
		if cfg, ok := s[name]; ok {
			out[name] = cfg
		}
	}
	return out
}
