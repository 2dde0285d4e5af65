package asset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMcpServerConfig_IsStdio(t *testing.T) {
	stdio := McpServerConfig{Command: "npx"}
	if !stdio.IsStdio() {
		t.Error("expected IsStdio() = true")
	}
	if stdio.IsRemote() {
		t.Error("expected IsRemote() = false for stdio")
	}

	remote := McpServerConfig{URL: "https://example.com/mcp", Type: "http"}
	if remote.IsStdio() {
		t.Error("expected IsStdio() = false for remote")
	}
	if !remote.IsRemote() {
		t.Error("expected IsRemote() = true")
	}

	if (McpServerConfig{}).Valid() {
		t.Error("empty config should not be valid")
	}
}

func TestMcpServerConfig_Equal(t *testing.T) {
	base := McpServerConfig{
		Command: "npx",
		Args:    []string{"-y", "server"},
		Env:     map[string]string{"A": "1", "B": "2"},
	}

	tests := []struct {
		name  string
		other McpServerConfig
		want  bool
	}{
		{"identical", McpServerConfig{Command: "npx", Args: []string{"-y", "server"}, Env: map[string]string{"B": "2", "A": "1"}}, true},
		{"arg order", McpServerConfig{Command: "npx", Args: []string{"server", "-y"}, Env: base.Env}, false},
		{"command", McpServerConfig{Command: "node", Args: base.Args, Env: base.Env}, false},
		{"env value", McpServerConfig{Command: "npx", Args: base.Args, Env: map[string]string{"A": "1", "B": "3"}}, false},
		{"env missing", McpServerConfig{Command: "npx", Args: base.Args}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMcpServerConfig_NilAndEmptyArgsEqual(t *testing.T) {
	a := McpServerConfig{Command: "x"}
	b := McpServerConfig{Command: "x", Args: []string{}}
	if !a.Equal(b) {
		t.Errorf("nil and empty args should compare equal: %s vs %s", a.Canonical(), b.Canonical())
	}
}

func TestMCPServers_NamesAndSubset(t *testing.T) {
	servers := MCPServers{
		"zeta":  {Command: "z"},
		"alpha": {Command: "a"},
		"mid":   {Command: "m"},
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, servers.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	sub := servers.Subset([]string{"mid", "unknown"})
	if diff := cmp.Diff(MCPServers{"mid": {Command: "m"}}, sub); diff != "" {
		t.Errorf("Subset() mismatch (-want +got):\n%s", diff)
	}
}
