package system

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

// mcpConfigKey is the JSON key holding MCP servers in both environments.
const mcpConfigKey = "mcpServers"

// mcpSettings reads and writes the MCP section of a JSON settings file.
// Files may contain comments and trailing commas; unrelated keys are
// preserved on write.
type mcpSettings struct {
	path   string
	key    string
	logger *slog.Logger
}

func newMCPSettings(path string, logger *slog.Logger) mcpSettings {
	return mcpSettings{path: path, key: mcpConfigKey, logger: logger}
}

// read returns the servers in the settings file. A missing file, invalid
// JSON or a non-object section yields an empty map. Entries that are not
// launchable descriptors are dropped individually.
func (m mcpSettings) read() asset.MCPServers {
	servers := make(asset.MCPServers)

	data, err := readSettingsFile(m.path, m.logger)
	if err != nil || data == nil {
		return servers
	}

	section := gjson.GetBytes(data, m.key)
	if !section.Exists() {
		return servers
	}
	if !section.IsObject() {
		m.logger.Debug("ignoring non-object MCP section", "path", m.path, "key", m.key)
		return servers
	}

	section.ForEach(func(name, value gjson.Result) bool {
		cfg, ok := parseServer(value)
		if !ok {
			m.logger.Debug("dropping invalid MCP server entry", "path", m.path, "server", name.String())
			return true
		}
		servers[name.String()] = cfg
		return true
	})
	return servers
}

func parseServer(value gjson.Result) (asset.McpServerConfig, bool) {
	if !value.IsObject() {
		return asset.McpServerConfig{}, false
	}
	command := value.Get("command")
	url := value.Get("url")
	if command.Type != gjson.String && url.Type != gjson.String {
		return asset.McpServerConfig{}, false
	}

	var cfg asset.McpServerConfig
	if err := json.Unmarshal([]byte(value.Raw), &cfg); err != nil {
		return asset.McpServerConfig{}, false
	}
	if !cfg.Valid() {
		return asset.McpServerConfig{}, false
	}
	return cfg, true
}

// patchOp is a single RFC 6902 operation.
type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// write adds or replaces each server in the settings file. Other servers
// and unrelated keys are left untouched. The file is created if missing.
func (m mcpSettings) write(servers asset.MCPServers) error {
	if len(servers) == 0 {
		return nil
	}

	content, err := readConfigFile(m.path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		content = []byte("{}")
	}

	// Parse as JSONC AST so the rest of the document survives the patch.
	root, err := hujson.Parse(content)
	if err != nil {
		return fmt.Errorf("parsing config %s: %w", m.path, err)
	}

	topKeyPtr := "/" + jsonPointerEscape(m.key)
	var ops []patchOp
	if root.Find(topKeyPtr) == nil {
		ops = append(ops, patchOp{Op: "add", Path: topKeyPtr, Value: json.RawMessage(`{}`)})
	}

	for _, name := range servers.Names() {
		value, err := json.Marshal(servers[name])
		if err != nil {
			return fmt.Errorf("marshaling MCP server %q: %w", name, err)
		}
		entryPtr := topKeyPtr + "/" + jsonPointerEscape(name)
		op := "add"
		if root.Find(entryPtr) != nil {
			op = "replace"
		}
		ops = append(ops, patchOp{Op: op, Path: entryPtr, Value: value})
	}

	patch, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("building patch: %w", err)
	}
	if err := root.Patch(patch); err != nil {
		return fmt.Errorf("writing MCP entries: %w", err)
	}

	output, err := finalizeConfig(&root)
	if err != nil {
		return err
	}
	return writeConfigFile(m.path, output)
}

// finalizeConfig converts the AST to standard JSON indented with two spaces.
func finalizeConfig(root *hujson.Value) ([]byte, error) {
	root.Standardize()
	var buf bytes.Buffer
	if err := json.Indent(&buf, root.Pack(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting config: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// readSettingsFile reads a JSON or JSONC file and returns it as standard
// JSON. It returns nil data for a missing file; parse failures are logged
// at debug level and returned.
func readSettingsFile(path string, logger *slog.Logger) ([]byte, error) {
	content, err := readConfigFile(path)
	if err != nil {
		logger.Debug("cannot read settings", "path", path, "error", err)
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	data, err := hujson.Standardize(content)
	if err != nil {
		logger.Debug("cannot parse settings", "path", path, "error", err)
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return data, nil
}

// --- Shared Helpers ---

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// readConfigFile reads a config file. Returns nil if not found.
func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// writeConfigFile writes content atomically, creating parent directories.
func writeConfigFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// jsonPointerEscape escapes a string for use as a JSON Pointer token (RFC 6901).
func jsonPointerEscape(s string) string {
	result := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			result = append(result, '~', '0')
		case '/':
			result = append(result, '~', '1')
		default:
			result = append(result, s[i])
		}
	}
	return string(result)
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}
