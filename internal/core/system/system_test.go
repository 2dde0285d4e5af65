package system

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/core/fingerprint"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid JSON in %s: %v\n%s", path, err, data)
	}
	return m
}

func newCode(t *testing.T) (*ClaudeCode, CodePaths) {
	t.Helper()
	paths := CodePathsFor(filepath.Join(t.TempDir(), ".claude"))
	return NewClaudeCode(paths, nil), paths
}

func newDesktop(t *testing.T) (*ClaudeDesktop, DesktopPaths) {
	t.Helper()
	paths := DesktopPathsFor(filepath.Join(t.TempDir(), "Claude"))
	return NewClaudeDesktop(paths, nil), paths
}

func itemIDs(items []asset.ScannedItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestPathsFor(t *testing.T) {
	code := CodePathsFor("/h/.claude")
	if code.Settings != filepath.Join("/h/.claude", "settings.json") {
		t.Errorf("Settings = %q", code.Settings)
	}
	if code.InstalledPlugins != filepath.Join("/h/.claude", "plugins", "installed_plugins.json") {
		t.Errorf("InstalledPlugins = %q", code.InstalledPlugins)
	}

	desktop := DesktopPathsFor("/d")
	if desktop.Extensions != filepath.Join("/d", "Claude Extensions") {
		t.Errorf("Extensions = %q", desktop.Extensions)
	}
	if desktop.Installations != filepath.Join("/d", "extensions-installations.json") {
		t.Errorf("Installations = %q", desktop.Installations)
	}
}

func TestClaudeCode_IsInstalled(t *testing.T) {
	code, paths := newCode(t)
	if code.IsInstalled() {
		t.Error("expected not installed without root")
	}
	if err := os.MkdirAll(paths.Root, 0o755); err != nil {
		t.Fatal(err)
	}
	if code.IsInstalled() {
		t.Error("expected not installed without settings.json")
	}
	writeFile(t, paths.Settings, "{}")
	if !code.IsInstalled() {
		t.Error("expected installed with root and settings.json")
	}
}

func TestClaudeDesktop_IsInstalled(t *testing.T) {
	desktop, paths := newDesktop(t)
	if desktop.IsInstalled() {
		t.Error("expected not installed without root")
	}
	if err := os.MkdirAll(paths.Root, 0o755); err != nil {
		t.Fatal(err)
	}
	if !desktop.IsInstalled() {
		t.Error("expected installed with root")
	}
}

func TestClaudeCode_ScanSkills(t *testing.T) {
	code, paths := newCode(t)

	writeFile(t, filepath.Join(paths.Skills, "pdf", "SKILL.md"), "# PDF Tools\n\nFill forms.\n")
	writeFile(t, filepath.Join(paths.Skills, "pdf", "README.md"), "readme")
	writeFile(t, filepath.Join(paths.Skills, "plain", "SKILL.md"), "no heading here\n")
	writeFile(t, filepath.Join(paths.Skills, "nodoc", "notes.txt"), "x")
	writeFile(t, filepath.Join(paths.Skills, ".hidden", "SKILL.md"), "# Hidden\n")
	writeFile(t, filepath.Join(paths.Skills, "stray.md"), "# Stray\n")

	// A symlinked skill living outside the skills root.
	external := filepath.Join(t.TempDir(), "linked-src")
	writeFile(t, filepath.Join(external, "SKILL.md"), "---\ndescription: From frontmatter\n---\n# Linked\n")
	if err := os.Symlink(external, filepath.Join(paths.Skills, "linked")); err != nil {
		t.Fatal(err)
	}
	// A dangling symlink is skipped.
	if err := os.Symlink(filepath.Join(t.TempDir(), "gone"), filepath.Join(paths.Skills, "dangling")); err != nil {
		t.Fatal(err)
	}

	items, err := code.ScanItems()
	if err != nil {
		t.Fatalf("ScanItems() error: %v", err)
	}

	want := []string{"skill:linked", "skill:pdf", "skill:plain"}
	if diff := cmp.Diff(want, itemIDs(items)); diff != "" {
		t.Fatalf("ScanItems() ids mismatch (-want +got):\n%s", diff)
	}

	byID := make(map[string]asset.ScannedItem)
	for _, item := range items {
		byID[item.ID] = item
	}

	pdf := byID["skill:pdf"]
	if pdf.DisplayName != "PDF Tools" {
		t.Errorf("pdf DisplayName = %q, want %q", pdf.DisplayName, "PDF Tools")
	}
	if pdf.Kind != asset.KindSkill || pdf.App != asset.AppCode {
		t.Errorf("pdf Kind/App = %q/%q", pdf.Kind, pdf.App)
	}
	pdfMeta, ok := pdf.Meta.(asset.SkillMeta)
	if !ok || !pdfMeta.HasReadme || pdfMeta.IsSymlink {
		t.Errorf("pdf Meta = %#v", pdf.Meta)
	}
	wantHash, _ := fingerprint.HashDirectory(filepath.Join(paths.Skills, "pdf"))
	if pdf.Hash != wantHash {
		t.Errorf("pdf Hash = %q, want %q", pdf.Hash, wantHash)
	}

	if got := byID["skill:plain"].DisplayName; got != "plain" {
		t.Errorf("plain DisplayName = %q, want directory name", got)
	}

	linked := byID["skill:linked"]
	linkedMeta := linked.Meta.(asset.SkillMeta)
	if !linkedMeta.IsSymlink {
		t.Error("linked skill should be marked as symlink")
	}
	realExternal, _ := filepath.EvalSymlinks(external)
	if linkedMeta.RealPath != realExternal {
		t.Errorf("RealPath = %q, want %q", linkedMeta.RealPath, realExternal)
	}
	if linkedMeta.Description != "From frontmatter" {
		t.Errorf("Description = %q, want %q", linkedMeta.Description, "From frontmatter")
	}
	if linked.Path != filepath.Join(paths.Skills, "linked") {
		t.Errorf("linked Path = %q, want the symlink path", linked.Path)
	}
	externalHash, _ := fingerprint.HashDirectory(external)
	if linked.Hash != externalHash {
		t.Errorf("linked Hash = %q, want hash of resolved dir %q", linked.Hash, externalHash)
	}
}

func TestClaudeCode_ScanPlugins(t *testing.T) {
	code, paths := newCode(t)

	writeFile(t, paths.Settings, `{
		// comments are tolerated
		"enabledPlugins": {
			"context7@official": true,
			"disabled@official": false,
			"ghost@official": true,
			"nosha@community": true,
		},
	}`)
	writeFile(t, paths.InstalledPlugins, `{
		"plugins": {
			"context7@official": [{"installPath": "/p/context7", "version": "1.2.0", "gitCommitSha": "abc123"}],
			"disabled@official": [{"installPath": "/p/disabled"}],
			"nosha@community": [{"installPath": "/p/nosha", "version": "0.1.0"}]
		}
	}`)

	items, err := code.ScanItems()
	if err != nil {
		t.Fatalf("ScanItems() error: %v", err)
	}
	if diff := cmp.Diff([]string{"plugin:context7", "plugin:nosha"}, itemIDs(items)); diff != "" {
		t.Fatalf("plugin ids mismatch (-want +got):\n%s", diff)
	}

	c7 := items[0]
	if c7.Hash != "abc123" {
		t.Errorf("context7 Hash = %q, want commit sha", c7.Hash)
	}
	if c7.Path != "/p/context7" {
		t.Errorf("context7 Path = %q", c7.Path)
	}
	if diff := cmp.Diff(asset.PluginMeta{Marketplace: "official", Version: "1.2.0"}, c7.Meta); diff != "" {
		t.Errorf("context7 Meta mismatch (-want +got):\n%s", diff)
	}

	if items[1].Hash != fingerprint.HashString("/p/nosha") {
		t.Errorf("nosha Hash = %q, want hash of install path", items[1].Hash)
	}
}

func TestClaudeDesktop_ScanItems(t *testing.T) {
	desktop, paths := newDesktop(t)

	writeFile(t, paths.Installations, `{
		"extensions": {
			"ant.dir.ant.playwright": {
				"id": "ant.dir.ant.playwright",
				"version": "0.3.0",
				"hash": "deadbeef",
				"manifest": {"name": "playwright", "display_name": "Playwright", "version": "0.3.0", "description": "Browser"}
			},
			"local.tool": {
				"id": "local.tool",
				"version": "1.0.0",
				"manifest": {"name": "tool", "version": "1.0.0", "description": "T"}
			},
			"bare": {"id": "bare"}
		}
	}`)

	items, err := desktop.ScanItems()
	if err != nil {
		t.Fatalf("ScanItems() error: %v", err)
	}
	want := []string{"extension:ant.dir.ant.playwright", "extension:bare", "extension:local.tool"}
	if diff := cmp.Diff(want, itemIDs(items)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	pw := items[0]
	if pw.DisplayName != "Playwright" || pw.Hash != "deadbeef" {
		t.Errorf("playwright DisplayName/Hash = %q/%q", pw.DisplayName, pw.Hash)
	}
	if pw.Path != filepath.Join(paths.Extensions, "ant.dir.ant.playwright") {
		t.Errorf("playwright Path = %q", pw.Path)
	}
	meta := pw.Meta.(asset.ExtensionMeta)
	if meta.Version != "0.3.0" || meta.Manifest == nil || meta.Manifest.Name != "playwright" {
		t.Errorf("playwright Meta = %+v", meta)
	}

	bare := items[1]
	if bare.DisplayName != "bare" {
		t.Errorf("bare DisplayName = %q, want id", bare.DisplayName)
	}
	if bare.Hash != fingerprint.HashString(`{"id":"bare"}`) {
		t.Errorf("bare Hash = %q, want hash of serialized entry", bare.Hash)
	}
	if bare.Meta.(asset.ExtensionMeta).Manifest != nil {
		t.Error("bare should have no manifest")
	}

	if items[2].DisplayName != "tool" {
		t.Errorf("local.tool DisplayName = %q, want manifest name", items[2].DisplayName)
	}
}

func TestClaudeDesktop_ScanItems_MissingOrInvalid(t *testing.T) {
	desktop, paths := newDesktop(t)
	items, err := desktop.ScanItems()
	if err != nil || len(items) != 0 {
		t.Errorf("missing index: items=%v err=%v", items, err)
	}

	writeFile(t, paths.Installations, "{not json")
	items, err = desktop.ScanItems()
	if err != nil || len(items) != 0 {
		t.Errorf("invalid index: items=%v err=%v", items, err)
	}
}

func TestMCPServers_Read(t *testing.T) {
	code, paths := newCode(t)

	if got := code.MCPServers(); len(got) != 0 {
		t.Errorf("missing file: got %v, want empty", got)
	}

	writeFile(t, paths.Settings, `{
		"mcpServers": {
			"fs": {"command": "npx", "args": ["-y", "fs"], "env": {"ROOT": "/"}},
			"remote": {"type": "http", "url": "https://example.com/mcp"},
			"broken": {"args": ["x"]},
			"numeric": {"command": 42},
			"scalar": "nope"
		}
	}`)

	want := asset.MCPServers{
		"fs":     {Command: "npx", Args: []string{"-y", "fs"}, Env: map[string]string{"ROOT": "/"}},
		"remote": {Type: "http", URL: "https://example.com/mcp"},
	}
	if diff := cmp.Diff(want, code.MCPServers()); diff != "" {
		t.Errorf("MCPServers() mismatch (-want +got):\n%s", diff)
	}
}

func TestMCPServers_ReadSoftFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{oops"},
		{"section is array", `{"mcpServers": []}`},
		{"section is string", `{"mcpServers": "x"}`},
		{"no section", `{"theme": "dark"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desktop, paths := newDesktop(t)
			writeFile(t, paths.Config, tt.content)
			if got := desktop.MCPServers(); len(got) != 0 {
				t.Errorf("MCPServers() = %v, want empty", got)
			}
		})
	}
}

func TestInstallMCPServers_CreatesFile(t *testing.T) {
	desktop, paths := newDesktop(t)

	servers := asset.MCPServers{"fs": {Command: "npx", Args: []string{"-y", "fs"}}}
	if err := desktop.InstallMCPServers(servers); err != nil {
		t.Fatalf("InstallMCPServers() error: %v", err)
	}

	data, err := os.ReadFile(paths.Config)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"mcpServers\": {\n    \"fs\": {\n      \"command\": \"npx\",\n      \"args\": [\n        \"-y\",\n        \"fs\"\n      ]\n    }\n  }\n}\n"
	if string(data) != want {
		t.Errorf("config content:\n%s\nwant:\n%s", data, want)
	}
	if diff := cmp.Diff(servers, desktop.MCPServers()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallMCPServers_PreservesOtherKeys(t *testing.T) {
	code, paths := newCode(t)
	writeFile(t, paths.Settings, `{
		// user settings
		"theme": "dark",
		"enabledPlugins": {"a@b": true},
		"mcpServers": {
			"keep": {"command": "keep"},
			"replace": {"command": "old"},
		},
	}`)

	err := code.InstallMCPServers(asset.MCPServers{
		"replace": {Command: "new", Args: []string{"1"}},
		"added":   {Command: "added"},
	})
	if err != nil {
		t.Fatalf("InstallMCPServers() error: %v", err)
	}

	got := readJSON(t, paths.Settings)
	if got["theme"] != "dark" {
		t.Errorf("theme = %v, want dark", got["theme"])
	}
	if _, ok := got["enabledPlugins"]; !ok {
		t.Error("enabledPlugins dropped")
	}

	want := asset.MCPServers{
		"keep":    {Command: "keep"},
		"replace": {Command: "new", Args: []string{"1"}},
		"added":   {Command: "added"},
	}
	if diff := cmp.Diff(want, code.MCPServers()); diff != "" {
		t.Errorf("MCPServers() mismatch (-want +got):\n%s", diff)
	}

	raw, _ := os.ReadFile(paths.Settings)
	if strings.Contains(string(raw), "//") {
		t.Error("written settings should be standard JSON")
	}
}

func TestInstallMCPServers_InvalidFileFails(t *testing.T) {
	desktop, paths := newDesktop(t)
	writeFile(t, paths.Config, "{broken")
	if err := desktop.InstallMCPServers(asset.MCPServers{"x": {Command: "x"}}); err == nil {
		t.Error("expected error when the config cannot be parsed")
	}
	raw, _ := os.ReadFile(paths.Config)
	if string(raw) != "{broken" {
		t.Error("unparsable config must not be overwritten")
	}
}

func TestInstallMCPServers_EscapesPointerTokens(t *testing.T) {
	desktop, _ := newDesktop(t)
	servers := asset.MCPServers{"org/tool~1": {Command: "x"}}
	if err := desktop.InstallMCPServers(servers); err != nil {
		t.Fatalf("InstallMCPServers() error: %v", err)
	}
	if diff := cmp.Diff(servers, desktop.MCPServers()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONPointerEscape(t *testing.T) {
	tests := map[string]string{
		"plain": "plain",
		"a/b":   "a~1b",
		"a~b":   "a~0b",
		"~/":    "~0~1",
	}
	for in, want := range tests {
		if got := jsonPointerEscape(in); got != want {
			t.Errorf("jsonPointerEscape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSystemsImplementInterface(t *testing.T) {
	var _ System = (*ClaudeCode)(nil)
	var _ System = (*ClaudeDesktop)(nil)
}
