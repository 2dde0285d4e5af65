package asset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestItemID(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		want string
	}{
		{KindSkill, "pdf", "skill:pdf"},
		{KindPlugin, "context7", "plugin:context7"},
		{KindExtension, "ant.dir.ant.playwright", "extension:ant.dir.ant.playwright"},
	}
	for _, tt := range tests {
		if got := ItemID(tt.kind, tt.name); got != tt.want {
			t.Errorf("ItemID(%q, %q) = %q, want %q", tt.kind, tt.name, got, tt.want)
		}
	}
}

func TestApp_Other(t *testing.T) {
	if AppCode.Other() != AppDesktop {
		t.Errorf("AppCode.Other() = %q, want %q", AppCode.Other(), AppDesktop)
	}
	if AppDesktop.Other() != AppCode {
		t.Errorf("AppDesktop.Other() = %q, want %q", AppDesktop.Other(), AppCode)
	}
}

func TestDirection(t *testing.T) {
	d, err := ParseDirection("code-to-desktop")
	if err != nil {
		t.Fatalf("ParseDirection() error: %v", err)
	}
	if d.Source() != AppCode || d.Target() != AppDesktop {
		t.Errorf("code-to-desktop: Source()=%q Target()=%q", d.Source(), d.Target())
	}

	d, err = ParseDirection("desktop-to-code")
	if err != nil {
		t.Fatalf("ParseDirection() error: %v", err)
	}
	if d.Source() != AppDesktop || d.Target() != AppCode {
		t.Errorf("desktop-to-code: Source()=%q Target()=%q", d.Source(), d.Target())
	}
	if d.Label() != "Desktop → Code" {
		t.Errorf("Label() = %q, want %q", d.Label(), "Desktop → Code")
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
}

func TestMeta_AssetKind(t *testing.T) {
	tests := []struct {
		meta Meta
		want Kind
	}{
		{SkillMeta{}, KindSkill},
		{PluginMeta{}, KindPlugin},
		{ExtensionMeta{}, KindExtension},
	}
	for _, tt := range tests {
		if got := tt.meta.AssetKind(); got != tt.want {
			t.Errorf("%T.AssetKind() = %q, want %q", tt.meta, got, tt.want)
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	data, err := EncodeJSON(map[string]string{"text": "<b>a & b</b>"})
	if err != nil {
		t.Fatalf("EncodeJSON() error: %v", err)
	}
	want := "{\n  \"text\": \"<b>a & b</b>\"\n}\n"
	if string(data) != want {
		t.Errorf("EncodeJSON() = %q, want %q", string(data), want)
	}
}

func TestDxtManifest_ReadWrite(t *testing.T) {
	dir := t.TempDir()
	in := &DxtManifest{
		DxtVersion:  "0.1",
		Name:        "example",
		DisplayName: "Example",
		Version:     "1.0.0",
		Description: "An example",
		Server: &DxtServer{
			Type:       "node",
			EntryPoint: "server/index.js",
			MCPConfig: &DxtMCPConfig{
				Command: "node",
				Args:    []string{DirnamePlaceholder + "/server/index.js"},
			},
		},
		Prompts: []DxtPrompt{{Name: "skill_prompt", Description: "d", Text: "t"}},
	}
	if err := WriteDxtManifest(dir, in); err != nil {
		t.Fatalf("WriteDxtManifest() error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, DxtManifestFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"${__dirname}/server/index.js"`) {
		t.Errorf("manifest should keep the dirname placeholder unescaped:\n%s", raw)
	}

	out, err := ReadDxtManifest(dir)
	if err != nil {
		t.Fatalf("ReadDxtManifest() error: %v", err)
	}
	if out.Title() != "Example" {
		t.Errorf("Title() = %q, want %q", out.Title(), "Example")
	}
	if out.Server == nil || out.Server.MCPConfig == nil || out.Server.MCPConfig.Command != "node" {
		t.Errorf("server config not preserved: %+v", out.Server)
	}
	if len(out.Prompts) != 1 || out.Prompts[0].Text != "t" {
		t.Errorf("prompts not preserved: %+v", out.Prompts)
	}
}

func TestDxtManifest_TitleFallsBackToName(t *testing.T) {
	m := &DxtManifest{Name: "plain"}
	if m.Title() != "plain" {
		t.Errorf("Title() = %q, want %q", m.Title(), "plain")
	}
}

func TestReadDxtManifest_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadDxtManifest(dir); err == nil {
		t.Error("ReadDxtManifest() should fail without manifest.json")
	}
	if err := os.WriteFile(filepath.Join(dir, DxtManifestFileName), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadDxtManifest(dir); err == nil {
		t.Error("ReadDxtManifest() should fail for invalid JSON")
	}
}
