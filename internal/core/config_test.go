package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigManager_DefaultConfig(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	cfg, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Settings.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.Settings.LogLevel, "warn")
	}
	if cfg.Settings.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.Settings.LogFormat, "text")
	}
	if len(cfg.Registry) != 0 {
		t.Errorf("expected empty registry, got %v", cfg.Registry)
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	cfg := &Config{
		Settings: Settings{LogLevel: "debug", LogFormat: "json"},
		Registry: map[string]string{"github": "ant.dir.gh"},
	}

	if err := cm.Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := os.Stat(cm.ConfigPath()); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigManager_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	if err := os.WriteFile(cm.ConfigPath(), []byte(`{"settings": {"logLevel": "info"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Settings.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.Settings.LogLevel, "info")
	}
	if cfg.Settings.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.Settings.LogFormat, "text")
	}
	if cfg.Registry == nil {
		t.Error("Registry should be initialized")
	}
}

func TestConfigManager_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	if cm.ConfigDir() != dir {
		t.Errorf("ConfigDir() = %q, want %q", cm.ConfigDir(), dir)
	}
	if cm.ConfigPath() != filepath.Join(dir, "config.json") {
		t.Errorf("ConfigPath() = %q, want %q", cm.ConfigPath(), filepath.Join(dir, "config.json"))
	}
}

func TestConfigManager_SaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	cm := NewConfigManagerWithDir(dir)

	cfg := defaultConfig()
	if err := cm.Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("config directory not created: %v", err)
	}
}

func TestConfigManager_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	if err := os.WriteFile(cm.ConfigPath(), []byte("{invalid"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := cm.Load()
	if err == nil {
		t.Error("Load() should return error for corrupt config")
	}
}
