package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/core/convert"
)

// testEnv is a temporary home with both environments present.
type testEnv struct {
	t     *testing.T
	home  string
	paths Paths
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	env := &testEnv{
		t:     t,
		home:  home,
		paths: pathsFor(home, "linux", func(string) string { return "" }),
	}
	writeFile(t, env.paths.Code.Settings, "{}\n")
	if err := os.MkdirAll(env.paths.Desktop.Root, 0o755); err != nil {
		t.Fatal(err)
	}
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func (e *testEnv) writeSkill(name, content string) {
	e.t.Helper()
	writeFile(e.t, filepath.Join(e.paths.Code.Skills, name, asset.SkillFileName), content)
}

// writeInstallations records extensions in the desktop installations index.
func (e *testEnv) writeInstallations(manifests ...asset.DxtManifest) {
	e.t.Helper()
	exts := map[string]any{}
	for _, m := range manifests {
		exts[m.Name] = map[string]any{
			"id":       m.Name,
			"version":  m.Version,
			"hash":     "hash-" + m.Name + "-" + m.Version,
			"manifest": m,
		}
	}
	data, err := json.MarshalIndent(map[string]any{"extensions": exts}, "", "  ")
	if err != nil {
		e.t.Fatal(err)
	}
	writeFile(e.t, e.paths.Desktop.Installations, string(data))
}

func (e *testEnv) scanner() *Scanner {
	return NewScanner(e.paths, nil)
}

func (e *testEnv) converter() *convert.Converter {
	return convert.New(convert.Paths{
		ExtensionsDir: e.paths.Desktop.Extensions,
		SkillsDir:     e.paths.Code.Skills,
		AgentsDir:     e.paths.Code.Agents,
	})
}

func (e *testEnv) backupManager() *BackupManager {
	bm := NewBackupManager(e.paths, nil)
	bm.now = fixedClock(time.Date(2026, 1, 2, 15, 4, 5, 123_000_000, time.UTC))
	return bm
}

func (e *testEnv) manifests() *ManifestStore {
	return NewManifestStore(e.paths.Data.Manifest, nil)
}

func (e *testEnv) executor(b Backupper) *Executor {
	if b == nil {
		b = e.backupManager()
	}
	ex := NewExecutor(e.manifests(), b, e.scanner(), e.converter(), NewRegistry(nil), nil)
	ex.now = fixedClock(time.Date(2026, 1, 2, 15, 4, 6, 0, time.UTC))
	return ex
}

func (e *testEnv) scan() *ScanResult {
	e.t.Helper()
	res, err := e.scanner().Scan()
	if err != nil {
		e.t.Fatalf("Scan() error: %v", err)
	}
	return res
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ids(items []asset.ScannedItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
