package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/barysiuk/claudesync/internal/core/system"
)

const (
	dataDirName      = ".claude-sync"
	manifestFileName = "manifest.json"
	backupsDirName   = "backups"
	configFileName   = "config.json"
)

// DataPaths locates claudesync's own state.
type DataPaths struct {
	Root     string
	Manifest string
	Backups  string
	Config   string
}

// Paths bundles every location claudesync reads or writes.
type Paths struct {
	Code    system.CodePaths
	Desktop system.DesktopPaths
	Data    DataPaths
}

// DefaultPaths resolves all paths from the current user's home directory.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("getting home directory: %w", err)
	}
	return PathsForHome(home, runtime.GOOS), nil
}

// PathsForHome resolves all paths for a given home directory and OS.
func PathsForHome(home, goos string) Paths {
	return pathsFor(home, goos, os.Getenv)
}

func pathsFor(home, goos string, getenv func(string) string) Paths {
	dataRoot := filepath.Join(home, dataDirName)
	return Paths{
		Code:    system.CodePathsFor(filepath.Join(home, ".claude")),
		Desktop: system.DesktopPathsFor(desktopRoot(home, goos, getenv)),
		Data: DataPaths{
			Root:     dataRoot,
			Manifest: filepath.Join(dataRoot, manifestFileName),
			Backups:  filepath.Join(dataRoot, backupsDirName),
			Config:   filepath.Join(dataRoot, configFileName),
		},
	}
}

// desktopRoot returns the desktop application's support directory.
func desktopRoot(home, goos string, getenv func(string) string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude")
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Claude")
		}
		return filepath.Join(home, "AppData", "Roaming", "Claude")
	default:
		if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Claude")
		}
		return filepath.Join(home, ".config", "Claude")
	}
}
