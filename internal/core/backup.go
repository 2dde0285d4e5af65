package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

const (
	backupMetadataFile = "metadata.json"
	backupCodeDir      = "claude-code"
	backupDesktopDir   = "claude-desktop"
)

// ErrBackupNotFound is returned when a backup directory or timestamp is unknown.
var ErrBackupNotFound = errors.New("backup not found")

// backupArtifact is one live file or tree captured by a backup.
type backupArtifact struct {
	label string
	live  string
	rel   string // path inside the backup directory
	tree  bool
}

type backupMetadata struct {
	Timestamp string          `json:"timestamp"`
	Direction asset.Direction `json:"direction"`
	ItemIDs   []string        `json:"itemIds"`
	CreatedAt string          `json:"createdAt"`
}

// BackupManager snapshots and restores both environments' configuration.
type BackupManager struct {
	paths  Paths
	now    func() time.Time
	logger *slog.Logger
}

// NewBackupManager creates a BackupManager storing snapshots under paths.Data.Backups.
func NewBackupManager(paths Paths, logger *slog.Logger) *BackupManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BackupManager{paths: paths, now: time.Now, logger: logger}
}

// Dir returns the backup root directory.
func (bm *BackupManager) Dir() string {
	return bm.paths.Data.Backups
}

func (bm *BackupManager) artifacts() []backupArtifact {
	code, desktop := bm.paths.Code, bm.paths.Desktop
	return []backupArtifact{
		{"Claude Code settings", code.Settings, filepath.Join(backupCodeDir, "settings.json"), false},
		{"Claude Code skills", code.Skills, filepath.Join(backupCodeDir, "skills"), true},
		{"Claude Desktop config", desktop.Config, filepath.Join(backupDesktopDir, "claude_desktop_config.json"), false},
		{"Claude Desktop extensions list", desktop.Installations, filepath.Join(backupDesktopDir, "extensions-installations.json"), false},
		{"Claude Desktop extensions", desktop.Extensions, filepath.Join(backupDesktopDir, "extensions"), true},
		{"Claude Desktop extension settings", desktop.ExtensionSettings, filepath.Join(backupDesktopDir, "extension-settings"), true},
	}
}

// Create snapshots every existing artifact into a new timestamped directory.
// Any failure removes the partial snapshot and returns an error wrapping
// ErrBackupFailed.
func (bm *BackupManager) Create(direction asset.Direction, itemIDs []string) (*BackupRecord, error) {
	now := bm.now()
	if itemIDs == nil {
		itemIDs = []string{}
	}

	dir, name, err := bm.makeBackupDir(now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	if err := bm.capture(dir); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	meta := backupMetadata{
		Timestamp: name,
		Direction: direction,
		ItemIDs:   itemIDs,
		CreatedAt: formatTime(now),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: marshaling metadata: %w", ErrBackupFailed, err)
	}
	if err := os.WriteFile(filepath.Join(dir, backupMetadataFile), append(data, '\n'), 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: writing metadata: %w", ErrBackupFailed, err)
	}

	bm.logger.Info("backup created", "path", dir, "direction", direction, "items", len(itemIDs))
	return &BackupRecord{
		Timestamp:   name,
		Path:        dir,
		Direction:   direction,
		ItemsSynced: itemIDs,
	}, nil
}

// makeBackupDir creates a fresh directory named after t, suffixing -N when
// the name is already taken.
func (bm *BackupManager) makeBackupDir(t time.Time) (string, string, error) {
	if err := os.MkdirAll(bm.paths.Data.Backups, 0o755); err != nil {
		return "", "", fmt.Errorf("creating backup root: %w", err)
	}

	base := backupName(t)
	name := base
	for i := 1; ; i++ {
		dir := filepath.Join(bm.paths.Data.Backups, name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, name, nil
		}
		if !os.IsExist(err) {
			return "", "", fmt.Errorf("creating backup directory: %w", err)
		}
		name = fmt.Sprintf("%s-%d", base, i)
	}
}

// backupName renders t like an ISO-8601 timestamp with separators made
// filesystem-safe, e.g. 2026-01-02T15-04-05-000Z.
func backupName(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s-%03dZ", t.Format("2006-01-02T15-04-05"), t.Nanosecond()/int(time.Millisecond))
}

func (bm *BackupManager) capture(dir string) error {
	for _, sub := range []string{backupCodeDir, backupDesktopDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", sub, err)
		}
	}

	for _, a := range bm.artifacts() {
		if a.live == "" {
			continue
		}
		dst := filepath.Join(dir, a.rel)
		if a.tree {
			if !dirExists(a.live) {
				continue
			}
			if err := copyTree(a.live, dst); err != nil {
				return fmt.Errorf("copying %s: %w", a.label, err)
			}
			continue
		}
		if !fileExists(a.live) {
			continue
		}
		if err := copyFile(a.live, dst); err != nil {
			return fmt.Errorf("copying %s: %w", a.label, err)
		}
	}
	return nil
}

// Restore overwrites each live artifact captured in the backup. Trees are
// removed before being copied back. Artifacts absent from the backup are
// left untouched.
func (bm *BackupManager) Restore(record BackupRecord) (*RestoreResult, error) {
	result := &RestoreResult{Restored: []string{}}
	if !dirExists(record.Path) {
		return result, fmt.Errorf("%w: directory %s does not exist", ErrBackupNotFound, record.Path)
	}

	for _, a := range bm.artifacts() {
		if a.live == "" {
			continue
		}
		src := filepath.Join(record.Path, a.rel)
		if a.tree {
			if !dirExists(src) {
				continue
			}
			if err := os.RemoveAll(a.live); err != nil {
				return result, fmt.Errorf("removing %s: %w", a.label, err)
			}
			if err := copyTree(src, a.live); err != nil {
				return result, fmt.Errorf("restoring %s: %w", a.label, err)
			}
		} else {
			if !fileExists(src) {
				continue
			}
			if err := copyFile(src, a.live); err != nil {
				return result, fmt.Errorf("restoring %s: %w", a.label, err)
			}
		}
		result.Restored = append(result.Restored, a.label)
	}

	bm.logger.Info("backup restored", "path", record.Path, "artifacts", len(result.Restored))
	return result, nil
}

// List returns every readable backup, most recent first.
func (bm *BackupManager) List() ([]BackupRecord, error) {
	entries, err := os.ReadDir(bm.paths.Data.Backups)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupRecord{}, nil
		}
		return nil, fmt.Errorf("reading backups: %w", err)
	}

	records := make([]BackupRecord, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(bm.paths.Data.Backups, entry.Name())
		data, err := os.ReadFile(filepath.Join(dir, backupMetadataFile))
		if err != nil {
			continue
		}
		var meta backupMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			bm.logger.Debug("skipping unreadable backup", "path", dir, "error", err)
			continue
		}
		if meta.ItemIDs == nil {
			meta.ItemIDs = []string{}
		}
		records = append(records, BackupRecord{
			Timestamp:   meta.Timestamp,
			Path:        dir,
			Direction:   meta.Direction,
			ItemsSynced: meta.ItemIDs,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp > records[j].Timestamp
		}
		return records[i].Path > records[j].Path
	})
	return records, nil
}

// Latest returns the most recent backup.
func (bm *BackupManager) Latest() (*BackupRecord, error) {
	records, err := bm.List()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrBackupNotFound
	}
	return &records[0], nil
}

// Find returns the backup with the given timestamp.
func (bm *BackupManager) Find(timestamp string) (*BackupRecord, error) {
	records, err := bm.List()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Timestamp == timestamp {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, timestamp)
}
