package core

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/barysiuk/claudesync/internal/core/asset"
)

const currentManifestVersion = 1

// ManifestStore reads and writes the sync manifest.
type ManifestStore struct {
	path   string
	logger *slog.Logger
}

// NewManifestStore creates a store for the manifest file at path.
func NewManifestStore(path string, logger *slog.Logger) *ManifestStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ManifestStore{path: path, logger: logger}
}

// Path returns the manifest file location.
func (s *ManifestStore) Path() string {
	return s.path
}

// Load reads the manifest. A missing or unparsable file yields an empty manifest.
func (s *ManifestStore) Load() (*SyncManifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewManifest(), nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m SyncManifest
	if err := json.Unmarshal(data, &m); err != nil {
		s.logger.Warn("manifest unreadable, starting fresh", "path", s.path, "error", err)
		return NewManifest(), nil
	}
	if m.Version == 0 {
		m.Version = currentManifestVersion
	}
	if m.Backups == nil {
		m.Backups = []BackupRecord{}
	}

	// The map key is authoritative for identity.
	items := make(map[string]SyncItem, len(m.Items))
	for id, item := range m.Items {
		item.ID = id
		items[id] = item
	}
	m.Items = items
	return &m, nil
}

// Save writes the manifest atomically.
func (s *ManifestStore) Save(m *SyncManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}
	return nil
}

// NewManifest returns an empty manifest at the current version.
func NewManifest() *SyncManifest {
	return &SyncManifest{
		Version: currentManifestVersion,
		Items:   map[string]SyncItem{},
		Backups: []BackupRecord{},
	}
}

// clone returns a copy of m whose items map and backups slice are not shared.
func (m *SyncManifest) clone() *SyncManifest {
	out := *m
	out.Items = make(map[string]SyncItem, len(m.Items))
	for id, item := range m.Items {
		out.Items[id] = item
	}
	out.Backups = append([]BackupRecord{}, m.Backups...)
	return &out
}

// WithItem returns a manifest with item inserted or replaced by id.
func (m *SyncManifest) WithItem(item SyncItem) *SyncManifest {
	out := m.clone()
	out.Items[item.ID] = item
	return out
}

// WithoutItem returns a manifest without the item id.
func (m *SyncManifest) WithoutItem(id string) *SyncManifest {
	out := m.clone()
	delete(out.Items, id)
	return out
}

// WithBackup returns a manifest with record appended to the backup history.
func (m *SyncManifest) WithBackup(record BackupRecord) *SyncManifest {
	out := m.clone()
	out.Backups = append(out.Backups, record)
	return out
}

// SortedIDs returns the item ids in lexical order.
func (m *SyncManifest) SortedIDs() []string {
	ids := make([]string, 0, len(m.Items))
	for id := range m.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindLinked returns the record from the other environment that shares a name
// or display name with item.
func (m *SyncManifest) FindLinked(item asset.ScannedItem) (SyncItem, bool) {
	for _, id := range m.SortedIDs() {
		rec := m.Items[id]
		if rec.SourceApp == item.App {
			continue
		}
		if namesMatch(rec, item) {
			return rec, true
		}
	}
	return SyncItem{}, false
}

func namesMatch(rec SyncItem, item asset.ScannedItem) bool {
	for _, a := range []string{rec.Name, rec.DisplayName} {
		if a == "" {
			continue
		}
		if a == item.Name || a == item.DisplayName {
			return true
		}
	}
	return false
}
