package core

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/core/convert"
	"github.com/barysiuk/claudesync/internal/core/fingerprint"
	"github.com/barysiuk/claudesync/internal/core/system"
)

// Backupper snapshots the environments before a sync mutates them.
type Backupper interface {
	Create(direction asset.Direction, itemIDs []string) (*BackupRecord, error)
}

// SystemResolver returns the environment for an app.
type SystemResolver interface {
	System(app asset.App) system.System
}

// Executor applies a selection of items in one direction.
type Executor struct {
	manifests *ManifestStore
	backups   Backupper
	systems   SystemResolver
	converter *convert.Converter
	registry  *Registry
	logger    *slog.Logger
	now       func() time.Time
}

// NewExecutor wires an executor from its collaborators.
func NewExecutor(manifests *ManifestStore, backups Backupper, systems SystemResolver, converter *convert.Converter, registry *Registry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if registry == nil {
		registry = NewRegistry(nil)
	}
	return &Executor{
		manifests: manifests,
		backups:   backups,
		systems:   systems,
		converter: converter,
		registry:  registry,
		logger:    logger,
		now:       time.Now,
	}
}

// itemOutcome is what processing one item produced.
type itemOutcome struct {
	record         *SyncItem
	skipReason     string
	recommendation *RegistryRecommendation
}

// Execute backs up both environments, converts each item, writes the MCP
// servers missing or different in the target, and saves the manifest.
// A backup failure is returned as a fatal error before anything changes.
// Item failures are collected in the result.
func (e *Executor) Execute(direction asset.Direction, items []asset.ScannedItem, sourceMCP, targetMCP asset.MCPServers) (*SyncResult, error) {
	log := e.logger.With("run_id", uuid.NewString(), "direction", string(direction))

	manifest, err := e.manifests.Load()
	if err != nil {
		return nil, fatalError(err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	record, err := e.backups.Create(direction, ids)
	if err != nil {
		log.Error("backup failed, nothing synced", "error", err)
		return nil, fatalError(err)
	}
	manifest = manifest.WithBackup(*record)

	result := &SyncResult{
		Synced:                  []string{},
		Skipped:                 []SkippedItem{},
		Errors:                  []ItemError{},
		RegistryRecommendations: []RegistryRecommendation{},
		Backup:                  record,
	}

	for _, item := range items {
		out, err := e.safeProcess(direction, item, manifest)
		if out.recommendation != nil {
			result.RegistryRecommendations = append(result.RegistryRecommendations, *out.recommendation)
		}
		switch {
		case err != nil:
			log.Warn("item failed", "item", item.ID, "error", err)
			result.Errors = append(result.Errors, ItemError{ID: item.ID, Error: itemMessage(err)})
		case out.skipReason != "":
			log.Info("item skipped", "item", item.ID, "reason", out.skipReason)
			result.Skipped = append(result.Skipped, SkippedItem{ID: item.ID, Reason: out.skipReason})
		case out.record != nil:
			manifest = manifest.WithItem(*out.record)
			result.Synced = append(result.Synced, item.ID)
		}
	}

	e.syncMCPServers(direction, sourceMCP, targetMCP, result, log)

	manifest.LastSync = formatTime(e.now())
	if err := e.manifests.Save(manifest); err != nil {
		result.Errors = append(result.Errors, ItemError{ID: "manifest", Error: err.Error()})
	}

	result.Success = len(result.Errors) == 0
	log.Info("sync finished",
		"synced", len(result.Synced),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors))
	return result, nil
}

// safeProcess converts a panic while processing an item into an item error.
func (e *Executor) safeProcess(direction asset.Direction, item asset.ScannedItem, manifest *SyncManifest) (out itemOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = itemOutcome{}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.process(direction, item, manifest)
}

func (e *Executor) process(direction asset.Direction, item asset.ScannedItem, manifest *SyncManifest) (itemOutcome, error) {
	switch {
	case direction == asset.CodeToDesktop && item.Kind == asset.KindSkill:
		return e.syncSkill(item, manifest)
	case direction == asset.CodeToDesktop && item.Kind == asset.KindPlugin:
		return e.syncPlugin(item), nil
	case direction == asset.DesktopToCode && item.Kind == asset.KindExtension:
		return e.syncExtension(item, manifest)
	default:
		return itemOutcome{skipReason: fmt.Sprintf("%s items cannot be synced %s", item.Kind, direction.Label())}, nil
	}
}

func (e *Executor) syncSkill(item asset.ScannedItem, manifest *SyncManifest) (itemOutcome, error) {
	res, err := e.converter.SkillToExtension(item)
	if err != nil {
		return itemOutcome{}, itemError(item.ID, err)
	}
	if res.Skipped {
		return itemOutcome{skipReason: res.SkipReason}, nil
	}

	rec := e.newRecord(item, manifest)
	rec.TargetApp = asset.AppDesktop
	rec.TargetPath = res.OutputPath
	rec.TargetHash = hashOrEmpty(res.OutputPath)
	return itemOutcome{record: &rec}, nil
}

func (e *Executor) syncPlugin(item asset.ScannedItem) itemOutcome {
	lookup := e.registry.Lookup(item.Name)
	if lookup.Found && lookup.RecommendInstallFromRegistry {
		return itemOutcome{
			skipReason:     fmt.Sprintf("plugins are not converted; install %q from the registry", lookup.ExtensionID),
			recommendation: &RegistryRecommendation{ID: item.ID, ExtensionID: lookup.ExtensionID},
		}
	}
	e.logger.Debug("plugin has no registry entry", "item", item.ID)
	return itemOutcome{skipReason: "plugins are not converted to extensions"}
}

func (e *Executor) syncExtension(item asset.ScannedItem, manifest *SyncManifest) (itemOutcome, error) {
	res, err := e.converter.ExtensionToSkill(item)
	if err != nil {
		return itemOutcome{}, itemError(item.ID, err)
	}

	if res.MCPConfig != nil {
		code := e.systems.System(asset.AppCode)
		servers := asset.MCPServers{res.MCPName: *res.MCPConfig}
		if err := code.InstallMCPServers(servers); err != nil {
			return itemOutcome{}, itemError(item.ID, fmt.Errorf("registering MCP server %q: %w", res.MCPName, err))
		}
	}

	rec := e.newRecord(item, manifest)
	rec.TargetApp = asset.AppCode
	rec.TargetPath = res.SkillPath
	if res.SkillPath != "" {
		rec.TargetHash = hashOrEmpty(res.SkillPath)
	}
	return itemOutcome{record: &rec}, nil
}

// newRecord builds the synced manifest record for item.
func (e *Executor) newRecord(item asset.ScannedItem, manifest *SyncManifest) SyncItem {
	rec := SyncItem{
		ID:          item.ID,
		Type:        item.Kind,
		Name:        item.Name,
		DisplayName: item.DisplayName,
		SourceApp:   item.App,
		SourcePath:  item.Path,
		SourceHash:  item.Hash,
		Status:      StatusSynced,
		LastSynced:  formatTime(e.now()),
	}
	if linked, ok := manifest.FindLinked(item); ok {
		rec.LinkedTo = linked.ID
	} else if prev, ok := manifest.Items[item.ID]; ok {
		rec.LinkedTo = prev.LinkedTo
	}
	return rec
}

func (e *Executor) syncMCPServers(direction asset.Direction, source, target asset.MCPServers, result *SyncResult, log *slog.Logger) {
	diff := MCPServerDiff(source, target)
	pending := diff.Pending()
	if len(pending) == 0 {
		return
	}

	sys := e.systems.System(direction.Target())
	if err := sys.InstallMCPServers(source.Subset(pending)); err != nil {
		log.Warn("writing MCP servers failed", "path", sys.MCPConfigPath(), "error", err)
		result.Errors = append(result.Errors, ItemError{ID: "mcp", Error: err.Error()})
		return
	}
	for _, name := range pending {
		result.Synced = append(result.Synced, "mcp:"+name)
	}
}

// itemMessage strips the item id an error already carries.
func itemMessage(err error) string {
	var se *SyncError
	if errors.As(err, &se) && se.ItemID != "" {
		return se.Err.Error()
	}
	return err.Error()
}

func hashOrEmpty(dir string) string {
	h, err := fingerprint.HashDirectory(dir)
	if err != nil {
		return ""
	}
	return h
}
