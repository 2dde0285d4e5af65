package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barysiuk/claudesync/internal/core"
	"github.com/barysiuk/claudesync/internal/core/convert"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	paths     core.Paths
	config    *core.ConfigManager
	logger    *slog.Logger
	scanner   *core.Scanner
	manifests *core.ManifestStore
	backups   *core.BackupManager
	registry  *core.Registry
}

// newDeps creates shared dependencies. Called lazily by commands that need them.
func newDeps(cmd *cobra.Command) (*deps, error) {
	home, _ := cmd.Flags().GetString("home")

	var (
		paths  core.Paths
		config *core.ConfigManager
		err    error
	)
	if home != "" {
		paths = core.PathsForHome(home, runtime.GOOS)
		config = core.NewConfigManagerWithDir(paths.Data.Root)
	} else {
		paths, err = core.DefaultPaths()
		if err != nil {
			return nil, fmt.Errorf("resolving paths: %w", err)
		}
		config, err = core.NewConfigManager()
		if err != nil {
			return nil, fmt.Errorf("initializing config: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg.Settings)
	if err != nil {
		return nil, err
	}

	return &deps{
		paths:     paths,
		config:    config,
		logger:    logger,
		scanner:   core.NewScanner(paths, logger),
		manifests: core.NewManifestStore(paths.Data.Manifest, logger),
		backups:   core.NewBackupManager(paths, logger),
		registry:  core.NewRegistry(cfg.Registry),
	}, nil
}

// executor wires an executor over the shared dependencies.
func (d *deps) executor() *core.Executor {
	conv := convert.New(convert.Paths{
		ExtensionsDir: d.paths.Desktop.Extensions,
		SkillsDir:     d.paths.Code.Skills,
		AgentsDir:     d.paths.Code.Agents,
	})
	return core.NewExecutor(d.manifests, d.backups, d.scanner, conv, d.registry, d.logger)
}

// newLogger builds the stderr logger. Flags take precedence over the
// settings in config.json.
func newLogger(cmd *cobra.Command, settings core.Settings) (*slog.Logger, error) {
	level := settings.LogLevel
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		level = v
	}
	format := settings.LogFormat
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		format = v
	}

	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
	} else {
		lvl = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (expected text or json)", format)
	}
}
