package core

import (
	"fmt"
	"log/slog"

	"github.com/barysiuk/claudesync/internal/core/asset"
	"github.com/barysiuk/claudesync/internal/core/system"
)

// Scanner inventories both environments.
type Scanner struct {
	code    system.System
	desktop system.System
}

// NewScanner creates a Scanner for the environments located by paths.
func NewScanner(paths Paths, logger *slog.Logger) *Scanner {
	return NewScannerWithSystems(
		system.NewClaudeCode(paths.Code, logger),
		system.NewClaudeDesktop(paths.Desktop, logger),
	)
}

// NewScannerWithSystems creates a Scanner over explicit environments.
// Useful for testing.
func NewScannerWithSystems(code, desktop system.System) *Scanner {
	return &Scanner{code: code, desktop: desktop}
}

// System returns the environment for app.
func (s *Scanner) System(app asset.App) system.System {
	if app == asset.AppDesktop {
		return s.desktop
	}
	return s.code
}

// CheckEnvironments reports which environments are present.
func (s *Scanner) CheckEnvironments() EnvironmentStatus {
	return EnvironmentStatus{
		CodeExists:    s.code.IsInstalled(),
		DesktopExists: s.desktop.IsInstalled(),
	}
}

// RequireEnvironments returns an environment error naming the first
// missing environment.
func (s *Scanner) RequireEnvironments() error {
	for _, sys := range []system.System{s.code, s.desktop} {
		if !sys.IsInstalled() {
			return &SyncError{
				Kind: KindEnvironment,
				Err:  fmt.Errorf("%w: %s", ErrEnvironmentMissing, sys.DisplayName()),
			}
		}
	}
	return nil
}

// Scan collects the items and MCP servers of both environments.
func (s *Scanner) Scan() (*ScanResult, error) {
	codeItems, err := s.code.ScanItems()
	if err != nil {
		return nil, &SyncError{Kind: KindEnvironment, Err: fmt.Errorf("scanning %s: %w", s.code.DisplayName(), err)}
	}
	desktopItems, err := s.desktop.ScanItems()
	if err != nil {
		return nil, &SyncError{Kind: KindEnvironment, Err: fmt.Errorf("scanning %s: %w", s.desktop.DisplayName(), err)}
	}

	return &ScanResult{
		CodeItems:         codeItems,
		DesktopItems:      desktopItems,
		CodeMCPServers:    s.code.MCPServers(),
		DesktopMCPServers: s.desktop.MCPServers(),
	}, nil
}
