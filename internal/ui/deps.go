// Package ui assembles the GTK4 shell: the main window, its widgets,
// and the controller that drives them.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/filtering/cosmetic"
	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/infrastructure/webkit"
	"github.com/Zeal1001/casement/internal/ui/theme"
)

// Dependencies carries everything the UI layer needs. Bootstrap
// assembles it; New validates it before any GTK call happens.
type Dependencies struct {
	// Core context and configuration
	Ctx           context.Context
	Config        *config.Config
	ConfigManager *config.Manager

	// InitialURL opens as an extra foreground tab after the session is
	// restored. Empty means restore only.
	InitialURL string

	// PreviousCrashReport is the unexpected-close report written for the
	// last run, when that run ended abruptly. Empty means it shut down
	// cleanly.
	PreviousCrashReport string

	// Theming
	Theme *theme.Manager

	// Web engine infrastructure
	Browsing *webkit.BrowsingContext
	Factory  *webkit.EngineFactory
	Settings *webkit.SettingsManager

	// Content filtering
	Injector *cosmetic.Injector

	// HomeHTML is the markup rendered on the built-in home page.
	HomeHTML string

	// Domain state and use cases
	Tabs        *entity.TabList
	TabsUC      *usecase.ManageTabsUseCase
	NavigateUC  *usecase.NavigateUseCase
	BookmarksUC *usecase.ManageBookmarksUseCase
	HistoryUC   *usecase.RecordHistoryUseCase
	SnapshotUC  *usecase.SnapshotSessionUseCase
	RestoreUC   *usecase.RestoreSessionUseCase
}

// Validate checks that every dependency the window controller
// dereferences is present. ConfigManager, Theme, Browsing, and
// Settings stay optional: without them the related features degrade
// instead of failing.
func (d *Dependencies) Validate() error {
	if d.Ctx == nil {
		return &DependencyError{Field: "Ctx", Message: "context is required"}
	}
	if d.Config == nil {
		return &DependencyError{Field: "Config", Message: "configuration is required"}
	}
	if d.Factory == nil {
		return &DependencyError{Field: "Factory", Message: "engine factory is required"}
	}
	if d.Injector == nil {
		return &DependencyError{Field: "Injector", Message: "filter injector is required"}
	}
	if d.Tabs == nil {
		return &DependencyError{Field: "Tabs", Message: "tab list is required"}
	}
	if d.TabsUC == nil {
		return &DependencyError{Field: "TabsUC", Message: "tab use case is required"}
	}
	if d.NavigateUC == nil {
		return &DependencyError{Field: "NavigateUC", Message: "navigation use case is required"}
	}
	if d.BookmarksUC == nil {
		return &DependencyError{Field: "BookmarksUC", Message: "bookmark use case is required"}
	}
	if d.HistoryUC == nil {
		return &DependencyError{Field: "HistoryUC", Message: "history use case is required"}
	}
	if d.SnapshotUC == nil {
		return &DependencyError{Field: "SnapshotUC", Message: "session snapshot use case is required"}
	}
	if d.RestoreUC == nil {
		return &DependencyError{Field: "RestoreUC", Message: "session restore use case is required"}
	}
	return nil
}

// DependencyError reports a missing or invalid dependency.
type DependencyError struct {
	Field   string
	Message string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency error [%s]: %s", e.Field, e.Message)
}

// ErrMissingDependency is returned when required dependencies are absent.
var ErrMissingDependency = errors.New("missing required dependency")
