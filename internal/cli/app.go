// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Zeal1001/casement/internal/cli/styles"
	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/infrastructure/persistence/jsonfile"
	"github.com/Zeal1001/casement/internal/logging"
	"github.com/Zeal1001/casement/internal/ui/theme"
)

// BuildInfo carries the ldflags-injected build metadata.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App holds the CLI's shared dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo BuildInfo

	History   *jsonfile.HistoryRepo
	Bookmarks *jsonfile.BookmarkRepo
	Sessions  *jsonfile.SessionRepo

	ctx context.Context
}

// NewApp creates a CLI application with warmed stores.
//
// CLI invocations log quietly (warnings and up) unless
// CASEMENT_LOG_LEVEL says otherwise; the rotating log file belongs to
// the graphical session alone.
func NewApp() (*App, error) {
	cfg := loadConfig()

	logLevel := "warn"
	if envLevel := os.Getenv("CASEMENT_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     "console",
		TimeFormat: logging.ConsoleTimeFormat,
	})
	ctx := logging.WithContext(context.Background(), logger)

	appTheme := styles.NewTheme(theme.NewManager(ctx, cfg).CurrentPalette())

	dataDir, err := config.GetDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	history := jsonfile.NewHistoryRepository(dataDir)
	if err := history.Warm(ctx); err != nil {
		logger.Warn().Err(err).Msg("history store unavailable, starting empty")
	}
	bookmarks := jsonfile.NewBookmarkRepository(dataDir)
	if err := bookmarks.Warm(ctx); err != nil {
		logger.Warn().Err(err).Msg("bookmark store unavailable, starting empty")
	}
	sessions := jsonfile.NewSessionRepository(dataDir)

	return &App{
		Config:    cfg,
		Theme:     appTheme,
		History:   history,
		Bookmarks: bookmarks,
		Sessions:  sessions,
		ctx:       ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations.
func loadConfig() *config.Config {
	mgr, err := config.NewManager()
	if err != nil {
		return config.DefaultConfig()
	}

	if err := mgr.Load(); err != nil {
		return config.DefaultConfig()
	}

	return mgr.Get()
}
