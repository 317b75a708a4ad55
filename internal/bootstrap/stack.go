package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/infrastructure/webkit"
	"github.com/Zeal1001/casement/internal/logging"
)

// WebStackInput holds the input for BuildWebStack.
type WebStackInput struct {
	Ctx      context.Context
	Config   *config.Config
	DataDir  string
	CacheDir string
	Logger   zerolog.Logger
}

// WebStack bundles the WebKit infrastructure shared by every tab.
type WebStack struct {
	Browsing *webkit.BrowsingContext
	Settings *webkit.SettingsManager
	Factory  *webkit.EngineFactory
}

// BuildWebStack initializes the shared WebKit state: the persistent
// browsing context, the settings manager, and the engine factory.
// The GLib log handler is installed first when configured because it
// must precede any GTK or WebKit call.
func BuildWebStack(input WebStackInput) (WebStack, error) {
	ctx := input.Ctx
	cfg := input.Config

	if cfg.Logging.CaptureGTKLogs {
		enableDebug := cfg.Logging.Level == "debug" || cfg.Logging.Level == "trace"
		logging.InstallGLibLogHandler(ctx, input.Logger, enableDebug)
	}

	browsing, err := webkit.NewBrowsingContext(ctx, input.DataDir, input.CacheDir)
	if err != nil {
		return WebStack{}, fmt.Errorf("initialize browsing context: %w", err)
	}

	settings := webkit.NewSettingsManager(cfg)
	factory := webkit.NewEngineFactory(browsing, settings, input.Logger)

	return WebStack{
		Browsing: browsing,
		Settings: settings,
		Factory:  factory,
	}, nil
}

// Close releases the persistent browsing context. Engines are owned by
// the tabs that created them and are torn down with the window.
func (s WebStack) Close(ctx context.Context) {
	log := logging.FromContext(ctx)
	if s.Browsing != nil {
		if err := s.Browsing.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close browsing context")
		}
	}
}
