package webkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/application/port"
	"github.com/Zeal1001/casement/internal/logging"
)

// EngineFactory creates engines for tabs. Non-private engines attach
// to the shared persistent session owned by the BrowsingContext;
// private engines each get their own ephemeral session.
//
// The factory tracks live engines by tab ID so the UI layer can map
// tabs to widgets without inspecting concrete types elsewhere.
type EngineFactory struct {
	browsing *BrowsingContext
	settings *SettingsManager

	mu      sync.RWMutex
	engines map[string]*Engine

	logger zerolog.Logger
}

var _ port.EngineFactory = (*EngineFactory)(nil)

// NewEngineFactory creates an engine factory. The browsing context
// must already be initialized.
func NewEngineFactory(browsing *BrowsingContext, settings *SettingsManager, logger zerolog.Logger) *EngineFactory {
	return &EngineFactory{
		browsing: browsing,
		settings: settings,
		engines:  make(map[string]*Engine),
		logger:   logger.With().Str("component", "engine-factory").Logger(),
	}
}

// NewEngine creates a WebKit-backed engine for the given tab.
func (f *EngineFactory) NewEngine(ctx context.Context, opts port.EngineOptions) (port.WebEngine, error) {
	log := logging.FromContext(ctx)

	if opts.TabID == "" {
		return nil, fmt.Errorf("engine options missing tab id")
	}
	if f.browsing == nil || !f.browsing.IsInitialized() {
		return nil, fmt.Errorf("browsing context not initialized")
	}

	f.mu.RLock()
	_, exists := f.engines[opts.TabID]
	f.mu.RUnlock()
	if exists {
		return nil, fmt.Errorf("tab %s already has an engine", opts.TabID)
	}

	var (
		inner   *webkit.WebView
		session uintptr
		err     error
	)
	if opts.Private {
		inner, session, err = newEphemeralWebView(ctx)
		if err != nil {
			return nil, fmt.Errorf("create private webview: %w", err)
		}
	} else {
		// Plain construction attaches to the default network session,
		// which is the persistent one the browsing context created.
		inner = webkit.NewWebView()
		if inner == nil {
			return nil, fmt.Errorf("failed to create webkit webview")
		}
	}

	inner.SetHexpand(true)
	inner.SetVexpand(true)
	// Keep hidden until content is painted
	inner.SetVisible(false)

	engine := newEngine(opts.TabID, opts.Private, inner, session, f.settings, func() {
		f.forget(opts.TabID)
	}, f.logger)

	f.mu.Lock()
	f.engines[opts.TabID] = engine
	f.mu.Unlock()

	log.Debug().
		Str("tab_id", opts.TabID).
		Bool("private", opts.Private).
		Msg("engine created for tab")

	return engine, nil
}

// Lookup returns the live engine for a tab, or nil if none exists.
func (f *EngineFactory) Lookup(tabID string) *Engine {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.engines[tabID]
}

// ApplySettings re-applies the current configuration to all live
// engines. Called after a config reload.
func (f *EngineFactory) ApplySettings() {
	f.mu.RLock()
	engines := make([]*Engine, 0, len(f.engines))
	for _, e := range f.engines {
		engines = append(engines, e)
	}
	f.mu.RUnlock()

	for _, e := range engines {
		if !e.IsDestroyed() {
			f.settings.ApplyTo(e.inner)
		}
	}
}

func (f *EngineFactory) forget(tabID string) {
	f.mu.Lock()
	delete(f.engines, tabID)
	f.mu.Unlock()
}
