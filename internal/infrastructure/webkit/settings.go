package webkit

import (
	"strings"
	"sync"

	"github.com/bnema/puregotk-webkit/webkit"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
)

// SettingsManager applies configuration to WebKit settings objects.
// One manager is shared by all engines; UpdateConfig followed by
// ApplyTo propagates config reloads to live views.
type SettingsManager struct {
	cfg *config.Config
	mu  sync.RWMutex
}

// NewSettingsManager creates a settings manager for the given config.
func NewSettingsManager(cfg *config.Config) *SettingsManager {
	return &SettingsManager{cfg: cfg}
}

// UpdateConfig swaps the configuration used for subsequent applies.
func (m *SettingsManager) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
}

// ApplyTo applies the current configuration to a WebView's settings.
func (m *SettingsManager) ApplyTo(wv *webkit.WebView) {
	if wv == nil {
		return
	}
	settings := wv.GetSettings()
	if settings == nil {
		return
	}

	m.mu.RLock()
	cfg := m.cfg
	m.mu.RUnlock()
	if cfg == nil {
		return
	}

	applyBrowserSettings(settings, cfg)
	applyDebugSettings(settings, cfg)
	applyBaselineSettings(settings)
}

func applyBrowserSettings(settings *webkit.Settings, cfg *config.Config) {
	if ua := strings.TrimSpace(cfg.Browser.UserAgent); ua != "" {
		settings.SetUserAgent(&ua)
	}
}

func applyDebugSettings(settings *webkit.Settings, cfg *config.Config) {
	settings.SetEnableDeveloperExtras(cfg.Debug.EnableDevTools)
}

// applyBaselineSettings enables the behavior every page expects
// regardless of configuration.
func applyBaselineSettings(settings *webkit.Settings) {
	settings.SetEnableJavascript(true)
	settings.SetEnableSmoothScrolling(true)
	settings.SetEnablePageCache(true)
	settings.SetEnableSiteSpecificQuirks(true)
	settings.SetEnableHtml5LocalStorage(true)
	settings.SetEnableHtml5Database(true)
	settings.SetEnableBackForwardNavigationGestures(true)
	settings.SetEnableFullscreen(true)
}
