package theme

import (
	"context"

	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/logging"
)

// Manager handles theme state and CSS application.
type Manager struct {
	scheme      config.ColorScheme
	prefersDark bool
	light       Palette
	dark        Palette
	cssProvider *gtk.CssProvider
	detect      func() bool // system dark mode probe
}

// NewManager creates a theme manager from configuration.
func NewManager(ctx context.Context, cfg *config.Config) *Manager {
	log := logging.FromContext(ctx)

	scheme := config.SchemeSystem
	if cfg != nil && cfg.Appearance.ColorScheme != "" {
		scheme = cfg.Appearance.ColorScheme
	}

	m := &Manager{
		scheme: scheme,
		light:  DefaultLightPalette(),
		dark:   DefaultDarkPalette(),
		detect: DetectSystemDarkMode,
	}
	m.prefersDark = resolveColorScheme(scheme, m.detect)

	log.Debug().
		Str("scheme", string(scheme)).
		Bool("prefers_dark", m.prefersDark).
		Msg("theme manager initialized")

	return m
}

// Scheme returns the configured color scheme.
func (m *Manager) Scheme() config.ColorScheme {
	return m.scheme
}

// PrefersDark returns true if dark mode is active.
func (m *Manager) PrefersDark() bool {
	return m.prefersDark
}

// CurrentPalette returns the active palette based on the current scheme.
func (m *Manager) CurrentPalette() Palette {
	if m.prefersDark {
		return m.dark
	}
	return m.light
}

// ApplyToDisplay loads the theme CSS into the display and syncs the GTK
// prefer-dark setting so stock widgets follow along.
func (m *Manager) ApplyToDisplay(ctx context.Context, display *gdk.Display) {
	log := logging.FromContext(ctx)

	if display == nil {
		log.Warn().Msg("cannot apply theme: display is nil")
		return
	}

	if settings := gtk.SettingsGetDefault(); settings != nil {
		settings.SetPropertyGtkApplicationPreferDarkTheme(m.prefersDark)
	}

	css := GenerateCSS(m.CurrentPalette())

	if m.cssProvider == nil {
		m.cssProvider = gtk.NewCssProvider()
	}
	if m.cssProvider == nil {
		log.Error().Msg("failed to create CSS provider")
		return
	}

	m.cssProvider.LoadFromString(css)
	gtk.StyleContextAddProviderForDisplay(
		display,
		m.cssProvider,
		uint(gtk.STYLE_PROVIDER_PRIORITY_APPLICATION),
	)

	log.Debug().
		Bool("dark_mode", m.prefersDark).
		Msg("theme CSS applied to display")
}

// SetColorScheme changes the active color scheme at runtime.
func (m *Manager) SetColorScheme(ctx context.Context, scheme config.ColorScheme, display *gdk.Display) {
	log := logging.FromContext(ctx)

	m.scheme = scheme
	m.prefersDark = resolveColorScheme(scheme, m.detect)

	log.Info().
		Str("scheme", string(scheme)).
		Bool("prefers_dark", m.prefersDark).
		Msg("color scheme changed")

	if display != nil {
		m.ApplyToDisplay(ctx, display)
	}
}

// Toggle switches between the light and dark schemes, pinning an explicit
// preference even when the current scheme is "system". Returns the scheme
// that is now active so callers can persist it.
func (m *Manager) Toggle(ctx context.Context, display *gdk.Display) config.ColorScheme {
	next := config.SchemeDark
	if m.prefersDark {
		next = config.SchemeLight
	}
	m.SetColorScheme(ctx, next, display)
	return next
}

// UpdateFromConfig updates the theme manager state from a new config.
func (m *Manager) UpdateFromConfig(ctx context.Context, cfg *config.Config, display *gdk.Display) {
	if cfg == nil {
		return
	}

	scheme := config.SchemeSystem
	if cfg.Appearance.ColorScheme != "" {
		scheme = cfg.Appearance.ColorScheme
	}
	m.SetColorScheme(ctx, scheme, display)
}
