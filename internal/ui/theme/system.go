package theme

import (
	"os"
	"strings"

	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
)

// DetectSystemDarkMode checks if the system prefers dark mode.
// It checks multiple sources in order of preference:
// 1. GTK_THEME environment variable (contains "dark")
// 2. GTK Settings gtk-application-prefer-dark-theme property
func DetectSystemDarkMode() bool {
	gtkTheme := os.Getenv("GTK_THEME")
	if gtkTheme != "" {
		return strings.Contains(strings.ToLower(gtkTheme), "dark")
	}

	settings := gtk.SettingsGetDefault()
	if settings != nil {
		return settings.GetPropertyGtkApplicationPreferDarkTheme()
	}

	// Default to light when detection fails.
	return false
}

// ResolveColorScheme determines the effective dark mode preference,
// resolving "system" to whatever the desktop reports.
func ResolveColorScheme(scheme config.ColorScheme) bool {
	return resolveColorScheme(scheme, DetectSystemDarkMode)
}

func resolveColorScheme(scheme config.ColorScheme, detect func() bool) bool {
	switch scheme {
	case config.SchemeDark:
		return true
	case config.SchemeLight:
		return false
	default:
		return detect()
	}
}
