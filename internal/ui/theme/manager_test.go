package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
)

func TestNewManager_DarkMode(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeDark,
		},
	}

	manager := NewManager(ctx, cfg)

	assert.True(t, manager.PrefersDark())
	assert.Equal(t, config.SchemeDark, manager.Scheme())
}

func TestNewManager_LightMode(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeLight,
		},
	}

	manager := NewManager(ctx, cfg)

	assert.False(t, manager.PrefersDark())
}

func TestManager_CurrentPalette_Dark(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeDark,
		},
	}

	manager := NewManager(ctx, cfg)

	assert.Equal(t, DefaultDarkPalette(), manager.CurrentPalette())
}

func TestManager_CurrentPalette_Light(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeLight,
		},
	}

	manager := NewManager(ctx, cfg)

	assert.Equal(t, DefaultLightPalette(), manager.CurrentPalette())
}

func TestManager_SetColorScheme(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeDark,
		},
	}

	manager := NewManager(ctx, cfg)
	require.True(t, manager.PrefersDark())

	manager.SetColorScheme(ctx, config.SchemeLight, nil)

	assert.False(t, manager.PrefersDark())
	assert.Equal(t, config.SchemeLight, manager.Scheme())
}

func TestManager_SetColorScheme_SystemUsesProbe(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeLight,
		},
	}

	manager := NewManager(ctx, cfg)
	manager.detect = func() bool { return true }

	manager.SetColorScheme(ctx, config.SchemeSystem, nil)

	assert.True(t, manager.PrefersDark())
	assert.Equal(t, config.SchemeSystem, manager.Scheme())
}

func TestManager_Toggle(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeDark,
		},
	}

	manager := NewManager(ctx, cfg)

	got := manager.Toggle(ctx, nil)
	assert.Equal(t, config.SchemeLight, got)
	assert.False(t, manager.PrefersDark())

	got = manager.Toggle(ctx, nil)
	assert.Equal(t, config.SchemeDark, got)
	assert.True(t, manager.PrefersDark())
}

func TestManager_UpdateFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeDark,
		},
	}

	manager := NewManager(ctx, cfg)
	require.True(t, manager.PrefersDark())

	newCfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeLight,
		},
	}
	manager.UpdateFromConfig(ctx, newCfg, nil)

	assert.False(t, manager.PrefersDark())
	assert.Equal(t, config.SchemeLight, manager.Scheme())
}

func TestManager_UpdateFromConfig_NilConfig(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Appearance: config.AppearanceConfig{
			ColorScheme: config.SchemeDark,
		},
	}

	manager := NewManager(ctx, cfg)
	initialScheme := manager.Scheme()

	manager.UpdateFromConfig(ctx, nil, nil)

	assert.Equal(t, initialScheme, manager.Scheme())
}

func TestResolveColorScheme(t *testing.T) {
	tests := []struct {
		name   string
		scheme config.ColorScheme
		detect bool
		want   bool
	}{
		{name: "dark ignores probe", scheme: config.SchemeDark, detect: false, want: true},
		{name: "light ignores probe", scheme: config.SchemeLight, detect: true, want: false},
		{name: "system dark", scheme: config.SchemeSystem, detect: true, want: true},
		{name: "system light", scheme: config.SchemeSystem, detect: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveColorScheme(tt.scheme, func() bool { return tt.detect })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectSystemDarkMode_GtkThemeEnv(t *testing.T) {
	t.Setenv("GTK_THEME", "Adwaita:dark")
	assert.True(t, DetectSystemDarkMode())

	t.Setenv("GTK_THEME", "Adwaita")
	assert.False(t, DetectSystemDarkMode())
}

func TestGenerateCSS_CoversWidgetClasses(t *testing.T) {
	css := GenerateCSS(DefaultDarkPalette())

	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, ".toolbar")
	assert.Contains(t, css, "entry.address-entry")
	assert.Contains(t, css, ".tab-bar")
	assert.Contains(t, css, "button.tab-button")
	assert.Contains(t, css, ".tab-button-active")
	assert.Contains(t, css, "button.tab-close")
	assert.Contains(t, css, ".toast-error")
	assert.Contains(t, css, ".popup-panel")
	assert.Contains(t, css, ".bookmark-row")
}
