package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/ui/theme"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "toolong...", truncate("toolongvalue", 10))
}

func TestNewPageList_RendersFallbackTitle(t *testing.T) {
	th := NewTheme(theme.DefaultDarkPalette())

	l := NewPageList(th, []PageItem{{URL: "https://untitled.example/"}}, 80, 10)
	view := l.View()

	// With no title the URL doubles as the title line.
	require.Contains(t, view, "https://untitled.example/")
}

func TestRenderVersion(t *testing.T) {
	th := NewTheme(theme.DefaultLightPalette())

	out := RenderVersion(th, VersionInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-08-01"})
	assert.Contains(t, out, "casement")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc1234")
	assert.Contains(t, out, "2026-08-01")

	// Missing fields fall back to a readable placeholder.
	out = RenderVersion(th, VersionInfo{})
	assert.Contains(t, out, "unknown")
}
