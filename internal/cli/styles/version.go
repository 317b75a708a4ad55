package styles

import (
	"fmt"
	"runtime"
	"strings"
)

// VersionInfo holds build metadata shown by the version command.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// RenderVersion renders the build metadata as styled key/value lines.
func RenderVersion(t *Theme, info VersionInfo) string {
	keyStyle := t.Subtle
	valStyle := t.Highlight

	row := func(key, val string) string {
		if val == "" {
			val = "unknown"
		}
		return fmt.Sprintf("%s %s", keyStyle.Render(fmt.Sprintf("%-8s", key)), valStyle.Render(val))
	}

	lines := []string{
		t.Title.Render("casement"),
		"",
		row("version", info.Version),
		row("commit", info.Commit),
		row("built", info.Date),
		row("go", runtime.Version()),
	}

	return t.Box.Render(strings.Join(lines, "\n"))
}
