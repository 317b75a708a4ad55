package bootstrap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRedactSensitiveContent(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   []string
		absent []string
	}{
		{
			name:   "url query and fragment stripped",
			line:   "page loaded url=https://example.com/cb?code=abc123&token=secret#frag",
			want:   []string{"https://example.com/cb"},
			absent: []string{"abc123", "secret", "#frag"},
		},
		{
			name: "plain url untouched",
			line: "navigating to https://news.site/article",
			want: []string{"https://news.site/article"},
		},
		{
			name:   "key value secrets masked",
			line:   "login attempt password=hunter2 user=bob",
			want:   []string{"password=[REDACTED]", "user=bob"},
			absent: []string{"hunter2"},
		},
		{
			name:   "json secrets masked",
			line:   `body {"access_token": "eyJhbGci", "name": "bob"}`,
			want:   []string{`"access_token":"[REDACTED]"`, `"name": "bob"`},
			absent: []string{"eyJhbGci"},
		},
		{
			name:   "auth headers masked",
			line:   "Authorization: Bearer abc.def.ghi",
			want:   []string{"Authorization: [REDACTED]"},
			absent: []string{"abc.def.ghi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redactSensitiveContent(tt.line)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}
}

func TestWriteUnexpectedCloseReport(t *testing.T) {
	lockDir := t.TempDir()
	reportsDir := filepath.Join(lockDir, "reports")
	logPath := writeTestFile(t, lockDir, "casement.log", strings.Join([]string{
		`{"level":"info","message":"navigating to https://example.com/watch?v=secret"}`,
		`{"level":"error","message":"renderer gone"}`,
	}, "\n")+"\n")

	startedAt := time.Date(2026, 8, 7, 8, 0, 0, 0, time.UTC)
	require.NoError(t, writeStartupMarker(lockDir, "boom", startedAt))
	abrupt, err := markAbruptExits(lockDir, startedAt.Add(time.Minute), zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, []string{"boom"}, abrupt)

	jsonPath, err := writeUnexpectedCloseReport(lockDir, reportsDir, logPath, "boom")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(reportsDir, "session_boom.crash.json"), jsonPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var report unexpectedCloseReport
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "boom", report.SessionID)
	assert.Equal(t, SessionExitMainProcessCrashOrAbrupt, report.Classification.Class)
	assert.Equal(t, "casement", report.ReporterProcess.GeneratedBy)
	assert.Equal(t, logPath, report.LogFile)
	assert.NotZero(t, report.StartupPID)

	tail := strings.Join(report.LogTail, "\n")
	assert.Contains(t, tail, "https://example.com/watch")
	assert.NotContains(t, tail, "v=secret")

	mdPath := filepath.Join(reportsDir, "session_boom.crash.md")
	require.FileExists(t, mdPath)
	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Issue Template")
	assert.Contains(t, string(md), "Redacted Log Tail")
}

func TestWriteUnexpectedCloseReport_CleanSessionSkipped(t *testing.T) {
	lockDir := t.TempDir()
	startedAt := time.Date(2026, 8, 7, 8, 0, 0, 0, time.UTC)
	require.NoError(t, writeStartupMarker(lockDir, "fine", startedAt))
	require.NoError(t, writeShutdownMarker(lockDir, "fine", startedAt.Add(time.Minute)))

	path, err := writeUnexpectedCloseReport(lockDir, "", "", "fine")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestWriteUnexpectedCloseReport_MissingLogTolerated(t *testing.T) {
	lockDir := t.TempDir()
	startedAt := time.Date(2026, 8, 7, 8, 0, 0, 0, time.UTC)
	require.NoError(t, writeStartupMarker(lockDir, "nolo", startedAt))

	jsonPath, err := writeUnexpectedCloseReport(lockDir, "", filepath.Join(lockDir, "missing.log"), "nolo")
	require.NoError(t, err)
	require.NotEmpty(t, jsonPath)

	// reportsDir falls back to a crashes subdir next to the markers.
	assert.Equal(t, filepath.Join(lockDir, "crashes", "session_nolo.crash.json"), jsonPath)

	var report unexpectedCloseReport
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Empty(t, report.LogTail)
	assert.Equal(t, SessionExitExternalKillOrOOMInferred, report.Classification.Class)
}

func TestPruneOldCrashReports(t *testing.T) {
	reportsDir := t.TempDir()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < maxCrashReportsKept+3; i++ {
		name := "session_" + string(rune('a'+i)) + ".crash"
		jsonPath := writeTestFile(t, reportsDir, name+".json", "{}")
		writeTestFile(t, reportsDir, name+".md", "# report")
		stamp := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(jsonPath, stamp, stamp))
	}

	pruneOldCrashReports(reportsDir, maxCrashReportsKept)

	remaining, err := filepath.Glob(filepath.Join(reportsDir, "session_*.crash.json"))
	require.NoError(t, err)
	assert.Len(t, remaining, maxCrashReportsKept)

	// The oldest three pairs are gone, markdown twins included.
	assert.NoFileExists(t, filepath.Join(reportsDir, "session_a.crash.json"))
	assert.NoFileExists(t, filepath.Join(reportsDir, "session_a.crash.md"))
	assert.FileExists(t, filepath.Join(reportsDir, "session_d.crash.json"))
}
