package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMarkers_WriteStartupAndShutdown(t *testing.T) {
	lockDir := t.TempDir()
	sessionID := "s123"
	startedAt := time.Date(2026, 8, 7, 10, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(3 * time.Minute)

	require.NoError(t, writeStartupMarker(lockDir, sessionID, startedAt))

	startupContent, err := os.ReadFile(startupMarkerPath(lockDir, sessionID))
	require.NoError(t, err)
	assert.Contains(t, string(startupContent), startedAt.Format(time.RFC3339Nano))
	assert.Contains(t, string(startupContent), "pid=")
	assert.Contains(t, string(startupContent), "ppid=")

	require.NoError(t, writeShutdownMarker(lockDir, sessionID, endedAt))

	shutdownContent, err := os.ReadFile(shutdownMarkerPath(lockDir, sessionID))
	require.NoError(t, err)
	assert.Contains(t, string(shutdownContent), endedAt.Format(time.RFC3339Nano))
	assert.Contains(t, string(shutdownContent), "started_at="+startedAt.Format(time.RFC3339Nano))
	assert.Contains(t, string(shutdownContent), "pid=")

	// Recording the shutdown consumes the startup marker.
	assert.NoFileExists(t, startupMarkerPath(lockDir, sessionID))
}

func TestSessionMarkers_MarkAbruptExits(t *testing.T) {
	lockDir := t.TempDir()
	detectedAt := time.Date(2026, 8, 7, 11, 0, 0, 0, time.UTC)

	require.NoError(t, writeStartupMarker(lockDir, "abrupt-a", detectedAt.Add(-5*time.Minute)))
	require.NoError(t, writeStartupMarker(lockDir, "clean-b", detectedAt.Add(-4*time.Minute)))
	require.NoError(t, writeShutdownMarker(lockDir, "clean-b", detectedAt.Add(-1*time.Minute)))

	abruptSessions, err := markAbruptExits(lockDir, detectedAt, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"abrupt-a"}, abruptSessions)

	abruptMarkerData, err := os.ReadFile(abruptMarkerPath(lockDir, "abrupt-a"))
	require.NoError(t, err)
	assert.Contains(t, string(abruptMarkerData), "detected_at="+detectedAt.Format(time.RFC3339Nano))
	assert.Contains(t, string(abruptMarkerData), "started_at=")
	assert.Contains(t, string(abruptMarkerData), "pid=")
	assert.FileExists(t, filepath.Join(lockDir, "session_clean-b.shutdown.marker"))
}

func TestSessionMarkers_MarkAbruptExitsIdempotent(t *testing.T) {
	lockDir := t.TempDir()
	detectedAt := time.Date(2026, 8, 7, 12, 0, 0, 0, time.UTC)

	require.NoError(t, writeStartupMarker(lockDir, "abrupt-c", detectedAt.Add(-10*time.Minute)))

	first, err := markAbruptExits(lockDir, detectedAt, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"abrupt-c"}, first)

	second, err := markAbruptExits(lockDir, detectedAt.Add(1*time.Minute), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestStartSessionGuard_CleanRun(t *testing.T) {
	lockDir := t.TempDir()
	reportsDir := filepath.Join(lockDir, "crash")
	ctx := context.Background()

	guard := StartSessionGuard(ctx, lockDir, reportsDir, "")
	require.NotEmpty(t, guard.ID())
	assert.Empty(t, guard.UnexpectedCloseReports())
	assert.FileExists(t, startupMarkerPath(lockDir, guard.ID()))
	assert.FileExists(t, sessionLockPath(lockDir, guard.ID()))

	guard.End(ctx)
	assert.FileExists(t, shutdownMarkerPath(lockDir, guard.ID()))
	assert.NoFileExists(t, startupMarkerPath(lockDir, guard.ID()))
	assert.NoFileExists(t, sessionLockPath(lockDir, guard.ID()))
}

func TestStartSessionGuard_PanicKeepsStartupMarker(t *testing.T) {
	lockDir := t.TempDir()
	reportsDir := filepath.Join(lockDir, "crash")
	ctx := context.Background()

	guard := StartSessionGuard(ctx, lockDir, reportsDir, "")

	func() {
		defer func() { _ = recover() }()
		defer guard.End(ctx)
		defer guard.AbortOnPanic()
		panic("boom")
	}()

	// No clean-shutdown marker: the next launch must see this run as abrupt.
	assert.NoFileExists(t, shutdownMarkerPath(lockDir, guard.ID()))
	assert.FileExists(t, startupMarkerPath(lockDir, guard.ID()))
	assert.NoFileExists(t, sessionLockPath(lockDir, guard.ID()))

	next := StartSessionGuard(ctx, lockDir, reportsDir, "")
	defer next.End(ctx)

	reports := next.UnexpectedCloseReports()
	require.Len(t, reports, 1)
	assert.Contains(t, reports[0], guard.ID())
}

func TestStartSessionGuard_ReportsPreviousCrash(t *testing.T) {
	lockDir := t.TempDir()
	reportsDir := filepath.Join(lockDir, "crash")
	ctx := context.Background()

	// A previous run left its startup marker behind and holds no lock.
	require.NoError(t, writeStartupMarker(lockDir, "dead-1", time.Now().UTC().Add(-time.Hour)))

	guard := StartSessionGuard(ctx, lockDir, reportsDir, "")
	defer guard.End(ctx)

	reports := guard.UnexpectedCloseReports()
	require.Len(t, reports, 1)
	assert.FileExists(t, reports[0])
	assert.Contains(t, reports[0], "dead-1")
}

func TestStartSessionGuard_NoLockDir(t *testing.T) {
	ctx := context.Background()

	guard := StartSessionGuard(ctx, "", "", "")
	require.NotEmpty(t, guard.ID())
	assert.Empty(t, guard.UnexpectedCloseReports())

	// End is a no-op without a lock dir, not a crash.
	guard.End(ctx)
}
