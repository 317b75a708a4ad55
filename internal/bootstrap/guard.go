package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/logging"
)

const (
	lockDirPerm    = 0o755
	lockFilePerm   = 0o600
	markerFilePerm = 0o644

	markerMaxAgeDays = 7
)

// SessionGuard tracks one browser run through a lock file and marker
// files in the log directory. The next launch reads the markers to tell
// a clean exit from a crash, and generates an unexpected-close report
// for the latter.
type SessionGuard struct {
	id      string
	lockDir string
	logger  zerolog.Logger

	lockFile *os.File
	lockPath string

	reports []string
	aborted bool
}

// StartSessionGuard claims a session ID for this run, sweeps markers
// left behind by previous runs (writing crash reports for any that died
// without a shutdown marker), and records this run's startup marker.
// Forensics never block startup: every failure degrades to a warning.
// logPath is the active log file whose tail gets attached to reports.
func StartSessionGuard(ctx context.Context, lockDir, reportsDir, logPath string) *SessionGuard {
	log := logging.FromContext(ctx)

	guard := &SessionGuard{
		id:      logging.GenerateSessionID(),
		lockDir: lockDir,
		logger:  *log,
	}

	if lockDir == "" {
		log.Warn().Msg("no log directory, crash forensics disabled")
		return guard
	}

	guard.reports = detectAbruptExitsAndReport(lockDir, reportsDir, logPath, *log)

	if err := writeStartupMarker(lockDir, guard.id, time.Now().UTC()); err != nil {
		log.Warn().Err(err).Str("session_id", guard.id).Msg("failed to write startup marker")
	}

	lf, lp, err := lockSessionFile(lockDir, guard.id)
	if err != nil {
		// Locking only affects stale-session detection, not operation.
		log.Warn().Err(err).Msg("failed to acquire session lock")
	} else {
		guard.lockFile = lf
		guard.lockPath = lp
	}

	// Old paired markers are housekeeping, not startup work.
	go sweepPairedMarkers(lockDir, markerMaxAgeDays, *log)

	return guard
}

// ID returns the session identifier claimed for this run.
func (g *SessionGuard) ID() string {
	return g.id
}

// UnexpectedCloseReports returns the report files generated during
// startup for previous runs that ended abruptly.
func (g *SessionGuard) UnexpectedCloseReports() []string {
	return append([]string(nil), g.reports...)
}

// AbortOnPanic checks for an in-flight panic and, when one is found,
// marks this run aborted before re-raising. End then leaves the startup
// marker in place, so the next launch classifies the run as abrupt and
// files an unexpected-close report (the log tail will contain the panic
// by then). Defer it after End so it runs first during unwinding:
//
//	defer guard.End(ctx)
//	defer guard.AbortOnPanic()
func (g *SessionGuard) AbortOnPanic() {
	if r := recover(); r != nil {
		g.aborted = true
		g.logger.Error().
			Interface("panic", r).
			Str("session_id", g.id).
			Msg("panic in session, skipping clean-shutdown marker")
		panic(r)
	}
}

// End records a clean shutdown and releases the session lock. An
// aborted run keeps its startup marker so the crash is reported on the
// next launch.
func (g *SessionGuard) End(ctx context.Context) {
	log := logging.FromContext(ctx)

	if g.lockDir != "" && !g.aborted {
		if err := writeShutdownMarker(g.lockDir, g.id, time.Now().UTC()); err != nil {
			log.Warn().Err(err).Str("session_id", g.id).Msg("failed to write shutdown marker")
		}
	}

	if g.lockFile != nil {
		_ = unlockAndClose(g.lockFile)
		_ = os.Remove(g.lockPath)
		g.lockFile = nil
	}
}

func detectAbruptExitsAndReport(lockDir, reportsDir, logPath string, logger zerolog.Logger) []string {
	abruptSessions, err := markAbruptExits(lockDir, time.Now().UTC(), logger)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to check abrupt exit markers")
		return nil
	}

	reports := make([]string, 0, len(abruptSessions))
	for _, sessionID := range abruptSessions {
		logger.Warn().
			Str("session_id", sessionID).
			Msg("abrupt-exit marker detected (startup without shutdown)")

		reportPath, reportErr := writeUnexpectedCloseReport(lockDir, reportsDir, logPath, sessionID)
		if reportErr != nil {
			logger.Warn().Err(reportErr).Str("session_id", sessionID).Msg("failed to write unexpected-close report")
			continue
		}
		if reportPath == "" {
			continue
		}
		reports = append(reports, reportPath)
		logger.Warn().
			Str("session_id", sessionID).
			Str("report_path", reportPath).
			Msg("unexpected-close report generated")
	}

	return reports
}

func sessionLockPath(lockDir, sessionID string) string {
	return filepath.Join(lockDir, fmt.Sprintf("session_%s.lock", sessionID))
}

func lockSessionFile(lockDir, sessionID string) (*os.File, string, error) {
	if lockDir == "" {
		return nil, "", errors.New("lock dir is empty")
	}
	if err := os.MkdirAll(lockDir, lockDirPerm); err != nil {
		return nil, "", err
	}

	lockPath := sessionLockPath(lockDir, sessionID)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockFilePerm)
	if err != nil {
		return nil, "", err
	}

	locked, lockErr := tryLockExclusiveNonBlocking(f)
	if lockErr != nil {
		_ = f.Close()
		return nil, "", lockErr
	}
	if !locked {
		_ = f.Close()
		return nil, "", errors.New("session lock already held")
	}
	return f, lockPath, nil
}

func tryLockExclusiveNonBlocking(f *os.File) (bool, error) {
	if f == nil {
		return false, errors.New("nil file")
	}
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return false, nil
	}
	return false, err
}

func unlockAndClose(f *os.File) error {
	if f == nil {
		return nil
	}
	_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	return f.Close()
}

func startupMarkerPath(lockDir, sessionID string) string {
	return filepath.Join(lockDir, fmt.Sprintf("session_%s.startup.marker", sessionID))
}

func shutdownMarkerPath(lockDir, sessionID string) string {
	return filepath.Join(lockDir, fmt.Sprintf("session_%s.shutdown.marker", sessionID))
}

func abruptMarkerPath(lockDir, sessionID string) string {
	return filepath.Join(lockDir, fmt.Sprintf("session_%s.abrupt.marker", sessionID))
}

func writeStartupMarker(lockDir, sessionID string, startedAt time.Time) error {
	if lockDir == "" || sessionID == "" {
		return errors.New("startup marker requires lockDir and sessionID")
	}
	if err := os.MkdirAll(lockDir, lockDirPerm); err != nil {
		return err
	}
	content := []byte(fmt.Sprintf(
		"%s\npid=%d\nppid=%d\n",
		startedAt.Format(time.RFC3339Nano),
		os.Getpid(),
		os.Getppid(),
	))
	if err := os.WriteFile(startupMarkerPath(lockDir, sessionID), content, markerFilePerm); err != nil {
		return err
	}
	_ = os.Remove(shutdownMarkerPath(lockDir, sessionID))
	_ = os.Remove(abruptMarkerPath(lockDir, sessionID))
	return nil
}

func writeShutdownMarker(lockDir, sessionID string, endedAt time.Time) error {
	if lockDir == "" || sessionID == "" {
		return errors.New("shutdown marker requires lockDir and sessionID")
	}
	if err := os.MkdirAll(lockDir, lockDirPerm); err != nil {
		return err
	}

	// Preserve the startup time inside the shutdown marker so exit
	// classification can still read it after the startup marker file
	// is removed.
	var startupLine string
	var pidLine string
	var ppidLine string
	startupPath := startupMarkerPath(lockDir, sessionID)
	if raw, readErr := os.ReadFile(startupPath); readErr == nil {
		if t := firstNonEmptyLine(raw); t != "" {
			startupLine = "started_at=" + t + "\n"
		}
		if pid := markerValue(raw, "pid="); pid != "" {
			pidLine = "pid=" + pid + "\n"
		}
		if ppid := markerValue(raw, "ppid="); ppid != "" {
			ppidLine = "ppid=" + ppid + "\n"
		}
	}

	content := []byte(endedAt.Format(time.RFC3339Nano) + "\n" + startupLine + pidLine + ppidLine)
	if err := os.WriteFile(shutdownMarkerPath(lockDir, sessionID), content, markerFilePerm); err != nil {
		return err
	}
	// The startup marker has served its purpose once shutdown is recorded.
	_ = os.Remove(startupPath)
	return nil
}

func markAbruptExits(lockDir string, detectedAt time.Time, logger zerolog.Logger) ([]string, error) {
	if lockDir == "" {
		return nil, nil
	}
	pattern := filepath.Join(lockDir, "session_*.startup.marker")
	startupMarkers, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	abruptSessions := make([]string, 0, len(startupMarkers))
	for _, startupPath := range startupMarkers {
		sessionID := sessionIDFromStartupMarker(startupPath)
		if sessionID == "" {
			continue
		}

		shouldMark, checkErr := shouldMarkAbruptExit(lockDir, sessionID, logger)
		if checkErr != nil {
			logger.Warn().Err(checkErr).Str("session_id", sessionID).Msg("markAbruptExits: marker checks failed")
			continue
		}
		if !shouldMark {
			continue
		}

		startupRaw, _ := os.ReadFile(startupPath)
		payload := fmt.Sprintf("detected_at=%s\nstartup_marker=%s\n", detectedAt.Format(time.RFC3339Nano), startupPath)
		if startupAt := firstNonEmptyLine(startupRaw); startupAt != "" {
			payload += "started_at=" + startupAt + "\n"
		}
		if pid := markerValue(startupRaw, "pid="); pid != "" {
			payload += "pid=" + pid + "\n"
		}
		if ppid := markerValue(startupRaw, "ppid="); ppid != "" {
			payload += "ppid=" + ppid + "\n"
		}

		if err := os.WriteFile(abruptMarkerPath(lockDir, sessionID), []byte(payload), markerFilePerm); err != nil {
			return abruptSessions, err
		}
		abruptSessions = append(abruptSessions, sessionID)
	}

	return abruptSessions, nil
}

func sessionIDFromStartupMarker(startupPath string) string {
	base := filepath.Base(startupPath)
	if !strings.HasPrefix(base, "session_") || !strings.HasSuffix(base, ".startup.marker") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(base, "session_"), ".startup.marker")
}

// shouldMarkAbruptExit reports whether a leftover startup marker really
// represents a crashed run. A session whose lock is still held belongs
// to a live process; one with a shutdown or abrupt marker has already
// been accounted for.
func shouldMarkAbruptExit(lockDir, sessionID string, logger zerolog.Logger) (bool, error) {
	active, probeErr := sessionLockHeldByLiveProcess(lockDir, sessionID, logger)
	if probeErr != nil {
		return false, probeErr
	}
	if active {
		return false, nil
	}

	if exists, statErr := markerExists(shutdownMarkerPath(lockDir, sessionID)); statErr != nil {
		return false, statErr
	} else if exists {
		return false, nil
	}

	if exists, statErr := markerExists(abruptMarkerPath(lockDir, sessionID)); statErr != nil {
		return false, statErr
	} else if exists {
		return false, nil
	}

	return true, nil
}

func sessionLockHeldByLiveProcess(lockDir, sessionID string, logger zerolog.Logger) (bool, error) {
	lockPath := sessionLockPath(lockDir, sessionID)
	f, openErr := os.OpenFile(lockPath, os.O_RDWR, lockFilePerm)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return false, nil
		}
		logger.Warn().
			Err(openErr).
			Str("session_id", sessionID).
			Str("path", lockPath).
			Msg("markAbruptExits: open lock file failed")
		return false, openErr
	}

	locked, lockErr := tryLockExclusiveNonBlocking(f)
	if lockErr != nil {
		_ = f.Close()
		logger.Warn().
			Err(lockErr).
			Str("session_id", sessionID).
			Str("path", lockPath).
			Msg("markAbruptExits: lock probe failed")
		return false, lockErr
	}
	if !locked {
		// Another process holds the lock, the session is still alive.
		_ = f.Close()
		return true, nil
	}
	_ = unlockAndClose(f)
	return false, nil
}

func markerExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func firstNonEmptyLine(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	first, _, _ := strings.Cut(trimmed, "\n")
	return strings.TrimSpace(first)
}

func markerValue(raw []byte, key string) string {
	if key == "" || len(raw) == 0 {
		return ""
	}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, key) {
			return strings.TrimSpace(strings.TrimPrefix(line, key))
		}
	}
	return ""
}

// sweepPairedMarkers removes marker files for sessions that have both a
// shutdown marker and a startup marker older than maxAgeDays. Removal
// errors are non-fatal.
func sweepPairedMarkers(lockDir string, maxAgeDays int, log zerolog.Logger) {
	if lockDir == "" {
		return
	}
	if maxAgeDays <= 0 {
		maxAgeDays = markerMaxAgeDays
	}
	cutoff := time.Now().Add(-time.Duration(maxAgeDays) * 24 * time.Hour)

	shutdownMarkers, err := filepath.Glob(filepath.Join(lockDir, "session_*.shutdown.marker"))
	if err != nil {
		log.Warn().Err(err).Msg("sweepPairedMarkers: glob failed")
		return
	}

	swept := 0
	for _, shutdownPath := range shutdownMarkers {
		base := filepath.Base(shutdownPath)
		sessionID := strings.TrimSuffix(strings.TrimPrefix(base, "session_"), ".shutdown.marker")
		if sessionID == "" || sessionID == base {
			continue
		}

		shutdownInfo, err := os.Stat(shutdownPath)
		if err != nil || shutdownInfo.ModTime().After(cutoff) {
			continue
		}

		// The startup marker is normally removed when shutdown is
		// recorded; only aged leftovers qualify for the sweep.
		startupPath := startupMarkerPath(lockDir, sessionID)
		if startupInfo, err := os.Stat(startupPath); err == nil && startupInfo.ModTime().After(cutoff) {
			continue
		}

		for _, p := range []string{shutdownPath, startupPath, abruptMarkerPath(lockDir, sessionID)} {
			if rmErr := os.Remove(p); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Warn().Err(rmErr).Str("path", p).Msg("sweepPairedMarkers: remove failed")
			}
		}
		swept++
	}

	if swept > 0 {
		log.Info().Int("swept", swept).Msg("sweepPairedMarkers: cleaned up old marker files")
	}
}
