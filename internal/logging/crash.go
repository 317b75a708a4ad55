package logging

import (
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

var crashHandlerOnce sync.Once

// SetupCrashHandler installs handlers for the fatal signals native code can
// raise (WebKit and GTK run in-process) so the log ends with a Go stack and
// runtime snapshot instead of cutting off mid-line.
func SetupCrashHandler(logger zerolog.Logger) {
	crashHandlerOnce.Do(func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c,
			syscall.SIGSEGV,
			syscall.SIGABRT,
			syscall.SIGFPE,
			syscall.SIGBUS,
			syscall.SIGILL,
		)

		go func() {
			sig := <-c
			handleCrash(logger, sig)
		}()
	})
}

// handleCrash logs crash information and exits with the conventional
// 128+signal status so wrappers can tell crashes from clean exits.
func handleCrash(logger zerolog.Logger, sig os.Signal) {
	logger.WithLevel(zerolog.FatalLevel).
		Str("signal", sig.String()).
		Msg("caught fatal signal")

	logger.WithLevel(zerolog.FatalLevel).
		Str("stack", string(debug.Stack())).
		Msg("crash stack trace")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logger.WithLevel(zerolog.FatalLevel).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Int("num_cpu", runtime.NumCPU()).
		Int("goroutines", runtime.NumGoroutine()).
		Uint64("alloc_kb", m.Alloc/1024).
		Uint64("sys_kb", m.Sys/1024).
		Uint32("num_gc", m.NumGC).
		Msg("runtime state at crash")

	if s, ok := sig.(syscall.Signal); ok {
		os.Exit(128 + int(s))
	}
	os.Exit(1)
}

// SetupPanicRecovery logs a panic with its stack before re-raising it, so the
// crash lands in the log file as well as on stderr. Call it with defer at the
// top of main-like functions:
//
//	defer logging.SetupPanicRecovery(logger)
func SetupPanicRecovery(logger zerolog.Logger) {
	if r := recover(); r != nil {
		logger.WithLevel(zerolog.FatalLevel).
			Interface("panic", r).
			Str("stack", string(debug.Stack())).
			Msg("panic in main goroutine")

		// Re-panic so the runtime still prints the usual crash output.
		panic(r)
	}
}
