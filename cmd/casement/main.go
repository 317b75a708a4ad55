package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/Zeal1001/casement/assets"
	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/bootstrap"
	"github.com/Zeal1001/casement/internal/cli"
	"github.com/Zeal1001/casement/internal/cli/cmd"
	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/logging"
	"github.com/Zeal1001/casement/internal/parser"
	"github.com/Zeal1001/casement/internal/ui"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// initialURL holds the URL the first tab opens on startup.
var initialURL string

func main() {
	enableCrashForensics()

	// GUI invocations bypass Cobra entirely: the GTK main loop must own
	// the process from the start.
	if target, gui := guiTarget(os.Args[1:]); gui {
		initialURL = target
		os.Args = os.Args[:1]
		os.Exit(runGUI())
	}

	cmd.SetBuildInfo(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    buildDate,
	})
	cmd.Execute()
}

// guiTarget decides whether the invocation opens the browser window and,
// if so, which URL the first tab navigates to. A bare invocation, the
// browse subcommand, and any non-flag argument that is not a known
// subcommand all open the window; everything else falls through to the
// CLI.
func guiTarget(args []string) (string, bool) {
	if len(args) == 0 {
		return "", true
	}
	if args[0] == "browse" {
		if len(args) > 1 {
			return args[1], true
		}
		return "", true
	}
	if strings.HasPrefix(args[0], "-") {
		return "", false
	}
	switch args[0] {
	case "history", "bookmarks", "session", "config", "version", "help", "completion":
		return "", false
	}
	return args[0], true
}

func runGUI() int {
	runtime.LockOSThread()
	timer := bootstrap.NewStartupTimer()

	cfg, mgr := initConfig()
	timer.Mark("config")

	ctx, rotator, capture := initGUIContext(cfg)
	if rotator != nil {
		defer func() { _ = rotator.Close() }()
	}
	if capture != nil {
		defer capture.Stop()
	}
	timer.Mark("logger")
	log := logging.FromContext(ctx)
	defer logging.SetupPanicRecovery(*log)

	logPath := ""
	if rotator != nil {
		logPath = rotator.Path()
	}
	logDir, _ := config.GetLogDir()
	reportsDir, _ := config.GetCrashReportDir()
	guard := bootstrap.StartSessionGuard(ctx, logDir, reportsDir, logPath)
	defer guard.End(ctx)
	defer guard.AbortOnPanic()
	ctx = logging.WithContext(ctx, log.With().Str("sid", logging.ShortSessionID(guard.ID())).Logger())
	log = logging.FromContext(ctx)
	timer.Mark("session_guard")

	logCoreDumpLimits(ctx)

	initResult, err := bootstrap.RunParallelInit(bootstrap.ParallelInitInput{
		Ctx:    ctx,
		Config: cfg,
	})
	if err != nil {
		log.Error().Err(err).Msg("initialization failed")
		return 1
	}
	timer.MarkDuration("parallel_init", initResult.Duration)

	stack, err := bootstrap.BuildWebStack(bootstrap.WebStackInput{
		Ctx:      ctx,
		Config:   cfg,
		DataDir:  initResult.DataDir,
		CacheDir: initResult.CacheDir,
		Logger:   *log,
	})
	if err != nil {
		log.Error().Err(err).Msg("web engine initialization failed")
		return 1
	}
	defer stack.Close(ctx)
	timer.Mark("webkit")

	crashReport := ""
	if reports := guard.UnexpectedCloseReports(); len(reports) > 0 {
		crashReport = reports[len(reports)-1]
		log.Warn().
			Strs("reports", reports).
			Msg("previous session closed unexpectedly, crash reports written")
	}

	app, err := ui.New(buildUIDependencies(ctx, cfg, mgr, initResult, stack, crashReport))
	if err != nil {
		log.Error().Err(err).Msg("failed to create application")
		return 1
	}
	timer.Mark("ui_deps")
	timer.Log(ctx)

	setupSignalHandler(ctx, app)

	return app.Run(ctx, os.Args)
}

func initConfig() (*config.Config, *config.Manager) {
	mgr, err := config.NewManager()
	if err == nil {
		err = mgr.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare data directories: %v\n", err)
		os.Exit(1)
	}
	return mgr.Get(), mgr
}

// initGUIContext builds the graphical session's logger: console output,
// the rotating log file when enabled, and optionally the fd-level
// capture that routes native library prints through the logger.
func initGUIContext(cfg *config.Config) (context.Context, *logging.Rotator, *logging.OutputCapture) {
	var capture *logging.OutputCapture
	var console io.Writer
	if cfg.Logging.CaptureNativeOutput {
		c, err := logging.NewOutputCapture()
		if err == nil {
			capture = c
			console = c.TerminalStderr()
		} else {
			fmt.Fprintf(os.Stderr, "warning: native output capture unavailable: %v\n", err)
		}
	}

	logDir, dirErr := config.GetLogDir()
	logger, rotator, fileErr := logging.NewWithFile(
		logging.Config{
			Level:      logging.ParseLevel(cfg.Logging.Level),
			Format:     cfg.Logging.Format,
			TimeFormat: logging.ConsoleTimeFormat,
		},
		logging.FileConfig{
			Enabled:    cfg.Logging.EnableFileLog && dirErr == nil,
			Dir:        logDir,
			MaxSizeMB:  cfg.Logging.MaxSize,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAge,
			Compress:   cfg.Logging.Compress,
			Console:    console,
		},
	)

	if capture != nil {
		if err := capture.Start(logger); err != nil {
			logger.Warn().Err(err).Msg("native output capture failed to start")
			capture.Stop()
			capture = nil
		}
	}

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Msg("starting casement")
	if fileErr != nil {
		logger.Warn().Err(fileErr).Msg("file logging unavailable, console only")
	}

	logging.SetupCrashHandler(logger)

	return logging.WithContext(context.Background(), logger), rotator, capture
}

func buildUIDependencies(
	ctx context.Context,
	cfg *config.Config,
	mgr *config.Manager,
	initResult *bootstrap.ParallelInitResult,
	stack bootstrap.WebStack,
	crashReport string,
) *ui.Dependencies {
	idCounter := 0
	idGenerator := func() string {
		idCounter++
		return fmt.Sprintf("tab-%d", idCounter)
	}

	resolver := parser.NewResolver(cfg.Search.EngineURL)

	return &ui.Dependencies{
		Ctx:                 ctx,
		Config:              cfg,
		ConfigManager:       mgr,
		InitialURL:          initialURL,
		PreviousCrashReport: crashReport,
		Theme:               initResult.Theme,
		Browsing:            stack.Browsing,
		Factory:             stack.Factory,
		Settings:            stack.Settings,
		Injector:            initResult.Injector,
		HomeHTML:            assets.HomePage,
		Tabs:                entity.NewTabList(),
		TabsUC:              usecase.NewManageTabsUseCase(idGenerator),
		NavigateUC:          usecase.NewNavigateUseCase(resolver),
		BookmarksUC:         usecase.NewManageBookmarksUseCase(initResult.Bookmarks),
		HistoryUC:           usecase.NewRecordHistoryUseCase(initResult.History),
		SnapshotUC:          usecase.NewSnapshotSessionUseCase(initResult.Sessions),
		RestoreUC:           usecase.NewRestoreSessionUseCase(initResult.Sessions),
	}
}

func setupSignalHandler(ctx context.Context, app *ui.App) {
	log := logging.FromContext(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		signal.Stop(sigCh)
		log.Info().Str("signal", sig.String()).Msg("received interrupt, quitting")
		app.Quit()
	}()
}
