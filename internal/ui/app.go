package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/Zeal1001/casement/internal/application/port"
	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/infrastructure/snapshot"
	"github.com/Zeal1001/casement/internal/logging"
	"github.com/Zeal1001/casement/internal/ui/component"
	"github.com/Zeal1001/casement/internal/ui/controller"
	"github.com/Zeal1001/casement/internal/ui/notify"
	"github.com/Zeal1001/casement/internal/ui/window"
)

// appTitle is the application name shown in window titles.
const appTitle = "Casement"

// App owns the GTK application lifecycle: one main window, its
// controller, and the services that run alongside it.
type App struct {
	deps   *Dependencies
	cancel context.CancelCauseFunc

	gtkApp     *gtk.Application
	mainWindow *window.MainWindow

	toaster       *component.Toaster
	alertPopup    *component.AlertPopup
	bookmarkPopup *component.BookmarkPopup
	notifier      *notify.Notifier

	controller      *controller.WindowController
	snapshotService *snapshot.Service
}

// New creates an App with the given dependencies.
func New(deps *Dependencies) (*App, error) {
	if deps == nil {
		return nil, fmt.Errorf("%w: dependencies", ErrMissingDependency)
	}
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	return &App{deps: deps}, nil
}

// Run starts the GTK application and blocks until it exits.
// Returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	ctx, cancel := context.WithCancelCause(ctx)
	a.cancel = cancel

	log := logging.FromContext(ctx)
	log.Debug().Msg("creating GTK application")

	// TODO: Use an application ID once puregotk's nullable string
	// handling is fixed upstream (memory corruption under GC pressure).
	a.gtkApp = gtk.NewApplication(nil, gio.GApplicationFlagsNoneValue)
	if a.gtkApp == nil {
		log.Error().Msg("failed to create GTK application")
		return 1
	}
	defer a.gtkApp.Unref()

	activateCb := func(_ gio.Application) {
		a.onActivate(ctx)
	}
	a.gtkApp.ConnectActivate(&activateCb)

	shutdownCb := func(_ gio.Application) {
		a.onShutdown(ctx)
	}
	a.gtkApp.ConnectShutdown(&shutdownCb)

	log.Info().Msg("starting GTK main loop")
	return a.gtkApp.Run(len(args), args)
}

// onActivate builds the window and wires everything together. Order
// matters: overlays before the controller (the notifier needs them),
// the controller before session restore (restore opens tabs through
// its hooks).
func (a *App) onActivate(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("GTK application activated")

	if err := a.createMainWindow(ctx); err != nil {
		log.Error().Err(err).Msg("failed to create main window")
		return
	}

	a.initOverlays(ctx)
	a.initController(ctx)
	a.initSnapshotService(ctx)
	a.restoreSession(ctx)
	a.finalizeActivation(ctx)
}

func (a *App) createMainWindow(ctx context.Context) error {
	mw, err := window.New(ctx, a.gtkApp, a.deps.Config)
	if err != nil {
		return err
	}
	a.mainWindow = mw

	if a.deps.Theme != nil {
		a.deps.Theme.ApplyToDisplay(ctx, a.mainWindow.Window().GetDisplay())
	}
	return nil
}

// initOverlays stacks the notification widgets over the web content.
func (a *App) initOverlays(ctx context.Context) {
	log := logging.FromContext(ctx)

	a.toaster = component.NewToaster()
	if a.toaster != nil {
		a.mainWindow.AddOverlay(a.toaster.Widget())
	} else {
		log.Warn().Msg("toaster unavailable, transient notices disabled")
	}

	a.alertPopup = component.NewAlertPopup()
	if a.alertPopup != nil {
		a.mainWindow.AddOverlay(a.alertPopup.Widget())
	} else {
		log.Warn().Msg("alert popup unavailable, alerts disabled")
	}

	a.bookmarkPopup = component.NewBookmarkPopup()
	if a.bookmarkPopup != nil {
		a.mainWindow.AddOverlay(a.bookmarkPopup.Widget())
	} else {
		log.Warn().Msg("bookmark popup unavailable, picker disabled")
	}

	a.notifier = notify.NewNotifier(a.toaster, a.alertPopup)
}

func (a *App) initController(ctx context.Context) {
	a.controller = controller.NewWindowController(ctx, controller.Deps{
		Tabs:      a.deps.Tabs,
		Factory:   a.deps.Factory,
		Notifier:  a.notifier,
		Injector:  a.deps.Injector,
		HomeHTML:  a.deps.HomeHTML,
		Navigate:  a.deps.NavigateUC,
		TabsUC:    a.deps.TabsUC,
		Bookmarks: a.deps.BookmarksUC,
		History:   a.deps.HistoryUC,
		Snapshot:  a.deps.SnapshotUC,
		Restore:   a.deps.RestoreUC,
	})

	a.controller.SetHooks(a.windowHooks())
	a.wireToolbar(ctx)
	a.wireTabBar()
}

// windowHooks adapts controller events to the GTK widgets. Engine
// adapters already dispatch to the main loop, so everything here runs
// there.
func (a *App) windowHooks() controller.Hooks {
	return controller.Hooks{
		OnTabAdded: func(tab *entity.Tab) {
			a.mainWindow.TabBar().AddTab(tab)
		},
		OnTabRemoved: func(tabID entity.TabID) {
			a.mainWindow.TabBar().RemoveTab(tabID)
		},
		OnTabLabelChanged: func(tabID entity.TabID, label string) {
			a.mainWindow.TabBar().UpdateTitle(tabID, label)
			if active := a.controller.ActiveTab(); active != nil && active.ID == tabID {
				a.updateWindowTitle()
				a.refreshNavButtons()
			}
		},
		OnActiveTabChanged: func(tab *entity.Tab) {
			a.mainWindow.TabBar().SetActive(tab.ID)
			a.showTabContent(tab.ID)
			a.updateWindowTitle()
			a.refreshNavButtons()
		},
		OnAddressChanged: func(text string) {
			a.mainWindow.Toolbar().SetAddress(text)
		},
		OnTabReady: func(tabID entity.TabID) {
			a.revealTab(tabID)
		},
	}
}

func (a *App) wireToolbar(ctx context.Context) {
	toolbar := a.mainWindow.Toolbar()
	toolbar.SetCallbacks(component.ToolbarCallbacks{
		OnBack: func() {
			a.controller.GoBack()
			a.refreshNavButtons()
		},
		OnForward: func() {
			a.controller.GoForward()
			a.refreshNavButtons()
		},
		OnReload: func() { a.controller.Reload() },
		OnHome:   func() { a.controller.GoHome() },
		OnNavigate: func(text string) {
			a.controller.Navigate(text)
		},
		OnNewTab:         func() { a.controller.OpenTab("", false) },
		OnNewPrivateTab:  func() { a.controller.OpenTab("", true) },
		OnBookmark:       func() { a.controller.BookmarkCurrent() },
		OnShowBookmarks:  func() { a.showBookmarks(ctx) },
		OnToggleTheme:    func() { a.toggleTheme(ctx) },
		OnToggleDevTools: func() { a.controller.ShowDevTools() },
	})

	if a.deps.Theme != nil {
		toolbar.SetDarkThemeActive(a.deps.Theme.PrefersDark())
	}
}

func (a *App) wireTabBar() {
	tabBar := a.mainWindow.TabBar()
	tabBar.SetOnSwitch(func(tabID entity.TabID) {
		a.controller.ActivateTab(tabID)
	})
	tabBar.SetOnClose(func(tabID entity.TabID) {
		a.controller.CloseTab(tabID)
	})
}

func (a *App) initSnapshotService(ctx context.Context) {
	interval := a.deps.Config.Session.AutosaveInterval

	a.snapshotService = snapshot.NewService(a.deps.SnapshotUC, a.controller, interval)
	a.snapshotService.Start(ctx)
	a.controller.SetMarkDirty(a.markSessionDirty)

	logging.FromContext(ctx).Debug().
		Dur("interval", interval).
		Msg("snapshot service started")
}

// markSessionDirty schedules a session write after tab state changes.
func (a *App) markSessionDirty() {
	if a.snapshotService != nil {
		a.snapshotService.MarkDirty()
	}
}

// restoreSession reopens the previous session's tabs, then any URL
// given on the command line as one more foreground tab.
func (a *App) restoreSession(ctx context.Context) {
	a.controller.RestoreSession()

	if a.deps.InitialURL != "" {
		a.controller.OpenTab(a.deps.InitialURL, false)
	}

	logging.FromContext(ctx).Debug().
		Int("tabs", a.mainWindow.TabBar().Count()).
		Msg("session restored")
}

func (a *App) finalizeActivation(ctx context.Context) {
	a.mainWindow.Show()
	a.initConfigWatcher(ctx)

	if a.deps.PreviousCrashReport != "" && a.notifier != nil {
		a.notifier.Notify(ctx, port.NoticeWarning,
			"The previous session ended unexpectedly. A crash report was saved.")
	}

	logging.FromContext(ctx).Info().Msg("browser window ready")
}

// initConfigWatcher applies config file edits while the browser runs.
// Watcher callbacks arrive on a background goroutine, so the work hops
// to the GTK main loop first.
func (a *App) initConfigWatcher(ctx context.Context) {
	log := logging.FromContext(ctx)

	if a.deps.ConfigManager == nil {
		return
	}
	if err := a.deps.ConfigManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watching unavailable")
		return
	}

	a.deps.ConfigManager.OnConfigChange(func(newCfg *config.Config) {
		cb := glib.SourceFunc(func(_ uintptr) bool {
			a.applyConfig(ctx, newCfg)
			return false
		})
		glib.IdleAdd(&cb, 0)
	})

	log.Debug().Msg("config watcher started")
}

// applyConfig pushes a reloaded configuration into the running widgets.
func (a *App) applyConfig(ctx context.Context, cfg *config.Config) {
	if cfg == nil {
		return
	}
	*a.deps.Config = *cfg

	if a.deps.Settings != nil {
		a.deps.Settings.UpdateConfig(cfg)
	}
	if a.deps.Factory != nil {
		a.deps.Factory.ApplySettings()
	}
	if a.deps.Theme != nil && a.mainWindow != nil {
		a.deps.Theme.UpdateFromConfig(ctx, cfg, a.mainWindow.Window().GetDisplay())
		a.mainWindow.Toolbar().SetDarkThemeActive(a.deps.Theme.PrefersDark())
	}

	a.updateWindowTitle()
	logging.FromContext(ctx).Debug().Msg("configuration reapplied")
}

// showBookmarks toggles the bookmark picker over the current page.
func (a *App) showBookmarks(ctx context.Context) {
	if a.bookmarkPopup == nil {
		return
	}
	if a.bookmarkPopup.IsVisible() {
		a.bookmarkPopup.Hide()
		return
	}

	bookmarks := a.controller.Bookmarks()
	if len(bookmarks) == 0 {
		// The controller already notified about the empty list.
		return
	}

	a.bookmarkPopup.Show(ctx, bookmarks, func(url string) {
		a.controller.OpenBookmark(url)
	})
}

// toggleTheme flips between light and dark and persists the choice so
// the next start comes up the same way.
func (a *App) toggleTheme(ctx context.Context) {
	if a.deps.Theme == nil {
		return
	}

	scheme := a.deps.Theme.Toggle(ctx, a.mainWindow.Window().GetDisplay())
	a.mainWindow.Toolbar().SetDarkThemeActive(a.deps.Theme.PrefersDark())

	if a.deps.ConfigManager == nil {
		return
	}
	cfg := a.deps.ConfigManager.Get()
	cfg.Appearance.ColorScheme = scheme
	if err := a.deps.ConfigManager.Save(cfg); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to persist color scheme")
	}
}

// showTabContent swaps the visible web view to the given tab's engine.
func (a *App) showTabContent(tabID entity.TabID) {
	engine := a.deps.Factory.Lookup(string(tabID))
	if engine == nil {
		return
	}
	view := engine.Widget()
	if view == nil {
		return
	}
	a.mainWindow.SetContent(&view.Widget)
}

// revealTab shows a tab's web view after its first finished load.
// Views start hidden so half-painted pages never flash.
func (a *App) revealTab(tabID entity.TabID) {
	engine := a.deps.Factory.Lookup(string(tabID))
	if engine == nil {
		return
	}
	if view := engine.Widget(); view != nil {
		view.SetVisible(true)
	}
	a.refreshNavButtons()
}

// refreshNavButtons syncs the back and forward buttons with the active
// tab's navigation state.
func (a *App) refreshNavButtons() {
	tab := a.controller.ActiveTab()
	if tab == nil {
		return
	}
	engine := a.deps.Factory.Lookup(string(tab.ID))
	if engine == nil {
		return
	}

	toolbar := a.mainWindow.Toolbar()
	toolbar.SetCanGoBack(engine.CanGoBack())
	toolbar.SetCanGoForward(engine.CanGoForward())
}

// updateWindowTitle mirrors the active tab in the window title. The
// home page uses the configured home title; everything else shows
// "<page> - Casement".
func (a *App) updateWindowTitle() {
	tab := a.controller.ActiveTab()
	if tab == nil {
		a.mainWindow.SetTitle(appTitle)
		return
	}
	if tab.IsHome() {
		title := a.deps.Config.Browser.HomeTitle
		if title == "" {
			title = appTitle
		}
		a.mainWindow.SetTitle(title)
		return
	}
	a.mainWindow.SetTitle(fmt.Sprintf("%s - %s", tab.Label(), appTitle))
}

// onShutdown writes the final session file and tears everything down.
// The shutdown write is unconditional: session.json always mirrors the
// tabs that were open on exit.
func (a *App) onShutdown(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info().Msg("shutting down")

	if a.snapshotService != nil {
		if err := a.snapshotService.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("failed to write final session")
		}
	}

	if a.cancel != nil {
		a.cancel(errors.New("application shutdown"))
	}
}

// Quit asks GTK to end the main loop.
func (a *App) Quit() {
	if a.gtkApp != nil {
		a.gtkApp.Quit()
	}
}
