// Package controller provides the window controller that bridges tab
// domain state, web engines, and UI widgets.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/application/port"
	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/filtering/cosmetic"
	"github.com/Zeal1001/casement/internal/logging"
)

// User-facing notice texts.
const (
	noticeAlreadyBookmarked = "This page is already bookmarked."
	noticeHomeNotBookmarked = "Cannot bookmark the home page."
	noticeNoBookmarks       = "No bookmarks saved."
)

// Hooks let the windowing layer react to controller state changes
// without the controller importing any GTK package. Nil fields are
// skipped.
type Hooks struct {
	// OnTabAdded fires after a tab is created and its engine exists.
	OnTabAdded func(tab *entity.Tab)
	// OnTabRemoved fires after a tab left the list, before its engine
	// is destroyed, so the widget can be detached first.
	OnTabRemoved func(tabID entity.TabID)
	// OnTabLabelChanged fires whenever a tab's display label changes.
	OnTabLabelChanged func(tabID entity.TabID, label string)
	// OnActiveTabChanged fires when a different tab becomes active.
	OnActiveTabChanged func(tab *entity.Tab)
	// OnAddressChanged carries the text the address bar should show.
	OnAddressChanged func(text string)
	// OnTabReady fires once per tab, on its first finished load.
	OnTabReady func(tabID entity.TabID)
}

// Deps collects everything the controller needs.
type Deps struct {
	Tabs      *entity.TabList
	Factory   port.EngineFactory
	Notifier  port.Notifier
	Injector  *cosmetic.Injector
	HomeHTML  string
	Navigate  *usecase.NavigateUseCase
	TabsUC    *usecase.ManageTabsUseCase
	Bookmarks *usecase.ManageBookmarksUseCase
	History   *usecase.RecordHistoryUseCase
	Snapshot  *usecase.SnapshotSessionUseCase
	Restore   *usecase.RestoreSessionUseCase
}

// WindowController owns the tab list of one window and the engine
// behind each tab. Everything runs on the UI main loop: engine
// adapters post their events there, so no locking happens here.
type WindowController struct {
	tabs    *entity.TabList
	engines map[entity.TabID]port.WebEngine

	factory  port.EngineFactory
	notifier port.Notifier
	injector *cosmetic.Injector
	homeHTML string

	navigate  *usecase.NavigateUseCase
	tabsUC    *usecase.ManageTabsUseCase
	bookmarks *usecase.ManageBookmarksUseCase
	history   *usecase.RecordHistoryUseCase
	snapshot  *usecase.SnapshotSessionUseCase
	restore   *usecase.RestoreSessionUseCase

	hooks     Hooks
	markDirty func()

	ctx    context.Context
	logger *zerolog.Logger
}

// NewWindowController creates a controller for one window.
func NewWindowController(ctx context.Context, deps Deps) *WindowController {
	return &WindowController{
		tabs:      deps.Tabs,
		engines:   make(map[entity.TabID]port.WebEngine),
		factory:   deps.Factory,
		notifier:  deps.Notifier,
		injector:  deps.Injector,
		homeHTML:  deps.HomeHTML,
		navigate:  deps.Navigate,
		tabsUC:    deps.TabsUC,
		bookmarks: deps.Bookmarks,
		history:   deps.History,
		snapshot:  deps.Snapshot,
		restore:   deps.Restore,
		ctx:       ctx,
		logger:    logging.FromContext(ctx),
	}
}

// SetHooks installs the UI callbacks. Call before RestoreSession.
func (c *WindowController) SetHooks(hooks Hooks) {
	c.hooks = hooks
}

// SetMarkDirty installs the callback invoked whenever the session
// snapshot goes stale. Used by the autosave service.
func (c *WindowController) SetMarkDirty(fn func()) {
	c.markDirty = fn
}

// RestoreSession opens one tab per saved session entry, or a single
// home tab when nothing usable was saved. The last opened tab ends up
// active, matching the add-one-by-one restore order.
func (c *WindowController) RestoreSession() {
	entries := c.restore.Execute(c.ctx)
	if len(entries) == 0 {
		c.OpenTab("", false)
		return
	}

	for _, entry := range entries {
		c.OpenTab(entry.URL, entry.Private)
	}
}

// OpenTab creates a tab and makes it active. An empty url keeps the
// tab on the home page; otherwise the engine starts loading right
// away. Private tabs get an ephemeral engine.
func (c *WindowController) OpenTab(url string, private bool) *entity.Tab {
	tab, err := c.tabsUC.Open(c.ctx, c.tabs, usecase.OpenTabInput{URL: url, Private: private})
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to open tab")
		return nil
	}

	engine, err := c.factory.NewEngine(c.ctx, port.EngineOptions{
		TabID:   string(tab.ID),
		Private: private,
	})
	if err != nil {
		c.logger.Error().Err(err).Str("tab_id", string(tab.ID)).Msg("failed to create web engine")
		if removeErr := c.tabs.Remove(tab.ID); removeErr != nil && !errors.Is(removeErr, entity.ErrLastTab) {
			c.logger.Error().Err(removeErr).Msg("failed to roll back tab")
		}
		c.notifier.Alert(c.ctx, "Engine error", "Could not create a web view for the new tab.")
		return nil
	}

	c.engines[tab.ID] = engine
	engine.SetCallbacks(c.callbacksFor(tab.ID))

	if url == "" {
		if err := engine.LoadHTML(c.ctx, c.homeHTML); err != nil {
			c.logger.Error().Err(err).Str("tab_id", string(tab.ID)).Msg("failed to load home page")
		}
	} else {
		if err := engine.LoadURL(c.ctx, url); err != nil {
			c.logger.Error().Err(err).Str("url", url).Msg("failed to start load")
		}
	}

	c.fireTabAdded(tab)
	c.fireActiveChanged()
	c.stateChanged()
	return tab
}

// CloseTab removes a tab and destroys its engine. Closing the last
// remaining tab does nothing: the window never shows zero tabs.
func (c *WindowController) CloseTab(tabID entity.TabID) {
	if err := c.tabsUC.Close(c.ctx, c.tabs, tabID); err != nil {
		return
	}

	c.fireTabRemoved(tabID)

	if engine, ok := c.engines[tabID]; ok {
		delete(c.engines, tabID)
		engine.Destroy()
	}

	c.fireActiveChanged()
	c.stateChanged()
}

// ActivateTab makes the given tab the active one and syncs the
// address bar to it.
func (c *WindowController) ActivateTab(tabID entity.TabID) {
	if tabID == c.tabs.ActiveTabID {
		return
	}
	if err := c.tabsUC.Activate(c.ctx, c.tabs, tabID); err != nil {
		c.logger.Error().Err(err).Str("tab_id", string(tabID)).Msg("failed to activate tab")
		return
	}
	c.fireActiveChanged()
}

// Navigate resolves address-bar input and points the active tab's
// engine at the result. Empty input is ignored.
func (c *WindowController) Navigate(input string) {
	tab := c.tabs.ActiveTab()
	if tab == nil {
		return
	}

	url, err := c.navigate.Load(c.ctx, tab, input)
	if err != nil {
		if !errors.Is(err, usecase.ErrEmptyInput) {
			c.logger.Error().Err(err).Msg("failed to resolve input")
		}
		return
	}

	if engine, ok := c.engines[tab.ID]; ok {
		if err := engine.LoadURL(c.ctx, url); err != nil {
			c.logger.Error().Err(err).Str("url", url).Msg("failed to start load")
		}
	}

	c.fireLabelChanged(tab)
	c.stateChanged()
}

// GoHome returns the active tab to the built-in home page.
func (c *WindowController) GoHome() {
	tab := c.tabs.ActiveTab()
	if tab == nil {
		return
	}

	if err := c.navigate.GoHome(c.ctx, tab); err != nil {
		c.logger.Error().Err(err).Msg("failed to go home")
		return
	}

	if engine, ok := c.engines[tab.ID]; ok {
		if err := engine.LoadHTML(c.ctx, c.homeHTML); err != nil {
			c.logger.Error().Err(err).Msg("failed to load home page")
		}
	}

	c.fireLabelChanged(tab)
	c.fireAddress("")
	c.stateChanged()
}

// GoBack navigates the active tab one step back.
func (c *WindowController) GoBack() {
	if engine := c.activeEngine(); engine != nil {
		if err := engine.GoBack(c.ctx); err != nil {
			c.logger.Debug().Err(err).Msg("back navigation unavailable")
		}
	}
}

// GoForward navigates the active tab one step forward.
func (c *WindowController) GoForward() {
	if engine := c.activeEngine(); engine != nil {
		if err := engine.GoForward(c.ctx); err != nil {
			c.logger.Debug().Err(err).Msg("forward navigation unavailable")
		}
	}
}

// Reload reloads the active tab.
func (c *WindowController) Reload() {
	if engine := c.activeEngine(); engine != nil {
		if err := engine.Reload(c.ctx); err != nil {
			c.logger.Debug().Err(err).Msg("reload unavailable")
		}
	}
}

// ShowDevTools opens the inspector for the active tab.
func (c *WindowController) ShowDevTools() {
	if engine := c.activeEngine(); engine != nil {
		if err := engine.ShowDevTools(); err != nil {
			c.logger.Debug().Err(err).Msg("devtools unavailable")
		}
	}
}

// BookmarkCurrent bookmarks the active tab's page. Home-page and
// duplicate attempts are rejected with a notice.
func (c *WindowController) BookmarkCurrent() {
	tab := c.tabs.ActiveTab()
	if tab == nil {
		return
	}

	bookmark, err := c.bookmarks.AddCurrent(c.ctx, tab)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrDuplicateBookmark):
			c.notifier.Notify(c.ctx, port.NoticeInfo, noticeAlreadyBookmarked)
		case errors.Is(err, entity.ErrHomeNotBookmarkable):
			c.notifier.Notify(c.ctx, port.NoticeInfo, noticeHomeNotBookmarked)
		}
		return
	}

	c.notifier.Notify(c.ctx, port.NoticeSuccess, fmt.Sprintf("Bookmarked: %s", bookmark.Title))
}

// Bookmarks returns the saved bookmarks for the picker. When none
// exist a notice is shown and nil is returned.
func (c *WindowController) Bookmarks() []entity.Bookmark {
	all := c.bookmarks.List(c.ctx)
	if len(all) == 0 {
		c.notifier.Notify(c.ctx, port.NoticeInfo, noticeNoBookmarks)
		return nil
	}
	return all
}

// OpenBookmark opens a bookmark in a new tab, like the picker does.
func (c *WindowController) OpenBookmark(url string) {
	if url == "" {
		return
	}
	c.OpenTab(url, false)
}

// SaveSession writes the current tab set to disk. Called at shutdown
// and by the autosave service.
func (c *WindowController) SaveSession() error {
	return c.snapshot.Execute(c.ctx, c.tabs)
}

// Tabs returns the controller's tab list.
func (c *WindowController) Tabs() *entity.TabList {
	return c.tabs
}

// ActiveTab returns the active tab, or nil.
func (c *WindowController) ActiveTab() *entity.Tab {
	return c.tabs.ActiveTab()
}

// callbacksFor builds the engine event sinks for one tab. Events for
// tabs that no longer exist are dropped: engine teardown is
// asynchronous and stragglers are expected.
func (c *WindowController) callbacksFor(tabID entity.TabID) port.EngineCallbacks {
	return port.EngineCallbacks{
		OnLoadFinished: func() {
			c.handleLoadFinished(tabID)
		},
		OnURLChanged: func(url string) {
			c.handleURLChanged(tabID, url)
		},
		OnTitleChanged: func(title string) {
			c.handleTitleChanged(tabID, title)
		},
		OnRendererCrashed: func(crash port.CrashInfo) {
			c.handleRendererCrashed(tabID, crash)
		},
	}
}

func (c *WindowController) handleLoadFinished(tabID entity.TabID) {
	tab := c.tabs.Find(tabID)
	if tab == nil {
		c.logger.Debug().Str("tab_id", string(tabID)).Msg("load finished for closed tab")
		return
	}

	if tab.FinishLoad() {
		c.fireTabReady(tabID)
	}
	c.fireLabelChanged(tab)

	if !tab.IsHome() {
		if engine, ok := c.engines[tabID]; ok {
			engine.RunScript(c.ctx, c.injector.Script())
		}
	}
}

func (c *WindowController) handleURLChanged(tabID entity.TabID, url string) {
	tab := c.tabs.Find(tabID)
	if tab == nil {
		c.logger.Debug().Str("tab_id", string(tabID)).Msg("url change for closed tab")
		return
	}

	if !tab.ObserveURL(url) {
		return
	}

	if c.tabs.ActiveTabID == tabID {
		c.fireAddress(url)
	}

	c.history.Record(c.ctx, tab, url)
	c.stateChanged()
}

func (c *WindowController) handleTitleChanged(tabID entity.TabID, title string) {
	tab := c.tabs.Find(tabID)
	if tab == nil {
		return
	}

	tab.ObserveTitle(title)
	c.fireLabelChanged(tab)
}

func (c *WindowController) handleRendererCrashed(tabID entity.TabID, crash port.CrashInfo) {
	tab := c.tabs.Find(tabID)
	if tab == nil {
		return
	}

	c.logger.Error().
		Str("tab_id", string(tabID)).
		Str("reason", crash.Reason.String()).
		Str("url", crash.URL).
		Msg("renderer process terminated")

	c.notifier.Notify(c.ctx, port.NoticeWarning,
		fmt.Sprintf("The web page crashed (%s). Reload to continue.", crash.Reason))
}

func (c *WindowController) activeEngine() port.WebEngine {
	tab := c.tabs.ActiveTab()
	if tab == nil {
		return nil
	}
	return c.engines[tab.ID]
}

// addressTextFor is what the address bar shows for a tab: nothing on
// the home page, the current URL otherwise.
func addressTextFor(tab *entity.Tab) string {
	if tab == nil || tab.IsHome() {
		return ""
	}
	return tab.URL
}

func (c *WindowController) stateChanged() {
	if c.markDirty != nil {
		c.markDirty()
	}
}

func (c *WindowController) fireTabAdded(tab *entity.Tab) {
	if c.hooks.OnTabAdded != nil {
		c.hooks.OnTabAdded(tab)
	}
}

func (c *WindowController) fireTabRemoved(tabID entity.TabID) {
	if c.hooks.OnTabRemoved != nil {
		c.hooks.OnTabRemoved(tabID)
	}
}

func (c *WindowController) fireLabelChanged(tab *entity.Tab) {
	if c.hooks.OnTabLabelChanged != nil {
		c.hooks.OnTabLabelChanged(tab.ID, tab.Label())
	}
}

func (c *WindowController) fireActiveChanged() {
	tab := c.tabs.ActiveTab()
	if tab == nil {
		return
	}
	if c.hooks.OnActiveTabChanged != nil {
		c.hooks.OnActiveTabChanged(tab)
	}
	c.fireAddress(addressTextFor(tab))
}

func (c *WindowController) fireAddress(text string) {
	if c.hooks.OnAddressChanged != nil {
		c.hooks.OnAddressChanged(text)
	}
}

func (c *WindowController) fireTabReady(tabID entity.TabID) {
	if c.hooks.OnTabReady != nil {
		c.hooks.OnTabReady(tabID)
	}
}
