// Package window provides GTK window implementations.
package window

import (
	"context"

	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/infrastructure/config"
	"github.com/Zeal1001/casement/internal/logging"
	"github.com/Zeal1001/casement/internal/ui/component"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	windowTitle   = "Casement"
)

// MainWindow represents the main browser window.
type MainWindow struct {
	window         *gtk.ApplicationWindow
	rootBox        *gtk.Box // Vertical: toolbar + tab bar + content
	toolbar        *component.Toolbar
	tabBar         *component.TabBar
	contentOverlay *gtk.Overlay // Overlay for content + toasts and popups
	contentArea    *gtk.Box     // Container for the active web view
	currentContent *gtk.Widget  // Track current content for removal on tab switch

	cfg    *config.Config
	logger zerolog.Logger
}

// New creates a new main browser window.
func New(ctx context.Context, app *gtk.Application, cfg *config.Config) (*MainWindow, error) {
	log := logging.FromContext(ctx)

	mw := &MainWindow{
		cfg:    cfg,
		logger: log.With().Str("component", "main-window").Logger(),
	}

	mw.window = gtk.NewApplicationWindow(app)
	if mw.window == nil {
		return nil, ErrWindowCreationFailed
	}

	title := windowTitle
	mw.window.SetTitle(&title)
	mw.window.SetDefaultSize(defaultWidth, defaultHeight)

	mw.rootBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if mw.rootBox == nil {
		mw.window.Unref()
		return nil, ErrWidgetCreationFailed("rootBox")
	}
	mw.rootBox.SetHexpand(true)
	mw.rootBox.SetVexpand(true)
	mw.rootBox.SetVisible(true)

	mw.toolbar = component.NewToolbar()
	if mw.toolbar == nil {
		mw.rootBox.Unref()
		mw.window.Unref()
		return nil, ErrWidgetCreationFailed("toolbar")
	}

	mw.tabBar = component.NewTabBar()
	if mw.tabBar == nil {
		mw.rootBox.Unref()
		mw.window.Unref()
		return nil, ErrWidgetCreationFailed("tabBar")
	}

	mw.contentOverlay = gtk.NewOverlay()
	if mw.contentOverlay == nil {
		mw.tabBar.Destroy()
		mw.rootBox.Unref()
		mw.window.Unref()
		return nil, ErrWidgetCreationFailed("contentOverlay")
	}
	mw.contentOverlay.SetHexpand(true)
	mw.contentOverlay.SetVexpand(true)
	mw.contentOverlay.SetVisible(true)

	mw.contentArea = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if mw.contentArea == nil {
		mw.contentOverlay.Unref()
		mw.tabBar.Destroy()
		mw.rootBox.Unref()
		mw.window.Unref()
		return nil, ErrWidgetCreationFailed("contentArea")
	}
	mw.contentArea.SetHexpand(true)
	mw.contentArea.SetVexpand(true)
	mw.contentArea.SetVisible(true)
	mw.contentArea.AddCssClass("content-area")

	mw.contentOverlay.SetChild(&mw.contentArea.Widget)

	mw.rootBox.Append(mw.toolbar.Widget())
	mw.rootBox.Append(mw.tabBar.Widget())
	mw.rootBox.Append(&mw.contentOverlay.Widget)

	mw.window.SetChild(&mw.rootBox.Widget)

	mw.logger.Debug().Msg("window layout assembled")

	return mw, nil
}

// Show makes the window visible.
func (mw *MainWindow) Show() {
	mw.window.Present()
}

// Close closes the window.
func (mw *MainWindow) Close() {
	mw.window.Close()
}

// Toolbar returns the navigation toolbar component.
func (mw *MainWindow) Toolbar() *component.Toolbar {
	return mw.toolbar
}

// TabBar returns the tab bar component.
func (mw *MainWindow) TabBar() *component.TabBar {
	return mw.tabBar
}

// SetContent sets the content of the content area, removing any existing
// content first. Visibility is not touched here: freshly created views
// stay hidden until their first load finishes.
func (mw *MainWindow) SetContent(widget *gtk.Widget) {
	if mw.currentContent != nil {
		mw.contentArea.Remove(mw.currentContent)
		mw.currentContent = nil
	}

	if widget != nil {
		mw.contentArea.Append(widget)
		mw.currentContent = widget
	}
}

// Window returns the underlying GTK window.
func (mw *MainWindow) Window() *gtk.ApplicationWindow {
	return mw.window
}

// SetTitle updates the window title. The title is capped at 255
// characters for display.
func (mw *MainWindow) SetTitle(title string) {
	if mw.window == nil {
		return
	}
	const maxTitleLen = 255
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}
	mw.window.SetTitle(&title)
}

// AddOverlay adds a widget to the content overlay. The widget is
// displayed on top of the web view content.
func (mw *MainWindow) AddOverlay(widget *gtk.Widget) {
	if mw.contentOverlay != nil && widget != nil {
		mw.contentOverlay.AddOverlay(widget)
	}
}

// Destroy cleans up window resources.
func (mw *MainWindow) Destroy() {
	if mw.tabBar != nil {
		mw.tabBar.Destroy()
		mw.tabBar = nil
	}
	if mw.contentArea != nil {
		mw.contentArea.Unref()
		mw.contentArea = nil
	}
	if mw.rootBox != nil {
		mw.rootBox.Unref()
		mw.rootBox = nil
	}
	if mw.window != nil {
		mw.window.Destroy()
		mw.window = nil
	}
}

// WindowError represents a window-related error.
type WindowError struct {
	Message string
}

func (e WindowError) Error() string {
	return e.Message
}

// Error constants.
var (
	ErrWindowCreationFailed = WindowError{Message: "failed to create application window"}
)

// ErrWidgetCreationFailed creates an error for widget creation failure.
func ErrWidgetCreationFailed(name string) error {
	return WindowError{Message: "failed to create widget: " + name}
}
