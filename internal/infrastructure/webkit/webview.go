package webkit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/application/port"
	"github.com/Zeal1001/casement/internal/logging"
)

// Engine wraps a webkit.WebView and translates its signals into the
// callbacks the application layer understands. Each engine belongs to
// exactly one tab for the tab's whole life.
type Engine struct {
	tabID   string
	private bool
	inner   *webkit.WebView

	// session holds the creation reference to this engine's ephemeral
	// network session. Zero for engines on the shared persistent session.
	session uintptr

	destroyed atomic.Bool

	// State (protected by mutex)
	uri       string
	title     string
	canGoBack bool
	canGoFwd  bool
	isLoading bool

	callbacks port.EngineCallbacks

	// Signal handler IDs for disconnection
	signalIDs []uint

	// detach removes the engine from its factory's registry.
	detach func()

	logger zerolog.Logger
	mu     sync.RWMutex

	// asyncCallbacks keeps references to async JS callbacks to prevent GC
	asyncCallbacks []interface{}
}

func newEngine(tabID string, private bool, inner *webkit.WebView, session uintptr, settings *SettingsManager, detach func(), logger zerolog.Logger) *Engine {
	e := &Engine{
		tabID:     tabID,
		private:   private,
		inner:     inner,
		session:   session,
		detach:    detach,
		logger:    logger.With().Str("component", "engine").Str("tab_id", tabID).Logger(),
		signalIDs: make([]uint, 0, 2),
	}

	if settings != nil {
		settings.ApplyTo(inner)
	}

	e.connectSignals()

	e.logger.Debug().Bool("private", private).Msg("engine created")
	return e
}

// connectSignals sets up signal handlers for the underlying WebView.
// Signals arrive on the GTK main loop, so callbacks are invoked inline.
func (e *Engine) connectSignals() {
	loadChangedCb := func(inner webkit.WebView, event webkit.LoadEvent) {
		if e.destroyed.Load() {
			return
		}

		uri := inner.GetUri()
		title := inner.GetTitle()

		e.mu.Lock()
		uriChanged := uri != e.uri
		titleChanged := title != e.title
		e.uri = uri
		e.title = title
		e.canGoBack = inner.CanGoBack()
		e.canGoFwd = inner.CanGoForward()

		switch event {
		case webkit.LoadStartedValue:
			e.isLoading = true
		case webkit.LoadFinishedValue:
			e.isLoading = false
		}
		cb := e.callbacks
		e.mu.Unlock()

		// notify::uri and notify::title are not wired up by the
		// bindings; load-changed fires often enough to track both.
		if uriChanged && cb.OnURLChanged != nil {
			cb.OnURLChanged(uri)
		}
		if titleChanged && cb.OnTitleChanged != nil {
			cb.OnTitleChanged(title)
		}
		if event == webkit.LoadFinishedValue && cb.OnLoadFinished != nil {
			cb.OnLoadFinished()
		}
	}
	sigID := e.inner.ConnectLoadChanged(&loadChangedCb)
	e.signalIDs = append(e.signalIDs, sigID)

	terminatedCb := func(inner webkit.WebView, reason webkit.WebProcessTerminationReason) {
		if e.destroyed.Load() {
			return
		}

		e.mu.RLock()
		uri := e.uri
		cb := e.callbacks
		e.mu.RUnlock()

		e.logger.Warn().
			Str("reason", webProcessTerminationReasonString(reason)).
			Str("url", uri).
			Msg("web process terminated")

		if cb.OnRendererCrashed != nil {
			cb.OnRendererCrashed(port.CrashInfo{
				Reason: mapTerminationReason(reason),
				URL:    uri,
			})
		}
	}
	sigID = e.inner.ConnectWebProcessTerminated(&terminatedCb)
	e.signalIDs = append(e.signalIDs, sigID)
}

// webProcessTerminationReasonString renders a termination reason for logs.
func webProcessTerminationReasonString(reason webkit.WebProcessTerminationReason) string {
	switch reason {
	case webkit.WebProcessCrashedValue:
		return "crashed"
	case webkit.WebProcessExceededMemoryLimitValue:
		return "exceeded_memory"
	case webkit.WebProcessTerminatedByApiValue:
		return "terminated_by_api"
	default:
		return "unknown"
	}
}

// mapTerminationReason converts WebKit's termination reason to the
// port-level crash reason.
func mapTerminationReason(reason webkit.WebProcessTerminationReason) port.CrashReason {
	switch reason {
	case webkit.WebProcessCrashedValue:
		return port.CrashProcessDied
	case webkit.WebProcessExceededMemoryLimitValue:
		return port.CrashMemoryExceeded
	case webkit.WebProcessTerminatedByApiValue:
		return port.CrashTerminatedByAPI
	default:
		return port.CrashUnknown
	}
}

// TabID returns the owning tab's identifier.
func (e *Engine) TabID() string {
	return e.tabID
}

// IsPrivate reports whether the engine runs on an ephemeral session.
func (e *Engine) IsPrivate() bool {
	return e.private
}

// Widget returns the underlying webkit.WebView for GTK embedding.
func (e *Engine) Widget() *webkit.WebView {
	return e.inner
}

// SetCallbacks installs the event sinks for this engine.
func (e *Engine) SetCallbacks(cb port.EngineCallbacks) {
	e.mu.Lock()
	e.callbacks = cb
	e.mu.Unlock()
}

// LoadURL starts loading the given absolute URL.
func (e *Engine) LoadURL(ctx context.Context, url string) error {
	if e.destroyed.Load() {
		return fmt.Errorf("engine for tab %s is destroyed", e.tabID)
	}
	e.inner.LoadUri(url)
	logging.FromContext(ctx).Debug().Str("url", url).Str("tab_id", e.tabID).Msg("loading URL")
	return nil
}

// LoadHTML renders static markup in place of a remote page.
func (e *Engine) LoadHTML(ctx context.Context, html string) error {
	if e.destroyed.Load() {
		return fmt.Errorf("engine for tab %s is destroyed", e.tabID)
	}
	e.inner.LoadHtml(html, nil)
	return nil
}

// Reload reloads the current page.
func (e *Engine) Reload(ctx context.Context) error {
	if e.destroyed.Load() {
		return fmt.Errorf("engine for tab %s is destroyed", e.tabID)
	}
	e.inner.Reload()
	return nil
}

// GoBack navigates back in the engine's history.
func (e *Engine) GoBack(ctx context.Context) error {
	if e.destroyed.Load() {
		return fmt.Errorf("engine for tab %s is destroyed", e.tabID)
	}
	if !e.inner.CanGoBack() {
		return fmt.Errorf("cannot go back")
	}
	e.inner.GoBack()
	return nil
}

// GoForward navigates forward in the engine's history.
func (e *Engine) GoForward(ctx context.Context) error {
	if e.destroyed.Load() {
		return fmt.Errorf("engine for tab %s is destroyed", e.tabID)
	}
	if !e.inner.CanGoForward() {
		return fmt.Errorf("cannot go forward")
	}
	e.inner.GoForward()
	return nil
}

// CanGoBack returns true if back navigation is possible.
func (e *Engine) CanGoBack() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.canGoBack
}

// CanGoForward returns true if forward navigation is possible.
func (e *Engine) CanGoForward() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.canGoFwd
}

// URI returns the engine's current URI.
func (e *Engine) URI() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.uri
}

// Title returns the current page title.
func (e *Engine) Title() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.title
}

// IsLoading returns true if a page is currently loading.
func (e *Engine) IsLoading() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isLoading
}

// ShowDevTools opens the WebKit inspector.
func (e *Engine) ShowDevTools() error {
	if e.destroyed.Load() {
		return fmt.Errorf("engine for tab %s is destroyed", e.tabID)
	}
	inspector := e.inner.GetInspector()
	if inspector == nil {
		return fmt.Errorf("failed to get inspector for tab %s", e.tabID)
	}
	inspector.Show()
	e.logger.Debug().Msg("devtools shown")
	return nil
}

// RunScript executes JavaScript in the page's main world.
// This is fire-and-forget: it does not block and errors are logged
// asynchronously. Safe to call from GTK signal handlers.
func (e *Engine) RunScript(ctx context.Context, script string) {
	if e.destroyed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log := logging.FromContext(ctx)

	cb := gio.AsyncReadyCallback(func(_ uintptr, resPtr uintptr, _ uintptr) {
		if resPtr == 0 {
			log.Warn().Str("tab_id", e.tabID).Msg("RunScript: nil async result")
			return
		}

		res := &gio.AsyncResultBase{Ptr: resPtr}
		value, err := e.inner.EvaluateJavascriptFinish(res)
		if err != nil {
			log.Warn().Err(err).Str("tab_id", e.tabID).Msg("RunScript: failed")
			return
		}

		if value != nil {
			if jscCtx := value.GetContext(); jscCtx != nil {
				if exc := jscCtx.GetException(); exc != nil {
					log.Warn().
						Str("exception", exc.GetMessage()).
						Str("tab_id", e.tabID).
						Msg("RunScript: JS exception")
				}
			}
		}
	})

	// prevent callback from being GC'd before it's called
	e.mu.Lock()
	e.asyncCallbacks = append(e.asyncCallbacks, cb)
	e.mu.Unlock()

	e.inner.EvaluateJavascript(script, -1, nil, nil, nil, &cb, 0)
}

// IsDestroyed returns true if the engine has been destroyed.
func (e *Engine) IsDestroyed() bool {
	return e.destroyed.Load()
}

// Destroy releases the engine. No callbacks fire once it returns.
func (e *Engine) Destroy() {
	if e.destroyed.Swap(true) {
		return // Already destroyed
	}

	e.mu.Lock()
	e.callbacks = port.EngineCallbacks{}
	session := e.session
	e.session = 0
	e.mu.Unlock()

	if e.detach != nil {
		e.detach()
	}

	// The widget itself is dropped by GTK's reference counting once
	// the UI removes it from its container.
	unrefEphemeralSession(session)

	e.logger.Debug().Msg("engine destroyed")
}
