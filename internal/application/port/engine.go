// Package port defines application-layer interfaces for external
// capabilities. Use cases and the window controller depend on these
// interfaces, never on the WebKit or GTK packages directly.
package port

import "context"

// CrashReason identifies why a renderer process went away.
type CrashReason int

const (
	// CrashUnknown is reported when the engine gives no usable reason.
	CrashUnknown CrashReason = iota
	// CrashProcessDied means the web process terminated abnormally.
	CrashProcessDied
	// CrashMemoryExceeded means the web process hit its memory limit.
	CrashMemoryExceeded
	// CrashTerminatedByAPI means the embedder asked for termination.
	CrashTerminatedByAPI
)

func (r CrashReason) String() string {
	switch r {
	case CrashProcessDied:
		return "crashed"
	case CrashMemoryExceeded:
		return "exceeded_memory"
	case CrashTerminatedByAPI:
		return "terminated_by_api"
	default:
		return "unknown"
	}
}

// CrashInfo carries the details of a renderer termination.
type CrashInfo struct {
	Reason CrashReason
	// URL is the page the engine was showing when the process died.
	URL string
}

// EngineCallbacks receives engine events. All callbacks are invoked on
// the UI main loop, one at a time, in the order the engine raised them.
// Nil fields are skipped. Implementations must tolerate callbacks that
// arrive after the owning tab has been closed.
type EngineCallbacks struct {
	// OnLoadFinished fires when a page load completes, successfully or
	// not. It fires once per load.
	OnLoadFinished func()

	// OnURLChanged fires when the engine's current URL changes, including
	// redirects and fragment navigation. Empty URLs are delivered as-is;
	// consumers decide whether to ignore them.
	OnURLChanged func(url string)

	// OnTitleChanged fires when the page title changes.
	OnTitleChanged func(title string)

	// OnRendererCrashed fires when the web process backing this engine
	// terminates. The engine stays usable; a subsequent load spawns a
	// fresh process.
	OnRendererCrashed func(crash CrashInfo)
}

// WebEngine is one rendering unit, owned by exactly one tab for the
// tab's whole life. Engines are not goroutine-safe; call them from the
// UI main loop only.
type WebEngine interface {
	// LoadURL starts loading the given absolute URL.
	LoadURL(ctx context.Context, url string) error

	// LoadHTML renders static markup in place of a remote page. Used for
	// the home view.
	LoadHTML(ctx context.Context, html string) error

	// GoBack navigates one step back in the engine's history, if any.
	GoBack(ctx context.Context) error

	// GoForward navigates one step forward in the engine's history, if any.
	GoForward(ctx context.Context) error

	// Reload reloads the current page.
	Reload(ctx context.Context) error

	// RunScript executes JavaScript in the page. Evaluation is
	// asynchronous; failures are logged, never returned.
	RunScript(ctx context.Context, script string)

	// ShowDevTools opens the engine's inspector, when the build allows it.
	ShowDevTools() error

	// SetCallbacks installs the event sinks. Must be called before the
	// first load; later calls replace the previous set.
	SetCallbacks(cb EngineCallbacks)

	// Destroy releases the engine and its process. The engine must not
	// be used afterwards, and no callbacks fire once Destroy returns.
	Destroy()
}

// EngineOptions selects how a new engine is provisioned.
type EngineOptions struct {
	// TabID ties the engine to its owning tab so the embedder can map
	// engines to widgets without inspecting concrete types.
	TabID string

	// Private requests an ephemeral browsing context: no persistent
	// cookies, cache, or site storage, discarded when the engine dies.
	Private bool
}

// EngineFactory allocates engines. Non-private engines share the
// window's persistent browsing context; private ones each get an
// isolated ephemeral context.
type EngineFactory interface {
	NewEngine(ctx context.Context, opts EngineOptions) (WebEngine, error)
}
