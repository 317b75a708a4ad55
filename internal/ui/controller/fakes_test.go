package controller_test

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
	"github.com/Zeal1001/casement/internal/parser"
	"github.com/Zeal1001/casement/internal/ui/controller"
)

func testContext() context.Context {
	logger := logging.New(logging.Config{Level: zerolog.Disabled})
	return logging.WithContext(context.Background(), logger)
}

type fakeEngine struct {
	callbacks  port.EngineCallbacks
	loadedURLs []string
	htmlLoads  int
	scripts    []string
	backs      int
	forwards   int
	reloads    int
	devtools   int
	destroyed  bool
}

func (e *fakeEngine) LoadURL(_ context.Context, url string) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	e.loadedURLs = append(e.loadedURLs, url)
	return nil
}

func (e *fakeEngine) LoadHTML(_ context.Context, _ string) error {
	if e.destroyed {
		return errors.New("engine destroyed")
	}
	e.htmlLoads++
	return nil
}

func (e *fakeEngine) GoBack(_ context.Context) error    { e.backs++; return nil }
func (e *fakeEngine) GoForward(_ context.Context) error { e.forwards++; return nil }
func (e *fakeEngine) Reload(_ context.Context) error    { e.reloads++; return nil }

func (e *fakeEngine) RunScript(_ context.Context, script string) {
	e.scripts = append(e.scripts, script)
}

func (e *fakeEngine) ShowDevTools() error { e.devtools++; return nil }

func (e *fakeEngine) SetCallbacks(cb port.EngineCallbacks) { e.callbacks = cb }

func (e *fakeEngine) Destroy() { e.destroyed = true }

type fakeFactory struct {
	engines []*fakeEngine
	options []port.EngineOptions
	err     error
}

func (f *fakeFactory) NewEngine(_ context.Context, opts port.EngineOptions) (port.WebEngine, error) {
	if f.err != nil {
		return nil, f.err
	}
	engine := &fakeEngine{}
	f.engines = append(f.engines, engine)
	f.options = append(f.options, opts)
	return engine, nil
}

type notice struct {
	level   port.NoticeLevel
	message string
}

type fakeNotifier struct {
	notices []notice
	alerts  []string
}

func (n *fakeNotifier) Notify(_ context.Context, level port.NoticeLevel, message string) {
	n.notices = append(n.notices, notice{level: level, message: message})
}

func (n *fakeNotifier) Alert(_ context.Context, title, message string) {
	n.alerts = append(n.alerts, fmt.Sprintf("%s: %s", title, message))
}

type fakeHistoryRepo struct {
	urls []string
}

func (f *fakeHistoryRepo) Contains(_ context.Context, url string) bool {
	for _, u := range f.urls {
		if u == url {
			return true
		}
	}
	return false
}

func (f *fakeHistoryRepo) Append(ctx context.Context, url string) error {
	if !f.Contains(ctx, url) {
		f.urls = append(f.urls, url)
	}
	return nil
}

func (f *fakeHistoryRepo) All(_ context.Context) []string { return f.urls }
func (f *fakeHistoryRepo) Clear(_ context.Context) error  { f.urls = nil; return nil }

type fakeBookmarkRepo struct {
	bookmarks []entity.Bookmark
}

func (f *fakeBookmarkRepo) All(_ context.Context) []entity.Bookmark { return f.bookmarks }

func (f *fakeBookmarkRepo) FindByURL(_ context.Context, url string) *entity.Bookmark {
	for i := range f.bookmarks {
		if f.bookmarks[i].URL == url {
			return &f.bookmarks[i]
		}
	}
	return nil
}

func (f *fakeBookmarkRepo) Add(ctx context.Context, bookmark entity.Bookmark) error {
	if f.FindByURL(ctx, bookmark.URL) != nil {
		return entity.ErrDuplicateBookmark
	}
	f.bookmarks = append(f.bookmarks, bookmark)
	return nil
}

type fakeSessionRepo struct {
	entries []entity.SessionEntry
	saved   [][]entity.SessionEntry
}

func (f *fakeSessionRepo) Load(_ context.Context) []entity.SessionEntry { return f.entries }

func (f *fakeSessionRepo) Save(_ context.Context, entries []entity.SessionEntry) error {
	f.saved = append(f.saved, entries)
	return nil
}

// hookRecorder captures every UI hook invocation.
type hookRecorder struct {
	added     []entity.TabID
	removed   []entity.TabID
	labels    map[entity.TabID]string
	active    []entity.TabID
	addresses []string
	ready     map[entity.TabID]int
}

func newHookRecorder() *hookRecorder {
	return &hookRecorder{
		labels: make(map[entity.TabID]string),
		ready:  make(map[entity.TabID]int),
	}
}

func (h *hookRecorder) hooks() controller.Hooks {
	return controller.Hooks{
		OnTabAdded:         func(tab *entity.Tab) { h.added = append(h.added, tab.ID) },
		OnTabRemoved:       func(id entity.TabID) { h.removed = append(h.removed, id) },
		OnTabLabelChanged:  func(id entity.TabID, label string) { h.labels[id] = label },
		OnActiveTabChanged: func(tab *entity.Tab) { h.active = append(h.active, tab.ID) },
		OnAddressChanged:   func(text string) { h.addresses = append(h.addresses, text) },
		OnTabReady:         func(id entity.TabID) { h.ready[id]++ },
	}
}

func (h *hookRecorder) lastAddress() string {
	if len(h.addresses) == 0 {
		return "<none>"
	}
	return h.addresses[len(h.addresses)-1]
}

type harness struct {
	ctrl     *controller.WindowController
	tabs     *entity.TabList
	factory  *fakeFactory
	notifier *fakeNotifier
	history  *fakeHistoryRepo
	marks    *fakeBookmarkRepo
	sessions *fakeSessionRepo
	hooks    *hookRecorder
	dirty    int
}

func newHarness(saved []entity.SessionEntry) *harness {
	ctx := testContext()

	h := &harness{
		tabs:     entity.NewTabList(),
		factory:  &fakeFactory{},
		notifier: &fakeNotifier{},
		history:  &fakeHistoryRepo{},
		marks:    &fakeBookmarkRepo{},
		sessions: &fakeSessionRepo{entries: saved},
		hooks:    newHookRecorder(),
	}

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("tab-%d", n)
	}

	h.ctrl = controller.NewWindowController(ctx, controller.Deps{
		Tabs:      h.tabs,
		Factory:   h.factory,
		Notifier:  h.notifier,
		Injector:  cosmetic.NewInjector(nil),
		HomeHTML:  "<html><body>home</body></html>",
		Navigate:  usecase.NewNavigateUseCase(parser.NewResolver("")),
		TabsUC:    usecase.NewManageTabsUseCase(ids),
		Bookmarks: usecase.NewManageBookmarksUseCase(h.marks),
		History:   usecase.NewRecordHistoryUseCase(h.history),
		Snapshot:  usecase.NewSnapshotSessionUseCase(h.sessions),
		Restore:   usecase.NewRestoreSessionUseCase(h.sessions),
	})
	h.ctrl.SetHooks(h.hooks.hooks())
	h.ctrl.SetMarkDirty(func() { h.dirty++ })
	return h
}

// engine returns the i-th engine the factory produced.
func (h *harness) engine(i int) *fakeEngine {
	return h.factory.engines[i]
}

func crashInfo() port.CrashInfo {
	return port.CrashInfo{Reason: port.CrashProcessDied, URL: "https://example.com/"}
}
