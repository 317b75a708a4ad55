package entity

import "time"

// TabID uniquely identifies a tab.
type TabID string

// NavState is the navigation state of a tab.
type NavState int

const (
	// NavHome means the tab shows the static built-in home page.
	NavHome NavState = iota
	// NavLoading means a navigation has been dispatched to the engine
	// and the page has not finished loading yet.
	NavLoading
	// NavLoaded means the last dispatched navigation finished.
	NavLoaded
)

// String returns a human-readable state name.
func (s NavState) String() string {
	switch s {
	case NavHome:
		return "home"
	case NavLoading:
		return "loading"
	case NavLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// PrivateMarker is appended to the home label of private tabs.
const PrivateMarker = " 🔒"

// Tab represents a single browser tab: one navigation unit with its own
// state machine. The rendering engine behind it is owned elsewhere; the
// entity only tracks what the shell needs to display and persist.
type Tab struct {
	ID        TabID
	State     NavState
	Private   bool
	Position  int // Position in the tab bar (0-indexed)
	URL       string
	Title     string
	Ready     bool // Flipped by the first finished load; controls visibility
	CreatedAt time.Time
}

// NewTab creates a tab in the Home state.
func NewTab(id TabID, private bool) *Tab {
	return &Tab{
		ID:        id,
		State:     NavHome,
		Private:   private,
		CreatedAt: time.Now(),
	}
}

// IsHome reports whether the tab currently shows the home page.
func (t *Tab) IsHome() bool {
	return t.State == NavHome
}

// BeginNavigation leaves Home immediately and enters Loading.
// The displayed URL is updated optimistically; the engine's url-changed
// callback overwrites it with the canonical value.
func (t *Tab) BeginNavigation(url string) {
	t.State = NavLoading
	t.URL = url
}

// FinishLoad moves a loading tab to Loaded and reports whether this was
// the first finished load (the not-ready to ready flip). Later calls are
// idempotent for readiness.
func (t *Tab) FinishLoad() (firstLoad bool) {
	if t.State == NavLoading {
		t.State = NavLoaded
	}
	if !t.Ready {
		t.Ready = true
		return true
	}
	return false
}

// ObserveURL records a url-changed callback. Empty URLs and callbacks
// arriving while the tab is on the home page are ignored so the home
// pseudo-URL never leaks into the address bar or history.
func (t *Tab) ObserveURL(url string) bool {
	if url == "" || t.State == NavHome {
		return false
	}
	t.URL = url
	return true
}

// ObserveTitle records a title-changed callback.
func (t *Tab) ObserveTitle(title string) {
	t.Title = title
}

// GoHome forces the tab back to the Home state and clears navigation
// residue so the label and address bar reset.
func (t *Tab) GoHome() {
	t.State = NavHome
	t.URL = ""
	t.Title = ""
}

// Label returns the display label for the tab bar.
func (t *Tab) Label() string {
	switch {
	case t.State == NavHome:
		if t.Private {
			return "Home" + PrivateMarker
		}
		return "Home"
	case t.Title != "":
		return t.Title
	case t.State == NavLoading:
		return "Loading..."
	default:
		return "New Tab"
	}
}

// TabList manages an ordered collection of tabs. Order is meaningful: it
// maps to the on-screen tab order and to session serialization.
type TabList struct {
	Tabs        []*Tab
	ActiveTabID TabID
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs: make([]*Tab, 0),
	}
}

// Add appends a tab and makes it the active tab.
func (tl *TabList) Add(tab *Tab) {
	tab.Position = len(tl.Tabs)
	tl.Tabs = append(tl.Tabs, tab)
	tl.ActiveTabID = tab.ID
}

// Remove removes a tab by ID and reindexes positions. Removing the last
// remaining tab is refused: the collection never becomes empty while the
// window is open.
func (tl *TabList) Remove(id TabID) error {
	if len(tl.Tabs) <= 1 {
		return ErrLastTab
	}
	for i, tab := range tl.Tabs {
		if tab.ID != id {
			continue
		}
		tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
		for j := i; j < len(tl.Tabs); j++ {
			tl.Tabs[j].Position = j
		}
		if tl.ActiveTabID == id {
			if i < len(tl.Tabs) {
				tl.ActiveTabID = tl.Tabs[i].ID
			} else {
				tl.ActiveTabID = tl.Tabs[len(tl.Tabs)-1].ID
			}
		}
		return nil
	}
	return ErrTabNotFound
}

// Find returns a tab by ID, or nil.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// Activate makes the tab with the given ID active.
func (tl *TabList) Activate(id TabID) error {
	if tl.Find(id) == nil {
		return ErrTabNotFound
	}
	tl.ActiveTabID = id
	return nil
}

// ActivateIndex makes the tab at the given position active.
func (tl *TabList) ActivateIndex(i int) error {
	if i < 0 || i >= len(tl.Tabs) {
		return ErrTabNotFound
	}
	tl.ActiveTabID = tl.Tabs[i].ID
	return nil
}

// ActiveTab returns the currently active tab, or nil for an empty list.
func (tl *TabList) ActiveTab() *Tab {
	return tl.Find(tl.ActiveTabID)
}

// ActiveIndex returns the position of the active tab, or -1.
func (tl *TabList) ActiveIndex() int {
	for i, tab := range tl.Tabs {
		if tab.ID == tl.ActiveTabID {
			return i
		}
	}
	return -1
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}
