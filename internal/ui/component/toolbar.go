package component

import (
	"github.com/jwijenbergh/puregotk/v4/gtk"
)

const toolbarSpacing = 4

// ToolbarCallbacks holds the handlers invoked by toolbar interactions.
type ToolbarCallbacks struct {
	OnBack           func()
	OnForward        func()
	OnReload         func()
	OnHome           func()
	OnNavigate       func(text string)
	OnNewTab         func()
	OnNewPrivateTab  func()
	OnBookmark       func()
	OnShowBookmarks  func()
	OnToggleTheme    func()
	OnToggleDevTools func()
}

// Toolbar is the navigation bar: history controls, the address entry and
// the action buttons for tabs, bookmarks, theme and devtools.
type Toolbar struct {
	box *gtk.Box

	backBtn    *gtk.Button
	forwardBtn *gtk.Button
	reloadBtn  *gtk.Button
	homeBtn    *gtk.Button

	entry *gtk.Entry

	newTabBtn     *gtk.Button
	privateTabBtn *gtk.Button
	themeBtn      *gtk.Button
	bookmarkBtn   *gtk.Button
	bookmarksBtn  *gtk.Button
	devToolsBtn   *gtk.Button

	callbacks ToolbarCallbacks

	retainedCallbacks []interface{}
}

// NewToolbar creates the navigation toolbar.
func NewToolbar() *Toolbar {
	t := &Toolbar{}

	if err := t.createWidgets(); err != nil {
		return nil
	}
	t.connectSignals()
	return t
}

// Widget returns the underlying GTK widget for embedding.
func (t *Toolbar) Widget() *gtk.Widget {
	return &t.box.Widget
}

// SetCallbacks sets the interaction handlers.
func (t *Toolbar) SetCallbacks(cb ToolbarCallbacks) {
	t.callbacks = cb
}

// SetAddress replaces the address entry text.
func (t *Toolbar) SetAddress(text string) {
	if t.entry != nil {
		t.entry.SetText(text)
	}
}

// Address returns the current address entry text.
func (t *Toolbar) Address() string {
	if t.entry == nil {
		return ""
	}
	return t.entry.GetText()
}

// FocusAddress moves keyboard focus to the address entry and selects
// any existing text so typing replaces it.
func (t *Toolbar) FocusAddress() {
	if t.entry == nil {
		return
	}
	t.entry.GrabFocus()
	if text := t.entry.GetText(); text != "" {
		t.entry.SelectRegion(0, len(text))
	}
}

// SetCanGoBack enables or disables the back button.
func (t *Toolbar) SetCanGoBack(enabled bool) {
	if t.backBtn != nil {
		t.backBtn.SetSensitive(enabled)
	}
}

// SetCanGoForward enables or disables the forward button.
func (t *Toolbar) SetCanGoForward(enabled bool) {
	if t.forwardBtn != nil {
		t.forwardBtn.SetSensitive(enabled)
	}
}

// SetDarkThemeActive flips the theme button glyph to indicate what
// clicking it will switch to.
func (t *Toolbar) SetDarkThemeActive(dark bool) {
	if t.themeBtn == nil {
		return
	}
	if dark {
		t.themeBtn.SetLabel("☀")
	} else {
		t.themeBtn.SetLabel("🌙")
	}
}

func (t *Toolbar) createWidgets() error {
	t.box = gtk.NewBox(gtk.OrientationHorizontalValue, toolbarSpacing)
	if t.box == nil {
		return errNilWidget("toolbarBox")
	}
	t.box.AddCssClass("toolbar")
	t.box.SetHexpand(true)
	t.box.SetVexpand(false)

	var err error
	if t.backBtn, err = t.newButton("←"); err != nil {
		return err
	}
	if t.forwardBtn, err = t.newButton("→"); err != nil {
		return err
	}
	if t.reloadBtn, err = t.newButton("⟳"); err != nil {
		return err
	}
	if t.homeBtn, err = t.newButton("🏠"); err != nil {
		return err
	}

	t.entry = gtk.NewEntry()
	if t.entry == nil {
		return errNilWidget("toolbarEntry")
	}
	t.entry.AddCssClass("address-entry")
	t.entry.SetHexpand(true)
	placeholder := "Search or enter address"
	t.entry.SetPlaceholderText(&placeholder)

	if t.newTabBtn, err = t.newButton("+"); err != nil {
		return err
	}
	if t.privateTabBtn, err = t.newButton("🕵"); err != nil {
		return err
	}
	if t.themeBtn, err = t.newButton("🌙"); err != nil {
		return err
	}
	if t.bookmarkBtn, err = t.newButton("🔖"); err != nil {
		return err
	}
	if t.bookmarksBtn, err = t.newButton("📂"); err != nil {
		return err
	}
	if t.devToolsBtn, err = t.newButton("⚙"); err != nil {
		return err
	}

	t.box.Append(&t.backBtn.Widget)
	t.box.Append(&t.forwardBtn.Widget)
	t.box.Append(&t.reloadBtn.Widget)
	t.box.Append(&t.homeBtn.Widget)
	t.box.Append(&t.entry.Widget)
	t.box.Append(&t.newTabBtn.Widget)
	t.box.Append(&t.privateTabBtn.Widget)
	t.box.Append(&t.themeBtn.Widget)
	t.box.Append(&t.bookmarkBtn.Widget)
	t.box.Append(&t.bookmarksBtn.Widget)
	t.box.Append(&t.devToolsBtn.Widget)

	return nil
}

// newButton creates a toolbar button that never steals focus from the
// web view.
func (t *Toolbar) newButton(label string) (*gtk.Button, error) {
	btn := gtk.NewButtonWithLabel(label)
	if btn == nil {
		return nil, errNilWidget("toolbarBtn" + label)
	}
	btn.AddCssClass("toolbar-button")
	btn.SetFocusOnClick(false)
	btn.SetCanFocus(false)
	return btn, nil
}

func (t *Toolbar) connectSignals() {
	t.wireClick(t.backBtn, func() { t.invoke(t.callbacks.OnBack) })
	t.wireClick(t.forwardBtn, func() { t.invoke(t.callbacks.OnForward) })
	t.wireClick(t.reloadBtn, func() { t.invoke(t.callbacks.OnReload) })
	t.wireClick(t.homeBtn, func() { t.invoke(t.callbacks.OnHome) })
	t.wireClick(t.newTabBtn, func() { t.invoke(t.callbacks.OnNewTab) })
	t.wireClick(t.privateTabBtn, func() { t.invoke(t.callbacks.OnNewPrivateTab) })
	t.wireClick(t.themeBtn, func() { t.invoke(t.callbacks.OnToggleTheme) })
	t.wireClick(t.bookmarkBtn, func() { t.invoke(t.callbacks.OnBookmark) })
	t.wireClick(t.bookmarksBtn, func() { t.invoke(t.callbacks.OnShowBookmarks) })
	t.wireClick(t.devToolsBtn, func() { t.invoke(t.callbacks.OnToggleDevTools) })

	activateCb := func(_ gtk.Entry) {
		if t.callbacks.OnNavigate != nil {
			t.callbacks.OnNavigate(t.entry.GetText())
		}
	}
	t.retainedCallbacks = append(t.retainedCallbacks, activateCb)
	t.entry.ConnectActivate(&activateCb)
}

func (t *Toolbar) wireClick(btn *gtk.Button, fn func()) {
	cb := func(_ gtk.Button) { fn() }
	t.retainedCallbacks = append(t.retainedCallbacks, cb)
	btn.ConnectClicked(&cb)
}

func (t *Toolbar) invoke(fn func()) {
	if fn != nil {
		fn()
	}
}
