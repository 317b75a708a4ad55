// Package component provides reusable GTK UI components.
package component

import (
	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/jwijenbergh/puregotk/v4/pango"

	"github.com/Zeal1001/casement/internal/domain/entity"
)

// TabButton represents a single tab in the tab bar: a title button that
// switches to the tab and a close button next to it. A plain gtk.Button
// cannot host a second clickable child, so the pair lives in a box.
type TabButton struct {
	box      *gtk.Box
	button   *gtk.Button
	label    *gtk.Label
	closeBtn *gtk.Button
	tabID    entity.TabID
	isActive bool

	onClick func(tabID entity.TabID)
	onClose func(tabID entity.TabID)
}

// NewTabButton creates a new tab button for the given tab.
func NewTabButton(tab *entity.Tab) *TabButton {
	tb := &TabButton{
		tabID: tab.ID,
	}

	tb.box = gtk.NewBox(gtk.OrientationHorizontalValue, 0)
	if tb.box == nil {
		return nil
	}

	tb.button = gtk.NewButton()
	if tb.button == nil {
		tb.box.Unref()
		return nil
	}

	// Prevent focus stealing from the web view
	tb.button.SetFocusOnClick(false)
	tb.button.SetCanFocus(false)
	tb.button.AddCssClass("tab-button")

	title := tab.Label()
	tb.label = gtk.NewLabel(&title)
	if tb.label == nil {
		tb.button.Unref()
		tb.box.Unref()
		return nil
	}

	// Configure label for text overflow
	const maxTabTitleChars = 20
	tb.label.SetEllipsize(pango.EllipsizeMiddleValue)
	tb.label.SetMaxWidthChars(maxTabTitleChars)
	tb.label.AddCssClass("tab-title")

	tb.button.SetChild(&tb.label.Widget)

	tb.closeBtn = gtk.NewButtonWithLabel("X")
	if tb.closeBtn == nil {
		tb.label.Unref()
		tb.button.Unref()
		tb.box.Unref()
		return nil
	}
	tb.closeBtn.SetFocusOnClick(false)
	tb.closeBtn.SetCanFocus(false)
	tb.closeBtn.AddCssClass("tab-close")

	tb.box.Append(&tb.button.Widget)
	tb.box.Append(&tb.closeBtn.Widget)

	return tb
}

// Widget returns the underlying GTK widget for embedding.
func (tb *TabButton) Widget() *gtk.Widget {
	return &tb.box.Widget
}

// TabID returns the ID of the tab this button represents.
func (tb *TabButton) TabID() entity.TabID {
	return tb.tabID
}

// SetTitle updates the button's label text.
func (tb *TabButton) SetTitle(title string) {
	if tb.label != nil {
		tb.label.SetText(title)
	}
}

// SetActive updates the active state styling.
func (tb *TabButton) SetActive(active bool) {
	if tb.isActive == active {
		return
	}
	tb.isActive = active

	if active {
		tb.button.AddCssClass("tab-button-active")
	} else {
		tb.button.RemoveCssClass("tab-button-active")
	}
}

// IsActive returns whether this tab is currently active.
func (tb *TabButton) IsActive() bool {
	return tb.isActive
}

// SetOnClick sets the callback for click events on the title area.
func (tb *TabButton) SetOnClick(fn func(tabID entity.TabID)) {
	tb.onClick = fn

	if fn != nil {
		tabID := tb.tabID // Capture for closure
		clickCb := func(_ gtk.Button) {
			if tb.onClick != nil {
				tb.onClick(tabID)
			}
		}
		tb.button.ConnectClicked(&clickCb)
	}
}

// SetOnClose sets the callback for the close button.
func (tb *TabButton) SetOnClose(fn func(tabID entity.TabID)) {
	tb.onClose = fn

	if fn != nil {
		tabID := tb.tabID
		closeCb := func(_ gtk.Button) {
			if tb.onClose != nil {
				tb.onClose(tabID)
			}
		}
		tb.closeBtn.ConnectClicked(&closeCb)
	}
}

// Destroy cleans up the button resources.
func (tb *TabButton) Destroy() {
	if tb.label != nil {
		tb.label.Unref()
		tb.label = nil
	}
	if tb.closeBtn != nil {
		tb.closeBtn.Unref()
		tb.closeBtn = nil
	}
	if tb.button != nil {
		tb.button.Unref()
		tb.button = nil
	}
	if tb.box != nil {
		tb.box.Unref()
		tb.box = nil
	}
}
