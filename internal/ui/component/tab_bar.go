package component

import (
	"sync"

	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/Zeal1001/casement/internal/domain/entity"
)

// TabBar represents the horizontal tab bar widget.
type TabBar struct {
	box     *gtk.Box
	buttons map[entity.TabID]*TabButton

	activeTabID entity.TabID

	onSwitch func(tabID entity.TabID)
	onClose  func(tabID entity.TabID)

	mu sync.RWMutex
}

// NewTabBar creates a new tab bar widget.
func NewTabBar() *TabBar {
	tb := &TabBar{
		buttons: make(map[entity.TabID]*TabButton),
	}

	tb.box = gtk.NewBox(gtk.OrientationHorizontalValue, 0)
	if tb.box == nil {
		return nil
	}

	tb.box.SetHexpand(true)
	tb.box.SetVexpand(false)
	tb.box.SetVisible(true)
	tb.box.AddCssClass("tab-bar")

	return tb
}

// Widget returns the underlying GTK widget for embedding.
func (tb *TabBar) Widget() *gtk.Widget {
	return &tb.box.Widget
}

// AddTab adds a new tab button to the bar.
func (tb *TabBar) AddTab(tab *entity.Tab) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if _, exists := tb.buttons[tab.ID]; exists {
		return
	}

	button := NewTabButton(tab)
	if button == nil {
		return
	}

	button.SetOnClick(func(tabID entity.TabID) {
		if tb.onSwitch != nil {
			tb.onSwitch(tabID)
		}
	})
	button.SetOnClose(func(tabID entity.TabID) {
		if tb.onClose != nil {
			tb.onClose(tabID)
		}
	})

	tb.box.Append(button.Widget())
	tb.buttons[tab.ID] = button
}

// RemoveTab removes a tab button from the bar.
func (tb *TabBar) RemoveTab(tabID entity.TabID) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	button, exists := tb.buttons[tabID]
	if !exists {
		return
	}

	tb.box.Remove(button.Widget())
	button.Destroy()
	delete(tb.buttons, tabID)

	if tb.activeTabID == tabID {
		tb.activeTabID = ""
	}
}

// SetActive updates which tab is shown as active.
func (tb *TabBar) SetActive(tabID entity.TabID) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.activeTabID != "" && tb.activeTabID != tabID {
		if prevButton, exists := tb.buttons[tb.activeTabID]; exists {
			prevButton.SetActive(false)
		}
	}

	if button, exists := tb.buttons[tabID]; exists {
		button.SetActive(true)
	}

	tb.activeTabID = tabID
}

// UpdateTitle updates the title of a specific tab button.
func (tb *TabBar) UpdateTitle(tabID entity.TabID, title string) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	if button, exists := tb.buttons[tabID]; exists {
		button.SetTitle(title)
	}
}

// SetOnSwitch sets the callback for tab switch events.
func (tb *TabBar) SetOnSwitch(fn func(tabID entity.TabID)) {
	tb.onSwitch = fn
}

// SetOnClose sets the callback for tab close events.
func (tb *TabBar) SetOnClose(fn func(tabID entity.TabID)) {
	tb.onClose = fn
}

// Count returns the number of tabs in the bar.
func (tb *TabBar) Count() int {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return len(tb.buttons)
}

// ActiveTabID returns the currently active tab ID.
func (tb *TabBar) ActiveTabID() entity.TabID {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.activeTabID
}

// Destroy cleans up all tab bar resources.
func (tb *TabBar) Destroy() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	for _, button := range tb.buttons {
		button.Destroy()
	}
	tb.buttons = nil

	if tb.box != nil {
		tb.box.Unref()
		tb.box = nil
	}
}
