package component

import (
	"context"
	"sync"

	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/jwijenbergh/puregotk/v4/pango"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/logging"
)

const (
	bookmarkPopupWidth     = 420
	bookmarkPopupMarginTop = 48
	bookmarkListMaxHeight  = 360
	maxBookmarkTitleChars  = 40
	maxBookmarkURLChars    = 50
)

// BookmarkPopup is a custom overlay listing saved bookmarks. A custom
// overlay instead of a GTK dialog to sidestep the purego ConnectResponse
// bug and match the app's UI style.
type BookmarkPopup struct {
	outerBox     *gtk.Box
	mainBox      *gtk.Box
	headingLabel *gtk.Label
	scrolledWin  *gtk.ScrolledWindow
	rowsBox      *gtk.Box
	closeBtn     *gtk.Button

	rows []*gtk.Button

	mu      sync.Mutex
	visible bool
	onOpen  func(url string)

	retainedCallbacks []interface{}
}

// NewBookmarkPopup creates a new bookmark popup component.
func NewBookmarkPopup() *BookmarkPopup {
	bp := &BookmarkPopup{}

	if err := bp.createWidgets(); err != nil {
		return nil
	}
	bp.attachKeyController()
	return bp
}

// Widget returns the outer GTK widget for overlay registration.
func (bp *BookmarkPopup) Widget() *gtk.Widget {
	if bp.outerBox == nil {
		return nil
	}
	return &bp.outerBox.Widget
}

// Show displays the popup with the given bookmarks. The callback receives
// the bookmark URL when a row is clicked.
func (bp *BookmarkPopup) Show(ctx context.Context, bookmarks []entity.Bookmark, onOpen func(url string)) {
	log := logging.FromContext(ctx)

	bp.mu.Lock()
	bp.visible = true
	bp.onOpen = onOpen
	bp.rebuildRows(bookmarks)
	bp.mu.Unlock()

	if bp.outerBox != nil {
		bp.outerBox.SetVisible(true)
	}

	log.Debug().Int("bookmark_count", len(bookmarks)).Msg("bookmark popup shown")
}

// Hide hides the popup.
func (bp *BookmarkPopup) Hide() {
	bp.mu.Lock()
	if !bp.visible {
		bp.mu.Unlock()
		return
	}
	bp.visible = false
	bp.onOpen = nil
	bp.mu.Unlock()

	if bp.outerBox != nil {
		bp.outerBox.SetVisible(false)
	}
}

// IsVisible returns whether the popup is currently displayed.
func (bp *BookmarkPopup) IsVisible() bool {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.visible
}

// Toggle shows the popup when hidden and hides it when visible. Returns
// true if the popup ended up visible.
func (bp *BookmarkPopup) Toggle(ctx context.Context, bookmarks []entity.Bookmark, onOpen func(url string)) bool {
	if bp.IsVisible() {
		bp.Hide()
		return false
	}
	bp.Show(ctx, bookmarks, onOpen)
	return true
}

func (bp *BookmarkPopup) createWidgets() error {
	bp.outerBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if bp.outerBox == nil {
		return errNilWidget("bookmarkPopupOuterBox")
	}
	bp.outerBox.AddCssClass("popup-outer")
	bp.outerBox.SetHalign(gtk.AlignCenterValue)
	bp.outerBox.SetValign(gtk.AlignStartValue)
	bp.outerBox.SetMarginTop(bookmarkPopupMarginTop)
	bp.outerBox.SetVisible(false)

	bp.mainBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if bp.mainBox == nil {
		return errNilWidget("bookmarkPopupMainBox")
	}
	bp.mainBox.AddCssClass("popup-panel")
	bp.mainBox.SetSizeRequest(bookmarkPopupWidth, -1)

	heading := "Bookmarks"
	bp.headingLabel = gtk.NewLabel(&heading)
	if bp.headingLabel == nil {
		return errNilWidget("bookmarkPopupHeading")
	}
	bp.headingLabel.AddCssClass("popup-heading")
	bp.headingLabel.SetHalign(gtk.AlignStartValue)

	bp.scrolledWin = gtk.NewScrolledWindow()
	if bp.scrolledWin == nil {
		return errNilWidget("bookmarkPopupScrolled")
	}
	bp.scrolledWin.SetPolicy(gtk.PolicyNeverValue, gtk.PolicyAutomaticValue)
	bp.scrolledWin.SetMaxContentHeight(bookmarkListMaxHeight)
	bp.scrolledWin.SetPropagateNaturalHeight(true)

	bp.rowsBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if bp.rowsBox == nil {
		return errNilWidget("bookmarkPopupRows")
	}
	bp.rowsBox.AddCssClass("bookmark-list")

	bp.closeBtn = gtk.NewButtonWithLabel("Close")
	if bp.closeBtn == nil {
		return errNilWidget("bookmarkPopupCloseBtn")
	}
	bp.closeBtn.AddCssClass("popup-btn")
	bp.closeBtn.SetHalign(gtk.AlignEndValue)
	closeCb := func(_ gtk.Button) { bp.Hide() }
	bp.retainedCallbacks = append(bp.retainedCallbacks, closeCb)
	bp.closeBtn.ConnectClicked(&closeCb)

	bp.scrolledWin.SetChild(&bp.rowsBox.Widget)
	bp.mainBox.Append(&bp.headingLabel.Widget)
	bp.mainBox.Append(&bp.scrolledWin.Widget)
	bp.mainBox.Append(&bp.closeBtn.Widget)
	bp.outerBox.Append(&bp.mainBox.Widget)

	return nil
}

// rebuildRows replaces the row widgets with one per bookmark.
// Must be called with lock held.
func (bp *BookmarkPopup) rebuildRows(bookmarks []entity.Bookmark) {
	for _, row := range bp.rows {
		bp.rowsBox.Remove(&row.Widget)
		row.Unref()
	}
	bp.rows = nil

	for _, bm := range bookmarks {
		row := bp.newRow(bm)
		if row == nil {
			continue
		}
		bp.rowsBox.Append(&row.Widget)
		bp.rows = append(bp.rows, row)
	}
}

func (bp *BookmarkPopup) newRow(bm entity.Bookmark) *gtk.Button {
	row := gtk.NewButton()
	if row == nil {
		return nil
	}
	row.AddCssClass("bookmark-row")
	row.SetFocusOnClick(false)

	inner := gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if inner == nil {
		row.Unref()
		return nil
	}

	title := bm.Title
	if title == "" {
		title = bm.URL
	}
	titleLabel := gtk.NewLabel(&title)
	if titleLabel == nil {
		inner.Unref()
		row.Unref()
		return nil
	}
	titleLabel.AddCssClass("bookmark-title")
	titleLabel.SetHalign(gtk.AlignStartValue)
	titleLabel.SetEllipsize(pango.EllipsizeEndValue)
	titleLabel.SetMaxWidthChars(maxBookmarkTitleChars)

	url := bm.URL
	urlLabel := gtk.NewLabel(&url)
	if urlLabel == nil {
		titleLabel.Unref()
		inner.Unref()
		row.Unref()
		return nil
	}
	urlLabel.AddCssClass("bookmark-url")
	urlLabel.SetHalign(gtk.AlignStartValue)
	urlLabel.SetEllipsize(pango.EllipsizeEndValue)
	urlLabel.SetMaxWidthChars(maxBookmarkURLChars)

	inner.Append(&titleLabel.Widget)
	inner.Append(&urlLabel.Widget)
	row.SetChild(&inner.Widget)

	targetURL := bm.URL // Capture for closure
	clickCb := func(_ gtk.Button) {
		bp.mu.Lock()
		cb := bp.onOpen
		bp.mu.Unlock()

		bp.Hide()
		if cb != nil {
			cb(targetURL)
		}
	}
	bp.retainedCallbacks = append(bp.retainedCallbacks, clickCb)
	row.ConnectClicked(&clickCb)

	return row
}

func (bp *BookmarkPopup) attachKeyController() {
	if bp.outerBox == nil {
		return
	}
	controller := gtk.NewEventControllerKey()
	if controller == nil {
		return
	}
	controller.SetPropagationPhase(gtk.PhaseCaptureValue)

	keyPressedCb := func(_ gtk.EventControllerKey, keyval uint, _ uint, _ gdk.ModifierType) bool {
		if keyval == uint(gdk.KEY_Escape) {
			bp.Hide()
			return true
		}
		return false
	}
	bp.retainedCallbacks = append(bp.retainedCallbacks, keyPressedCb)
	controller.ConnectKeyPressed(&keyPressedCb)
	bp.outerBox.AddController(&controller.EventController)
}

// errNilWidget creates an error for nil widget creation.
func errNilWidget(name string) error {
	return &widgetError{name: name}
}

type widgetError struct {
	name string
}

func (e *widgetError) Error() string {
	return "failed to create widget: " + e.name
}
