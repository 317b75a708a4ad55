package component

import (
	"context"
	"sync"

	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/Zeal1001/casement/internal/logging"
)

const (
	alertPopupWidth     = 380
	alertPopupMarginTop = 48
)

// AlertPopup is a custom overlay for messages the user must acknowledge.
// A custom overlay instead of a GTK dialog to sidestep the purego
// ConnectResponse bug.
type AlertPopup struct {
	outerBox     *gtk.Box
	mainBox      *gtk.Box
	headingLabel *gtk.Label
	bodyLabel    *gtk.Label
	okBtn        *gtk.Button

	mu      sync.Mutex
	visible bool

	retainedCallbacks []interface{}
}

// NewAlertPopup creates a new alert popup component.
func NewAlertPopup() *AlertPopup {
	ap := &AlertPopup{}

	if err := ap.createWidgets(); err != nil {
		return nil
	}
	ap.attachKeyController()
	return ap
}

// Widget returns the outer GTK widget for overlay registration.
func (ap *AlertPopup) Widget() *gtk.Widget {
	if ap.outerBox == nil {
		return nil
	}
	return &ap.outerBox.Widget
}

// Show displays the alert with the given heading and body text. The popup
// stays until the user dismisses it.
func (ap *AlertPopup) Show(ctx context.Context, heading, body string) {
	log := logging.FromContext(ctx)

	ap.mu.Lock()
	ap.visible = true
	ap.mu.Unlock()

	if ap.headingLabel != nil {
		ap.headingLabel.SetText(heading)
	}
	if ap.bodyLabel != nil {
		ap.bodyLabel.SetText(body)
	}
	if ap.outerBox != nil {
		ap.outerBox.SetVisible(true)
	}
	if ap.okBtn != nil {
		ap.okBtn.GrabFocus()
	}

	log.Debug().Str("alert_heading", heading).Msg("alert popup shown")
}

// Hide dismisses the alert.
func (ap *AlertPopup) Hide() {
	ap.mu.Lock()
	if !ap.visible {
		ap.mu.Unlock()
		return
	}
	ap.visible = false
	ap.mu.Unlock()

	if ap.outerBox != nil {
		ap.outerBox.SetVisible(false)
	}
}

// IsVisible returns whether the alert is currently displayed.
func (ap *AlertPopup) IsVisible() bool {
	ap.mu.Lock()
	defer ap.mu.Unlock()
	return ap.visible
}

func (ap *AlertPopup) createWidgets() error {
	ap.outerBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if ap.outerBox == nil {
		return errNilWidget("alertPopupOuterBox")
	}
	ap.outerBox.AddCssClass("popup-outer")
	ap.outerBox.SetHalign(gtk.AlignCenterValue)
	ap.outerBox.SetValign(gtk.AlignStartValue)
	ap.outerBox.SetMarginTop(alertPopupMarginTop)
	ap.outerBox.SetVisible(false)

	ap.mainBox = gtk.NewBox(gtk.OrientationVerticalValue, 0)
	if ap.mainBox == nil {
		return errNilWidget("alertPopupMainBox")
	}
	ap.mainBox.AddCssClass("popup-panel")
	ap.mainBox.SetSizeRequest(alertPopupWidth, -1)

	emptyText := ""
	ap.headingLabel = gtk.NewLabel(&emptyText)
	if ap.headingLabel == nil {
		return errNilWidget("alertPopupHeading")
	}
	ap.headingLabel.AddCssClass("popup-heading")
	ap.headingLabel.SetHalign(gtk.AlignStartValue)

	ap.bodyLabel = gtk.NewLabel(&emptyText)
	if ap.bodyLabel == nil {
		return errNilWidget("alertPopupBody")
	}
	ap.bodyLabel.AddCssClass("popup-body")
	ap.bodyLabel.SetHalign(gtk.AlignStartValue)
	ap.bodyLabel.SetWrap(true)

	ap.okBtn = gtk.NewButtonWithLabel("OK")
	if ap.okBtn == nil {
		return errNilWidget("alertPopupOkBtn")
	}
	ap.okBtn.AddCssClass("popup-btn")
	ap.okBtn.SetHalign(gtk.AlignEndValue)
	okCb := func(_ gtk.Button) { ap.Hide() }
	ap.retainedCallbacks = append(ap.retainedCallbacks, okCb)
	ap.okBtn.ConnectClicked(&okCb)

	ap.mainBox.Append(&ap.headingLabel.Widget)
	ap.mainBox.Append(&ap.bodyLabel.Widget)
	ap.mainBox.Append(&ap.okBtn.Widget)
	ap.outerBox.Append(&ap.mainBox.Widget)

	return nil
}

func (ap *AlertPopup) attachKeyController() {
	if ap.outerBox == nil {
		return
	}
	controller := gtk.NewEventControllerKey()
	if controller == nil {
		return
	}
	controller.SetPropagationPhase(gtk.PhaseCaptureValue)

	keyPressedCb := func(_ gtk.EventControllerKey, keyval uint, _ uint, _ gdk.ModifierType) bool {
		if keyval == uint(gdk.KEY_Escape) || keyval == uint(gdk.KEY_Return) {
			ap.Hide()
			return true
		}
		return false
	}
	ap.retainedCallbacks = append(ap.retainedCallbacks, keyPressedCb)
	controller.ConnectKeyPressed(&keyPressedCb)
	ap.outerBox.AddController(&controller.EventController)
}
