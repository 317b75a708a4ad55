package component

import (
	"context"
	"sync"

	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/Zeal1001/casement/internal/logging"
)

const (
	// Default auto-dismiss timeout in milliseconds.
	toastDismissTimeoutMs = 2500
)

// ToastLevel indicates the visual style of a toast notification.
type ToastLevel int

const (
	// ToastInfo is for informational messages (accent color).
	ToastInfo ToastLevel = iota
	// ToastSuccess is for success confirmations (green).
	ToastSuccess
	// ToastWarning is for warning messages (yellow).
	ToastWarning
	// ToastError is for error messages (red).
	ToastError
)

// cssClass returns the CSS class for this toast level.
func (l ToastLevel) cssClass() string {
	switch l {
	case ToastInfo:
		return "toast-info"
	case ToastSuccess:
		return "toast-success"
	case ToastWarning:
		return "toast-warning"
	case ToastError:
		return "toast-error"
	default:
		return "toast-info"
	}
}

// ToastOptions configures toast behavior.
type ToastOptions struct {
	// Duration in milliseconds. 0 = persistent (no auto-dismiss).
	Duration int
}

// ToastOption is a functional option for configuring toast display.
type ToastOption func(*ToastOptions)

// WithDuration sets the auto-dismiss duration in milliseconds.
// Use 0 for persistent toasts that stay until replaced or hidden.
func WithDuration(ms int) ToastOption {
	return func(o *ToastOptions) {
		o.Duration = ms
	}
}

func defaultToastOptions() ToastOptions {
	return ToastOptions{
		Duration: toastDismissTimeoutMs,
	}
}

// Toaster displays toast notifications in an overlay.
// It supports different notification levels and auto-dismissal.
// When a new toast is shown while one is already visible, the text
// is updated in-place and the dismiss timer is reset (spam protection).
type Toaster struct {
	container    *gtk.Box
	label        *gtk.Label
	currentLevel ToastLevel
	visible      bool
	dismissTimer uint // GLib timer source ID

	mu sync.Mutex
}

// NewToaster creates a new toaster component for overlay display.
// The toaster is positioned at the top center with margin.
func NewToaster() *Toaster {
	container := gtk.NewBox(gtk.OrientationHorizontalValue, 0)
	if container == nil {
		return nil
	}
	container.AddCssClass("toast")
	container.AddCssClass("toast-info") // Default level

	container.SetHalign(gtk.AlignCenterValue)
	container.SetValign(gtk.AlignStartValue)
	container.SetHexpand(false)
	container.SetVexpand(false)

	// Don't intercept pointer events - let clicks pass through
	container.SetCanTarget(false)
	container.SetCanFocus(false)

	// Hidden by default
	container.SetVisible(false)

	emptyText := ""
	label := gtk.NewLabel(&emptyText)
	if label == nil {
		container.Unref()
		return nil
	}
	label.SetCanTarget(false)
	label.SetCanFocus(false)
	label.SetWrap(true)
	container.Append(&label.Widget)

	return &Toaster{
		container:    container,
		label:        label,
		currentLevel: ToastInfo,
		visible:      false,
	}
}

// Show displays a toast notification with the given message and level.
// If a toast is already visible, updates the text and resets the dismiss timer.
func (t *Toaster) Show(ctx context.Context, message string, level ToastLevel, opts ...ToastOption) {
	log := logging.FromContext(ctx)

	options := defaultToastOptions()
	for _, opt := range opts {
		opt(&options)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Update level CSS class if changed
	if t.currentLevel != level {
		t.container.RemoveCssClass(t.currentLevel.cssClass())
		t.container.AddCssClass(level.cssClass())
		t.currentLevel = level
	}

	t.label.SetText(message)

	// Cancel existing timer if any
	if t.dismissTimer != 0 {
		glib.SourceRemove(t.dismissTimer)
		t.dismissTimer = 0
	}

	if !t.visible {
		t.visible = true
		t.container.SetVisible(true)
	}

	// Duration == 0 means persistent, no timer
	if options.Duration > 0 {
		t.startDismissTimer(ctx, options.Duration)
	}

	log.Debug().
		Str("toast_message", message).
		Int("toast_level", int(level)).
		Int("duration", options.Duration).
		Msg("toast shown")
}

// Hide manually dismisses the toast.
func (t *Toaster) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hide()
}

// hide performs the actual hide operation (must be called with lock held).
func (t *Toaster) hide() {
	if !t.visible {
		return
	}

	if t.dismissTimer != 0 {
		glib.SourceRemove(t.dismissTimer)
		t.dismissTimer = 0
	}

	t.visible = false
	t.container.SetVisible(false)
}

// startDismissTimer starts the auto-dismiss timer with the given duration.
// Must be called with lock held.
func (t *Toaster) startDismissTimer(ctx context.Context, durationMs int) {
	log := logging.FromContext(ctx)

	cb := glib.SourceFunc(func(_ uintptr) bool {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.hide()
		t.dismissTimer = 0

		log.Debug().Msg("toast auto-dismissed")
		return false // Don't repeat
	})

	t.dismissTimer = glib.TimeoutAdd(uint(durationMs), &cb, 0)
}

// Widget returns the underlying widget for embedding in overlays.
func (t *Toaster) Widget() *gtk.Widget {
	return &t.container.Widget
}

// IsVisible returns whether the toast is currently visible.
func (t *Toaster) IsVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}
