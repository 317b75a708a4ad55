// Package notify surfaces application notices through the GTK overlay
// components.
package notify

import (
	"context"

	"github.com/Zeal1001/casement/internal/application/port"
	"github.com/Zeal1001/casement/internal/ui/component"
)

// Notifier renders notices as toasts and alerts as dismissable popups.
type Notifier struct {
	toaster *component.Toaster
	alert   *component.AlertPopup
}

var _ port.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier over the given overlay components.
func NewNotifier(toaster *component.Toaster, alert *component.AlertPopup) *Notifier {
	return &Notifier{
		toaster: toaster,
		alert:   alert,
	}
}

// Notify shows a transient toast for the notice.
func (n *Notifier) Notify(ctx context.Context, level port.NoticeLevel, message string) {
	if n.toaster == nil {
		return
	}
	n.toaster.Show(ctx, message, toastLevelFor(level))
}

// Alert shows a popup that stays until the user dismisses it.
func (n *Notifier) Alert(ctx context.Context, title, message string) {
	if n.alert == nil {
		return
	}
	n.alert.Show(ctx, title, message)
}

func toastLevelFor(level port.NoticeLevel) component.ToastLevel {
	switch level {
	case port.NoticeSuccess:
		return component.ToastSuccess
	case port.NoticeWarning:
		return component.ToastWarning
	case port.NoticeError:
		return component.ToastError
	default:
		return component.ToastInfo
	}
}
