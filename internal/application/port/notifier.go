package port

import "context"

// NoticeLevel classifies a user-facing notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "info"
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	}
	return "unknown"
}

// Notifier surfaces messages to the user. Implementations decide the
// presentation; callers only pick the severity.
type Notifier interface {
	// Notify shows a transient, non-blocking notice.
	Notify(ctx context.Context, level NoticeLevel, message string)

	// Alert shows a prominent message that stays until the user
	// dismisses it. Used for failures the user must see.
	Alert(ctx context.Context, title, message string)
}
