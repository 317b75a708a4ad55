// Package repository defines persistence interfaces for the domain layer.
// Read failures never surface to callers: implementations fall back to
// empty defaults. Write failures are returned so callers can decide to
// drop them, which the shell does.
package repository

import (
	"context"

	"github.com/Zeal1001/casement/internal/domain/entity"
)

// HistoryRepository is the shared navigation history service. One
// instance serves every non-private tab in the window; private tabs are
// never handed one.
type HistoryRepository interface {
	// Contains reports whether the URL was already recorded.
	Contains(ctx context.Context, url string) bool

	// Append records a URL and persists the collection immediately.
	// Appending a URL that is already present is a no-op.
	Append(ctx context.Context, url string) error

	// All returns every recorded URL in insertion order.
	All(ctx context.Context) []string

	// Clear removes all recorded URLs and persists the empty collection.
	Clear(ctx context.Context) error
}

// BookmarkRepository persists saved pages.
type BookmarkRepository interface {
	// All returns every bookmark in insertion order.
	All(ctx context.Context) []entity.Bookmark

	// FindByURL returns the bookmark for a URL, or nil.
	FindByURL(ctx context.Context, url string) *entity.Bookmark

	// Add appends a bookmark and persists the collection immediately.
	Add(ctx context.Context, bookmark entity.Bookmark) error
}

// SessionRepository persists the session snapshot: the ordered list of
// open tabs written wholesale at shutdown and read back at startup.
type SessionRepository interface {
	// Load returns the last saved snapshot. A missing or unreadable
	// store yields an empty snapshot, never an error.
	Load(ctx context.Context) []entity.SessionEntry

	// Save overwrites the snapshot.
	Save(ctx context.Context, entries []entity.SessionEntry) error
}
