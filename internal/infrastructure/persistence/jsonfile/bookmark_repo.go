package jsonfile

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/logging"
)

// BookmarkRepo keeps bookmarks in memory and mirrors every mutation to
// bookmarks.json. Bookmarks are unique by URL.
type BookmarkRepo struct {
	store     *Store[[]entity.Bookmark]
	bookmarks []entity.Bookmark
	byURL     map[string]int
}

// NewBookmarkRepository creates a bookmark repository backed by
// bookmarks.json inside dataDir. Call Warm before first use.
func NewBookmarkRepository(dataDir string) *BookmarkRepo {
	return &BookmarkRepo{
		store: NewStore[[]entity.Bookmark](filepath.Join(dataDir, BookmarksFile)),
		byURL: make(map[string]int),
	}
}

// Warm loads the persisted bookmarks into memory. Missing file means
// first run; other failures warm to empty and return the error.
func (r *BookmarkRepo) Warm(ctx context.Context) error {
	bookmarks, err := r.store.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	r.bookmarks = bookmarks
	r.byURL = make(map[string]int, len(bookmarks))
	for i, b := range bookmarks {
		r.byURL[b.URL] = i
	}

	logging.FromContext(ctx).Debug().
		Int("count", len(bookmarks)).
		Str("path", r.store.Path()).
		Msg("bookmarks loaded")
	return nil
}

// All returns the bookmarks in the order they were added.
func (r *BookmarkRepo) All(_ context.Context) []entity.Bookmark {
	out := make([]entity.Bookmark, len(r.bookmarks))
	copy(out, r.bookmarks)
	return out
}

// FindByURL returns the bookmark for url, or nil when none exists.
func (r *BookmarkRepo) FindByURL(_ context.Context, url string) *entity.Bookmark {
	i, ok := r.byURL[url]
	if !ok {
		return nil
	}
	b := r.bookmarks[i]
	return &b
}

// Add appends the bookmark and persists the list. Adding a URL that is
// already bookmarked fails with entity.ErrDuplicateBookmark and leaves
// the stored list untouched.
func (r *BookmarkRepo) Add(ctx context.Context, bookmark entity.Bookmark) error {
	if _, ok := r.byURL[bookmark.URL]; ok {
		return entity.ErrDuplicateBookmark
	}

	r.bookmarks = append(r.bookmarks, bookmark)
	r.byURL[bookmark.URL] = len(r.bookmarks) - 1

	if err := r.store.Save(r.bookmarks); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("url", bookmark.URL).
		Str("title", bookmark.Title).
		Msg("bookmark added")
	return nil
}
