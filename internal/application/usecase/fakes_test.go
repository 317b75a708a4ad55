package usecase_test

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/logging"
)

func testContext() context.Context {
	logger := logging.New(logging.Config{Level: zerolog.Disabled})
	return logging.WithContext(context.Background(), logger)
}

func sequentialIDs() entity.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tab-%d", n)
	}
}

type fakeHistoryRepo struct {
	urls      []string
	appendErr error
}

func (f *fakeHistoryRepo) Contains(_ context.Context, url string) bool {
	for _, u := range f.urls {
		if u == url {
			return true
		}
	}
	return false
}

func (f *fakeHistoryRepo) Append(ctx context.Context, url string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if !f.Contains(ctx, url) {
		f.urls = append(f.urls, url)
	}
	return nil
}

func (f *fakeHistoryRepo) All(_ context.Context) []string {
	return append([]string(nil), f.urls...)
}

func (f *fakeHistoryRepo) Clear(_ context.Context) error {
	f.urls = nil
	return nil
}

type fakeBookmarkRepo struct {
	bookmarks []entity.Bookmark
	addErr    error
}

func (f *fakeBookmarkRepo) All(_ context.Context) []entity.Bookmark {
	return append([]entity.Bookmark(nil), f.bookmarks...)
}

func (f *fakeBookmarkRepo) FindByURL(_ context.Context, url string) *entity.Bookmark {
	for i := range f.bookmarks {
		if f.bookmarks[i].URL == url {
			b := f.bookmarks[i]
			return &b
		}
	}
	return nil
}

func (f *fakeBookmarkRepo) Add(ctx context.Context, bookmark entity.Bookmark) error {
	if f.addErr != nil {
		return f.addErr
	}
	if f.FindByURL(ctx, bookmark.URL) != nil {
		return entity.ErrDuplicateBookmark
	}
	f.bookmarks = append(f.bookmarks, bookmark)
	return nil
}

type fakeSessionRepo struct {
	entries []entity.SessionEntry
	saved   [][]entity.SessionEntry
	saveErr error
}

func (f *fakeSessionRepo) Load(_ context.Context) []entity.SessionEntry {
	return f.entries
}

func (f *fakeSessionRepo) Save(_ context.Context, entries []entity.SessionEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, entries)
	return nil
}
