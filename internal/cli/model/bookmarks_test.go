package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/cli/styles"
	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/ui/theme"
)

type fakeBookmarkStore struct {
	bookmarks []entity.Bookmark
}

func (f *fakeBookmarkStore) All(_ context.Context) []entity.Bookmark {
	return append([]entity.Bookmark(nil), f.bookmarks...)
}

func (f *fakeBookmarkStore) FindByURL(_ context.Context, url string) *entity.Bookmark {
	for i := range f.bookmarks {
		if f.bookmarks[i].URL == url {
			return &f.bookmarks[i]
		}
	}
	return nil
}

func (f *fakeBookmarkStore) Add(_ context.Context, bookmark entity.Bookmark) error {
	f.bookmarks = append(f.bookmarks, bookmark)
	return nil
}

func TestBookmarkModel_ShowsTitleAndURL(t *testing.T) {
	th := styles.NewTheme(theme.DefaultDarkPalette())
	store := &fakeBookmarkStore{bookmarks: []entity.Bookmark{
		{Title: "The Go Programming Language", URL: "https://go.dev/"},
	}}
	m := NewBookmarkModel(context.Background(), th, store)

	msg := m.loadBookmarks()
	loaded, ok := msg.(bookmarksLoadedMsg)
	require.True(t, ok)
	require.Len(t, loaded.pages, 1)

	updated, _ := m.Update(loaded)
	bm, ok := updated.(BookmarkModel)
	require.True(t, ok)

	view := bm.View()
	assert.Contains(t, view, "Bookmarks")
	assert.Contains(t, view, "1 bookmark")
	assert.Contains(t, view, "The Go Programming Language")
	assert.Contains(t, view, "https://go.dev/")
}

func TestBookmarkModel_FilterMatchesTitle(t *testing.T) {
	th := styles.NewTheme(theme.DefaultDarkPalette())
	m := NewBookmarkModel(context.Background(), th, &fakeBookmarkStore{})

	m.pages = []styles.PageItem{
		{Title: "Weekly News", URL: "https://news.example/"},
		{Title: "Docs", URL: "https://docs.example/"},
	}
	m.filterText = "weekly"
	m.rebuildList()

	view := m.View()
	assert.Contains(t, view, "https://news.example/")
	assert.NotContains(t, view, "https://docs.example/")
}
