package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/domain/repository"
	"github.com/Zeal1001/casement/internal/logging"
)

// ManageBookmarksUseCase handles bookmark operations.
type ManageBookmarksUseCase struct {
	bookmarks repository.BookmarkRepository
}

// NewManageBookmarksUseCase creates a new bookmark management use case.
func NewManageBookmarksUseCase(bookmarks repository.BookmarkRepository) *ManageBookmarksUseCase {
	return &ManageBookmarksUseCase{bookmarks: bookmarks}
}

// AddCurrent bookmarks the page the tab is showing.
//
// A tab on the home page cannot be bookmarked; the call fails with
// entity.ErrHomeNotBookmarkable and callers drop it silently. A URL
// that is already bookmarked fails with entity.ErrDuplicateBookmark,
// which callers turn into the "already bookmarked" notice. A failed
// disk write is logged and swallowed: the bookmark exists for this
// session either way.
func (uc *ManageBookmarksUseCase) AddCurrent(ctx context.Context, tab *entity.Tab) (*entity.Bookmark, error) {
	log := logging.FromContext(ctx)

	if tab == nil {
		return nil, fmt.Errorf("tab is required")
	}
	if tab.IsHome() {
		log.Debug().Str("tab_id", string(tab.ID)).Msg("home page is not bookmarkable")
		return nil, entity.ErrHomeNotBookmarkable
	}

	bookmark := entity.NewBookmark(tab.Title, tab.URL)
	if err := uc.bookmarks.Add(ctx, bookmark); err != nil {
		if errors.Is(err, entity.ErrDuplicateBookmark) {
			log.Debug().Str("url", bookmark.URL).Msg("url already bookmarked")
			return nil, err
		}
		log.Warn().Err(err).Str("url", bookmark.URL).Msg("failed to persist bookmark")
	}

	log.Info().Str("url", bookmark.URL).Str("title", bookmark.Title).Msg("bookmark added")
	return &bookmark, nil
}

// List returns all bookmarks in the order they were added.
func (uc *ManageBookmarksUseCase) List(ctx context.Context) []entity.Bookmark {
	return uc.bookmarks.All(ctx)
}
