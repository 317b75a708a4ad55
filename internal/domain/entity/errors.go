package entity

import "errors"

var (
	// ErrLastTab is returned when closing the sole remaining tab.
	ErrLastTab = errors.New("cannot close the last remaining tab")

	// ErrTabNotFound is returned when a tab ID or index does not resolve.
	ErrTabNotFound = errors.New("tab not found")

	// ErrDuplicateBookmark is returned when the URL is already bookmarked.
	ErrDuplicateBookmark = errors.New("page is already bookmarked")

	// ErrHomeNotBookmarkable is returned when bookmarking the home page.
	ErrHomeNotBookmarkable = errors.New("home page cannot be bookmarked")
)
