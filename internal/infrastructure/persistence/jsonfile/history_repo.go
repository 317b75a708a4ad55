package jsonfile

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/Zeal1001/casement/internal/logging"
)

// HistoryRepo keeps the visited-URL list in memory and mirrors every
// mutation to history.json. Reads never touch the disk after Warm.
type HistoryRepo struct {
	store *Store[[]string]
	urls  []string
	index map[string]struct{}
}

// NewHistoryRepository creates a history repository backed by
// history.json inside dataDir. Call Warm before first use.
func NewHistoryRepository(dataDir string) *HistoryRepo {
	return &HistoryRepo{
		store: NewStore[[]string](filepath.Join(dataDir, HistoryFile)),
		index: make(map[string]struct{}),
	}
}

// Warm loads the persisted history into memory. A missing file is a
// first run and warms to empty without error. Any other failure also
// warms to empty, so the repository stays usable, and the error is
// returned for the caller to report.
func (r *HistoryRepo) Warm(ctx context.Context) error {
	urls, err := r.store.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	r.urls = urls
	r.index = make(map[string]struct{}, len(urls))
	for _, u := range urls {
		r.index[u] = struct{}{}
	}

	logging.FromContext(ctx).Debug().
		Int("count", len(urls)).
		Str("path", r.store.Path()).
		Msg("history loaded")
	return nil
}

// Contains reports whether url has been recorded before.
func (r *HistoryRepo) Contains(_ context.Context, url string) bool {
	_, ok := r.index[url]
	return ok
}

// Append records url at the end of the history unless it is already
// present, then persists the whole list. The in-memory entry survives
// a failed write so the running session keeps deduplicating correctly.
func (r *HistoryRepo) Append(ctx context.Context, url string) error {
	if _, ok := r.index[url]; ok {
		return nil
	}

	r.urls = append(r.urls, url)
	r.index[url] = struct{}{}

	if err := r.store.Save(r.urls); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Str("url", url).Msg("history entry recorded")
	return nil
}

// All returns the recorded URLs in visit order, oldest first.
func (r *HistoryRepo) All(_ context.Context) []string {
	out := make([]string, len(r.urls))
	copy(out, r.urls)
	return out
}

// Clear drops every entry and persists the empty list.
func (r *HistoryRepo) Clear(ctx context.Context) error {
	r.urls = nil
	r.index = make(map[string]struct{})

	if err := r.store.Save([]string{}); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().Msg("history cleared")
	return nil
}
