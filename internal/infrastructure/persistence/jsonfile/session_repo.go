package jsonfile

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/logging"
)

// SessionRepo persists the tab snapshot written at shutdown and read
// back at the next startup. Unlike history and bookmarks it holds no
// cache; the session file is read once per process.
type SessionRepo struct {
	store *Store[[]entity.SessionEntry]
}

// NewSessionRepository creates a session repository backed by
// session.json inside dataDir.
func NewSessionRepository(dataDir string) *SessionRepo {
	return &SessionRepo{
		store: NewStore[[]entity.SessionEntry](filepath.Join(dataDir, SessionFile)),
	}
}

// Load returns the saved session entries, or nil when no usable
// session exists. A corrupt file is logged and treated as absent;
// startup must never fail on a bad session file.
func (r *SessionRepo) Load(ctx context.Context) []entity.SessionEntry {
	entries, err := r.store.Load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.FromContext(ctx).Warn().Err(err).
				Str("path", r.store.Path()).
				Msg("ignoring unreadable session file")
		}
		return nil
	}

	logging.FromContext(ctx).Debug().
		Int("tabs", len(entries)).
		Msg("session restored from disk")
	return entries
}

// Save replaces the stored session with entries.
func (r *SessionRepo) Save(ctx context.Context, entries []entity.SessionEntry) error {
	if entries == nil {
		entries = []entity.SessionEntry{}
	}

	if err := r.store.Save(entries); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Int("tabs", len(entries)).
		Msg("session snapshot written")
	return nil
}
