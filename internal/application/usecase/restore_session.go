package usecase

import (
	"context"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/domain/repository"
	"github.com/Zeal1001/casement/internal/logging"
)

// RestoreSessionUseCase reads back the tab snapshot from the previous
// run.
type RestoreSessionUseCase struct {
	sessions repository.SessionRepository
}

// NewRestoreSessionUseCase creates a new RestoreSessionUseCase.
func NewRestoreSessionUseCase(sessions repository.SessionRepository) *RestoreSessionUseCase {
	return &RestoreSessionUseCase{sessions: sessions}
}

// Execute returns the saved entries in tab-bar order, or nil when no
// usable session exists. The caller opens one tab per entry, or a
// single default tab when nil comes back. Restore never fails: a bad
// session file only means starting fresh.
func (uc *RestoreSessionUseCase) Execute(ctx context.Context) []entity.SessionEntry {
	entries := uc.sessions.Load(ctx)
	if len(entries) == 0 {
		logging.FromContext(ctx).Debug().Msg("no session to restore")
		return nil
	}

	logging.FromContext(ctx).Info().
		Int("tabs", len(entries)).
		Msg("restoring previous session")
	return entries
}
