package usecase

import (
	"context"
	"fmt"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/domain/repository"
	"github.com/Zeal1001/casement/internal/logging"
)

// SnapshotSessionUseCase persists the open-tab snapshot.
type SnapshotSessionUseCase struct {
	sessions repository.SessionRepository
}

// NewSnapshotSessionUseCase creates a new SnapshotSessionUseCase.
func NewSnapshotSessionUseCase(sessions repository.SessionRepository) *SnapshotSessionUseCase {
	return &SnapshotSessionUseCase{sessions: sessions}
}

// Execute writes the current tab set wholesale: one entry per tab in
// bar order, home tabs serialized with an empty URL. Private tabs are
// included; their pages reopen on restore even though their browsing
// data is gone.
func (uc *SnapshotSessionUseCase) Execute(ctx context.Context, tabs *entity.TabList) error {
	entries := entity.SnapshotTabs(tabs)

	logging.FromContext(ctx).Debug().
		Int("tabs", len(entries)).
		Msg("saving session snapshot")

	if err := uc.sessions.Save(ctx, entries); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
