package usecase

import (
	"context"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/domain/repository"
	"github.com/Zeal1001/casement/internal/logging"
)

// RecordHistoryUseCase appends visited URLs to the history list.
type RecordHistoryUseCase struct {
	history repository.HistoryRepository
}

// NewRecordHistoryUseCase creates a new history recording use case.
func NewRecordHistoryUseCase(history repository.HistoryRepository) *RecordHistoryUseCase {
	return &RecordHistoryUseCase{history: history}
}

// Record notes that the tab visited url. Private tabs never touch
// history; nor does the home page, which has no URL to record. A
// failed disk write is logged and swallowed so navigation is never
// interrupted by storage problems.
func (uc *RecordHistoryUseCase) Record(ctx context.Context, tab *entity.Tab, url string) {
	log := logging.FromContext(ctx)

	if tab == nil || url == "" {
		return
	}
	if tab.Private {
		log.Debug().Str("tab_id", string(tab.ID)).Msg("private tab, history not recorded")
		return
	}

	if err := uc.history.Append(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to persist history entry")
	}
}

// All returns the recorded URLs, oldest first.
func (uc *RecordHistoryUseCase) All(ctx context.Context) []string {
	return uc.history.All(ctx)
}

// Clear wipes the history list.
func (uc *RecordHistoryUseCase) Clear(ctx context.Context) error {
	return uc.history.Clear(ctx)
}
