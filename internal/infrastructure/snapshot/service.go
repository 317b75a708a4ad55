// Package snapshot persists the session wholesale: always once at
// shutdown, and optionally debounced while running when an autosave
// interval is configured.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/logging"
)

// TabSource yields the live tab list to snapshot.
type TabSource interface {
	Tabs() *entity.TabList
}

// Service regenerates the session file from the current tab set.
type Service struct {
	snapshot *usecase.SnapshotSessionUseCase
	tabs     TabSource
	interval time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a snapshot service. A non-positive interval
// disables autosave: the session is then written only by Stop.
func NewService(snapshotUC *usecase.SnapshotSessionUseCase, tabs TabSource, interval time.Duration) *Service {
	return &Service{
		snapshot: snapshotUC,
		tabs:     tabs,
		interval: interval,
	}
}

// Start arms the service. MarkDirty calls before Start are dropped.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().
		Dur("interval", s.interval).
		Bool("autosave", s.interval > 0).
		Msg("snapshot service started")
}

// Stop cancels pending autosaves and writes the final session state.
// The shutdown write is unconditional: the session file mirrors the
// tabs that were open when the browser exited.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.snapshot.Execute(ctx, s.tabs.Tabs())
}

// MarkDirty signals that the tab set changed. With autosave enabled the
// write is debounced by the configured interval; with autosave disabled
// nothing happens until Stop.
func (s *Service) MarkDirty() {
	if s.interval <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}

		if err := s.snapshot.Execute(ctx, s.tabs.Tabs()); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to autosave session")
		}
	})
}

// SaveNow cancels any pending debounce and writes immediately.
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.snapshot.Execute(ctx, s.tabs.Tabs())
}
