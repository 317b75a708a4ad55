package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/logging"
)

// ManageTabsUseCase handles tab lifecycle operations.
type ManageTabsUseCase struct {
	idGenerator entity.IDGenerator
}

// NewManageTabsUseCase creates a new tab management use case.
func NewManageTabsUseCase(idGenerator entity.IDGenerator) *ManageTabsUseCase {
	return &ManageTabsUseCase{idGenerator: idGenerator}
}

// OpenTabInput contains parameters for opening a new tab.
type OpenTabInput struct {
	// URL to navigate to right away. Empty keeps the tab on the home page.
	URL string
	// Private marks the tab as ephemeral: no history recording and no
	// persistent browsing data.
	Private bool
}

// Open creates a tab, appends it to the list, and makes it active. When
// input.URL is set the tab immediately enters the loading state; the
// caller is responsible for pointing the engine at that URL.
func (uc *ManageTabsUseCase) Open(ctx context.Context, tabs *entity.TabList, input OpenTabInput) (*entity.Tab, error) {
	if tabs == nil {
		return nil, fmt.Errorf("tab list is required")
	}

	tab := entity.NewTab(entity.TabID(uc.idGenerator()), input.Private)
	tabs.Add(tab)

	if input.URL != "" {
		tab.BeginNavigation(input.URL)
	}

	logging.FromContext(ctx).Info().
		Str("tab_id", string(tab.ID)).
		Int("position", tab.Position).
		Bool("private", tab.Private).
		Str("url", input.URL).
		Msg("tab opened")

	return tab, nil
}

// Close removes a tab. Closing the last remaining tab is refused with
// entity.ErrLastTab so the window never ends up empty; callers treat
// that as a no-op.
func (uc *ManageTabsUseCase) Close(ctx context.Context, tabs *entity.TabList, tabID entity.TabID) error {
	ctx = logging.WithTabID(ctx, string(tabID))
	log := logging.FromContext(ctx)

	if tabs == nil {
		return fmt.Errorf("tab list is required")
	}

	if err := tabs.Remove(tabID); err != nil {
		if errors.Is(err, entity.ErrLastTab) {
			log.Debug().Msg("refusing to close last tab")
		}
		return err
	}

	log.Info().
		Str("new_active", string(tabs.ActiveTabID)).
		Int("remaining", tabs.Count()).
		Msg("tab closed")

	return nil
}

// Activate makes the given tab the active one.
func (uc *ManageTabsUseCase) Activate(ctx context.Context, tabs *entity.TabList, tabID entity.TabID) error {
	if tabs == nil {
		return fmt.Errorf("tab list is required")
	}

	if err := tabs.Activate(tabID); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(tabID)).
		Msg("tab activated")
	return nil
}
