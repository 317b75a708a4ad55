package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/logging"
	"github.com/Zeal1001/casement/internal/parser"
)

// ErrEmptyInput is returned when the address bar is committed with
// nothing in it. Callers treat it as a no-op.
var ErrEmptyInput = errors.New("empty input")

// NavigateUseCase turns address-bar input into tab navigation.
type NavigateUseCase struct {
	resolver *parser.Resolver
}

// NewNavigateUseCase creates a new navigation use case.
func NewNavigateUseCase(resolver *parser.Resolver) *NavigateUseCase {
	return &NavigateUseCase{resolver: resolver}
}

// Load resolves the input and moves the tab into the loading state.
// It returns the URL the engine must load. The tab leaves the home
// state here, before the engine reports anything.
func (uc *NavigateUseCase) Load(ctx context.Context, tab *entity.Tab, input string) (string, error) {
	if tab == nil {
		return "", fmt.Errorf("tab is required")
	}
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}

	res := uc.resolver.Resolve(input)
	tab.BeginNavigation(res.URL)

	logging.FromContext(ctx).Info().
		Str("tab_id", string(tab.ID)).
		Str("url", res.URL).
		Str("kind", res.Kind.String()).
		Msg("navigation started")

	return res.URL, nil
}

// GoHome returns the tab to the built-in home page, clearing its URL
// and title.
func (uc *NavigateUseCase) GoHome(ctx context.Context, tab *entity.Tab) error {
	if tab == nil {
		return fmt.Errorf("tab is required")
	}

	tab.GoHome()

	logging.FromContext(ctx).Debug().
		Str("tab_id", string(tab.ID)).
		Msg("tab returned home")
	return nil
}
