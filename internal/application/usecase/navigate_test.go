package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/domain/entity"
	"github.com/Zeal1001/casement/internal/parser"
)

func newNavigate() *usecase.NavigateUseCase {
	return usecase.NewNavigateUseCase(parser.NewResolver(""))
}

func TestNavigateLoadDomainInput(t *testing.T) {
	ctx := testContext()
	tab := entity.NewTab("t1", false)

	url, err := newNavigate().Load(ctx, tab, "example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", url)
	assert.Equal(t, entity.NavLoading, tab.State)
	assert.Equal(t, "https://example.com", tab.URL)
	assert.False(t, tab.IsHome(), "tab must leave home before the engine reports anything")
}

func TestNavigateLoadSearchInput(t *testing.T) {
	ctx := testContext()
	tab := entity.NewTab("t1", false)

	url, err := newNavigate().Load(ctx, tab, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "https://duckduckgo.com/?q=hello+world", url)
}

func TestNavigateLoadEmptyInputIsNoOp(t *testing.T) {
	ctx := testContext()
	tab := entity.NewTab("t1", false)

	_, err := newNavigate().Load(ctx, tab, "   ")
	require.ErrorIs(t, err, usecase.ErrEmptyInput)

	assert.True(t, tab.IsHome())
	assert.Empty(t, tab.URL)
}

func TestNavigateLoadNilTab(t *testing.T) {
	_, err := newNavigate().Load(testContext(), nil, "example.com")
	require.Error(t, err)
}

func TestNavigateGoHome(t *testing.T) {
	ctx := testContext()
	tab := entity.NewTab("t1", false)

	_, err := newNavigate().Load(ctx, tab, "example.com")
	require.NoError(t, err)
	tab.FinishLoad()
	tab.ObserveTitle("Example")

	require.NoError(t, newNavigate().GoHome(ctx, tab))

	assert.True(t, tab.IsHome())
	assert.Empty(t, tab.URL)
	assert.Empty(t, tab.Title)
	assert.Equal(t, "Home", tab.Label())
}
