package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/application/usecase"
	"github.com/Zeal1001/casement/internal/domain/entity"
)

func TestManageTabsOpenDefaultsToHome(t *testing.T) {
	ctx := testContext()
	tabs := entity.NewTabList()
	uc := usecase.NewManageTabsUseCase(sequentialIDs())

	tab, err := uc.Open(ctx, tabs, usecase.OpenTabInput{})
	require.NoError(t, err)

	assert.Equal(t, entity.TabID("tab-1"), tab.ID)
	assert.True(t, tab.IsHome())
	assert.Equal(t, 0, tab.Position)
	assert.Equal(t, tab.ID, tabs.ActiveTabID)
}

func TestManageTabsOpenWithURLStartsLoading(t *testing.T) {
	ctx := testContext()
	tabs := entity.NewTabList()
	uc := usecase.NewManageTabsUseCase(sequentialIDs())

	tab, err := uc.Open(ctx, tabs, usecase.OpenTabInput{URL: "https://example.com/"})
	require.NoError(t, err)

	assert.Equal(t, entity.NavLoading, tab.State)
	assert.Equal(t, "https://example.com/", tab.URL)
}

func TestManageTabsOpenPrivate(t *testing.T) {
	ctx := testContext()
	tabs := entity.NewTabList()
	uc := usecase.NewManageTabsUseCase(sequentialIDs())

	tab, err := uc.Open(ctx, tabs, usecase.OpenTabInput{Private: true})
	require.NoError(t, err)

	assert.True(t, tab.Private)
	assert.Equal(t, "Home"+entity.PrivateMarker, tab.Label())
}

func TestManageTabsCloseRefusesLastTab(t *testing.T) {
	ctx := testContext()
	tabs := entity.NewTabList()
	uc := usecase.NewManageTabsUseCase(sequentialIDs())

	tab, err := uc.Open(ctx, tabs, usecase.OpenTabInput{})
	require.NoError(t, err)

	err = uc.Close(ctx, tabs, tab.ID)
	require.ErrorIs(t, err, entity.ErrLastTab)
	assert.Equal(t, 1, tabs.Count())
}

func TestManageTabsCloseActivatesNeighbor(t *testing.T) {
	ctx := testContext()
	tabs := entity.NewTabList()
	uc := usecase.NewManageTabsUseCase(sequentialIDs())

	first, err := uc.Open(ctx, tabs, usecase.OpenTabInput{})
	require.NoError(t, err)
	second, err := uc.Open(ctx, tabs, usecase.OpenTabInput{})
	require.NoError(t, err)
	third, err := uc.Open(ctx, tabs, usecase.OpenTabInput{})
	require.NoError(t, err)

	require.NoError(t, uc.Activate(ctx, tabs, second.ID))
	require.NoError(t, uc.Close(ctx, tabs, second.ID))

	assert.Equal(t, third.ID, tabs.ActiveTabID, "closing the active tab activates the tab now at its index")
	assert.Equal(t, 2, tabs.Count())
	assert.Equal(t, 0, tabs.Find(first.ID).Position)
	assert.Equal(t, 1, tabs.Find(third.ID).Position)
}

func TestManageTabsActivateUnknown(t *testing.T) {
	ctx := testContext()
	tabs := entity.NewTabList()
	uc := usecase.NewManageTabsUseCase(sequentialIDs())

	_, err := uc.Open(ctx, tabs, usecase.OpenTabInput{})
	require.NoError(t, err)

	err = uc.Activate(ctx, tabs, "missing")
	require.ErrorIs(t, err, entity.ErrTabNotFound)
}
