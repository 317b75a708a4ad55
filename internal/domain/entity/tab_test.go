package entity_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/domain/entity"
)

func TestNewTabStartsAtHome(t *testing.T) {
	tab := entity.NewTab("t1", false)

	assert.Equal(t, entity.NavHome, tab.State)
	assert.True(t, tab.IsHome())
	assert.False(t, tab.Ready)
	assert.Equal(t, "Home", tab.Label())
}

func TestPrivateTabLabelCarriesMarker(t *testing.T) {
	tab := entity.NewTab("t1", true)

	assert.Equal(t, "Home"+entity.PrivateMarker, tab.Label())

	tab.BeginNavigation("https://example.com")
	tab.ObserveTitle("Example")
	assert.Equal(t, "Example", tab.Label())

	tab.GoHome()
	assert.Equal(t, "Home"+entity.PrivateMarker, tab.Label())
}

func TestBeginNavigationLeavesHomeImmediately(t *testing.T) {
	tab := entity.NewTab("t1", false)

	tab.BeginNavigation("https://example.com")

	assert.Equal(t, entity.NavLoading, tab.State)
	assert.False(t, tab.IsHome())
	assert.Equal(t, "https://example.com", tab.URL)
	assert.Equal(t, "Loading...", tab.Label())
}

func TestFinishLoadFlipsReadyOnce(t *testing.T) {
	tab := entity.NewTab("t1", false)

	// The home page's own static content load is the first flip.
	assert.True(t, tab.FinishLoad())
	assert.True(t, tab.Ready)
	assert.Equal(t, entity.NavHome, tab.State, "finishing the home load keeps the tab at Home")

	tab.BeginNavigation("https://example.com")
	assert.False(t, tab.FinishLoad())
	assert.Equal(t, entity.NavLoaded, tab.State)

	assert.False(t, tab.FinishLoad(), "later callbacks stay idempotent")
}

func TestObserveURLGuards(t *testing.T) {
	tab := entity.NewTab("t1", false)

	assert.False(t, tab.ObserveURL(""), "empty URL is ignored")
	assert.False(t, tab.ObserveURL("https://example.com"), "home-state callbacks are ignored")
	assert.Empty(t, tab.URL)

	tab.BeginNavigation("https://example.com")
	assert.True(t, tab.ObserveURL("https://example.com/landing"))
	assert.Equal(t, "https://example.com/landing", tab.URL)
}

func TestGoHomeResetsNavigationResidue(t *testing.T) {
	tab := entity.NewTab("t1", false)
	tab.BeginNavigation("https://example.com")
	tab.FinishLoad()
	tab.ObserveTitle("Example")

	tab.GoHome()

	assert.Equal(t, entity.NavHome, tab.State)
	assert.Empty(t, tab.URL)
	assert.Empty(t, tab.Title)
	assert.Equal(t, "Home", tab.Label())
	assert.True(t, tab.Ready, "readiness survives going home")
}

func TestLabelFallsBackToNewTab(t *testing.T) {
	tab := entity.NewTab("t1", false)
	tab.BeginNavigation("https://example.com")
	tab.FinishLoad()

	assert.Equal(t, "New Tab", tab.Label())

	tab.ObserveTitle("Example Domain")
	assert.Equal(t, "Example Domain", tab.Label())

	tab.ObserveTitle("")
	assert.Equal(t, "New Tab", tab.Label())
}

func newTestList(n int) *entity.TabList {
	tl := entity.NewTabList()
	for i := 0; i < n; i++ {
		tl.Add(entity.NewTab(entity.TabID(fmt.Sprintf("t%d", i+1)), false))
	}
	return tl
}

func TestTabListAddActivates(t *testing.T) {
	tl := newTestList(3)

	assert.Equal(t, 3, tl.Count())
	assert.Equal(t, entity.TabID("t3"), tl.ActiveTabID, "newest tab becomes active")
	assert.Equal(t, 2, tl.ActiveIndex())
	for i, tab := range tl.Tabs {
		assert.Equal(t, i, tab.Position)
	}
}

func TestTabListNeverBecomesEmpty(t *testing.T) {
	tl := newTestList(2)

	require.NoError(t, tl.Remove("t1"))
	err := tl.Remove("t2")

	assert.ErrorIs(t, err, entity.ErrLastTab)
	assert.Equal(t, 1, tl.Count())
	assert.NotNil(t, tl.ActiveTab())
}

func TestTabListRemoveSelectsNeighbor(t *testing.T) {
	tl := newTestList(3)
	require.NoError(t, tl.Activate("t2"))

	require.NoError(t, tl.Remove("t2"))

	// The tab that slid into the removed slot becomes active.
	assert.Equal(t, entity.TabID("t3"), tl.ActiveTabID)
	assert.Equal(t, []int{0, 1}, []int{tl.Tabs[0].Position, tl.Tabs[1].Position})

	require.NoError(t, tl.Remove("t3"))
	assert.Equal(t, entity.TabID("t1"), tl.ActiveTabID, "removing the tail activates the new last tab")
}

func TestTabListRemoveUnknownTab(t *testing.T) {
	tl := newTestList(2)

	err := tl.Remove("nope")

	assert.ErrorIs(t, err, entity.ErrTabNotFound)
	assert.Equal(t, 2, tl.Count())
}

func TestTabListActivate(t *testing.T) {
	tl := newTestList(3)

	require.NoError(t, tl.ActivateIndex(0))
	assert.Equal(t, entity.TabID("t1"), tl.ActiveTabID)

	assert.ErrorIs(t, tl.ActivateIndex(5), entity.ErrTabNotFound)
	assert.ErrorIs(t, tl.Activate("nope"), entity.ErrTabNotFound)
	assert.Equal(t, entity.TabID("t1"), tl.ActiveTabID, "failed activation leaves the active tab alone")
}
