package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/domain/entity"
)

func TestSnapshotTabsPreservesOrderAndFlags(t *testing.T) {
	tl := entity.NewTabList()

	home := entity.NewTab("t1", false)
	tl.Add(home)

	loaded := entity.NewTab("t2", false)
	loaded.BeginNavigation("https://example.com")
	loaded.FinishLoad()
	loaded.ObserveURL("https://example.com/")
	tl.Add(loaded)

	private := entity.NewTab("t3", true)
	private.BeginNavigation("https://private.example")
	private.FinishLoad()
	tl.Add(private)

	entries := entity.SnapshotTabs(tl)

	require.Len(t, entries, 3)
	assert.Equal(t, entity.SessionEntry{URL: "", Private: false}, entries[0], "home tabs serialize with an empty URL")
	assert.Equal(t, entity.SessionEntry{URL: "https://example.com/", Private: false}, entries[1])
	assert.Equal(t, entity.SessionEntry{URL: "https://private.example", Private: true}, entries[2])
}

func TestSnapshotTabsAfterGoHome(t *testing.T) {
	tl := entity.NewTabList()
	tab := entity.NewTab("t1", false)
	tab.BeginNavigation("https://example.com")
	tab.FinishLoad()
	tab.GoHome()
	tl.Add(tab)

	entries := entity.SnapshotTabs(tl)

	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].URL, "a tab returned to home serializes as a home tab")
}

func TestSnapshotTabsNilList(t *testing.T) {
	assert.Empty(t, entity.SnapshotTabs(nil))
}
