package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeal1001/casement/internal/cli/styles"
	"github.com/Zeal1001/casement/internal/ui/theme"
)

type fakeHistoryStore struct {
	urls []string
}

func (f *fakeHistoryStore) Contains(_ context.Context, url string) bool {
	for _, u := range f.urls {
		if u == url {
			return true
		}
	}
	return false
}

func (f *fakeHistoryStore) Append(_ context.Context, url string) error {
	f.urls = append(f.urls, url)
	return nil
}

func (f *fakeHistoryStore) All(_ context.Context) []string {
	return append([]string(nil), f.urls...)
}

func (f *fakeHistoryStore) Clear(_ context.Context) error {
	f.urls = nil
	return nil
}

func TestHistoryModel_ShowsNewestFirst(t *testing.T) {
	th := styles.NewTheme(theme.DefaultDarkPalette())
	store := &fakeHistoryStore{urls: []string{"https://old.example/", "https://new.example/"}}
	m := NewHistoryModel(context.Background(), th, store)

	msg := m.loadHistory()
	loaded, ok := msg.(historyLoadedMsg)
	require.True(t, ok)
	require.Equal(t, []string{"https://new.example/", "https://old.example/"}, loaded.urls)

	updated, _ := m.Update(loaded)
	hm, ok := updated.(HistoryModel)
	require.True(t, ok)

	view := hm.View()
	assert.Contains(t, view, "History")
	assert.Contains(t, view, "2 pages")
	assert.Contains(t, view, "https://new.example/")
}

func TestHistoryModel_FilterNarrowsList(t *testing.T) {
	th := styles.NewTheme(theme.DefaultDarkPalette())
	store := &fakeHistoryStore{}
	m := NewHistoryModel(context.Background(), th, store)

	m.urls = []string{"https://go.dev/", "https://example.com/"}
	m.filterText = "go.dev"
	m.rebuildList()

	view := m.View()
	assert.Contains(t, view, "https://go.dev/")
	assert.NotContains(t, view, "https://example.com/")
}

func TestHistoryModel_QuitKey(t *testing.T) {
	th := styles.NewTheme(theme.DefaultDarkPalette())
	m := NewHistoryModel(context.Background(), th, &fakeHistoryStore{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
