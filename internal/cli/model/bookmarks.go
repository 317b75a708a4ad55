package model

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zeal1001/casement/internal/cli/styles"
	"github.com/Zeal1001/casement/internal/domain/repository"
	"github.com/Zeal1001/casement/internal/logging"
)

// BookmarkModel is the Bubble Tea model for the bookmark browser.
type BookmarkModel struct {
	list   list.Model
	filter textinput.Model
	help   help.Model
	keys   styles.ListKeyMap

	pages      []styles.PageItem
	filterText string
	filterMode bool
	showHelp   bool
	width      int
	height     int

	ctx       context.Context
	bookmarks repository.BookmarkRepository
	theme     *styles.Theme
}

// NewBookmarkModel creates the bookmark browser model.
func NewBookmarkModel(ctx context.Context, theme *styles.Theme, bookmarks repository.BookmarkRepository) BookmarkModel {
	m := BookmarkModel{
		filter:    styles.NewFilterInput(theme),
		help:      styles.NewStyledHelp(theme),
		keys:      styles.DefaultListKeyMap(),
		ctx:       ctx,
		bookmarks: bookmarks,
		theme:     theme,
		width:     80,
		height:    24,
	}
	m.list = styles.NewPageList(theme, nil, m.width, defaultListHeight)
	return m
}

// bookmarksLoadedMsg is sent when the bookmark entries are loaded.
type bookmarksLoadedMsg struct {
	pages []styles.PageItem
}

func (m BookmarkModel) loadBookmarks() tea.Msg {
	all := m.bookmarks.All(m.ctx)
	pages := make([]styles.PageItem, len(all))
	for i, b := range all {
		pages[i] = styles.PageItem{Title: b.Title, URL: b.URL}
	}

	logging.FromContext(m.ctx).Debug().Int("count", len(pages)).Msg("bookmarks loaded for display")
	return bookmarksLoadedMsg{pages: pages}
}

// Init implements tea.Model.
func (m BookmarkModel) Init() tea.Cmd {
	return m.loadBookmarks
}

// Update implements tea.Model.
func (m BookmarkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildList()
		return m, nil

	case tea.KeyMsg:
		if m.filterMode {
			return m.handleFilterKey(msg)
		}
		return m.handleNormalKey(msg)

	case bookmarksLoadedMsg:
		m.pages = msg.pages
		m.rebuildList()
		return m, nil
	}

	return m, nil
}

func (m BookmarkModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		m.filterText = ""
		m.filter.SetValue("")
		m.filter.Blur()
		m.rebuildList()
		return m, nil
	case "enter":
		m.filterMode = false
		m.filter.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.filterText = m.filter.Value()
		m.rebuildList()
		return m, cmd
	}
}

func (m BookmarkModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		m.filterMode = true
		m.filter.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Open):
		if item, ok := m.list.SelectedItem().(styles.PageItem); ok {
			return m, openURL(m.ctx, item.URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *BookmarkModel) rebuildList() {
	pages := m.pages
	if m.filterText != "" {
		needle := strings.ToLower(m.filterText)
		filtered := make([]styles.PageItem, 0, len(pages))
		for _, p := range pages {
			if strings.Contains(strings.ToLower(p.FilterValue()), needle) {
				filtered = append(filtered, p)
			}
		}
		pages = filtered
	}

	height := m.height - 6
	if height < 5 {
		height = 5
	}
	m.list = styles.NewPageList(m.theme, pages, m.width, height)
}

// View implements tea.Model.
func (m BookmarkModel) View() string {
	t := m.theme

	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Title.Render("Bookmarks"),
		" ",
		t.MutedBadge(plural(len(m.pages), "bookmark")),
	)

	var filterBar string
	switch {
	case m.filterMode:
		filterBar = t.InputFocused.Render(m.filter.View())
	case m.filterText != "":
		filterBar = t.Subtle.Render("Filter: ") + t.AccentBadge(m.filterText)
	default:
		filterBar = t.Subtle.Render("Press / to filter, enter to open")
	}

	var helpView string
	if m.showHelp {
		helpView = m.help.View(m.keys)
	} else {
		helpView = t.Subtle.Render("? for help • q to quit")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		filterBar,
		"",
		m.list.View(),
		"",
		helpView,
	)
}

var _ tea.Model = (*BookmarkModel)(nil)
