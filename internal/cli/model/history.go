// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"os/exec"
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

const defaultListHeight = 16

// HistoryModel is the Bubble Tea model for the history browser.
type HistoryModel struct {
	list   list.Model
	filter textinput.Model
	help   help.Model
	keys   styles.ListKeyMap

	urls       []string // newest first
	filterText string
	filterMode bool
	showHelp   bool
	width      int
	height     int

	ctx     context.Context
	history repository.HistoryRepository
	theme   *styles.Theme
}

// NewHistoryModel creates the history browser model.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, history repository.HistoryRepository) HistoryModel {
	m := HistoryModel{
		filter:  styles.NewFilterInput(theme),
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultListKeyMap(),
		ctx:     ctx,
		history: history,
		theme:   theme,
		width:   80,
		height:  24,
	}
	m.list = styles.NewURLList(theme, nil, m.width, defaultListHeight)
	return m
}

// historyLoadedMsg is sent when the history entries are loaded.
type historyLoadedMsg struct {
	urls []string
}

// loadHistory reads the warmed store, newest entry first.
func (m HistoryModel) loadHistory() tea.Msg {
	urls := m.history.All(m.ctx)
	reverseInPlace(urls)

	logging.FromContext(m.ctx).Debug().Int("count", len(urls)).Msg("history loaded for display")
	return historyLoadedMsg{urls: urls}
}

// reverseInPlace flips the store's oldest-first order for display.
func reverseInPlace(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return m.loadHistory
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	case historyLoadedMsg:
		m.urls = msg.urls
		m.rebuildList()
		return m, nil
	}

	return m, nil
}

func (m HistoryModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (m HistoryModel) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
		if item, ok := m.list.SelectedItem().(styles.URLItem); ok {
			return m, openURL(m.ctx, item.URL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// rebuildList applies the current filter and resizes the list.
func (m *HistoryModel) rebuildList() {
	urls := m.urls
	if m.filterText != "" {
		needle := strings.ToLower(m.filterText)
		filtered := make([]string, 0, len(urls))
		for _, u := range urls {
			if strings.Contains(strings.ToLower(u), needle) {
				filtered = append(filtered, u)
			}
		}
		urls = filtered
	}

	height := m.height - 6 // header, filter bar, help
	if height < 5 {
		height = 5
	}
	m.list = styles.NewURLList(m.theme, urls, m.width, height)
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	t := m.theme

	header := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Title.Render("History"),
		" ",
		t.MutedBadge(plural(len(m.urls), "page")),
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

// openURL hands a URL to the desktop's default browser.
func openURL(ctx context.Context, url string) tea.Cmd {
	return func() tea.Msg {
		logging.FromContext(ctx).Debug().Str("url", url).Msg("opening url via xdg-open")
		_ = exec.Command("xdg-open", url).Start()
		return nil
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

var _ tea.Model = (*HistoryModel)(nil)
