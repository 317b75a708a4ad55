package styles

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cursorSelected = "> "
	cursorEmpty    = "  "

	maxRowWidth    = 76
	ellipsisLength = 3
)

// truncate shortens s to max characters with a trailing ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-ellipsisLength] + "..."
}

// URLItem is a single-line list entry holding just an address.
type URLItem struct {
	URL string
}

// FilterValue implements list.Item.
func (i URLItem) FilterValue() string {
	return i.URL
}

// URLDelegate renders one URL per row.
type URLDelegate struct {
	Theme *Theme
}

// Height returns the height of each item.
func (d URLDelegate) Height() int { return 1 }

// Spacing returns the spacing between items.
func (d URLDelegate) Spacing() int { return 0 }

// Update handles item-level events.
func (d URLDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single list item.
func (d URLDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ui, ok := item.(URLItem)
	if !ok {
		return
	}

	t := d.Theme
	isSelected := index == m.Index()

	cursor := cursorEmpty
	style := t.ListItemTitle
	if isSelected {
		cursor = cursorSelected
		style = style.Foreground(t.Accent).Bold(true)
	}

	line := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Highlight.Render(cursor),
		style.Render(truncate(ui.URL, maxRowWidth)),
	)
	_, _ = fmt.Fprint(w, line)
}

// NewURLList creates a themed single-line list for URLs.
func NewURLList(theme *Theme, urls []string, width, height int) list.Model {
	items := make([]list.Item, len(urls))
	for i, u := range urls {
		items[i] = URLItem{URL: u}
	}
	return newList(theme, items, URLDelegate{Theme: theme}, width, height)
}

// PageItem is a two-line list entry: page title over its address.
type PageItem struct {
	Title string
	URL   string
}

// FilterValue implements list.Item.
func (i PageItem) FilterValue() string {
	return i.Title + " " + i.URL
}

// PageDelegate renders title/URL pairs.
type PageDelegate struct {
	Theme *Theme
}

// Height returns the height of each item.
func (d PageDelegate) Height() int { return 2 }

// Spacing returns the spacing between items.
func (d PageDelegate) Spacing() int { return 0 }

// Update handles item-level events.
func (d PageDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single list item.
func (d PageDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(PageItem)
	if !ok {
		return
	}

	t := d.Theme
	isSelected := index == m.Index()

	cursor := cursorEmpty
	titleStyle := t.ListItemTitle
	urlStyle := t.ListItemDesc
	if isSelected {
		cursor = cursorSelected
		titleStyle = titleStyle.Foreground(t.Accent).Bold(true)
		urlStyle = urlStyle.Foreground(t.Text)
	}

	title := pi.Title
	if title == "" {
		title = pi.URL
	}

	line1 := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Highlight.Render(cursor),
		titleStyle.Render(truncate(title, maxRowWidth)),
	)
	line2 := lipgloss.JoinHorizontal(
		lipgloss.Left,
		cursorEmpty,
		urlStyle.Render(truncate(pi.URL, maxRowWidth)),
	)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewPageList creates a themed two-line list for title/URL pairs.
func NewPageList(theme *Theme, pages []PageItem, width, height int) list.Model {
	items := make([]list.Item, len(pages))
	for i, p := range pages {
		items[i] = p
	}
	return newList(theme, items, PageDelegate{Theme: theme}, width, height)
}

func newList(theme *Theme, items []list.Item, delegate list.ItemDelegate, width, height int) list.Model {
	l := list.New(items, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)

	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	l.Styles.ActivePaginationDot = lipgloss.NewStyle().Foreground(theme.Accent)
	l.Styles.InactivePaginationDot = lipgloss.NewStyle().Foreground(theme.Muted)

	return l
}
