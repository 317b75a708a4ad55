package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Zeal1001/casement/internal/cli/model"
)

var bookmarksJSON bool

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Browse saved pages",
	Long:  `Interactive browser for the bookmark list.`,
	RunE:  runBookmarks,
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)

	bookmarksCmd.Flags().BoolVar(&bookmarksJSON, "json", false, "output as JSON")
}

func runBookmarks(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if bookmarksJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(app.Bookmarks.All(app.Ctx()))
	}

	m := model.NewBookmarkModel(app.Ctx(), app.Theme, app.Bookmarks)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
