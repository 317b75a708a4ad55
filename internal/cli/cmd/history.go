package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Zeal1001/casement/internal/cli/model"
)

var (
	historyJSON bool
	historyMax  int
)

const defaultHistoryMax = 50

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse visited pages",
	Long:  `Interactive browser for the visited-URL list, newest first.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show (for --json)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if historyJSON {
		return runHistoryJSON()
	}

	m := model.NewHistoryModel(app.Ctx(), app.Theme, app.History)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// runHistoryJSON prints the newest entries without entering the TUI.
func runHistoryJSON() error {
	app := GetApp()

	urls := app.History.All(app.Ctx())

	// Newest first, capped.
	out := make([]string, 0, len(urls))
	for i := len(urls) - 1; i >= 0 && len(out) < historyMax; i-- {
		out = append(out, urls[i])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
