package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var sessionJSON bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the last session snapshot",
	Long: `Print the tabs recorded at the end of the last browser run, in the
order they will be restored. Private tabs are part of the snapshot;
their page content was not.`,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)

	sessionCmd.Flags().BoolVar(&sessionJSON, "json", false, "output as JSON")
}

func runSession(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	entries := app.Sessions.Load(app.Ctx())

	if sessionJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	t := app.Theme

	if len(entries) == 0 {
		fmt.Println(t.Subtle.Render("No session snapshot saved."))
		return nil
	}

	lines := make([]string, 0, len(entries)+2)
	lines = append(lines, t.Title.Render("Last session"), "")
	for i, e := range entries {
		label := e.URL
		if label == "" {
			label = t.Subtle.Render("(home page)")
		} else {
			label = t.Normal.Render(label)
		}

		row := fmt.Sprintf("%s %s", t.Subtle.Render(fmt.Sprintf("%2d.", i+1)), label)
		if e.Private {
			row += " " + t.AccentBadge("private")
		}
		lines = append(lines, row)
	}

	fmt.Println(t.Box.Render(strings.Join(lines, "\n")))
	return nil
}
