// Package cmd provides Cobra CLI commands for casement.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zeal1001/casement/internal/cli"
)

var (
	app       *cli.App
	buildInfo cli.BuildInfo
	rootCmd   = &cobra.Command{
		Use:   "casement",
		Short: "A deliberately small desktop web browser",
		Long: `Casement - a small single-window browser built on GTK4 and WebKitGTK.

One window, a handful of tabs, an address bar, bookmarks, and a session
that comes back the way you left it. Private tabs leave no trace, a
built-in cosmetic filter trims the worst of the ad clutter, and the
plain-file stores (history.json, bookmarks.json, session.json) stay
readable with any text editor.

Use 'casement browse' to open the window, or explore the subcommands to
read the stores from the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info cli.BuildInfo) {
	buildInfo = info
}

// browseCmd exists for help output only. main.go intercepts the browse
// invocation before Cobra runs, because the GTK main loop must own the
// process from the start.
var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Launch the graphical browser",
	Long: `Launch the GTK4 graphical browser.

With a URL argument the first tab navigates to it; otherwise the last
session is restored (or the home page shown on a first run).

Examples:
  casement browse                  # Restore session or open home page
  casement browse example.com      # Open browser at URL`,
	Run: func(_ *cobra.Command, _ []string) {
		// Handled by main.go before cobra runs.
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
