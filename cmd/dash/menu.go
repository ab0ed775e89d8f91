package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start at the main menu",
	Long: `Start the game at the main menu.

Use arrow keys or j/k to navigate, Enter to select.
From the menu you can pick a level, open the editor or toggle practice.

Controls:
  Up/Down/j/k  - Navigate
  Enter        - Select
  P            - Practice mode
  E            - Editor
  M            - Mute
  Q            - Quit

Examples:
  dash menu
  dash menu --fps 30
  dash menu --db ./dash.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	s, err := openSession()
	if err != nil {
		fail("%v", err)
	}
	runSession(s, tui.StartMenu, 0, false)
}

// runSession runs the game until it quits, then closes the session.
func runSession(s *session, start tui.StartMode, levelID int, practice bool) {
	opts := s.options(start)
	opts.LevelID = levelID
	opts.Practice = practice

	runErr := tui.Run(opts)
	s.Close()

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
