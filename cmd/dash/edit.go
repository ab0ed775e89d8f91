package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the level editor",
	Long: `Open the level editor on your custom level.

The level is saved after every change and restored on the next start.

Controls:
  Click             - Place the selected object (replaces what is there)
  Right/middle drag - Pan the view
  Left/Right/h/l    - Scroll
  1/2/3/4/0         - Block, spike, orb, pad, erase
  T                 - Test the level
  C                 - Copy the level YAML to the clipboard
  Esc/B             - Back to the menu

Examples:
  dash edit
  dash edit --db ./dash.db`,
	Run: runEdit,
}

func runEdit(_ *cobra.Command, _ []string) {
	s, err := openSession()
	if err != nil {
		fail("%v", err)
	}
	if s.store == nil {
		s.logger.Warn("editor changes will not be saved")
	}
	runSession(s, tui.StartEditor, 0, false)
}
