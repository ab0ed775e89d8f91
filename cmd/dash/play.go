package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/registry"
)

var flagPractice bool

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Play a level",
	Long: `Start playing the specified level.

Controls:
  Space/Up/W/Click  - Jump (hold to keep jumping)
  Z                 - Place checkpoint (practice)
  X                 - Remove last checkpoint (practice)
  R                 - Restart
  Esc/B             - Back to level select
  M                 - Mute
  Q/Ctrl+C          - Quit

Examples:
  dash play 1
  dash play 2 --practice
  dash play 3 --config ./my-dash.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Start in practice mode with checkpoints")
}

func runPlay(cmd *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fail("level id must be a number, got %q", args[0])
	}

	s, err := openSession()
	if err != nil {
		fail("%v", err)
	}

	// User levels are registered by the session, check after opening it
	if !registry.Exists(id) {
		s.Close()
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'dash list' to see available levels.")
		os.Exit(1)
	}

	runSession(s, tui.StartPlay, id, flagPractice)
}
