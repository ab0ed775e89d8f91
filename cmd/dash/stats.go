package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var flagReset bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress, achievements and recent runs",
	Long: `Display lifetime counters, best progress per level, unlocked
achievements and the most recent runs.

Controls:
  Tab/Right     - Next page
  S-Tab/Left    - Previous page
  Up/Down/j/k   - Scroll
  Q/Esc         - Quit

Examples:
  dash stats
  dash stats --reset
  dash stats --db ./dash.db`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear all stats, progress and achievements")
}

func runStats(_ *cobra.Command, _ []string) {
	logger, logOut, err := newLogger()
	if err != nil {
		fail("%v", err)
	}
	if logOut != nil {
		defer logOut.Close()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening stats database: %v", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.Reset(); err != nil {
			fail("resetting stats: %v", err)
		}
		logger.Info("stats reset", "db", flagDBPath)
		fmt.Println("Stats, progress and achievements cleared.")
		return
	}

	loadUserLevels(logger)
	width, height := terminalSize()
	if err := tui.RunStats(store, width, height); err != nil {
		fail("running stats: %v", err)
	}
}
