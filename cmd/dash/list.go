package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/registry"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long: `Shows the shipped levels and any level files found in ~/.dash/levels,
with your best progress on each.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	logger, logOut, err := newLogger()
	if err != nil {
		fail("%v", err)
	}
	if logOut != nil {
		defer logOut.Close()
	}
	loadUserLevels(logger)

	levels := registry.List()
	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	var progress map[int]int
	if store, err := storage.Open(flagDBPath); err == nil {
		progress, _ = store.Progress()
		store.Close()
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, l := range levels {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	// Print header
	fmt.Printf("  %-4s  %-*s  %-10s  %-4s  %s\n", "ID", maxNameLen, "Name", "Difficulty", "BPM", "Best")
	fmt.Printf("  %-4s  %-*s  %-10s  %-4s  %s\n", "--", maxNameLen, "----", "----------", "---", "----")

	// Print levels
	for _, l := range levels {
		best := "-"
		if p, ok := progress[l.ID]; ok {
			best = fmt.Sprintf("%d%%", p)
		}
		fmt.Printf("  %-4d  %-*s  %-10s  %-4d  %s\n", l.ID, maxNameLen, l.Name, l.Difficulty.Label(), l.BPM, best)
	}

	fmt.Println()
	fmt.Println("Run 'dash play <id>' to play a level.")
}
