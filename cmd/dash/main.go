// dash is a rhythm platformer for the terminal.
//
// Usage:
//
//	dash                   - Start at the main menu
//	dash play <id>         - Play a level directly
//	dash edit              - Open the level editor
//	dash list              - List available levels
//	dash stats             - Show progress, achievements and recent runs
//	dash serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible effects
//	--db <path>          - Set database path (default: ~/.dash/dash.db)
//	--config <path>      - Load game tuning from a YAML file
//	--mute               - Start with sound off
//	--particles <value>  - Override particle density (0 disables)
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the shipped levels
	_ "github.com/vovakirdan/tui-dash/internal/games/dash/level/builtin"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagMute      bool
	flagParticles float64
	flagLogFile   string
	flagDebug     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "TUI Dash - a rhythm platformer in your terminal",
	Long: `TUI Dash is a side-scrolling rhythm platformer. Jump over spikes,
bounce off pads and orbs, and reach the end of each level.

Available commands:
  menu     - Main menu (default)
  play     - Play a specific level directly
  edit     - Build your own level
  list     - Show all available levels
  stats    - View progress, achievements and run history
  serve    - Start SSH server for remote play

Examples:
  dash
  dash play 1
  dash play 3 --practice
  dash edit
  dash serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dash/dash.db", "Path to stats database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	rootCmd.PersistentFlags().Float64Var(&flagParticles, "particles", -1, "Particle density (negative = use config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
