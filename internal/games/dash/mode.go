// Package dash implements a rhythm platformer in the style of Geometry Dash.
// A square auto-runs to the right through a level of blocks, spikes, jump
// orbs and jump pads; the player only decides when to jump. The package
// contains the whole simulation (state machine, physics, checkpoints,
// camera, particles, level editor, stats) and its terminal renderer.
package dash

// Mode is the active state of the game state machine.
type Mode int

const (
	ModeMenu Mode = iota
	ModeLevelSelect
	ModePlaying
	ModeGameOver
	ModeVictory
	ModeEditor
)

// String returns the mode name used in logs and snapshots.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeLevelSelect:
		return "level_select"
	case ModePlaying:
		return "playing"
	case ModeGameOver:
		return "game_over"
	case ModeVictory:
		return "victory"
	case ModeEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// InRun reports whether the mode shows a level being played.
func (m Mode) InRun() bool {
	return m == ModePlaying || m == ModeGameOver || m == ModeVictory
}
