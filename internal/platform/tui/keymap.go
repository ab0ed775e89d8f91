package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash"
)

// KeyMap defines the key bindings of the game. A key may trigger several
// actions ("up" is both jump and menu cursor up); the game only reads the
// ones that apply to its current mode.
type KeyMap struct {
	Jump             key.Binding
	Checkpoint       key.Binding
	RemoveCheckpoint key.Binding
	Confirm          key.Binding
	Back             key.Binding
	Restart          key.Binding
	Practice         key.Binding
	Editor           key.Binding
	Test             key.Binding
	Up               key.Binding
	Down             key.Binding
	Left             key.Binding
	Right            key.Binding
	ToolBlock        key.Binding
	ToolSpike        key.Binding
	ToolOrb          key.Binding
	ToolPad          key.Binding
	ToolErase        key.Binding
	Mute             key.Binding
	Export           key.Binding
	Help             key.Binding
	Quit             key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "jump"),
		),
		Checkpoint: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "checkpoint"),
		),
		RemoveCheckpoint: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "undo checkpoint"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Practice: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "practice"),
		),
		Editor: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "editor"),
		),
		Test: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "test level"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "pan left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "pan right"),
		),
		ToolBlock: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "block"),
		),
		ToolSpike: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "spike"),
		),
		ToolOrb: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "orb"),
		),
		ToolPad: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "pad"),
		),
		ToolErase: key.NewBinding(
			key.WithKeys("0", "backspace"),
			key.WithHelp("0", "erase"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Export: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy level"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// actionBindings pairs game actions with their bindings, in a fixed order.
func (k KeyMap) actionBindings() []struct {
	action  core.Action
	binding key.Binding
} {
	return []struct {
		action  core.Action
		binding key.Binding
	}{
		{core.ActionJump, k.Jump},
		{core.ActionCheckpoint, k.Checkpoint},
		{core.ActionRemoveCheckpoint, k.RemoveCheckpoint},
		{core.ActionConfirm, k.Confirm},
		{core.ActionBack, k.Back},
		{core.ActionRestart, k.Restart},
		{core.ActionPractice, k.Practice},
		{core.ActionEditor, k.Editor},
		{core.ActionTest, k.Test},
		{core.ActionUp, k.Up},
		{core.ActionDown, k.Down},
		{core.ActionLeft, k.Left},
		{core.ActionRight, k.Right},
		{core.ActionToolBlock, k.ToolBlock},
		{core.ActionToolSpike, k.ToolSpike},
		{core.ActionToolOrb, k.ToolOrb},
		{core.ActionToolPad, k.ToolPad},
		{core.ActionToolErase, k.ToolErase},
		{core.ActionMute, k.Mute},
		{core.ActionExport, k.Export},
		{core.ActionQuit, k.Quit},
	}
}

// MapKey returns every action bound to the key.
func (k KeyMap) MapKey(msg tea.KeyMsg) []core.Action {
	var actions []core.Action
	for _, ab := range k.actionBindings() {
		if key.Matches(msg, ab.binding) {
			actions = append(actions, ab.action)
		}
	}
	return actions
}

// ForMode returns the bindings worth showing in the help bar for a mode.
func (k KeyMap) ForMode(m dash.Mode) []key.Binding {
	switch m {
	case dash.ModeMenu:
		return []key.Binding{k.Confirm, k.Editor, k.Mute, k.Quit}
	case dash.ModeLevelSelect:
		return []key.Binding{k.Up, k.Down, k.Confirm, k.Practice, k.Back}
	case dash.ModePlaying, dash.ModeGameOver:
		return []key.Binding{k.Jump, k.Checkpoint, k.RemoveCheckpoint, k.Back, k.Mute}
	case dash.ModeVictory:
		return []key.Binding{k.Restart, k.Confirm, k.Back}
	case dash.ModeEditor:
		return []key.Binding{k.ToolBlock, k.ToolSpike, k.ToolOrb, k.ToolPad, k.ToolErase, k.Test, k.Export, k.Back}
	default:
		return []key.Binding{k.Help, k.Quit}
	}
}

// modeHelp adapts a mode's bindings to help.KeyMap.
type modeHelp struct {
	keys KeyMap
	mode dash.Mode
}

func (h modeHelp) ShortHelp() []key.Binding {
	return append(h.keys.ForMode(h.mode), h.keys.Help)
}

func (h modeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		h.keys.ForMode(h.mode),
		{h.keys.Left, h.keys.Right, h.keys.Mute, h.keys.Help, h.keys.Quit},
	}
}
