package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone             Action = iota
	ActionJump                    // Space, W, Up, left mouse - jump / orb (held)
	ActionCheckpoint              // Z - place a practice checkpoint
	ActionRemoveCheckpoint        // X - remove the newest checkpoint
	ActionConfirm                 // Enter - confirm selection in menus
	ActionBack                    // Esc, B - go back
	ActionRestart                 // R - retry after victory
	ActionQuit                    // Q, Ctrl+C - exit
	ActionPractice                // P - start the selected level in practice mode
	ActionEditor                  // E - open the editor from the main menu
	ActionTest                    // T - test-play the custom level from the editor
	ActionUp                      // Up, K - menu cursor up
	ActionDown                    // Down, J - menu cursor down
	ActionLeft                    // Left, H - editor pan left
	ActionRight                   // Right, L - editor pan right
	ActionToolBlock               // 1 - editor block tool
	ActionToolSpike               // 2 - editor spike tool
	ActionToolOrb                 // 3 - editor orb tool
	ActionToolPad                 // 4 - editor pad tool
	ActionToolErase               // 0, Backspace - editor erase tool
	ActionMute                    // M - toggle audio
	ActionExport                  // C - copy the custom level to the clipboard
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionCheckpoint:
		return "Checkpoint"
	case ActionRemoveCheckpoint:
		return "RemoveCheckpoint"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPractice:
		return "Practice"
	case ActionEditor:
		return "Editor"
	case ActionTest:
		return "Test"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionToolBlock:
		return "ToolBlock"
	case ActionToolSpike:
		return "ToolSpike"
	case ActionToolOrb:
		return "ToolOrb"
	case ActionToolPad:
		return "ToolPad"
	case ActionToolErase:
		return "ToolErase"
	case ActionMute:
		return "Mute"
	case ActionExport:
		return "Export"
	default:
		return "Unknown"
	}
}

// PointerButton identifies which pointer button an event refers to.
type PointerButton int

const (
	PointerNone PointerButton = iota
	PointerPrimary
	PointerSecondary
	PointerMiddle
)

// PointerKind is the type of a pointer event.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerRelease
	PointerMotion
)

// PointerEvent is a mouse event in screen cell coordinates.
type PointerEvent struct {
	Col, Row int
	Button   PointerButton
	Kind     PointerKind
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Held contains actions that are currently held down. Unlike Actions it
	// persists across ticks until the platform releases it.
	Held map[Action]bool

	// Pointer contains mouse events received since the previous frame, in order.
	Pointer []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Hold marks an action as held (or releases it).
func (f *InputFrame) Hold(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
	} else {
		delete(f.Held, a)
	}
}

// IsHeld returns true if the action is held down.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// AddPointer appends a pointer event to the frame.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// Clear resets triggered actions and pointer events for the next frame.
// Held actions are kept.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

// HeldOnly returns a frame carrying only the held actions.
// Used for the extra simulation steps of a frame, so one-shot actions
// and pointer events apply exactly once.
func (f InputFrame) HeldOnly() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := f.HeldOnly()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = append([]PointerEvent(nil), f.Pointer...)
	return clone
}
