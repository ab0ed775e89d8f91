package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dash/internal/core"
)

// holdTracker emulates a held jump key. Terminals report key presses and
// auto-repeats but no releases, so a press counts as held for a number of
// ticks and every repeat extends it. The mouse reports real releases.
type holdTracker struct {
	ticks     int
	remaining int
	mouse     bool
}

func newHoldTracker(ticks int) *holdTracker {
	if ticks <= 0 {
		ticks = 1
	}
	return &holdTracker{ticks: ticks}
}

// press starts or extends a key hold.
func (h *holdTracker) press() {
	h.remaining = h.ticks
}

// setMouse records the primary mouse button state.
func (h *holdTracker) setMouse(down bool) {
	h.mouse = down
}

// held reports whether jump is held this tick.
func (h *holdTracker) held() bool {
	return h.remaining > 0 || h.mouse
}

// tick consumes one tick of the key hold.
func (h *holdTracker) tick() {
	if h.remaining > 0 {
		h.remaining--
	}
}

// release drops every hold, used when the game leaves a run.
func (h *holdTracker) release() {
	h.remaining = 0
	h.mouse = false
}

// pointerButton maps a Bubble Tea mouse button.
func pointerButton(b tea.MouseButton) core.PointerButton {
	switch b {
	case tea.MouseButtonLeft:
		return core.PointerPrimary
	case tea.MouseButtonRight:
		return core.PointerSecondary
	case tea.MouseButtonMiddle:
		return core.PointerMiddle
	default:
		return core.PointerNone
	}
}

// pointerEvent converts a mouse message. Wheel events are not pointer
// events and report ok == false.
func pointerEvent(msg tea.MouseMsg) (core.PointerEvent, bool) {
	ev := core.PointerEvent{Col: msg.X, Row: msg.Y, Button: pointerButton(msg.Button)}
	switch msg.Action {
	case tea.MouseActionPress:
		if ev.Button == core.PointerNone {
			return ev, false
		}
		ev.Kind = core.PointerPress
	case tea.MouseActionRelease:
		ev.Kind = core.PointerRelease
	case tea.MouseActionMotion:
		ev.Kind = core.PointerMotion
	default:
		return ev, false
	}
	return ev, true
}
