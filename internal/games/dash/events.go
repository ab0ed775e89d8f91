package dash

import "github.com/vovakirdan/tui-dash/internal/games/dash/level"

// Sound plays music and one-shot cues. Implementations must not block.
type Sound interface {
	PlayJump()
	PlayDeath()
	StartMusic(bpm int)
	StopMusic()
}

type nopSound struct{}

func (nopSound) PlayJump()      {}
func (nopSound) PlayDeath()     {}
func (nopSound) StartMusic(int) {}
func (nopSound) StopMusic()     {}

// RunInfo describes the run in progress when the mode changes.
type RunInfo struct {
	LevelID  int
	Percent  int
	Practice bool
	Attempt  int
}

// Custom reports whether the run is on the editor's level.
func (r RunInfo) Custom() bool {
	return r.LevelID == level.CustomID
}

// Observer receives reports from the simulation. Calls happen on the
// goroutine driving the game.
type Observer interface {
	// TickReport is called once per playing tick.
	TickReport(jumped, died bool)
	// Progress is called once per playing tick with the completion percent.
	Progress(levelID, percent int)
	// Transition is called after every mode change.
	Transition(from, to Mode, run RunInfo)
	// CustomLevelChanged is called after every editor mutation.
	CustomLevelChanged(objs []level.Object)
}

// NopObserver ignores all reports. Embed it to implement only some methods.
type NopObserver struct{}

func (NopObserver) TickReport(bool, bool)             {}
func (NopObserver) Progress(int, int)                 {}
func (NopObserver) Transition(Mode, Mode, RunInfo)    {}
func (NopObserver) CustomLevelChanged([]level.Object) {}

// Observers fans reports out to several observers in order.
type Observers []Observer

func (os Observers) TickReport(jumped, died bool) {
	for _, o := range os {
		o.TickReport(jumped, died)
	}
}

func (os Observers) Progress(levelID, percent int) {
	for _, o := range os {
		o.Progress(levelID, percent)
	}
}

func (os Observers) Transition(from, to Mode, run RunInfo) {
	for _, o := range os {
		o.Transition(from, to, run)
	}
}

func (os Observers) CustomLevelChanged(objs []level.Object) {
	for _, o := range os {
		o.CustomLevelChanged(objs)
	}
}

// BestSource reports the best recorded percent for a level.
type BestSource interface {
	Best(levelID int) int
}
