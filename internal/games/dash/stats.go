package dash

import (
	"sort"
	"time"
)

// GameStats are the lifetime counters.
type GameStats struct {
	TotalJumps    int
	TotalDeaths   int
	TotalAttempts int
	LevelProgress map[int]int // Best percent per level id
}

// Achievement is an unlockable goal.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Done        func(GameStats) bool
}

// Achievements is the list of all achievements in display order.
var Achievements = []Achievement{
	{
		ID:          "first_jump",
		Title:       "Hop to It",
		Description: "Jump 10 times.",
		Done:        func(s GameStats) bool { return s.TotalJumps >= 10 },
	},
	{
		ID:          "dedication",
		Title:       "Dedication",
		Description: "Die 50 times. Keep trying!",
		Done:        func(s GameStats) bool { return s.TotalDeaths >= 50 },
	},
	{
		ID:          "air_master",
		Title:       "Air Master",
		Description: "Jump 500 times total.",
		Done:        func(s GameStats) bool { return s.TotalJumps >= 500 },
	},
	{
		ID:          "getting_started",
		Title:       "Stereo Madness",
		Description: "Complete Level 1.",
		Done:        func(s GameStats) bool { return s.LevelProgress[1] >= 100 },
	},
	{
		ID:          "survivor",
		Title:       "Survivor",
		Description: "Reach 100 attempts total.",
		Done:        func(s GameStats) bool { return s.TotalAttempts >= 100 },
	},
}

// StatsStore persists stats. storage.Store implements it.
type StatsStore interface {
	Counters() (jumps, deaths, attempts int, err error)
	SaveCounters(jumps, deaths, attempts int) error
	Progress() (map[int]int, error)
	SaveProgress(levelID, percent int) error
	Achievements() (map[string]time.Time, error)
	UnlockAchievement(id string, at time.Time) error
	RecordRun(levelID, percent int, victory bool, at time.Time) error
}

// Unlocked is an achievement with its unlock time.
type Unlocked struct {
	Achievement
	At time.Time
}

// StatsTracker counts jumps, deaths and attempts, keeps the best percent
// per level and unlocks achievements. It implements Observer. Persistence
// is best effort: a failing store never interrupts play.
type StatsTracker struct {
	NopObserver

	stats    GameStats
	unlocked map[string]time.Time
	store    StatsStore
	dirty    bool

	toast      *Achievement
	toastUntil time.Time
	toastFor   time.Duration

	// Now returns the current time. Replaced in tests.
	Now func() time.Time
}

// NewStatsTracker creates a tracker and loads saved stats from store,
// which may be nil.
func NewStatsTracker(store StatsStore, toastFor time.Duration) *StatsTracker {
	t := &StatsTracker{
		stats:    GameStats{LevelProgress: make(map[int]int)},
		unlocked: make(map[string]time.Time),
		store:    store,
		toastFor: toastFor,
		Now:      time.Now,
	}
	if store == nil {
		return t
	}

	if j, d, a, err := store.Counters(); err == nil {
		t.stats.TotalJumps, t.stats.TotalDeaths, t.stats.TotalAttempts = j, d, a
	}
	if p, err := store.Progress(); err == nil {
		for id, pct := range p {
			t.stats.LevelProgress[id] = pct
		}
	}
	if u, err := store.Achievements(); err == nil {
		for id, at := range u {
			t.unlocked[id] = at
		}
	}
	return t
}

// TickReport counts a jump and/or a death.
func (t *StatsTracker) TickReport(jumped, died bool) {
	if !jumped && !died {
		return
	}
	if jumped {
		t.stats.TotalJumps++
	}
	if died {
		t.stats.TotalDeaths++
		t.stats.TotalAttempts++
	}
	t.dirty = true
	t.check()
}

// Transition records the best percent when a run ends and flushes the
// counters. Practice runs and the custom level are not recorded.
func (t *StatsTracker) Transition(_, to Mode, run RunInfo) {
	if to == ModeGameOver || to == ModeVictory {
		pct := run.Percent
		if to == ModeVictory {
			pct = 100
		}
		if !run.Custom() && !run.Practice {
			if t.store != nil {
				t.store.RecordRun(run.LevelID, pct, to == ModeVictory, t.Now()) //nolint:errcheck
			}
			if pct > t.stats.LevelProgress[run.LevelID] {
				t.stats.LevelProgress[run.LevelID] = pct
				if t.store != nil {
					t.store.SaveProgress(run.LevelID, pct) //nolint:errcheck
				}
			}
			t.check()
		}
	}
	t.Flush()
}

// Flush saves the counters if they changed.
func (t *StatsTracker) Flush() {
	if !t.dirty || t.store == nil {
		return
	}
	err := t.store.SaveCounters(t.stats.TotalJumps, t.stats.TotalDeaths, t.stats.TotalAttempts)
	if err == nil {
		t.dirty = false
	}
}

func (t *StatsTracker) check() {
	for i := range Achievements {
		a := &Achievements[i]
		if _, ok := t.unlocked[a.ID]; ok || !a.Done(t.stats) {
			continue
		}
		now := t.Now()
		t.unlocked[a.ID] = now
		t.toast = a
		t.toastUntil = now.Add(t.toastFor)
		if t.store != nil {
			t.store.UnlockAchievement(a.ID, now) //nolint:errcheck
		}
	}
}

// Stats returns a copy of the counters.
func (t *StatsTracker) Stats() GameStats {
	s := t.stats
	s.LevelProgress = make(map[int]int, len(t.stats.LevelProgress))
	for id, pct := range t.stats.LevelProgress {
		s.LevelProgress[id] = pct
	}
	return s
}

// Best returns the best percent for a level.
func (t *StatsTracker) Best(levelID int) int {
	return t.stats.LevelProgress[levelID]
}

// IsUnlocked reports whether an achievement has been unlocked.
func (t *StatsTracker) IsUnlocked(id string) bool {
	_, ok := t.unlocked[id]
	return ok
}

// Unlocked returns the unlocked achievements, oldest first.
func (t *StatsTracker) Unlocked() []Unlocked {
	var out []Unlocked
	for _, a := range Achievements {
		if at, ok := t.unlocked[a.ID]; ok {
			out = append(out, Unlocked{Achievement: a, At: at})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.Before(out[j].At)
	})
	return out
}

// Toast returns the most recent unlock while its toast is showing.
func (t *StatsTracker) Toast() (Achievement, bool) {
	if t.toast == nil || !t.Now().Before(t.toastUntil) {
		return Achievement{}, false
	}
	return *t.toast, true
}
