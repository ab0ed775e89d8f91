package dash

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
)

type memStore struct {
	jumps, deaths, attempts int
	progress                map[int]int
	achievements            map[string]time.Time
	runs                    int
	fail                    bool
}

func newMemStore() *memStore {
	return &memStore{
		progress:     make(map[int]int),
		achievements: make(map[string]time.Time),
	}
}

var errStore = errors.New("store unavailable")

func (m *memStore) Counters() (int, int, int, error) {
	return m.jumps, m.deaths, m.attempts, nil
}

func (m *memStore) SaveCounters(j, d, a int) error {
	if m.fail {
		return errStore
	}
	m.jumps, m.deaths, m.attempts = j, d, a
	return nil
}

func (m *memStore) Progress() (map[int]int, error) { return m.progress, nil }

func (m *memStore) SaveProgress(id, pct int) error {
	m.progress[id] = pct
	return nil
}

func (m *memStore) Achievements() (map[string]time.Time, error) { return m.achievements, nil }

func (m *memStore) UnlockAchievement(id string, at time.Time) error {
	m.achievements[id] = at
	return nil
}

func (m *memStore) RecordRun(int, int, bool, time.Time) error {
	m.runs++
	return nil
}

func fixedClock(t0 time.Time) (func() time.Time, func(time.Duration)) {
	now := t0
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestStatsCounters(t *testing.T) {
	tr := NewStatsTracker(nil, 3*time.Second)

	tr.TickReport(true, false)
	tr.TickReport(false, true)
	tr.TickReport(false, false)

	s := tr.Stats()
	assert.Equal(t, 1, s.TotalJumps)
	assert.Equal(t, 1, s.TotalDeaths)
	assert.Equal(t, 1, s.TotalAttempts, "a death counts as an attempt")
}

func TestAchievementUnlockAndToast(t *testing.T) {
	store := newMemStore()
	tr := NewStatsTracker(store, 3*time.Second)
	now, advance := fixedClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	tr.Now = now

	for i := 0; i < 9; i++ {
		tr.TickReport(true, false)
	}
	assert.False(t, tr.IsUnlocked("first_jump"))
	_, showing := tr.Toast()
	assert.False(t, showing)

	tr.TickReport(true, false)
	assert.True(t, tr.IsUnlocked("first_jump"))
	a, showing := tr.Toast()
	require.True(t, showing)
	assert.Equal(t, "Hop to It", a.Title)
	assert.Contains(t, store.achievements, "first_jump")

	advance(3 * time.Second)
	_, showing = tr.Toast()
	assert.False(t, showing, "toast hides after 3s")
}

func TestAchievementThresholds(t *testing.T) {
	tests := []struct {
		id    string
		stats GameStats
		done  bool
	}{
		{"first_jump", GameStats{TotalJumps: 10}, true},
		{"dedication", GameStats{TotalDeaths: 49}, false},
		{"dedication", GameStats{TotalDeaths: 50}, true},
		{"air_master", GameStats{TotalJumps: 500}, true},
		{"getting_started", GameStats{LevelProgress: map[int]int{1: 99}}, false},
		{"getting_started", GameStats{LevelProgress: map[int]int{1: 100}}, true},
		{"survivor", GameStats{TotalAttempts: 100}, true},
	}
	for _, tc := range tests {
		var found bool
		for _, a := range Achievements {
			if a.ID == tc.id {
				found = true
				assert.Equal(t, tc.done, a.Done(tc.stats), "%s %+v", tc.id, tc.stats)
			}
		}
		assert.True(t, found, tc.id)
	}
}

func TestBestProgress(t *testing.T) {
	store := newMemStore()
	tr := NewStatsTracker(store, time.Second)

	tr.Transition(ModePlaying, ModeGameOver, RunInfo{LevelID: 1, Percent: 40})
	tr.Transition(ModePlaying, ModeGameOver, RunInfo{LevelID: 1, Percent: 20})
	assert.Equal(t, 40, tr.Best(1), "lower percent does not replace the best")

	tr.Transition(ModePlaying, ModeGameOver, RunInfo{LevelID: 2, Percent: 90, Practice: true})
	assert.Equal(t, 0, tr.Best(2), "practice runs are not recorded")

	tr.Transition(ModePlaying, ModeVictory, RunInfo{LevelID: level.CustomID, Percent: 100})
	assert.Equal(t, 0, tr.Best(level.CustomID), "custom level is not recorded")

	tr.Transition(ModePlaying, ModeVictory, RunInfo{LevelID: 1, Percent: 97})
	assert.Equal(t, 100, tr.Best(1), "victory counts as 100")
	assert.True(t, tr.IsUnlocked("getting_started"))

	assert.Equal(t, 100, store.progress[1])
	assert.Equal(t, 3, store.runs)
}

func TestStatsLoadAndFlush(t *testing.T) {
	store := newMemStore()
	store.jumps, store.deaths, store.attempts = 5, 6, 7
	store.progress[3] = 55
	store.achievements["dedication"] = time.Unix(100, 0)

	tr := NewStatsTracker(store, time.Second)
	assert.Equal(t, GameStats{
		TotalJumps:    5,
		TotalDeaths:   6,
		TotalAttempts: 7,
		LevelProgress: map[int]int{3: 55},
	}, tr.Stats())
	require.Len(t, tr.Unlocked(), 1)
	assert.Equal(t, "Dedication", tr.Unlocked()[0].Title)

	tr.TickReport(true, true)
	store.fail = true
	tr.Flush()
	assert.Equal(t, 5, store.jumps, "failed save keeps old values")

	store.fail = false
	tr.Transition(ModePlaying, ModeMenu, RunInfo{})
	assert.Equal(t, 6, store.jumps)
	assert.Equal(t, 7, store.deaths)
	assert.Equal(t, 8, store.attempts)
}

func TestTrackerAsGameObserver(t *testing.T) {
	tr := NewStatsTracker(nil, time.Second)
	g, _, _ := newTestGame(WithObserver(tr), WithBests(tr))
	g.StartLevel(flatLevel(5000, level.Object{ID: 1, Type: level.EntitySpike, X: 300}), false)

	g.Step(jumpFrame())
	for i := 0; i < 100 && g.Mode() == ModePlaying; i++ {
		g.Step(empty())
	}
	s := tr.Stats()
	assert.Equal(t, 1, s.TotalJumps)
	assert.Equal(t, 1, s.TotalDeaths)
	assert.Positive(t, tr.Best(7))
}
