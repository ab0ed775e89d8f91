package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dash/internal/games/dash"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

func TestStatsTabs(t *testing.T) {
	m := NewStatsModel(nil, 100, 30)
	assert.Equal(t, tabLevels, m.tab)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(StatsModel)
	assert.Equal(t, tabAchievements, m.tab)
	assert.Len(t, m.table.Rows(), len(dash.Achievements))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(StatsModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(StatsModel)
	assert.Equal(t, tabRuns, m.tab, "previous page wraps around")
	assert.Contains(t, m.View(), "Nothing recorded yet")
}

func TestStatsFromStore(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/dash.db")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.SaveCounters(42, 3, 5))
	require.NoError(t, store.UnlockAchievement("first_jump", time.Now()))
	require.NoError(t, store.RecordRun(1, 37, false, time.Now()))
	require.NoError(t, store.RecordRun(1, 100, true, time.Now()))

	m := NewStatsModel(store, 100, 30)
	assert.Contains(t, m.View(), "jumps 42")

	m.tab = tabRuns
	m.table = m.createTable()
	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "complete", rows[0][1])
	assert.Equal(t, "37%", rows[1][1])

	m.tab = tabAchievements
	m.table = m.createTable()
	for _, row := range m.table.Rows() {
		if row[1] == dash.Achievements[0].Title {
			assert.Equal(t, "★", row[0])
		}
	}
}

func TestStatsQuit(t *testing.T) {
	m := NewStatsModel(nil, 80, 24)
	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Empty(t, next.(StatsModel).View())
}
