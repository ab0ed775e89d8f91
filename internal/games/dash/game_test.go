package dash

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
	"github.com/vovakirdan/tui-dash/internal/registry"
)

type fakeSound struct {
	jumps, deaths int
	starts, stops int
	lastBPM       int
}

func (s *fakeSound) PlayJump()  { s.jumps++ }
func (s *fakeSound) PlayDeath() { s.deaths++ }
func (s *fakeSound) StartMusic(bpm int) {
	s.starts++
	s.lastBPM = bpm
}
func (s *fakeSound) StopMusic() { s.stops++ }

type recorder struct {
	jumped, died int
	percent      int
	modes        []Mode
	runs         []RunInfo
	custom       [][]level.Object
}

func (r *recorder) TickReport(jumped, died bool) {
	if jumped {
		r.jumped++
	}
	if died {
		r.died++
	}
}

func (r *recorder) Progress(_, percent int) { r.percent = percent }

func (r *recorder) Transition(_, to Mode, run RunInfo) {
	r.modes = append(r.modes, to)
	r.runs = append(r.runs, run)
}

func (r *recorder) CustomLevelChanged(objs []level.Object) {
	r.custom = append(r.custom, objs)
}

func (r *recorder) count(m Mode) int {
	n := 0
	for _, got := range r.modes {
		if got == m {
			n++
		}
	}
	return n
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func newTestGame(opts ...Option) (*Game, *fakeSound, *recorder) {
	snd := &fakeSound{}
	rec := &recorder{}
	opts = append([]Option{WithSound(snd), WithObserver(rec), WithLevels(nil)}, opts...)
	return New(config.DefaultDashConfig(), testRuntime(), opts...), snd, rec
}

func flatLevel(length float64, objs ...level.Object) level.Level {
	return level.Level{
		ID:         7,
		Name:       "Flat",
		Difficulty: config.DifficultyEasy,
		BPM:        120,
		Length:     length,
		Objects:    objs,
	}
}

func empty() core.InputFrame {
	return core.NewInputFrame()
}

func action(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func jumpFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	in.Hold(core.ActionJump, true)
	return in
}

func TestNewStartsInMenuWithMusic(t *testing.T) {
	g, snd, _ := newTestGame()

	assert.Equal(t, ModeMenu, g.Mode())
	assert.Equal(t, 1, snd.starts)
	assert.Equal(t, 155, snd.lastBPM)
}

func TestGroundedRunStaysOnFloor(t *testing.T) {
	g, _, _ := newTestGame()
	g.StartLevel(flatLevel(5000), false)

	for i := 0; i < 60; i++ {
		g.Step(empty())
		p := g.Player()
		require.Equal(t, 0.0, p.Y)
		require.Equal(t, 0.0, p.DY)
		require.True(t, p.Grounded)
	}
	assert.InDelta(t, 420.0, g.Player().X, 1e-9)
}

func TestScoreAndVictoryOnce(t *testing.T) {
	g, _, rec := newTestGame()
	g.StartLevel(flatLevel(1000), false)

	for i := 0; i < 36; i++ {
		g.Step(empty())
	}
	assert.Equal(t, 25, g.Percent(), "x=252 of 1000")
	assert.Equal(t, 25, rec.percent)

	for i := 0; i < 200 && g.Mode() == ModePlaying; i++ {
		g.Step(empty())
	}
	require.Equal(t, ModeVictory, g.Mode())
	assert.Equal(t, 100, g.Percent())

	for i := 0; i < 100; i++ {
		g.Step(empty())
	}
	assert.Equal(t, ModeVictory, g.Mode())
	assert.Equal(t, 1, rec.count(ModeVictory))
}

func TestVictoryRetryAndDismiss(t *testing.T) {
	g, _, _ := newTestGame()
	g.StartLevel(flatLevel(100), false)
	for i := 0; i < 20 && g.Mode() == ModePlaying; i++ {
		g.Step(empty())
	}
	require.Equal(t, ModeVictory, g.Mode())

	g.Step(action(core.ActionRestart))
	assert.Equal(t, ModePlaying, g.Mode())
	assert.Equal(t, 2, g.Attempt())
	assert.Equal(t, 0.0, g.Player().X)

	for i := 0; i < 20 && g.Mode() == ModePlaying; i++ {
		g.Step(empty())
	}
	g.Step(action(core.ActionConfirm))
	assert.Equal(t, ModeLevelSelect, g.Mode())
}

func TestGameOverThenAutoRetry(t *testing.T) {
	g, snd, rec := newTestGame()
	g.StartLevel(flatLevel(5000, level.Object{ID: 1, Type: level.EntitySpike, X: 300}), false)

	for i := 0; i < 100 && g.Mode() == ModePlaying; i++ {
		g.Step(empty())
	}
	require.Equal(t, ModeGameOver, g.Mode())
	assert.Equal(t, 2, g.Attempt())
	assert.Equal(t, 1, snd.deaths)
	assert.Equal(t, 1, rec.died)

	last := rec.runs[len(rec.runs)-1]
	assert.Equal(t, 5, last.Percent, "died at x=287 of 5000")
	assert.False(t, last.Practice)

	for i := 0; i < 47; i++ {
		g.Step(empty())
	}
	assert.Equal(t, ModeGameOver, g.Mode(), "game over lasts 800ms")

	g.Step(empty())
	assert.Equal(t, ModePlaying, g.Mode())
	assert.Equal(t, 0.0, g.Player().X)
	assert.True(t, g.Player().Grounded)
}

func TestPracticeDeathWithoutCheckpointsResets(t *testing.T) {
	g, _, _ := newTestGame()
	g.StartLevel(flatLevel(5000), true)
	fresh := g.Snapshot()

	for i := 0; i < 30; i++ {
		g.Step(empty())
	}
	g.die(Event{Kind: EventDeath, X: g.player.X, Y: g.player.Y})

	got := g.Snapshot()
	got.Tick = fresh.Tick
	assert.Equal(t, fresh, got)
}

func TestPracticeDeathKeepsPlaying(t *testing.T) {
	g, _, rec := newTestGame()
	g.StartLevel(flatLevel(5000, level.Object{ID: 1, Type: level.EntitySpike, X: 300}), true)

	lastX := 0.0
	respawned := false
	for i := 0; i < 100 && !respawned; i++ {
		g.Step(empty())
		respawned = g.Player().X < lastX
		lastX = g.Player().X
	}
	require.True(t, respawned)
	assert.Equal(t, ModePlaying, g.Mode())
	assert.Equal(t, 1, g.Attempt(), "practice deaths do not count attempts")
	assert.Equal(t, 1, rec.died)
	assert.Zero(t, rec.count(ModeGameOver))
}

func TestCheckpointRoundTrip(t *testing.T) {
	g, _, _ := newTestGame()
	g.StartLevel(flatLevel(5000), true)

	g.Step(jumpFrame())
	for i := 0; i < 5; i++ {
		g.Step(empty())
	}
	require.True(t, g.PlaceCheckpoint())
	want := g.Player()
	wantCam := g.CameraX()
	require.False(t, want.Grounded)
	require.NotZero(t, want.DY)

	for i := 0; i < 20; i++ {
		g.Step(empty())
	}
	g.die(Event{Kind: EventDeath})

	assert.Equal(t, want, g.Player(), "restore keeps x, y, dy, angle and grounded")
	assert.Equal(t, wantCam, g.CameraX())
	assert.Len(t, g.Checkpoints(), 1, "restore does not pop")

	// Dying again replays from the same checkpoint.
	g.Step(empty())
	g.die(Event{Kind: EventDeath})
	assert.Equal(t, want, g.Player())
}

func TestCheckpointRules(t *testing.T) {
	g, _, _ := newTestGame()
	g.StartLevel(flatLevel(5000), false)
	assert.False(t, g.PlaceCheckpoint(), "normal mode has no checkpoints")

	g.StartLevel(flatLevel(5000), true)
	assert.False(t, g.RemoveCheckpoint(), "pop on empty stack is a no-op")

	g.Step(action(core.ActionCheckpoint))
	g.Step(action(core.ActionCheckpoint))
	assert.Len(t, g.Checkpoints(), 2)

	g.Step(action(core.ActionRemoveCheckpoint))
	assert.Len(t, g.Checkpoints(), 1)

	g.Step(action(core.ActionBack))
	assert.Equal(t, ModeMenu, g.Mode())
	assert.Empty(t, g.Checkpoints(), "leaving practice clears checkpoints")
	assert.False(t, g.Practice())
}

func TestHeldJumpIgnoredAfterReset(t *testing.T) {
	g, snd, rec := newTestGame()
	g.StartLevel(flatLevel(5000), false)

	held := core.NewInputFrame()
	held.Hold(core.ActionJump, true)
	g.Step(held)
	assert.Equal(t, 0.0, g.Player().Y, "a hold carried over from before the reset does not jump")

	g.Step(jumpFrame())
	assert.Greater(t, g.Player().Y, 0.0)
	assert.Equal(t, 1, snd.jumps)
	assert.Equal(t, 1, rec.jumped)
	assert.NotZero(t, g.Snapshot().Particles)
}

func TestMenuNavigation(t *testing.T) {
	g, snd, _ := newTestGame()

	g.Step(action(core.ActionConfirm))
	assert.Equal(t, ModeLevelSelect, g.Mode())

	g.Step(action(core.ActionBack))
	assert.Equal(t, ModeMenu, g.Mode())
	assert.Equal(t, 2, snd.starts, "entering the menu restarts music")

	before := g.CameraX()
	g.Step(empty())
	assert.InDelta(t, before+2, g.CameraX(), 1e-9, "menu background drifts")

	g.Step(action(core.ActionEditor))
	assert.Equal(t, ModeEditor, g.Mode())
	assert.Equal(t, 1, snd.stops)

	g.Step(action(core.ActionTest))
	assert.Equal(t, ModePlaying, g.Mode())
	assert.True(t, g.Level().IsCustom())

	g.Step(action(core.ActionBack))
	assert.Equal(t, ModeEditor, g.Mode(), "custom runs return to the editor")
}

func TestLevelSelectUsesRegistry(t *testing.T) {
	registry.Register(601, registry.FromBytes([]byte("id: 601\nname: Select Me\nbpm: 128\nlength: 40\n")))
	registry.Register(602, registry.FromBytes([]byte("id: 602\nname: Second\nlength: 40\n")))

	snd := &fakeSound{}
	g := New(config.DefaultDashConfig(), testRuntime(), WithSound(snd))

	g.Step(action(core.ActionConfirm))
	g.Step(action(core.ActionDown))
	g.Step(action(core.ActionDown))
	g.Step(action(core.ActionConfirm))
	require.Equal(t, ModePlaying, g.Mode())
	assert.Equal(t, 601, g.Level().ID, "cursor wraps around")
	assert.Equal(t, 2000.0, g.Level().Length)
	assert.Equal(t, 128, snd.lastBPM)
	assert.False(t, g.Practice())

	g.Step(action(core.ActionBack))
	g.Step(action(core.ActionConfirm))
	g.Step(action(core.ActionUp))
	g.Step(action(core.ActionPractice))
	assert.Equal(t, 602, g.Level().ID)
	assert.True(t, g.Practice())
}

func editorClick(col, row int, button core.PointerButton) core.InputFrame {
	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Col: col, Row: row, Button: button, Kind: core.PointerPress})
	in.AddPointer(core.PointerEvent{Col: col, Row: row, Button: button, Kind: core.PointerRelease})
	return in
}

func TestEditorClicks(t *testing.T) {
	g, _, rec := newTestGame()
	g.OpenEditor()

	g.Step(editorClick(4, 21, core.PointerPrimary))
	objs := g.CustomLevel()
	require.Len(t, objs, 1)
	assert.Equal(t, level.EntityBlock, objs[0].Type)
	assert.Equal(t, 50.0, objs[0].X)
	assert.Equal(t, 0, objs[0].Y)
	require.Len(t, rec.custom, 1)

	g.Step(action(core.ActionToolSpike))
	g.Step(editorClick(5, 21, core.PointerPrimary))
	objs = g.CustomLevel()
	require.Len(t, objs, 1, "placing on an occupied cell replaces")
	assert.Equal(t, level.EntitySpike, objs[0].Type)
	assert.Len(t, g.Level().Objects, 1)

	g.Step(action(core.ActionToolErase))
	g.Step(editorClick(40, 21, core.PointerPrimary))
	assert.Len(t, g.CustomLevel(), 1, "erasing an empty cell changes nothing")
	assert.Len(t, rec.custom, 2)

	g.Step(editorClick(4, 23, core.PointerPrimary))
	assert.Len(t, rec.custom, 2, "clicks below the floor are ignored")

	g.Step(editorClick(4, 21, core.PointerPrimary))
	assert.Empty(t, g.CustomLevel())
}

func TestEditorPanning(t *testing.T) {
	g, _, _ := newTestGame()
	g.OpenEditor()

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Col: 10, Button: core.PointerSecondary, Kind: core.PointerPress})
	in.AddPointer(core.PointerEvent{Col: 6, Kind: core.PointerMotion})
	in.AddPointer(core.PointerEvent{Col: 6, Kind: core.PointerRelease})
	in.AddPointer(core.PointerEvent{Col: 0, Kind: core.PointerMotion})
	g.Step(in)
	assert.InDelta(t, 50.0, g.CameraX(), 1e-9, "dragging left by 4 columns pans right")

	g.Step(action(core.ActionLeft))
	assert.InDelta(t, 0.0, g.CameraX(), 1e-9)
}

func TestAdvanceFixedStep(t *testing.T) {
	g, _, _ := newTestGame()

	assert.Equal(t, 3, g.Advance(time.Second, empty()), "frames are clamped to 50ms")
	assert.Equal(t, uint64(3), g.Snapshot().Tick)
	assert.Equal(t, 0, g.Advance(-time.Second, empty()))

	assert.Equal(t, 0, g.Advance(10*time.Millisecond, action(core.ActionConfirm)))
	assert.Equal(t, ModeMenu, g.Mode())
	assert.Equal(t, 1, g.Advance(10*time.Millisecond, empty()))
	assert.Equal(t, ModeLevelSelect, g.Mode(), "input from a short frame is kept")
}

func TestAdvanceAppliesOneShotsOnce(t *testing.T) {
	g, _, _ := newTestGame()
	g.StartLevel(flatLevel(5000), true)

	in := action(core.ActionCheckpoint)
	require.Equal(t, 3, g.Advance(50*time.Millisecond, in))
	assert.Len(t, g.Checkpoints(), 1)
}

func scriptedLevel() level.Level {
	objs := []level.Object{
		{ID: 1, Type: level.EntitySpike, X: 600},
		{ID: 2, Type: level.EntityBlock, X: 900},
		{ID: 3, Type: level.EntityBlock, X: 950, Y: 1},
		{ID: 4, Type: level.EntityOrb, X: 1200, Y: 2},
		{ID: 5, Type: level.EntityPad, X: 1500},
		{ID: 6, Type: level.EntitySpike, X: 1800},
	}
	return flatLevel(4000, objs...)
}

func TestGameDeterminism(t *testing.T) {
	script := make([]core.InputFrame, 600)
	for i := range script {
		if i%25 < 3 {
			script[i] = jumpFrame()
		} else {
			script[i] = empty()
		}
	}

	g1, _, _ := newTestGame()
	g2, _, _ := newTestGame()
	g1.StartLevel(scriptedLevel(), true)
	g2.StartLevel(scriptedLevel(), true)

	for i, in := range script {
		g1.Step(in)
		g2.Step(in)
		require.Equal(t, g1.Snapshot(), g2.Snapshot(), "tick %d", i)
	}
	assert.Equal(t, g1.particles.Items(), g2.particles.Items())
}

func TestRender(t *testing.T) {
	g, _, _ := newTestGame()
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	assert.Contains(t, scr.String(), "Enter  Play")

	g.Step(action(core.ActionConfirm))
	g.Render(scr)
	assert.Contains(t, scr.String(), "SELECT LEVEL")

	l := scriptedLevel()
	l.Objects = append(l.Objects, level.Object{ID: 99, Type: level.EntityType(42), X: 100})
	g.StartLevel(l, true)
	g.Render(scr)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(scr.Row(0)), "Attempt 1"))
	assert.Contains(t, scr.Row(0), "PRACTICE")
	assert.Equal(t, '█', scr.GetCell(0, FloorRow(24)-1).Rune, "player stands on the floor")

	g.OpenEditor()
	g.Render(scr)
	assert.Contains(t, scr.Row(0), "[1]Block")
}

func TestRenderVictory(t *testing.T) {
	g, _, _ := newTestGame()
	g.StartLevel(flatLevel(100), false)
	for i := 0; i < 20 && g.Mode() == ModePlaying; i++ {
		g.Step(empty())
	}
	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "LEVEL COMPLETE!")
}
