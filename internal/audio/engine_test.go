package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dash/internal/config"
)

type fakeOutput struct {
	mu    sync.Mutex
	now   float64
	plays []float64
}

func (o *fakeOutput) Now() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.now
}

func (o *fakeOutput) Play(at float64, _ beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.plays = append(o.plays, at)
}

func (o *fakeOutput) Close() {}

func (o *fakeOutput) set(now float64) {
	o.mu.Lock()
	o.now = now
	o.mu.Unlock()
}

func (o *fakeOutput) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.plays)
}

func testAudioConfig() config.AudioConfig {
	return config.AudioConfig{
		Enabled:       true,
		SampleRate:    8000,
		DefaultBPM:    155,
		LookaheadMS:   1000, // keep the timer out of the way
		ScheduleAhead: 0.1,
		Volume:        0.8,
	}
}

func newTestEngine(out output) *Engine {
	return newEngine(testAudioConfig(), log.New(io.Discard), out, false)
}

func TestEngineSchedulesBeats(t *testing.T) {
	out := &fakeOutput{}
	e := newTestEngine(out)
	defer e.Close()

	e.StartMusic(120)
	require.True(t, e.Playing())
	assert.Equal(t, 120, e.BPM())

	// Beat 0 is kick + arpeggio; the timer's first call may already have run
	e.pump()
	assert.Equal(t, 2, out.count())

	out.set(0.45)
	e.pump()
	assert.Equal(t, 4, out.count(), "beat 1 adds kick + bass")
}

func TestEngineMuteKeepsClock(t *testing.T) {
	out := &fakeOutput{}
	e := newTestEngine(out)
	defer e.Close()

	e.SetMuted(true)
	e.StartMusic(120)
	e.pump()
	out.set(0.45)
	e.pump()
	assert.Zero(t, out.count())

	e.PlayJump()
	e.PlayDeath()
	assert.Zero(t, out.count())

	// Beats 0 and 1 were consumed while muted
	assert.False(t, e.ToggleMute())
	e.pump()
	assert.Zero(t, out.count())
	out.set(0.95)
	e.pump()
	assert.Equal(t, 1, out.count(), "beat 2 is a lone kick")
}

func TestEngineCues(t *testing.T) {
	out := &fakeOutput{now: 2}
	e := newTestEngine(out)

	e.PlayJump()
	e.PlayDeath()
	assert.Equal(t, []float64{2, 2}, out.plays)
}

func TestEngineStopMusic(t *testing.T) {
	out := &fakeOutput{}
	e := newTestEngine(out)

	e.StartMusic(120)
	e.StopMusic()
	assert.False(t, e.Playing())

	n := out.count()
	out.set(5)
	e.pump()
	assert.Equal(t, n, out.count(), "stopped engine schedules nothing")
}

func TestEngineRestartRewinds(t *testing.T) {
	out := &fakeOutput{}
	e := newTestEngine(out)
	defer e.Close()

	e.StartMusic(120)
	e.pump()
	e.StopMusic()

	out.set(10)
	e.StartMusic(120)
	e.pump()
	e.mu.Lock()
	beat := e.seq.Beat()
	e.mu.Unlock()
	assert.Equal(t, 1, beat)
}

func TestEngineStartWhilePlayingChangesTempo(t *testing.T) {
	out := &fakeOutput{}
	e := newTestEngine(out)
	defer e.Close()

	e.StartMusic(120)
	e.StartMusic(150)
	assert.Equal(t, 150, e.BPM())
	assert.True(t, e.Playing())
}

func TestSilentEngine(t *testing.T) {
	e := NewSilent(testAudioConfig())
	defer e.Close()

	assert.True(t, e.Silent())
	e.StartMusic(0)
	assert.Equal(t, 155, e.BPM(), "zero bpm uses the default")
	e.PlayJump()
	e.PlayDeath()
}

func TestRepeatingTimer(t *testing.T) {
	var calls atomic.Int32
	timer := NewRepeatingTimer(time.Millisecond, func() { calls.Add(1) })

	timer.Start()
	timer.Start() // no-op
	assert.True(t, timer.Running())
	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

	timer.Stop()
	assert.False(t, timer.Running())
	n := calls.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, calls.Load(), "no calls after Stop returns")

	timer.Stop() // no-op
	timer.Start()
	assert.Eventually(t, func() bool { return calls.Load() > n }, time.Second, time.Millisecond)
	timer.Stop()
}
