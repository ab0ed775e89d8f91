// Package audio synthesizes the background beat and the sound cues of the
// game with gopxl/beep. When no sound device is available the engine runs
// silent and every call becomes a no-op.
package audio

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-dash/internal/config"
)

// Engine plays the procedural soundtrack. All methods are safe for
// concurrent use and never block on audio output.
type Engine struct {
	cfg    config.AudioConfig
	logger *log.Logger
	out    output
	rate   beep.SampleRate
	silent bool

	mu      sync.Mutex
	seq     *Sequencer
	playing bool
	timer   *RepeatingTimer
	muted   atomic.Bool
}

// New opens the speaker and returns an engine. Failing to open the device
// is not an error: the engine falls back to silent mode and logs a warning.
func New(cfg config.AudioConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if !cfg.Enabled {
		return NewSilent(cfg)
	}

	out, err := openSpeaker(beep.SampleRate(sampleRate(cfg)))
	if err != nil {
		logger.Warn("audio unavailable, running silent", "err", err)
		return NewSilent(cfg)
	}
	return newEngine(cfg, logger, out, false)
}

// NewSilent returns an engine that keeps time but produces no sound. Used
// by the SSH server where audio would play on the host.
func NewSilent(cfg config.AudioConfig) *Engine {
	return newEngine(cfg, log.New(io.Discard), newSilentOutput(), true)
}

func newEngine(cfg config.AudioConfig, logger *log.Logger, out output, silent bool) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: logger,
		out:    out,
		rate:   beep.SampleRate(sampleRate(cfg)),
		silent: silent,
		seq:    NewSequencer(cfg.DefaultBPM, cfg.ScheduleAhead),
	}
	period := time.Duration(cfg.LookaheadMS) * time.Millisecond
	if period <= 0 {
		period = 25 * time.Millisecond
	}
	e.timer = NewRepeatingTimer(period, e.pump)
	return e
}

func sampleRate(cfg config.AudioConfig) int {
	if cfg.SampleRate <= 0 {
		return 44100
	}
	return cfg.SampleRate
}

// StartMusic starts the beat at beat 0. If music is already playing only
// the tempo changes.
func (e *Engine) StartMusic(bpm int) {
	e.mu.Lock()
	if bpm <= 0 {
		bpm = e.cfg.DefaultBPM
	}
	e.seq.SetBPM(bpm)
	if e.playing {
		e.mu.Unlock()
		return
	}
	e.playing = true
	e.seq.Start(e.out.Now())
	e.mu.Unlock()

	e.timer.Start()
}

// StopMusic stops scheduling beats. Notes already handed to the output
// finish playing.
func (e *Engine) StopMusic() {
	e.mu.Lock()
	e.playing = false
	e.mu.Unlock()

	e.timer.Stop()
}

// Playing reports whether the beat is running.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// BPM returns the tempo of the beat.
func (e *Engine) BPM() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.BPM()
}

// PlayJump plays the jump cue immediately.
func (e *Engine) PlayJump() {
	e.playNow(JumpCue())
}

// PlayDeath plays the death cue immediately.
func (e *Engine) PlayDeath() {
	e.playNow(DeathCue())
}

func (e *Engine) playNow(v Voice) {
	if e.silent || e.muted.Load() {
		return
	}
	e.out.Play(e.out.Now(), e.render(v))
}

// SetMuted silences all output. The beat keeps advancing while muted.
func (e *Engine) SetMuted(muted bool) {
	e.muted.Store(muted)
}

// ToggleMute flips the mute state and returns the new one.
func (e *Engine) ToggleMute() bool {
	for {
		old := e.muted.Load()
		if e.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports whether output is muted.
func (e *Engine) Muted() bool {
	return e.muted.Load()
}

// Silent reports whether the engine has no sound device.
func (e *Engine) Silent() bool {
	return e.silent
}

// Close stops the beat and releases the sound device.
func (e *Engine) Close() {
	e.StopMusic()
	e.out.Close()
}

// pump is the timer callback: it schedules every beat inside the
// lookahead window.
func (e *Engine) pump() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.playing {
		return
	}
	notes := e.seq.Pump(e.out.Now())
	if e.silent || e.muted.Load() {
		return
	}
	for _, n := range notes {
		e.out.Play(n.At, e.render(n.Voice))
	}
}

func (e *Engine) render(v Voice) beep.Streamer {
	return newVolume(v.Streamer(e.rate), e.cfg.Volume)
}
