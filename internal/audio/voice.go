package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave defines oscillator wave shapes.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

func (w Wave) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSaw:
		return "saw"
	case WaveTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Ramp is the interpolation used between the start and end values.
type Ramp int

const (
	RampExponential Ramp = iota
	RampLinear
)

// Voice describes one synthesized note: a single oscillator with a
// frequency sweep and a gain envelope over a fixed duration.
type Voice struct {
	Wave     Wave
	FreqFrom float64
	FreqTo   float64
	Freq     Ramp
	GainFrom float64
	GainTo   float64
	Gain     Ramp
	Duration time.Duration
}

// Arpeggio notes in Hz, one per bar.
var Arpeggio = []float64{220, 261.63, 329.63, 392, 523.25}

// Kick is played on every beat.
func Kick() Voice {
	return Voice{
		Wave:     WaveSine,
		FreqFrom: 150, FreqTo: 0.01,
		GainFrom: 0.4, GainTo: 0.01,
		Duration: 500 * time.Millisecond,
	}
}

// Bass is played on odd beats.
func Bass() Voice {
	return Voice{
		Wave:     WaveSaw,
		FreqFrom: 60, FreqTo: 60,
		GainFrom: 0.1, GainTo: 0, Gain: RampLinear,
		Duration: 200 * time.Millisecond,
	}
}

// Arp returns the arpeggio note for a beat. Callers only use it on
// every fourth beat.
func Arp(beat int) Voice {
	f := Arpeggio[(beat/4)%len(Arpeggio)]
	return Voice{
		Wave:     WaveTriangle,
		FreqFrom: f, FreqTo: f,
		GainFrom: 0.05, GainTo: 0.001,
		Duration: 300 * time.Millisecond,
	}
}

// JumpCue is the rising blip played on every jump.
func JumpCue() Voice {
	return Voice{
		Wave:     WaveSquare,
		FreqFrom: 150, FreqTo: 600,
		GainFrom: 0.1, GainTo: 0.01,
		Duration: 100 * time.Millisecond,
	}
}

// DeathCue is the falling buzz played on death.
func DeathCue() Voice {
	return Voice{
		Wave:     WaveSaw,
		FreqFrom: 200, FreqTo: 50,
		GainFrom: 0.2, GainTo: 0.01,
		Duration: 300 * time.Millisecond,
	}
}

// FreqAt returns the oscillator frequency at fraction t of the note.
func (v Voice) FreqAt(t float64) float64 {
	return interpolate(v.Freq, v.FreqFrom, v.FreqTo, t)
}

// GainAt returns the envelope gain at fraction t of the note.
func (v Voice) GainAt(t float64) float64 {
	return interpolate(v.Gain, v.GainFrom, v.GainTo, t)
}

func interpolate(r Ramp, from, to, t float64) float64 {
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	// Exponential ramps need both ends on the same side of zero
	if r == RampLinear || from <= 0 || to <= 0 {
		return from + (to-from)*t
	}
	return from * math.Pow(to/from, t)
}

// Streamer renders the voice at the given sample rate.
func (v Voice) Streamer(rate beep.SampleRate) beep.Streamer {
	return &sweep{voice: v, rate: rate, total: rate.N(v.Duration)}
}

// sweep generates a voice sample by sample.
type sweep struct {
	voice    Voice
	rate     beep.SampleRate
	total    int
	position int
	phase    float64
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.total)
		val := waveform(s.voice.Wave, s.phase) * s.voice.GainAt(t)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.voice.FreqAt(t) / float64(s.rate)
		s.phase -= math.Floor(s.phase) // Keep in [0, 1)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

func waveform(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero
// volume is handled by making the stream silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
