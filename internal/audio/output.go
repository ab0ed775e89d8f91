package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// output is where rendered voices go. Now is the audio clock in seconds.
type output interface {
	Now() float64
	Play(at float64, s beep.Streamer)
	Close()
}

// speakerOutput mixes voices into the system speaker. Its clock is the
// number of samples streamed so far, notes in the future are delayed by
// prefixing silence.
type speakerOutput struct {
	rate  beep.SampleRate
	mixer *beep.Mixer
	pos   atomic.Int64
}

func openSpeaker(rate beep.SampleRate) (*speakerOutput, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	o := &speakerOutput{rate: rate, mixer: &beep.Mixer{}}
	speaker.Play(o)
	return o, nil
}

// Stream implements beep.Streamer. It never drains so the clock keeps
// running while nothing is playing.
func (o *speakerOutput) Stream(samples [][2]float64) (n int, ok bool) {
	n, _ = o.mixer.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	o.pos.Add(int64(len(samples)))
	return len(samples), true
}

func (o *speakerOutput) Err() error { return nil }

func (o *speakerOutput) Now() float64 {
	return float64(o.pos.Load()) / float64(o.rate)
}

func (o *speakerOutput) Play(at float64, s beep.Streamer) {
	speaker.Lock()
	defer speaker.Unlock()

	if delay := o.rate.N(time.Duration((at - o.Now()) * float64(time.Second))); delay > 0 {
		s = beep.Seq(beep.Silence(delay), s)
	}
	o.mixer.Add(s)
}

func (o *speakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// silentOutput keeps a wall clock so the beat still advances without a
// sound device.
type silentOutput struct {
	start time.Time
	now   func() time.Time
}

func newSilentOutput() *silentOutput {
	return &silentOutput{start: time.Now(), now: time.Now}
}

func (o *silentOutput) Now() float64 {
	return o.now().Sub(o.start).Seconds()
}

func (o *silentOutput) Play(float64, beep.Streamer) {}

func (o *silentOutput) Close() {}
