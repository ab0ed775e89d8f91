package audio

// Note is a voice scheduled at an absolute audio clock time in seconds.
type Note struct {
	At    float64
	Beat  int
	Voice Voice
}

// Sequencer places the background beat on the audio clock. It is a pure
// scheduler: Pump is given the current clock time and returns every note
// that starts before now plus the lookahead.
type Sequencer struct {
	bpm       int
	lookahead float64
	next      float64
	beat      int
}

// NewSequencer creates a sequencer at the given tempo. lookahead is in
// seconds.
func NewSequencer(bpm int, lookahead float64) *Sequencer {
	s := &Sequencer{lookahead: lookahead}
	s.SetBPM(bpm)
	return s
}

// SetBPM updates the tempo. Non-positive values fall back to 120.
func (s *Sequencer) SetBPM(bpm int) {
	if bpm <= 0 {
		bpm = 120
	}
	s.bpm = bpm
}

// BPM returns the current tempo.
func (s *Sequencer) BPM() int { return s.bpm }

// Beat returns the number of beats scheduled so far.
func (s *Sequencer) Beat() int { return s.beat }

// Next returns the clock time of the next unscheduled beat.
func (s *Sequencer) Next() float64 { return s.next }

// SecondsPerBeat returns the beat length.
func (s *Sequencer) SecondsPerBeat() float64 {
	return 60 / float64(s.bpm)
}

// Start rewinds to beat 0 placed at the given clock time.
func (s *Sequencer) Start(at float64) {
	s.next = at
	s.beat = 0
}

// Pump schedules every beat with start time before now + lookahead.
func (s *Sequencer) Pump(now float64) []Note {
	var notes []Note
	for s.next < now+s.lookahead {
		notes = append(notes, BeatNotes(s.beat, s.next)...)
		s.next += s.SecondsPerBeat()
		s.beat++
	}
	return notes
}

// BeatNotes returns the voices played on beat n at time at.
func BeatNotes(n int, at float64) []Note {
	notes := []Note{{At: at, Beat: n, Voice: Kick()}}
	if n%2 != 0 {
		notes = append(notes, Note{At: at, Beat: n, Voice: Bass()})
	}
	if n%4 == 0 {
		notes = append(notes, Note{At: at, Beat: n, Voice: Arp(n)})
	}
	return notes
}
