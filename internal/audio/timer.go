package audio

import (
	"sync"
	"time"
)

// RepeatingTimer calls a function at a fixed period on its own goroutine
// until stopped. Start and Stop may be called any number of times, Stop
// returns only after the running goroutine has exited.
type RepeatingTimer struct {
	period time.Duration
	fn     func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewRepeatingTimer creates a stopped timer.
func NewRepeatingTimer(period time.Duration, fn func()) *RepeatingTimer {
	return &RepeatingTimer{period: period, fn: fn}
}

// Start begins firing. It is a no-op if the timer is running.
func (t *RepeatingTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return
	}
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.loop(t.stop, t.done)
}

// Stop halts the timer and waits for an in-flight call to return.
func (t *RepeatingTimer) Stop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the timer is started.
func (t *RepeatingTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *RepeatingTimer) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	t.fn()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.fn()
		}
	}
}
