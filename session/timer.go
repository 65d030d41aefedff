package session

import (
	"sync"
	"time"
)

// IdleTimer counts down from a fixed duration, ticking once per
// interval. It has two states, running and stopped. Reset cancels any
// running countdown before starting a new one, so there is never more
// than one live ticker, and the expiry callback fires at most once per
// run.
type IdleTimer struct {
	duration time.Duration
	interval time.Duration
	onTick   func(remaining time.Duration)
	onExpire func()

	mu        sync.Mutex
	gen       int
	running   bool
	remaining time.Duration
}

// NewIdleTimer builds a stopped timer. onTick receives the remaining
// time after every tick and onExpire runs when the countdown hits zero;
// either may be nil. Callbacks run outside the timer's lock.
func NewIdleTimer(duration, interval time.Duration, onTick func(time.Duration), onExpire func()) *IdleTimer {
	return &IdleTimer{
		duration: duration,
		interval: interval,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start begins a fresh countdown at the full duration, cancelling any
// countdown already running.
func (t *IdleTimer) Start() {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.running = true
	t.remaining = t.duration
	t.mu.Unlock()

	if t.onTick != nil {
		t.onTick(t.duration)
	}
	go t.run(gen)
}

// Reset is Start under its natural name at call sites that react to
// user activity.
func (t *IdleTimer) Reset() {
	t.Start()
}

// Stop cancels the countdown without firing the expiry callback. Safe
// to call on a stopped timer.
func (t *IdleTimer) Stop() {
	t.mu.Lock()
	t.gen++
	t.running = false
	t.remaining = 0
	t.mu.Unlock()
}

// Running reports whether a countdown is live.
func (t *IdleTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Remaining returns the time left on the running countdown, or zero
// when stopped.
func (t *IdleTimer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}
	return t.remaining
}

func (t *IdleTimer) run(gen int) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for range ticker.C {
		t.mu.Lock()
		if gen != t.gen || !t.running {
			// a Reset or Stop superseded this run
			t.mu.Unlock()
			return
		}
		t.remaining -= t.interval
		rem := t.remaining
		expired := rem <= 0
		if expired {
			t.running = false
		}
		t.mu.Unlock()

		if t.onTick != nil {
			t.onTick(rem)
		}
		if expired {
			if t.onExpire != nil {
				t.onExpire()
			}
			return
		}
	}
}
