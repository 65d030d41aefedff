package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fast intervals keep the countdown tests well under a second
const testInterval = 5 * time.Millisecond

func TestIdleTimerExpiresExactlyOnce(t *testing.T) {
	var (
		mu      sync.Mutex
		expires int
	)
	timer := NewIdleTimer(4*testInterval, testInterval, nil, func() {
		mu.Lock()
		expires++
		mu.Unlock()
	})

	timer.Start()
	require.True(t, timer.Running())

	time.Sleep(20 * testInterval)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, expires, "expiry callback must fire exactly once")
	assert.False(t, timer.Running())
	assert.Equal(t, time.Duration(0), timer.Remaining())
}

func TestIdleTimerResetRestoresFullDuration(t *testing.T) {
	// a wide interval leaves plenty of room to observe the reset value
	// before the next tick can decrement it
	interval := 100 * time.Millisecond
	duration := 20 * interval
	timer := NewIdleTimer(duration, interval, nil, nil)

	timer.Start()
	time.Sleep(3 * interval)
	require.Less(t, timer.Remaining(), duration)

	timer.Reset()
	assert.Equal(t, duration, timer.Remaining())
	assert.True(t, timer.Running())

	timer.Stop()
}

func TestIdleTimerResetCancelsPriorRun(t *testing.T) {
	var (
		mu      sync.Mutex
		expires int
	)
	timer := NewIdleTimer(6*testInterval, testInterval, nil, func() {
		mu.Lock()
		expires++
		mu.Unlock()
	})

	timer.Start()
	// keep resetting before the countdown can finish
	for i := 0; i < 5; i++ {
		time.Sleep(2 * testInterval)
		timer.Reset()
	}

	mu.Lock()
	assert.Equal(t, 0, expires, "resets must prevent expiry")
	mu.Unlock()

	// let the final run expire on its own
	time.Sleep(20 * testInterval)
	mu.Lock()
	assert.Equal(t, 1, expires)
	mu.Unlock()
}

func TestIdleTimerStopWithoutExpiry(t *testing.T) {
	expired := make(chan struct{}, 1)
	timer := NewIdleTimer(4*testInterval, testInterval, nil, func() {
		expired <- struct{}{}
	})

	timer.Start()
	timer.Stop()
	assert.False(t, timer.Running())
	assert.Equal(t, time.Duration(0), timer.Remaining())

	select {
	case <-expired:
		t.Fatal("stopped timer must not expire")
	case <-time.After(10 * testInterval):
	}

	// stopping again is a no-op
	timer.Stop()
}

func TestIdleTimerTickReportsRemaining(t *testing.T) {
	var (
		mu    sync.Mutex
		ticks []time.Duration
	)
	done := make(chan struct{})
	timer := NewIdleTimer(3*testInterval, testInterval, func(rem time.Duration) {
		mu.Lock()
		ticks = append(ticks, rem)
		mu.Unlock()
	}, func() {
		close(done)
	})

	timer.Start()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never expired")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, ticks)
	assert.Equal(t, 3*testInterval, ticks[0], "first tick shows the full duration")
	assert.Equal(t, time.Duration(0), ticks[len(ticks)-1])
	for i := 1; i < len(ticks); i++ {
		assert.Less(t, ticks[i], ticks[i-1], "remaining time must be strictly decreasing")
	}
}
