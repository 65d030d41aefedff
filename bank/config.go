package bank

import "time"

const defaultIdleTimeout = 300 * time.Second
const defaultLoanDelay = 2500 * time.Millisecond
const defaultNoticeDelay = 2500 * time.Millisecond

// Config carries the timing knobs for a Service. Zero values are
// replaced by the defaults, so Config{} is usable directly and tests
// can shrink individual delays.
type Config struct {
	// IdleTimeout is how long a session survives without activity.
	IdleTimeout time.Duration
	// TickInterval is the countdown resolution.
	TickInterval time.Duration
	// LoanDelay is the simulated processing time before a granted loan
	// lands on the account.
	LoanDelay time.Duration
	// NoticeDelay is how long error and status notices show before the
	// display restores its usual message.
	NoticeDelay time.Duration
}

// DefaultConfig returns the production timings: a five minute idle
// timeout ticking every second, and 2.5s loan and notice delays.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:  defaultIdleTimeout,
		TickInterval: time.Second,
		LoanDelay:    defaultLoanDelay,
		NoticeDelay:  defaultNoticeDelay,
	}
}

func (c Config) withDefaults() Config {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = defaultIdleTimeout
	}
	if c.TickInterval <= 0 {
		c.TickInterval = time.Second
	}
	if c.LoanDelay <= 0 {
		c.LoanDelay = defaultLoanDelay
	}
	if c.NoticeDelay <= 0 {
		c.NoticeDelay = defaultNoticeDelay
	}
	return c
}
