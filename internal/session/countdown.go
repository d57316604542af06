package session

import (
	"sync"
	"time"
)

// Countdown tracks the time left in a session. Remaining time is derived
// from the wall-clock deadline on every tick, never from decrementing a
// counter, so tick jitter cannot stretch the session. When the deadline
// passes, onExpire fires exactly once and the loop stops. Stop prevents any
// further callback, including an expiry racing the teardown.
//
// The loop is an owned resource: a Countdown that was never started (zero
// duration, untimed session) still answers Remaining as zero-clamped math,
// and a broken tick loop never blocks manual submission.
type Countdown struct {
	mu       sync.Mutex
	deadline time.Time
	stopped  bool
	expired  bool
	done     chan struct{}

	now      func() time.Time
	interval time.Duration
	onTick   func(remaining time.Duration)
	onExpire func()
}

// NewCountdown creates a countdown that expires total after Start. onTick
// (optional) receives the clamped remaining time once per interval; onExpire
// (optional) fires once at zero.
func NewCountdown(onTick func(time.Duration), onExpire func()) *Countdown {
	return &Countdown{
		now:      time.Now,
		interval: time.Second,
		onTick:   onTick,
		onExpire: onExpire,
		done:     make(chan struct{}),
	}
}

// Start fixes the deadline at now+total and launches the tick loop.
func (c *Countdown) Start(total time.Duration) {
	c.mu.Lock()
	c.deadline = c.now().Add(total)
	c.mu.Unlock()
	go c.loop()
}

// Remaining returns max(0, deadline-now). Safe to call whether or not the
// loop is running.
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	deadline := c.deadline
	c.mu.Unlock()

	rem := deadline.Sub(c.now())
	if rem < 0 {
		return 0
	}
	return rem
}

// Stop cancels the loop. No callback fires after Stop returns observed-true
// from the loop's side; a tick already past its stopped check may complete,
// but expiry is still once-only.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.stopped = true
		close(c.done)
	}
}

func (c *Countdown) loop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			rem := c.Remaining()

			c.mu.Lock()
			if c.stopped {
				c.mu.Unlock()
				return
			}
			expire := rem == 0 && !c.expired
			if expire {
				c.expired = true
			}
			onTick, onExpire := c.onTick, c.onExpire
			c.mu.Unlock()

			if onTick != nil {
				onTick(rem)
			}
			if expire {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}
