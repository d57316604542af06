package session

import (
	"sync"
	"time"
)

// Cursor is the current position in the ordered question list. Next and
// Previous clamp to the list bounds; GoTo silently ignores out-of-range
// indexes because it is driven by trusted UI controls.
//
// A multiple-choice selection schedules a delayed auto-advance so the user
// sees the selection land before the view moves on. The pending advance is
// cancelled by any manual navigation and by Close, so it can never fire
// against a torn-down session.
type Cursor struct {
	mu      sync.Mutex
	index   int
	length  int
	pending *time.Timer
}

// NewCursor creates a cursor over length questions, positioned at the first.
func NewCursor(length int) *Cursor {
	return &Cursor{length: length}
}

// Index returns the current position.
func (c *Cursor) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Length returns the question count.
func (c *Cursor) Length() int {
	return c.length
}

// Next moves forward one question, clamped to the end. Cancels any pending
// auto-advance. Returns the new index.
func (c *Cursor) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	if c.index < c.length-1 {
		c.index++
	}
	return c.index
}

// Previous moves back one question, clamped to the start. Backward
// navigation is always permitted regardless of answer state. Cancels any
// pending auto-advance.
func (c *Cursor) Previous() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	if c.index > 0 {
		c.index--
	}
	return c.index
}

// GoTo jumps to index if it is in bounds; out-of-range requests are ignored
// without error. Cancels any pending auto-advance.
func (c *Cursor) GoTo(index int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	if index >= 0 && index < c.length {
		c.index = index
	}
	return c.index
}

// ScheduleAdvance arms a delayed forward move, replacing any pending one.
// When the delay elapses without a manual navigation, the cursor advances
// (clamped) and fn is called with the new index. fn is skipped when already
// on the last question.
func (c *Cursor) ScheduleAdvance(delay time.Duration, fn func(newIndex int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.pending = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if c.pending == nil {
			// Cancelled after the timer fired but before we got the lock.
			c.mu.Unlock()
			return
		}
		c.pending = nil
		moved := c.index < c.length-1
		if moved {
			c.index++
		}
		idx := c.index
		c.mu.Unlock()

		if moved && fn != nil {
			fn(idx)
		}
	})
}

// CancelAdvance drops any pending auto-advance.
func (c *Cursor) CancelAdvance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
}

// HasPendingAdvance reports whether an auto-advance is armed.
func (c *Cursor) HasPendingAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *Cursor) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
