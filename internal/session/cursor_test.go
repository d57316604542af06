package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursorClampsAtBounds(t *testing.T) {
	c := NewCursor(3)

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Previous(), "previous at first question stays put")

	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 2, c.Next(), "next at last question stays put")
}

func TestCursorGoToIgnoresOutOfRange(t *testing.T) {
	c := NewCursor(3)

	assert.Equal(t, 2, c.GoTo(2))
	assert.Equal(t, 2, c.GoTo(5), "out-of-range jump is a no-op")
	assert.Equal(t, 2, c.GoTo(-1))
	assert.Equal(t, 0, c.GoTo(0))
}

func TestCursorScheduleAdvanceFires(t *testing.T) {
	c := NewCursor(3)

	var mu sync.Mutex
	fired := -1
	c.ScheduleAdvance(10*time.Millisecond, func(newIndex int) {
		mu.Lock()
		fired = newIndex
		mu.Unlock()
	})
	assert.True(t, c.HasPendingAdvance())

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, c.Index())
	assert.False(t, c.HasPendingAdvance())
}

func TestCursorManualNavigationCancelsAdvance(t *testing.T) {
	c := NewCursor(5)

	c.ScheduleAdvance(20*time.Millisecond, nil)
	c.Previous()
	assert.False(t, c.HasPendingAdvance())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 0, c.Index(), "cancelled advance must not move the cursor")
}

func TestCursorAdvanceOnLastQuestionStaysPut(t *testing.T) {
	c := NewCursor(2)
	c.GoTo(1)

	called := false
	c.ScheduleAdvance(10*time.Millisecond, func(int) { called = true })

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, c.Index())
	assert.False(t, called, "no callback when there is nowhere to advance")
}

func TestCursorRescheduleReplacesPending(t *testing.T) {
	c := NewCursor(5)

	c.ScheduleAdvance(time.Hour, nil)
	c.ScheduleAdvance(10*time.Millisecond, nil)

	assert.Eventually(t, func() bool { return c.Index() == 1 }, time.Second, 5*time.Millisecond)
	// Only the second advance fires; the first was replaced.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, c.Index())
}
