package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPollerRunsImmediatelyThenOnInterval(t *testing.T) {
	var runs atomic.Int32
	p := New("test", 10*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	}, zerolog.Nop())

	p.Start()
	defer p.Stop()

	// The first run happens on Start, not after the first interval.
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 100*time.Millisecond, time.Millisecond)
	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestPollerStopHaltsRuns(t *testing.T) {
	var runs atomic.Int32
	p := New("test", 5*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return nil
	}, zerolog.Nop())

	p.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, time.Millisecond)
	p.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop returns")
}

func TestPollerErrorsDoNotStopTheLoop(t *testing.T) {
	var runs atomic.Int32
	p := New("test", 5*time.Millisecond, func(context.Context) error {
		runs.Add(1)
		return errors.New("backend hiccup")
	}, zerolog.Nop())

	p.Start()
	defer p.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
}

func TestPollerStartStopIdempotent(t *testing.T) {
	p := New("test", time.Hour, func(context.Context) error { return nil }, zerolog.Nop())

	p.Start()
	p.Start()
	p.Stop()
	p.Stop()
}

func TestPollerContextCancelledOnStop(t *testing.T) {
	blocked := make(chan struct{})
	p := New("test", time.Hour, func(ctx context.Context) error {
		close(blocked)
		<-ctx.Done()
		return ctx.Err()
	}, zerolog.Nop())

	p.Start()
	<-blocked

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung on an in-flight run")
	}
}
