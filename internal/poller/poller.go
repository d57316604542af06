// Package poller provides cancellable fixed-interval pollers and a
// WebSocket push subscription that satisfies the same contract, so callers
// can be upgraded from polling to server push without changing.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Poller re-runs fn on a fixed interval until stopped. Errors from fn are
// logged and the loop keeps going; a poller failure is never fatal to the
// caller. It is an owned resource: Start launches it, Stop guarantees fn is
// not running and will never run again.
type Poller struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	log      zerolog.Logger

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a poller. fn runs once immediately on Start, then once per
// interval.
func New(name string, interval time.Duration, fn func(ctx context.Context) error, log zerolog.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		log:      log.With().Str("component", "poller").Str("poller", name).Logger(),
	}
}

// Start launches the loop. Starting an already-running poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go p.loop(ctx)
}

// Stop cancels the loop and waits for any in-flight run to finish.
// Idempotent.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	p.run(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

func (p *Poller) run(ctx context.Context) {
	if err := p.fn(ctx); err != nil && ctx.Err() == nil {
		p.log.Warn().Err(err).Msg("Poll failed")
	}
}
