package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/mentora-cli/internal/model"
)

// Saver persists a single answer. Implemented by the API client.
type Saver interface {
	SaveAnswer(ctx context.Context, attemptID, questionID uuid.UUID, ans model.Answer) error
}

// Autosave flushes changed answers to the backend on a fixed interval. It
// never blocks user interaction: each flush runs on its own goroutine and a
// failed save is logged, re-marked dirty and retried on the next tick rather
// than immediately, to avoid request storms against a struggling backend.
//
// It runs only between Start and Stop; Stop performs a final best-effort
// flush so a submit or teardown does not strand unsaved answers.
type Autosave struct {
	attemptID uuid.UUID
	store     *AnswerStore
	saver     Saver
	interval  time.Duration
	log       zerolog.Logger

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewAutosave creates the ticker. It does not start running.
func NewAutosave(attemptID uuid.UUID, store *AnswerStore, saver Saver, interval time.Duration, log zerolog.Logger) *Autosave {
	return &Autosave{
		attemptID: attemptID,
		store:     store,
		saver:     saver,
		interval:  interval,
		log:       log.With().Str("component", "autosave").Logger(),
		done:      make(chan struct{}),
	}
}

// Start launches the flush loop.
func (a *Autosave) Start() {
	a.wg.Add(1)
	go a.loop()
}

// Stop halts the loop and drains outstanding changes once. Idempotent.
func (a *Autosave) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.stopped = true
	close(a.done)
	a.mu.Unlock()

	a.wg.Wait()

	// Final drain with a bounded context so teardown cannot hang.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Flush(ctx)
}

func (a *Autosave) loop() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), a.interval)
			a.Flush(ctx)
			cancel()
		}
	}
}

// Flush sends every changed answer once. Failures are logged and the answer
// stays queued for the next pass.
func (a *Autosave) Flush(ctx context.Context) {
	dirty := a.store.TakeDirty()
	if len(dirty) == 0 {
		return
	}

	saved := 0
	for questionID, ans := range dirty {
		if err := a.saver.SaveAnswer(ctx, a.attemptID, questionID, ans); err != nil {
			a.log.Warn().Err(err).
				Str("question_id", questionID.String()).
				Msg("Autosave failed, will retry next tick")
			a.store.MarkDirty(questionID)
			continue
		}
		saved++
	}

	if saved > 0 {
		a.log.Debug().Int("saved", saved).Msg("Autosaved answers")
	}
}
