// Package session implements the timed assessment session: the answer
// store, navigation cursor, countdown, autosave ticker and submission gates
// over a question set served by the backend. The engine owns no persistence
// (every state change of record happens through the Backend), and every timer
// it starts is released by Close, so no callback can outlive the session that
// armed it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/mentora-cli/internal/model"
)

// State is the session lifecycle. The only transitions are
// NOT_STARTED → IN_PROGRESS (Start) and IN_PROGRESS → SUBMITTED (manual
// submit passing the hard gate, or forced submit on expiry). Nothing leaves
// SUBMITTED.
type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateInProgress State = "IN_PROGRESS"
	StateSubmitted  State = "SUBMITTED"
)

var (
	// ErrNotInProgress rejects operations outside IN_PROGRESS.
	ErrNotInProgress = errors.New("session is not in progress")
	// ErrSubmitInFlight rejects a second submit while one is on the wire.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrWrongQuestionType rejects an answer whose shape does not match the
	// current question.
	ErrWrongQuestionType = errors.New("answer does not match the question type")
	// ErrInvalidOption rejects an option token the question does not offer.
	ErrInvalidOption = errors.New("not a valid option for this question")
)

// Backend is the slice of the API the engine needs.
type Backend interface {
	Saver
	Submit(ctx context.Context, attemptID uuid.UUID, answers []model.SubmittedAnswer) (*model.Result, error)
}

// Options tunes a session. Zero values fall back to the defaults below;
// interval zero disables the corresponding timer (an untimed or
// non-autosaving session stays fully usable; timers are a convenience, not
// a dependency).
type Options struct {
	AutosaveInterval time.Duration
	AutoAdvanceDelay time.Duration

	// OnTick receives the clamped remaining time once per second.
	OnTick func(remaining time.Duration)
	// OnAutoAdvance fires after a scheduled advance lands on a new question.
	OnAutoAdvance func(newIndex int)
	// OnForcedSubmit reports the outcome of the timeout-triggered submit.
	OnForcedSubmit func(result *model.Result, err error)
}

const (
	// DefaultAutoAdvanceDelay keeps a multiple-choice selection on screen
	// long enough to register before the view moves.
	DefaultAutoAdvanceDelay = 900 * time.Millisecond
	// forcedSubmitTimeout bounds the submit call the expiry path makes.
	forcedSubmitTimeout = 30 * time.Second
)

// Session drives one attempt from start to submission.
type Session struct {
	attempt *model.Attempt
	backend Backend
	opts    Options
	log     zerolog.Logger

	answers   *AnswerStore
	cursor    *Cursor
	countdown *Countdown
	autosave  *Autosave

	mu         sync.Mutex
	state      State
	submitting bool
	result     *model.Result
}

// New builds a session over a fetched attempt. Nothing runs until Start.
func New(attempt *model.Attempt, backend Backend, opts Options, log zerolog.Logger) *Session {
	if opts.AutoAdvanceDelay == 0 {
		opts.AutoAdvanceDelay = DefaultAutoAdvanceDelay
	}

	s := &Session{
		attempt: attempt,
		backend: backend,
		opts:    opts,
		log: log.With().
			Str("component", "session").
			Str("attempt_id", attempt.ID.String()).
			Logger(),
		answers: NewAnswerStore(),
		cursor:  NewCursor(len(attempt.Questions)),
		state:   StateNotStarted,
	}

	if attempt.Duration > 0 {
		s.countdown = NewCountdown(opts.OnTick, s.expire)
	}
	if opts.AutosaveInterval > 0 {
		s.autosave = NewAutosave(attempt.ID, s.answers, backend, opts.AutosaveInterval, log)
	}
	return s
}

// Start moves the session to IN_PROGRESS and launches the countdown and
// autosave ticker. Starting twice is an error.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateNotStarted {
		return fmt.Errorf("start: session already %s", s.state)
	}
	s.state = StateInProgress

	if s.countdown != nil {
		s.countdown.Start(s.attempt.Duration)
	}
	if s.autosave != nil {
		s.autosave.Start()
	}

	s.log.Info().
		Int("questions", len(s.attempt.Questions)).
		Dur("duration", s.attempt.Duration).
		Msg("Session started")
	return nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the grading response once submitted, nil before.
func (s *Session) Result() *model.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Attempt exposes the immutable question set.
func (s *Session) Attempt() *model.Attempt { return s.attempt }

// Remaining returns the clamped time left, or zero for untimed sessions.
func (s *Session) Remaining() time.Duration {
	if s.countdown == nil {
		return 0
	}
	return s.countdown.Remaining()
}

// Current returns the question under the cursor and its index.
func (s *Session) Current() (model.Question, int) {
	idx := s.cursor.Index()
	return s.attempt.Questions[idx], idx
}

// Answer returns the stored answer for a question, if any.
func (s *Session) Answer(questionID uuid.UUID) (model.Answer, bool) {
	return s.answers.Get(questionID)
}

// AnsweredCount returns how many questions have answers.
func (s *Session) AnsweredCount() int { return s.answers.Len() }

// ─── Answering ─────────────────────────────────────────────────────────────

// SelectOption records a multiple-choice selection for the current question
// and schedules the delayed auto-advance. Manual navigation before the delay
// elapses cancels the advance.
func (s *Session) SelectOption(token string) error {
	if err := s.ensureInProgress(); err != nil {
		return err
	}

	q, _ := s.Current()
	if q.Type != model.QuestionTypeMultipleChoice {
		return ErrWrongQuestionType
	}
	if !q.HasOption(token) {
		return ErrInvalidOption
	}

	s.answers.Set(q.ID, model.Answer{Option: token})
	s.cursor.ScheduleAdvance(s.opts.AutoAdvanceDelay, s.opts.OnAutoAdvance)
	return nil
}

// SetEssay records a free-text answer for the current question.
func (s *Session) SetEssay(text string) error {
	if err := s.ensureInProgress(); err != nil {
		return err
	}

	q, _ := s.Current()
	if q.Type != model.QuestionTypeEssay {
		return ErrWrongQuestionType
	}
	s.answers.Set(q.ID, model.Answer{Text: text})
	return nil
}

// SetCode records a coding answer (source plus language) for the current
// question.
func (s *Session) SetCode(code, language string) error {
	if err := s.ensureInProgress(); err != nil {
		return err
	}

	q, _ := s.Current()
	if q.Type != model.QuestionTypeCoding {
		return ErrWrongQuestionType
	}
	s.answers.Set(q.ID, model.Answer{Code: code, Language: language})
	return nil
}

// ─── Navigation ────────────────────────────────────────────────────────────

// Next advances to the following question. The soft gate applies: the
// current question must be answered first.
func (s *Session) Next() (int, error) {
	if err := s.ensureInProgress(); err != nil {
		return s.cursor.Index(), err
	}
	q, idx := s.Current()
	if err := checkCurrent(q, s.answers); err != nil {
		return idx, err
	}
	return s.cursor.Next(), nil
}

// Previous moves back one question. Always permitted.
func (s *Session) Previous() (int, error) {
	if err := s.ensureInProgress(); err != nil {
		return s.cursor.Index(), err
	}
	return s.cursor.Previous(), nil
}

// GoTo jumps to a question by index; out-of-range is ignored.
func (s *Session) GoTo(index int) (int, error) {
	if err := s.ensureInProgress(); err != nil {
		return s.cursor.Index(), err
	}
	return s.cursor.GoTo(index), nil
}

// ─── Submission ────────────────────────────────────────────────────────────

// Submit is the manual path: the hard gate must pass (every question
// answered), then the accumulated answers go to the backend exactly once.
// On failure the session stays IN_PROGRESS and the user may retry.
func (s *Session) Submit(ctx context.Context) (*model.Result, error) {
	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return nil, ErrNotInProgress
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if err := checkAll(s.attempt.Questions, s.answers); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.submitting = true
	s.mu.Unlock()

	result, err := s.backend.Submit(ctx, s.attempt.ID, s.payload())
	if err != nil {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("Submit failed, session stays in progress")
		return nil, fmt.Errorf("submit: %w", err)
	}

	s.finalize(result)
	return result, nil
}

// expire is the countdown's once-only callback: forced submission that
// bypasses the hard gate. Whatever is answered is sent, the rest goes as
// null.
func (s *Session) expire() {
	s.mu.Lock()
	if s.state != StateInProgress || s.submitting {
		s.mu.Unlock()
		return
	}
	s.submitting = true
	s.mu.Unlock()

	s.log.Info().Msg("Time expired, forcing submission")

	ctx, cancel := context.WithTimeout(context.Background(), forcedSubmitTimeout)
	defer cancel()

	result, err := s.backend.Submit(ctx, s.attempt.ID, s.payload())
	if err != nil {
		// Leave the session IN_PROGRESS so a manual retry is still
		// possible; the countdown is spent either way.
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("Forced submit failed")
	} else {
		s.finalize(result)
	}

	if s.opts.OnForcedSubmit != nil {
		s.opts.OnForcedSubmit(result, err)
	}
}

// payload builds the submission in question order. Unanswered questions are
// carried as null, never silently dropped.
func (s *Session) payload() []model.SubmittedAnswer {
	out := make([]model.SubmittedAnswer, 0, len(s.attempt.Questions))
	for _, q := range s.attempt.Questions {
		entry := model.SubmittedAnswer{QuestionID: q.ID}
		if ans, ok := s.answers.Get(q.ID); ok {
			entry.Answer = &ans
		}
		out = append(out, entry)
	}
	return out
}

// finalize records the result and releases every timer.
func (s *Session) finalize(result *model.Result) {
	s.mu.Lock()
	s.state = StateSubmitted
	s.submitting = false
	s.result = result
	s.mu.Unlock()

	// The submission carried every answer; drop the dirty set so the
	// autosave drain does not replay saves against a completed attempt.
	s.answers.TakeDirty()
	s.stopTimers()
	s.log.Info().Float64("score", result.ScorePercentage).Msg("Session submitted")
}

// Close tears the session down: countdown, autosave and any pending
// auto-advance are released so nothing fires after the owning view is gone.
// Safe to call in any state, more than once.
func (s *Session) Close() {
	s.stopTimers()
}

func (s *Session) stopTimers() {
	s.cursor.CancelAdvance()
	if s.countdown != nil {
		s.countdown.Stop()
	}
	if s.autosave != nil {
		s.autosave.Stop()
	}
}

func (s *Session) ensureInProgress() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	return nil
}
