package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/mentora-cli/internal/model"
)

// attemptResponse covers both naming conventions the backend uses for the
// session duration field.
type attemptResponse struct {
	status
	AttemptID        uuid.UUID        `json:"attempt_id"`
	Title            string           `json:"title"`
	Questions        []model.Question `json:"questions"`
	TimeLimitMinutes int              `json:"time_limit_minutes"`
	DurationMinutes  int              `json:"duration_minutes"`
}

// fetchPath maps an attempt kind to the endpoint serving its question set.
func fetchPath(kind model.AttemptKind) string {
	switch kind {
	case model.KindAssessment:
		return "/assessments/questions"
	case model.KindWeeklyEvaluation:
		return "/evaluations/weekly"
	default:
		return "/tests/" + string(kind)
	}
}

// answerSurface maps an attempt kind to the path segment its autosave
// endpoint lives under.
func answerSurface(kind model.AttemptKind) string {
	if kind == model.KindWeeklyEvaluation {
		return "evaluations"
	}
	return "tests"
}

// FetchAttempt loads the question set for one timed session. ref scopes
// module/final tests to a course or module when non-empty.
// A failure here is fatal for the session: no partial state is created.
func (c *Client) FetchAttempt(ctx context.Context, kind model.AttemptKind, ref string) (*model.Attempt, error) {
	var query url.Values
	if ref != "" {
		query = url.Values{"ref": {ref}}
	}

	var resp attemptResponse
	if err := c.get(ctx, fetchPath(kind), query, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s questions: %w", kind, err)
	}
	if len(resp.Questions) == 0 {
		return nil, &Error{Code: ErrNoQuestions, Message: "the question set is empty"}
	}

	minutes := resp.TimeLimitMinutes
	if minutes == 0 {
		minutes = resp.DurationMinutes
	}

	return &model.Attempt{
		ID:        resp.AttemptID,
		Kind:      kind,
		Title:     resp.Title,
		Questions: resp.Questions,
		Duration:  time.Duration(minutes) * time.Minute,
		FetchedAt: time.Now(),
	}, nil
}

type saveAnswerRequest struct {
	QuestionID uuid.UUID    `json:"question_id"`
	Answer     model.Answer `json:"answer"`
}

// SaveAnswer autosaves a single answer. Best-effort: callers treat failures
// as transient and retry on the next autosave tick.
func (c *Client) SaveAnswer(ctx context.Context, kind model.AttemptKind, attemptID, questionID uuid.UUID, ans model.Answer) error {
	path := fmt.Sprintf("/%s/%s/submit-answer", answerSurface(kind), attemptID)
	if err := c.post(ctx, path, saveAnswerRequest{QuestionID: questionID, Answer: ans}, nil); err != nil {
		return fmt.Errorf("save answer: %w", err)
	}
	return nil
}

type submitRequest struct {
	AttemptID uuid.UUID               `json:"attempt_id"`
	Answers   []model.SubmittedAnswer `json:"answers"`
}

type submitResponse struct {
	status
	Results *model.Result `json:"results"`
}

// Submit sends the accumulated answers once and returns the graded result.
func (c *Client) Submit(ctx context.Context, kind model.AttemptKind, attemptID uuid.UUID, answers []model.SubmittedAnswer) (*model.Result, error) {
	path := "/tests/complete"
	if kind == model.KindAssessment {
		path = "/assessments/submit"
	}

	var resp submitResponse
	if err := c.post(ctx, path, submitRequest{AttemptID: attemptID, Answers: answers}, &resp); err != nil {
		return nil, fmt.Errorf("submit %s: %w", kind, err)
	}
	if resp.Results == nil {
		return nil, &Error{Code: ErrInternal, Message: "submission accepted but no results returned"}
	}
	return resp.Results, nil
}

// AttemptBackend binds the client to one attempt kind so the session engine
// can save and submit without knowing endpoint layouts.
type AttemptBackend struct {
	c    *Client
	kind model.AttemptKind
}

// Backend returns the kind-bound view of the client used by the session
// engine.
func (c *Client) Backend(kind model.AttemptKind) *AttemptBackend {
	return &AttemptBackend{c: c, kind: kind}
}

func (b *AttemptBackend) SaveAnswer(ctx context.Context, attemptID, questionID uuid.UUID, ans model.Answer) error {
	return b.c.SaveAnswer(ctx, b.kind, attemptID, questionID, ans)
}

func (b *AttemptBackend) Submit(ctx context.Context, attemptID uuid.UUID, answers []model.SubmittedAnswer) (*model.Result, error) {
	return b.c.Submit(ctx, b.kind, attemptID, answers)
}
