package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stemsi/mentora-cli/internal/model"
)

// ErrAnswerRequired blocks forward navigation past an unanswered question
// (the soft gate). Backward navigation is never gated.
var ErrAnswerRequired = errors.New("answer the current question before moving on")

// IncompleteError is the hard gate's refusal: the session cannot be
// submitted manually while any question lacks an answer. Missing preserves
// question order.
type IncompleteError struct {
	Missing []uuid.UUID
}

func (e *IncompleteError) Error() string {
	if len(e.Missing) == 1 {
		return "1 question remaining"
	}
	return fmt.Sprintf("%d questions remaining", len(e.Missing))
}

// checkCurrent is the soft gate: nil when the question has an answer.
func checkCurrent(q model.Question, store *AnswerStore) error {
	if !store.Has(q.ID) {
		return ErrAnswerRequired
	}
	return nil
}

// checkAll is the hard gate: nil when every question has an answer,
// otherwise an IncompleteError carrying the exact unanswered set. Forced
// submission on timer expiry bypasses this check entirely.
func checkAll(questions []model.Question, store *AnswerStore) error {
	missing := store.Unanswered(questions)
	if len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}
	return nil
}
