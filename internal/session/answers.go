package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/stemsi/mentora-cli/internal/model"
)

// AnswerStore maps question IDs to the user's current answers. Writes are
// last-write-wins per question. Presence in the store is what "answered"
// means: an answer holding an empty string is still an answer, absence is
// not.
//
// The store also tracks which answers changed since the last autosave flush
// so the ticker only sends what moved.
type AnswerStore struct {
	mu      sync.Mutex
	answers map[uuid.UUID]model.Answer
	dirty   map[uuid.UUID]struct{}
}

// NewAnswerStore creates an empty store.
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{
		answers: make(map[uuid.UUID]model.Answer),
		dirty:   make(map[uuid.UUID]struct{}),
	}
}

// Set records the answer for a question, replacing any previous value, and
// marks it for the next autosave flush.
func (s *AnswerStore) Set(questionID uuid.UUID, ans model.Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[questionID] = ans
	s.dirty[questionID] = struct{}{}
}

// Get returns the answer for a question and whether one exists.
func (s *AnswerStore) Get(questionID uuid.UUID) (model.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ans, ok := s.answers[questionID]
	return ans, ok
}

// Has reports whether the question has been answered.
func (s *AnswerStore) Has(questionID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.answers[questionID]
	return ok
}

// Len returns the number of answered questions.
func (s *AnswerStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// TakeDirty atomically snapshots and clears the changed set. An answer
// edited between the snapshot and a failed save is not lost: the failure
// path re-marks it via MarkDirty and last-write-wins applies.
func (s *AnswerStore) TakeDirty() map[uuid.UUID]model.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.dirty) == 0 {
		return nil
	}
	out := make(map[uuid.UUID]model.Answer, len(s.dirty))
	for id := range s.dirty {
		out[id] = s.answers[id]
	}
	s.dirty = make(map[uuid.UUID]struct{})
	return out
}

// MarkDirty re-queues a question for the next flush after a failed save.
func (s *AnswerStore) MarkDirty(questionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[questionID]; ok {
		s.dirty[questionID] = struct{}{}
	}
}

// Unanswered returns, in question order, the IDs from questions that have no
// answer yet.
func (s *AnswerStore) Unanswered(questions []model.Question) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var missing []uuid.UUID
	for _, q := range questions {
		if _, ok := s.answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}
