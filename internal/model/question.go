package model

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// QuestionType enumerates the kinds of questions a session can contain.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeCoding         QuestionType = "coding"
	QuestionTypeEssay          QuestionType = "essay"
)

// Question is a single question within a session. Immutable once loaded.
//
// Options is kept raw because the backend serves two shapes depending on the
// question source: an ordered list of option texts, or a token→text mapping.
// Use OptionList to get a normalized view.
type Question struct {
	ID         uuid.UUID       `json:"id"`
	Text       string          `json:"text"`
	Type       QuestionType    `json:"type"`
	Options    json.RawMessage `json:"options,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	Category   string          `json:"category,omitempty"`
	Points     int             `json:"points,omitempty"`
}

// Option is a selectable answer choice. Token is what gets submitted.
type Option struct {
	Token string
	Text  string
}

var optionTokens = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// OptionList normalizes the raw options into an ordered slice. List-shaped
// sources get positional tokens (A, B, C, ...); map-shaped sources keep their
// keys, sorted for a stable display order. Returns nil for non-choice
// questions or undecodable payloads.
func (q *Question) OptionList() []Option {
	if len(q.Options) == 0 {
		return nil
	}

	var asList []string
	if err := json.Unmarshal(q.Options, &asList); err == nil {
		opts := make([]Option, 0, len(asList))
		for i, text := range asList {
			if i >= len(optionTokens) {
				break
			}
			opts = append(opts, Option{Token: optionTokens[i], Text: text})
		}
		return opts
	}

	var asMap map[string]string
	if err := json.Unmarshal(q.Options, &asMap); err == nil {
		opts := make([]Option, 0, len(asMap))
		for token, text := range asMap {
			opts = append(opts, Option{Token: token, Text: text})
		}
		sort.Slice(opts, func(i, j int) bool { return opts[i].Token < opts[j].Token })
		return opts
	}

	return nil
}

// HasOption reports whether token is a valid choice for this question.
func (q *Question) HasOption(token string) bool {
	for _, opt := range q.OptionList() {
		if opt.Token == token {
			return true
		}
	}
	return false
}
