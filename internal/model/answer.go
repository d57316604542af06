package model

import "github.com/google/uuid"

// Answer is a user's current answer to one question. Which fields are set
// depends on the question type: Option for multiple choice, Code+Language
// for coding, Text for essays.
//
// An Answer exists only after the user has interacted with the question;
// absence from the store means "unanswered", which is distinct from an
// answer holding an empty string.
type Answer struct {
	Option   string `json:"option,omitempty"`
	Text     string `json:"text,omitempty"`
	Code     string `json:"code,omitempty"`
	Language string `json:"language,omitempty"`
}

// CodingAnswer is the validated payload for a coding question.
type CodingAnswer struct {
	Code     string `json:"code" validate:"required"`
	Language string `json:"language" validate:"required,oneof=go python javascript java c cpp"`
}

// SubmittedAnswer is one entry of the final submission payload. A nil Answer
// marshals to null: on forced (timeout) submission unanswered questions are
// sent explicitly unanswered rather than omitted.
type SubmittedAnswer struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     *Answer   `json:"answer"`
}
