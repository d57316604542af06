package model

import "time"

// Message is one mentor-chat message.
type Message struct {
	ID       string    `json:"id"`
	CourseID string    `json:"course_id,omitempty"`
	Sender   string    `json:"sender"`
	Body     string    `json:"body"`
	Mine     bool      `json:"mine"`
	SentAt   time.Time `json:"sent_at"`
}

// SendMessageRequest is the outgoing chat payload.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}
