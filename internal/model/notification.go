package model

import "time"

// Notification is a platform notification (new message, grade posted,
// certificate issued, upcoming evaluation).
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
