package model

import "time"

// Course is a catalog entry with its module listing.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Mentor      string    `json:"mentor,omitempty"`
	Modules     []Module  `json:"modules,omitempty"`
	Progress    float64   `json:"progress,omitempty"`
	EnrolledAt  time.Time `json:"enrolled_at,omitempty"`
}

// Module is a single unit within a course.
type Module struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	HasTest   bool   `json:"has_test"`
}
