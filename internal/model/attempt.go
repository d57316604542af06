package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptKind identifies which timed question set a session runs against.
// The platform exposes three near-synonymous surfaces (assessments, tests,
// weekly evaluations); the session engine treats them uniformly and only the
// API layer cares which endpoints serve them.
type AttemptKind string

const (
	KindAssessment       AttemptKind = "assessment"
	KindModuleTest       AttemptKind = "module"
	KindFinalTest        AttemptKind = "final"
	KindCourseTest       AttemptKind = "course"
	KindWeeklyEvaluation AttemptKind = "evaluation"
)

// Final reports whether this kind can reach the certificate threshold.
// Only final and course tests issue certificates.
func (k AttemptKind) Final() bool {
	return k == KindFinalTest || k == KindCourseTest
}

// Attempt is a loaded question set the user is about to take. Created by the
// backend when the user starts, discarded client-side once results render.
type Attempt struct {
	ID        uuid.UUID     `json:"attempt_id"`
	Kind      AttemptKind   `json:"kind"`
	Title     string        `json:"title,omitempty"`
	Questions []Question    `json:"questions"`
	Duration  time.Duration `json:"-"`
	FetchedAt time.Time     `json:"-"`
}
