package model

import "time"

// PassThreshold is the minimum score percentage counted as a pass when the
// backend omits an explicit pass flag.
const PassThreshold = 60.0

// CertificateThreshold is the score a final or course test must reach for
// certificate issuance.
const CertificateThreshold = 100.0

// Result is the backend's grading response for a submitted session.
// Produced once per completed session; never mutated locally.
type Result struct {
	ScorePercentage float64      `json:"score_percentage"`
	CorrectAnswers  int          `json:"correct_answers"`
	TotalQuestions  int          `json:"total_questions"`
	Passed          bool         `json:"passed"`
	Certificate     *Certificate `json:"certificate,omitempty"`
}

// Certificate describes an issued certificate. The PDF itself is an opaque
// download from URL.
type Certificate struct {
	ID          string    `json:"id"`
	CourseTitle string    `json:"course_title"`
	URL         string    `json:"url"`
	IssuedAt    time.Time `json:"issued_at"`
}

// Outcome is the three-way classification of a Result.
type Outcome string

const (
	OutcomeFailed      Outcome = "FAILED"
	OutcomePassed      Outcome = "PASSED"
	OutcomeCertificate Outcome = "CERTIFICATE"
)

// Outcome classifies a result for the given attempt kind. Certificate
// eligibility requires a final/course test at the certificate threshold, or
// an explicit certificate descriptor from the backend.
func (r *Result) Outcome(kind AttemptKind) Outcome {
	if !r.Passed && r.ScorePercentage < PassThreshold {
		return OutcomeFailed
	}
	if r.Certificate != nil {
		return OutcomeCertificate
	}
	if kind.Final() && r.ScorePercentage >= CertificateThreshold {
		return OutcomeCertificate
	}
	return OutcomePassed
}
