package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeClassification(t *testing.T) {
	tests := []struct {
		name   string
		kind   AttemptKind
		result Result
		want   Outcome
	}{
		{
			name:   "failing score on a module test",
			kind:   KindModuleTest,
			result: Result{ScorePercentage: 40, Passed: false},
			want:   OutcomeFailed,
		},
		{
			name:   "passing score without certificate",
			kind:   KindModuleTest,
			result: Result{ScorePercentage: 75, Passed: true},
			want:   OutcomePassed,
		},
		{
			name:   "perfect final test earns a certificate",
			kind:   KindFinalTest,
			result: Result{ScorePercentage: 100, Passed: true},
			want:   OutcomeCertificate,
		},
		{
			name:   "perfect course test earns a certificate",
			kind:   KindCourseTest,
			result: Result{ScorePercentage: 100, Passed: true},
			want:   OutcomeCertificate,
		},
		{
			name:   "perfect module test does not certify",
			kind:   KindModuleTest,
			result: Result{ScorePercentage: 100, Passed: true},
			want:   OutcomePassed,
		},
		{
			name:   "explicit certificate wins regardless of kind",
			kind:   KindAssessment,
			result: Result{ScorePercentage: 92, Passed: true, Certificate: &Certificate{ID: "c-1"}},
			want:   OutcomeCertificate,
		},
		{
			name:   "backend pass flag overrides a sub-threshold score",
			kind:   KindModuleTest,
			result: Result{ScorePercentage: 55, Passed: true},
			want:   OutcomePassed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Outcome(tt.kind))
		})
	}
}

func TestAttemptKindFinal(t *testing.T) {
	assert.True(t, KindFinalTest.Final())
	assert.True(t, KindCourseTest.Final())
	assert.False(t, KindAssessment.Final())
	assert.False(t, KindModuleTest.Final())
	assert.False(t, KindWeeklyEvaluation.Final())
}
