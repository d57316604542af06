package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/stemsi/mentora-cli/internal/model"
)

func init() {
	// Plain text output so assertions do not depend on ANSI escapes.
	color.NoColor = true
}

func TestResultCertificateOutcome(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, model.KindFinalTest, &model.Result{
		ScorePercentage: 100,
		CorrectAnswers:  10,
		TotalQuestions:  10,
		Passed:          true,
		Certificate:     &model.Certificate{ID: "cert-7", CourseTitle: "Go Basics"},
	})

	out := buf.String()
	assert.Contains(t, out, "Score: 100%")
	assert.Contains(t, out, "earned a certificate")
	assert.Contains(t, out, "certificates -download cert-7")
}

func TestResultCertificateWithoutDescriptor(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, model.KindCourseTest, &model.Result{ScorePercentage: 100, Passed: true})

	assert.Contains(t, buf.String(), "being issued")
}

func TestResultPassedOutcome(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, model.KindModuleTest, &model.Result{
		ScorePercentage: 75,
		CorrectAnswers:  15,
		TotalQuestions:  20,
		Passed:          true,
	})

	out := buf.String()
	assert.Contains(t, out, "Passed")
	assert.NotContains(t, out, "certificate")
	assert.Contains(t, out, "detailed breakdown")
}

func TestResultFailedOutcome(t *testing.T) {
	var buf bytes.Buffer
	Result(&buf, model.KindModuleTest, &model.Result{
		ScorePercentage: 40,
		CorrectAnswers:  8,
		TotalQuestions:  20,
	})

	out := buf.String()
	assert.Contains(t, out, "Not passed")
	assert.Contains(t, out, "retry")
}

func TestClock(t *testing.T) {
	assert.Equal(t, "45:00", Clock(45*time.Minute))
	assert.Equal(t, "00:59", Clock(59*time.Second))
	assert.Equal(t, "00:00", Clock(0))
	assert.Equal(t, "1:02:03", Clock(time.Hour+2*time.Minute+3*time.Second))
}

func TestQuestionMarksCurrentSelection(t *testing.T) {
	q := model.Question{
		ID:      uuid.New(),
		Text:    "Pick a color",
		Type:    model.QuestionTypeMultipleChoice,
		Options: json.RawMessage(`["red","green"]`),
	}

	var buf bytes.Buffer
	Question(&buf, 0, 3, q, &model.Answer{Option: "B"})

	out := buf.String()
	assert.Contains(t, out, "Question 1 of 3")
	assert.Contains(t, out, "   A) red")
	assert.Contains(t, out, " > B) green")
}

func TestProgressShowsClockOnlyWhenTimed(t *testing.T) {
	var buf bytes.Buffer
	Progress(&buf, 2, 5, 90*time.Second, true)
	assert.Contains(t, buf.String(), "Answered 2/5")
	assert.Contains(t, buf.String(), "01:30")

	buf.Reset()
	Progress(&buf, 2, 5, 0, false)
	assert.NotContains(t, buf.String(), "time left")
}
