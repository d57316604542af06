package render

import (
	"fmt"
	"io"
	"time"

	"github.com/stemsi/mentora-cli/internal/model"
)

// Clock formats a remaining duration as mm:ss (or h:mm:ss past the hour).
func Clock(remaining time.Duration) string {
	remaining = remaining.Round(time.Second)
	h := int(remaining.Hours())
	m := int(remaining.Minutes()) % 60
	s := int(remaining.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Question renders one question with its options and the user's current
// answer, if any.
func Question(w io.Writer, idx, total int, q model.Question, current *model.Answer) {
	bold.Fprintf(w, "Question %d of %d", idx+1, total)
	if q.Category != "" {
		faint.Fprintf(w, "  [%s]", q.Category)
	}
	if q.Points > 0 {
		faint.Fprintf(w, "  (%d pts)", q.Points)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, q.Text)

	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		for _, opt := range q.OptionList() {
			marker := " "
			if current != nil && current.Option == opt.Token {
				marker = ">"
			}
			fmt.Fprintf(w, " %s %s) %s\n", marker, opt.Token, opt.Text)
		}
	case model.QuestionTypeCoding:
		faint.Fprintln(w, "Coding question: use `code <language>` then enter your solution.")
		if current != nil && current.Code != "" {
			fmt.Fprintf(w, "Current answer (%s):\n%s\n", current.Language, current.Code)
		}
	case model.QuestionTypeEssay:
		faint.Fprintln(w, "Essay question: use `essay` then enter your text.")
		if current != nil && current.Text != "" {
			fmt.Fprintf(w, "Current answer:\n%s\n", current.Text)
		}
	}
}

// Progress renders the answered/total line with the session clock.
func Progress(w io.Writer, answered, total int, remaining time.Duration, timed bool) {
	if timed {
		fmt.Fprintf(w, "Answered %d/%d, time left %s\n", answered, total, Clock(remaining))
		return
	}
	fmt.Fprintf(w, "Answered %d/%d\n", answered, total)
}
