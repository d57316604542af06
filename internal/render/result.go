// Package render turns platform entities into terminal output. Everything
// here is a pure function of its inputs: rendering never mutates session
// state.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/stemsi/mentora-cli/internal/model"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
	bold   = color.New(color.Bold)
	faint  = color.New(color.Faint)
)

// Result renders the graded outcome with the matching call-to-action:
// retry for a fail, view results for a pass, certificate download for a
// certificate-eligible pass.
func Result(w io.Writer, kind model.AttemptKind, r *model.Result) {
	fmt.Fprintf(w, "Score: %.0f%%  (%d/%d correct)\n",
		r.ScorePercentage, r.CorrectAnswers, r.TotalQuestions)

	switch r.Outcome(kind) {
	case model.OutcomeCertificate:
		green.Fprintln(w, "Passed! You earned a certificate.")
		if r.Certificate != nil {
			fmt.Fprintf(w, "Download your certificate: mentora certificates -download %s\n", r.Certificate.ID)
		} else {
			fmt.Fprintln(w, "Your certificate is being issued; check `mentora certificates` shortly.")
		}
	case model.OutcomePassed:
		green.Fprintln(w, "Passed")
		fmt.Fprintln(w, "View the detailed breakdown in your course results page.")
	case model.OutcomeFailed:
		red.Fprintln(w, "Not passed")
		fmt.Fprintf(w, "You need %.0f%% to pass. Review the material and retry.\n", model.PassThreshold)
	}
}
