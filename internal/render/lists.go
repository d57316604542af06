package render

import (
	"fmt"
	"io"

	"github.com/stemsi/mentora-cli/internal/model"
)

// Courses renders the catalog with per-course progress.
func Courses(w io.Writer, courses []model.Course) {
	if len(courses) == 0 {
		faint.Fprintln(w, "No courses enrolled.")
		return
	}
	for _, c := range courses {
		bold.Fprintf(w, "%s  %s\n", c.ID, c.Title)
		if c.Mentor != "" {
			faint.Fprintf(w, "    mentor: %s\n", c.Mentor)
		}
		fmt.Fprintf(w, "    %.0f%% complete\n", c.Progress)
	}
}

// CourseDetail renders one course with its module list.
func CourseDetail(w io.Writer, c *model.Course) {
	bold.Fprintln(w, c.Title)
	if c.Description != "" {
		fmt.Fprintln(w, c.Description)
	}
	for i, m := range c.Modules {
		mark := " "
		if m.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, " [%s] %d. %s\n", mark, i+1, m.Title)
	}
}

// Messages renders a chat transcript oldest-first.
func Messages(w io.Writer, msgs []model.Message) {
	for _, m := range msgs {
		ts := m.SentAt.Format("15:04")
		if m.Mine {
			green.Fprintf(w, "[%s] you: ", ts)
		} else {
			bold.Fprintf(w, "[%s] %s: ", ts, m.Sender)
		}
		fmt.Fprintln(w, m.Body)
	}
}

// Notification renders one notification; unread ones are highlighted.
func Notification(w io.Writer, n model.Notification) {
	ts := n.CreatedAt.Format("Jan 2 15:04")
	if n.Read {
		faint.Fprintf(w, "[%s] %s: %s\n", ts, n.Title, n.Body)
		return
	}
	yellow.Fprintf(w, "[%s] %s", ts, n.Title)
	fmt.Fprintf(w, ": %s\n", n.Body)
}

// Notifications renders a list of notifications.
func Notifications(w io.Writer, ns []model.Notification) {
	if len(ns) == 0 {
		faint.Fprintln(w, "No notifications.")
		return
	}
	for _, n := range ns {
		Notification(w, n)
	}
}

// Certificates renders the earned-certificate list.
func Certificates(w io.Writer, certs []model.Certificate) {
	if len(certs) == 0 {
		faint.Fprintln(w, "No certificates yet.")
		return
	}
	for _, c := range certs {
		green.Fprintf(w, "%s", c.ID)
		fmt.Fprintf(w, "  %s  (issued %s)\n", c.CourseTitle, c.IssuedAt.Format("2006-01-02"))
	}
}
