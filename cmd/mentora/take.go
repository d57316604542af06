package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/stemsi/mentora-cli/internal/model"
	"github.com/stemsi/mentora-cli/internal/render"
	"github.com/stemsi/mentora-cli/internal/session"
)

const takeHelp = `Session commands:
  a <option>      answer the current multiple-choice question (e.g. a B)
  essay           enter an essay answer (finish with a single "." line)
  code <lang>     enter a coding answer (finish with a single "." line)
  n               next question (current must be answered)
  p               previous question
  g <number>      jump to question <number>
  time            show remaining time
  status          show progress
  submit          submit the session (every question must be answered)
  help            show this help
  quit            abandon the session`

func runTake(e *env, args []string) error {
	fs := flag.NewFlagSet("take", flag.ExitOnError)
	kindFlag := fs.String("kind", string(model.KindAssessment), "attempt kind: assessment, module, final, course, evaluation")
	ref := fs.String("ref", "", "course or module the test belongs to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireAuth(e); err != nil {
		return err
	}

	kind := model.AttemptKind(*kindFlag)
	ctx := context.Background()

	attempt, err := e.client.FetchAttempt(ctx, kind, *ref)
	if err != nil {
		return err
	}

	if attempt.Title != "" {
		color.New(color.Bold).Println(attempt.Title)
	}
	fmt.Printf("%d questions", len(attempt.Questions))
	if attempt.Duration > 0 {
		fmt.Printf(", %s time limit", timeLimit(attempt.Duration))
	}
	fmt.Println()

	expired := make(chan struct{})

	var sess *session.Session
	sess = session.New(attempt, e.client.Backend(kind), session.Options{
		AutosaveInterval: e.cfg.AutosaveInterval,
		AutoAdvanceDelay: e.cfg.AutoAdvanceDelay,
		OnAutoAdvance: func(newIndex int) {
			fmt.Println()
			showQuestion(sess, newIndex)
			prompt()
		},
		OnForcedSubmit: func(result *model.Result, err error) {
			fmt.Println()
			color.New(color.FgYellow, color.Bold).Println("Time is up. Submitting your answers.")
			if err != nil {
				color.New(color.FgRed).Printf("Automatic submission failed: %v\nUse `submit` to retry.\n", err)
				prompt()
				return
			}
			render.Result(os.Stdout, kind, result)
			close(expired)
		},
	}, e.log)
	defer sess.Close()

	if err := sess.Start(); err != nil {
		return err
	}

	_, idx := sess.Current()
	showQuestion(sess, idx)

	result, err := interact(sess, expired)
	if err != nil {
		return err
	}
	if result != nil {
		render.Result(os.Stdout, kind, result)
	}
	return nil
}

// interact runs the command loop until submission, expiry or quit. A nil
// result with nil error means the user quit or the forced-submit path already
// rendered.
func interact(sess *session.Session, expired <-chan struct{}) (*model.Result, error) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	prompt()
	for scanner.Scan() {
		select {
		case <-expired:
			return nil, nil
		default:
		}
		if sess.State() == session.StateSubmitted {
			return nil, nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			prompt()
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "a", "answer":
			token := strings.ToUpper(strings.TrimSpace(rest))
			if err := sess.SelectOption(token); err != nil {
				warn(err)
			}
		case "essay":
			text, err := readBlock(scanner, "Enter your answer, end with a single \".\" line:")
			if err != nil {
				return nil, err
			}
			if err := sess.SetEssay(text); err != nil {
				warn(err)
			}
		case "code":
			lang := strings.TrimSpace(rest)
			if lang == "" {
				warn(errors.New("usage: code <language>"))
				break
			}
			src, err := readBlock(scanner, "Enter your code, end with a single \".\" line:")
			if err != nil {
				return nil, err
			}
			if err := sess.SetCode(src, lang); err != nil {
				warn(err)
			}
		case "n", "next":
			if idx, err := sess.Next(); err != nil {
				warn(err)
			} else {
				showQuestion(sess, idx)
			}
		case "p", "prev", "previous":
			idx, err := sess.Previous()
			if err != nil {
				warn(err)
			} else {
				showQuestion(sess, idx)
			}
		case "g", "goto":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				warn(errors.New("usage: g <question number>"))
				break
			}
			idx, err := sess.GoTo(n - 1)
			if err != nil {
				warn(err)
			} else {
				showQuestion(sess, idx)
			}
		case "time":
			if sess.Attempt().Duration > 0 {
				fmt.Printf("Time left: %s\n", render.Clock(sess.Remaining()))
			} else {
				fmt.Println("This session is untimed.")
			}
		case "status":
			render.Progress(os.Stdout, sess.AnsweredCount(), len(sess.Attempt().Questions),
				sess.Remaining(), sess.Attempt().Duration > 0)
		case "submit":
			result, err := sess.Submit(context.Background())
			if err != nil {
				var incomplete *session.IncompleteError
				if errors.As(err, &incomplete) {
					warn(err)
					break
				}
				if errors.Is(err, session.ErrNotInProgress) || errors.Is(err, session.ErrSubmitInFlight) {
					warn(err)
					break
				}
				color.New(color.FgRed).Printf("Submission failed: %v\nYour answers are kept; try `submit` again.\n", err)
				break
			}
			return result, nil
		case "help", "h", "?":
			fmt.Println(takeHelp)
		case "quit", "q", "exit":
			fmt.Println("Session abandoned. Saved answers stay on the server.")
			return nil, nil
		default:
			warn(fmt.Errorf("unknown command %q (try `help`)", cmd))
		}
		prompt()
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return nil, nil
}

func showQuestion(sess *session.Session, idx int) {
	q := sess.Attempt().Questions[idx]
	var current *model.Answer
	if ans, ok := sess.Answer(q.ID); ok {
		current = &ans
	}
	render.Question(os.Stdout, idx, len(sess.Attempt().Questions), q, current)
}

func prompt() {
	fmt.Print("> ")
}

func warn(err error) {
	color.New(color.FgYellow).Println(err.Error())
}

// readBlock collects lines from the shared scanner until a lone "."
// terminator.
func readBlock(scanner *bufio.Scanner, intro string) (string, error) {
	fmt.Println(intro)
	var b strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// timeLimit pretty-prints the attempt duration in minutes.
func timeLimit(d time.Duration) string {
	return fmt.Sprintf("%d min", int(d.Minutes()))
}
