package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"

	"github.com/stemsi/mentora-cli/internal/model"
	"github.com/stemsi/mentora-cli/internal/poller"
	"github.com/stemsi/mentora-cli/internal/render"
	"github.com/stemsi/mentora-cli/internal/validator"
)

func runChat(e *env, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	courseID := fs.String("course", "", "course whose mentor chat to open (required)")
	send := fs.String("send", "", "send one message and exit")
	watch := fs.Bool("watch", false, "keep polling for new messages until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *courseID == "" {
		return fmt.Errorf("chat: -course is required")
	}
	if err := requireAuth(e); err != nil {
		return err
	}

	ctx := context.Background()

	if *send != "" {
		req := model.SendMessageRequest{Body: *send}
		if fields := validator.Struct(req); fields != nil {
			for field, msg := range fields {
				color.New(color.FgRed).Fprintf(os.Stderr, "  %s: %s\n", field, msg)
			}
			return fmt.Errorf("invalid message")
		}
		if _, err := e.client.SendMessage(ctx, *courseID, req); err != nil {
			return err
		}
		fmt.Println("Sent.")
		return nil
	}

	msgs, err := e.client.ListMessages(ctx, *courseID, "")
	if err != nil {
		return err
	}
	render.Messages(os.Stdout, msgs)

	if !*watch {
		return nil
	}

	// Watch mode: poll for messages after the newest one we have seen.
	// Downgrades gracefully: a failed poll is retried on the next tick.
	var mu sync.Mutex
	lastID := ""
	if len(msgs) > 0 {
		lastID = msgs[len(msgs)-1].ID
	}

	p := poller.New("chat", e.cfg.ChatPollInterval, func(ctx context.Context) error {
		mu.Lock()
		since := lastID
		mu.Unlock()

		fresh, err := e.client.ListMessages(ctx, *courseID, since)
		if err != nil {
			return err
		}
		if len(fresh) == 0 {
			return nil
		}

		render.Messages(os.Stdout, fresh)
		mu.Lock()
		lastID = fresh[len(fresh)-1].ID
		mu.Unlock()
		return nil
	}, e.log)

	p.Start()
	defer p.Stop()

	waitForInterrupt()
	return nil
}

func waitForInterrupt() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	fmt.Println()
}
