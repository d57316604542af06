package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/stemsi/mentora-cli/internal/model"
	"github.com/stemsi/mentora-cli/internal/poller"
	"github.com/stemsi/mentora-cli/internal/render"
)

func runNotifications(e *env, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep watching for new notifications until interrupted")
	unread := fs.Bool("unread", false, "list unread notifications only")
	markRead := fs.String("read", "", "mark one notification as read by ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireAuth(e); err != nil {
		return err
	}

	ctx := context.Background()

	if *markRead != "" {
		if err := e.client.MarkNotificationRead(ctx, *markRead); err != nil {
			return err
		}
		fmt.Println("Marked as read.")
		return nil
	}

	if !*watch {
		ns, err := e.client.ListNotifications(ctx, *unread)
		if err != nil {
			return err
		}
		render.Notifications(os.Stdout, ns)
		return nil
	}

	src := notificationSource(e)
	src.Start()
	defer src.Stop()

	waitForInterrupt()
	return nil
}

// notificationSource picks the watch transport: a WebSocket push stream when
// the backend supports it, otherwise an interval poller over the unread list.
// Both satisfy poller.Source, so the caller is transport-agnostic.
func notificationSource(e *env) poller.Source {
	deliver := func(n model.Notification) {
		render.Notification(os.Stdout, n)
	}

	if e.cfg.EnablePush {
		return poller.NewPushStream(e.client.WebSocketURL("/notifications/stream"), deliver, e.log)
	}

	var mu sync.Mutex
	seen := make(map[string]struct{})

	return poller.New("notifications", e.cfg.NotifPollInterval, func(ctx context.Context) error {
		ns, err := e.client.ListNotifications(ctx, true)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		for _, n := range ns {
			if _, ok := seen[n.ID]; ok {
				continue
			}
			seen[n.ID] = struct{}{}
			deliver(n)
		}
		return nil
	}, e.log)
}
