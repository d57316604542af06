package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stemsi/mentora-cli/internal/model"
)

type notificationsResponse struct {
	status
	Notifications []model.Notification `json:"notifications"`
}

// ListNotifications returns notifications, unread first. unreadOnly filters
// out already-read ones.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	var query url.Values
	if unreadOnly {
		query = url.Values{"unread": {"true"}}
	}

	var resp notificationsResponse
	if err := c.get(ctx, "/notifications", query, &resp); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return resp.Notifications, nil
}

// MarkNotificationRead flags one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.post(ctx, "/notifications/"+id+"/read", nil, nil); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
