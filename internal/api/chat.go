package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stemsi/mentora-cli/internal/model"
)

type messagesResponse struct {
	status
	Messages []model.Message `json:"messages"`
}

// ListMessages returns mentor-chat messages for a course, newest last.
// since (a message ID) limits the response to messages after it; empty
// fetches the full recent window.
func (c *Client) ListMessages(ctx context.Context, courseID, since string) ([]model.Message, error) {
	var query url.Values
	if since != "" {
		query = url.Values{"since": {since}}
	}

	var resp messagesResponse
	if err := c.get(ctx, "/courses/"+courseID+"/messages", query, &resp); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return resp.Messages, nil
}

type sendMessageResponse struct {
	status
	Message *model.Message `json:"message"`
}

// SendMessage posts a chat message to the course mentor.
func (c *Client) SendMessage(ctx context.Context, courseID string, req model.SendMessageRequest) (*model.Message, error) {
	var resp sendMessageResponse
	if err := c.post(ctx, "/courses/"+courseID+"/messages", req, &resp); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return resp.Message, nil
}
