package api

import (
	"context"
	"fmt"

	"github.com/stemsi/mentora-cli/internal/model"
)

type loginResponse struct {
	status
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login exchanges credentials for a bearer token. The caller is responsible
// for persisting the token into the application context.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (string, *model.User, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", req, &resp); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return resp.Token, resp.User, nil
}

type meResponse struct {
	status
	User *model.User `json:"user"`
}

// Me returns the profile behind the current token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var resp meResponse
	if err := c.get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return resp.User, nil
}
