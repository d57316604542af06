package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer token attached to every request. An empty
// token means the request goes out unauthenticated (login only).
type TokenSource interface {
	Token() string
}

// Client is the JSON/HTTPS client for the Mentora REST backend. All platform
// state changes go through it; the client holds no server state of its own.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a Client. timeout bounds each call; certificate downloads get
// a longer, size-dependent allowance.
func New(baseURL string, tokens TokenSource, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		timeout: timeout,
		log:     log.With().Str("component", "api").Logger(),
	}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// status is the success/error frame every response carries. Per-call
// response structs embed it so payload fields decode in the same pass.
type status struct {
	Success bool       `json:"success"`
	Error   *errorBody `json:"error,omitempty"`
}

func (s *status) frame() *status { return s }

type framed interface{ frame() *status }

// doJSON performs one API call. out must embed status (or be nil for calls
// whose ack body is irrelevant).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var fallback status
	target := out
	if target == nil {
		target = &fallback
	}
	// Tolerate empty or non-JSON bodies; the status code still determines
	// the outcome below.
	var decodeErr error
	decoded := false
	if len(bytes.TrimSpace(data)) > 0 {
		decodeErr = json.Unmarshal(data, target)
		decoded = decodeErr == nil
	}

	frame := &fallback
	if f, ok := target.(framed); ok {
		frame = f.frame()
	}

	if resp.StatusCode >= http.StatusBadRequest || (decoded && !frame.Success) {
		apiErr := &Error{Status: resp.StatusCode, Code: codeForStatus(resp.StatusCode)}
		if frame.Error != nil {
			if frame.Error.Code != "" {
				apiErr.Code = frame.Error.Code
			}
			apiErr.Message = frame.Error.Message
			apiErr.Fields = frame.Error.Fields
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// WebSocketURL converts the base URL into the ws(s) endpoint for the given
// path, with the bearer token as a query param (browsers and this client
// cannot send headers on upgrade requests).
func (c *Client) WebSocketURL(path string) string {
	u := c.baseURL + path
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	if token := c.tokens.Token(); token != "" {
		u += "?token=" + url.QueryEscape(token)
	}
	return u
}
