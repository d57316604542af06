// Package appctx holds the application-wide context that used to be implicit
// global state: the bearer token and the authenticated user. It has an
// explicit lifecycle (Init hydrates the token from disk, Teardown clears it
// and every dependent cache) so nothing auth-scoped can outlive a logout.
package appctx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stemsi/mentora-cli/internal/model"
)

// ErrNotAuthenticated is returned by operations that need a valid token when
// none is present.
var ErrNotAuthenticated = errors.New("not authenticated")

// AppContext is safe for concurrent use; pollers and the session engine read
// the token while the interactive loop may replace it.
type AppContext struct {
	mu    sync.RWMutex
	token string
	user  *model.User

	path string
	now  func() time.Time
	log  zerolog.Logger
}

// New creates an AppContext persisting its token at path.
func New(path string, log zerolog.Logger) *AppContext {
	return &AppContext{
		path: path,
		now:  time.Now,
		log:  log.With().Str("component", "appctx").Logger(),
	}
}

// Init hydrates the token from disk. A missing file is not an error; the
// user simply is not logged in. A token past its exp claim is discarded so
// callers never start work with credentials the backend will reject.
func (a *AppContext) Init() error {
	raw, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read token file: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return nil
	}

	if expired, err := tokenExpired(token, a.now()); err != nil {
		a.log.Warn().Err(err).Msg("Stored token is malformed, discarding")
		return a.Teardown()
	} else if expired {
		a.log.Debug().Msg("Stored token expired, discarding")
		return a.Teardown()
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
	return nil
}

// SetAuth stores a fresh token and user after login, persisting the token
// for the next run.
func (a *AppContext) SetAuth(token string, user *model.User) error {
	a.mu.Lock()
	a.token = token
	a.user = user
	a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(a.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Teardown clears the in-memory auth state and removes the persisted token.
func (a *AppContext) Teardown() error {
	a.mu.Lock()
	a.token = ""
	a.user = nil
	a.mu.Unlock()

	if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// Token implements api.TokenSource.
func (a *AppContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Authenticated reports whether a token is loaded.
func (a *AppContext) Authenticated() bool {
	return a.Token() != ""
}

// User returns the cached profile, which may be nil until fetched.
func (a *AppContext) User() *model.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// SetUser caches the profile fetched from the backend.
func (a *AppContext) SetUser(u *model.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

// tokenExpired inspects the exp claim without verifying the signature.
// Verification is the backend's job; the client only wants to avoid sending
// requests doomed to 401.
func tokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, fmt.Errorf("parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return false, nil
	}
	return exp.Before(now), nil
}
