package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCode is a typed error code enum for consistent API error identification.
// Codes mirror the backend's error envelope; unknown codes are preserved
// verbatim so callers can still switch on them.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalid     ErrCode = "SESSION_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Session-taking ────────────────────────────────────────────────
	ErrAttemptNotFound  ErrCode = "ATTEMPT_NOT_FOUND"
	ErrAttemptCompleted ErrCode = "ATTEMPT_COMPLETED"
	ErrNoQuestions      ErrCode = "NO_QUESTIONS"

	// ─── Transport ─────────────────────────────────────────────────────
	ErrUnreachable ErrCode = "UNREACHABLE"
	ErrInternal    ErrCode = "INTERNAL_ERROR"
)

// Error is a failed API call. Status is the HTTP status code, zero when the
// request never reached the backend.
type Error struct {
	Code    ErrCode
	Message string
	Status  int
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

// CodeOf extracts the ErrCode from err, or ErrUnreachable for transport-level
// failures that never produced a backend response.
func CodeOf(err error) ErrCode {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ErrUnreachable
}

// IsAuthError reports whether err means the stored credentials are no longer
// valid and the user must log in again.
func IsAuthError(err error) bool {
	switch CodeOf(err) {
	case ErrSessionInvalid, ErrTokenExpired:
		return true
	}
	return false
}

// Transient reports whether err is worth retrying later without user action:
// transport failures and server-side errors, but never 4xx rejections.
func Transient(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err != nil
	}
	return apiErr.Status == 0 || apiErr.Status >= http.StatusInternalServerError
}

// codeForStatus maps an HTTP status to a fallback code when the backend
// envelope carries none.
func codeForStatus(status int) ErrCode {
	switch status {
	case http.StatusUnauthorized:
		return ErrSessionInvalid
	case http.StatusForbidden:
		return ErrSessionInvalid
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest:
		return ErrInvalidPayload
	default:
		return ErrInternal
	}
}
