package prime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds returned by the wallet client. Match them with errors.Is.
var (
	ErrConfiguration   = errors.New("invalid client configuration")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAuthentication  = errors.New("authentication rejected")
	ErrNotFound        = errors.New("not found")
	ErrNotReady        = errors.New("wallet not ready")
	ErrAlreadyExists   = errors.New("already exists")
	ErrTransient       = errors.New("transient network failure")
	ErrRemote          = errors.New("remote error")
)

const maxErrorBody = 512

// RemoteError is a non-2xx answer from Prime. Kind is one of the sentinel
// errors above and is what errors.Is matches against.
type RemoteError struct {
	Kind       error
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("%s %s: %v (status %d): %s", e.Method, e.Path, e.Kind, e.StatusCode, body)
}

func (e *RemoteError) Unwrap() error {
	return e.Kind
}

// IsRetryable reports whether the caller may retry the failed call after a delay
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, ErrNotReady)
}

// Kind returns a short label for the error kind, for logs and result files
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrAuthentication):
		return "authentication"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrTransient):
		return "transient"
	case errors.Is(err, ErrRemote):
		return "remote"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unknown"
	}
}

// requestKind lets the status classifier recognise endpoint specific answers
type requestKind int

const (
	kindDefault requestKind = iota
	kindDepositInstructions
	kindCreateWallet
)

var notReadyMarkers = []string{
	"not active",
	"not yet active",
	"inactive",
	"not ready",
	"pending activation",
	"still being created",
}

func newRemoteError(kind requestKind, method, path string, status int, body []byte) *RemoteError {
	return &RemoteError{
		Kind:       classifyStatus(kind, status, body),
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       string(body),
	}
}

func classifyStatus(kind requestKind, status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	}

	lower := strings.ToLower(string(body))
	if kind == kindDepositInstructions {
		if status == http.StatusTooEarly {
			return ErrNotReady
		}
		for _, marker := range notReadyMarkers {
			if strings.Contains(lower, marker) {
				return ErrNotReady
			}
		}
	}
	if kind == kindCreateWallet && strings.Contains(lower, "already exists") {
		return ErrAlreadyExists
	}

	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	default:
		return ErrRemote
	}
}

func transportError(method, path string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return fmt.Errorf("%s %s: %w: %w", method, path, ErrTransient, err)
}
