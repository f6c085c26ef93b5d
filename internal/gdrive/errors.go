// Package gdrive adapts the Google Drive v3 API to the small set of folder
// primitives gdrive-go needs: list, get, create, delete, open content, and
// storage quota. Responses are normalized into Entry and Quota values and API
// failures are classified into package sentinels.
package gdrive

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for HTTP status code classification.
// Use errors.Is(err, gdrive.ErrNotFound) to check.
var (
	ErrBadRequest   = errors.New("gdrive: bad request")
	ErrUnauthorized = errors.New("gdrive: unauthorized")
	ErrForbidden    = errors.New("gdrive: forbidden")
	ErrNotFound     = errors.New("gdrive: not found")
	ErrThrottled    = errors.New("gdrive: throttled")
	ErrServerError  = errors.New("gdrive: server error")
)

// Drive reports rate limiting as 403 with one of these reasons.
var throttleReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// APIError wraps a sentinel error with the HTTP status code, the first
// error reason reported by Drive, and the API message for debugging.
type APIError struct {
	Op         string
	StatusCode int
	Reason     string
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("gdrive: %s: HTTP %d (%s): %s", e.Op, e.StatusCode, e.Reason, e.Message)
	}

	return fmt.Sprintf("gdrive: %s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classify converts an error returned by the Drive SDK into an *APIError when
// it carries an HTTP status, or wraps it with the operation name otherwise
// (network failures, canceled contexts).
func classify(op string, err error) error {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return fmt.Errorf("gdrive: %s: %w", op, err)
	}

	apiErr := &APIError{
		Op:         op,
		StatusCode: gErr.Code,
		Message:    gErr.Message,
	}

	if len(gErr.Errors) > 0 {
		apiErr.Reason = gErr.Errors[0].Reason
	}

	if apiErr.Message == "" {
		apiErr.Message = gErr.Body
	}

	apiErr.Err = classifyStatus(gErr.Code, apiErr.Reason)

	return apiErr
}

// classifyStatus maps an HTTP status code and Drive error reason to a
// sentinel error. Returns nil for codes without a sentinel.
func classifyStatus(code int, reason string) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		if throttleReasons[reason] {
			return ErrThrottled
		}

		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
