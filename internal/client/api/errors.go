package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrNoToken      = errors.New("login response carried no token")
)

// GenericMessage is shown when the response body explains nothing.
const GenericMessage = "Something went wrong. Please try again."

// maxErrorBody bounds how much of an error body is read.
const maxErrorBody = 4 << 10

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Unwrap exposes the sentinel matching the status, if any.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return nil
}

// Message returns the user-facing text for err: the server's message for
// *Error, the generic text otherwise.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "Server unavailable. Check your connection and try again."
	}
	return GenericMessage
}

// extractMessage pulls a human message out of an error body: JSON fields
// message, error or detail first, then the raw text.
func extractMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return GenericMessage
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, k := range []string{"message", "error", "detail"} {
			if s, ok := fields[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return GenericMessage
	}

	if strings.HasPrefix(text, "<") {
		// HTML error pages say nothing useful
		return GenericMessage
	}
	return text
}
