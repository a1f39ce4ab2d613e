package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Messages   []string
	Body       []byte
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Message) == 0 {
		return apiErr
	}

	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		if single != "" {
			apiErr.Messages = []string{single}
		}

		return apiErr
	}

	var many []string
	if err := json.Unmarshal(payload.Message, &many); err == nil {
		apiErr.Messages = many
	}

	return apiErr
}

func (e *APIError) Error() string {
	if m := e.Message(); m != "" {
		return fmt.Sprintf("backend responded %d: %s", e.StatusCode, m)
	}

	return fmt.Sprintf("backend responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Message is the first server-supplied message, if any.
func (e *APIError) Message() string {
	if len(e.Messages) == 0 {
		return ""
	}

	return e.Messages[0]
}

// ErrorMessage picks the text shown to the user for err: the server message
// when the backend sent one, fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message() != "" {
		return apiErr.Message()
	}

	return fallback
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
