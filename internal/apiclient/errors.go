package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"carrental-client/internal/domain"
)

// ValidationDetail is one entry of a FastAPI validation error body
type ValidationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// APIError is any non-2xx backend response
type APIError struct {
	StatusCode int
	Operation  string
	Message    string
	Details    []ValidationDetail
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: backend returned %d", e.Operation, e.StatusCode)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	for _, d := range e.Details {
		fmt.Fprintf(&b, "; %v: %s", d.Loc, d.Msg)
	}
	return b.String()
}

// Is maps status codes onto the domain error taxonomy
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case domain.ErrUnauthenticated:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrTransport:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// decodeAPIError builds an APIError from a FastAPI error body.
// detail is either a string or a list of validation entries.
func decodeAPIError(operation string, status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Operation: operation}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		apiErr.Message = msg
		return apiErr
	}

	var details []ValidationDetail
	if err := json.Unmarshal(envelope.Detail, &details); err == nil {
		apiErr.Message = "validation error"
		apiErr.Details = details
		return apiErr
	}

	apiErr.Message = string(envelope.Detail)
	return apiErr
}
