package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout marks a request that hit the per-call deadline, as opposed
	// to a transport failure. Callers match with errors.Is.
	ErrTimeout = errors.New("llm: request timed out")

	// ErrNoContent means the model returned only tool calls or an empty body
	// where plain text was required.
	ErrNoContent = errors.New("llm: model returned no text content")
)

// APIError is a non-2xx response from the chat endpoint. Body carries the
// response body verbatim; these are never retried here.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm: api error: status %d: %s", e.StatusCode, e.Body)
}
