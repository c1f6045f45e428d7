package service

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is raised at client construction, before any call attempt.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// ErrMalformedResponse means the model output contained no parseable JSON
// even after salvage. Callers should treat it as "retry generation", not as
// text worth displaying.
var ErrMalformedResponse = errors.New("no parseable JSON in model output")

// ProviderError carries the last HTTP status and a truncated response body
// from the completion endpoint. Retryable reports whether the status was in
// the retry set; a retryable error surfacing means retries were exhausted.
type ProviderError struct {
	Status    int
	Body      string
	Retryable bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion request failed with status %d: %s", e.Status, e.Body)
}
