package contract

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured        = errors.New("language model api key is not configured")
	ErrUpstreamUnavailable  = errors.New("failed to connect to language model endpoint")
	ErrUpstreamStatus       = errors.New("language model endpoint returned an error")
	ErrMalformedResponse    = errors.New("language model response violates expected structure")
	ErrIncompleteIntent     = errors.New("intent is missing required fields")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// UpstreamStatusError carries the status of a failed language model API
// call so the gateway can propagate it.
type UpstreamStatusError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%v: HTTP %d: %s", ErrUpstreamStatus, e.StatusCode, e.Detail)
}

func (e *UpstreamStatusError) Unwrap() error {
	return ErrUpstreamStatus
}
