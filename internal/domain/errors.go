package domain

import (
	"context"
	"errors"
	"fmt"
)

// Error types reported to callers inside the error event.
const (
	ErrorTypeUnknownProvider = "unknown_provider"
	ErrorTypeUpstream        = "upstream_error"
	ErrorTypeTransport       = "transport_error"
	ErrorTypeInternal        = "internal_error"
)

var (
	// ErrUnknownProvider indicates no backend is configured under the identifier.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnknownAdapterKind indicates a descriptor names an adapter kind the gateway cannot dispatch.
	ErrUnknownAdapterKind = errors.New("unknown adapter kind")

	// ErrDecode indicates a buffered response matched neither extraction strategy.
	ErrDecode = errors.New("unrecognized response document")
)

// UpstreamStatusError is returned when a backend answers with status >= 400.
type UpstreamStatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
}

// TransportError is returned when the backend could not be reached or the call timed out.
type TransportError struct {
	URL     string
	Timeout bool
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("upstream %s timed out: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("upstream %s unreachable: %v", e.URL, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ClassifyError maps a failure onto the canonical error payload.
func ClassifyError(err error) ErrorPayload {
	var statusErr *UpstreamStatusError
	var transportErr *TransportError

	switch {
	case err == nil:
		return ErrorPayload{Message: "unknown error", Type: ErrorTypeInternal}
	case errors.Is(err, ErrUnknownProvider):
		return ErrorPayload{Message: err.Error(), Type: ErrorTypeUnknownProvider}
	case errors.As(err, &statusErr):
		return ErrorPayload{
			Message: fmt.Sprintf("Upstream API error: %d", statusErr.StatusCode),
			Type:    ErrorTypeUpstream,
			Details: statusErr.Body,
			Status:  statusErr.StatusCode,
		}
	case errors.As(err, &transportErr):
		message := "Upstream API unreachable"
		if transportErr.Timeout {
			message = "Upstream API timed out"
		}
		return ErrorPayload{
			Message: message,
			Type:    ErrorTypeTransport,
			Details: transportErr.Error(),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorPayload{Message: "Upstream API timed out", Type: ErrorTypeTransport, Details: err.Error()}
	default:
		return ErrorPayload{Message: "An unexpected error occurred", Type: ErrorTypeInternal, Details: err.Error()}
	}
}
