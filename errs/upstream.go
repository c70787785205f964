package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Upstream generative-text service errors. All of these are caught at
// the chatbot boundary and converted to the fixed fallback reply;
// none of them propagate to the caller.
var (
	ErrUpstreamFailure    = errors.New("upstream service failure")
	ErrUpstreamTimeout    = errors.New("upstream service timeout")
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrEmptyCompletion    = errors.New("empty completion")
	ErrServiceUnavailable = errors.New("service unavailable")
)

func NewUpstreamError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpstreamFailure,
		Details:    fmt.Sprintf("Call to %s service failed", service),
		Cause:      cause,
	}
}

func NewUpstreamTimeoutError(service string, timeout time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrUpstreamTimeout,
		Details:    fmt.Sprintf("Call to %s service timed out after %v", service, timeout),
		Field:      "timeout",
	}
}

func NewMissingAPIKeyError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInvalidAPIKey,
		Details:    fmt.Sprintf("No API key configured for %s service", service),
		Field:      "api_key",
	}
}

func NewEmptyCompletionError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrEmptyCompletion,
		Details:    fmt.Sprintf("%s service returned an empty completion", service),
	}
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstreamFailure) ||
		errors.Is(err, ErrUpstreamTimeout) ||
		errors.Is(err, ErrEmptyCompletion) ||
		errors.Is(err, ErrServiceUnavailable)
}

func IsUpstreamTimeoutError(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout)
}

func IsMissingAPIKeyError(err error) bool {
	return errors.Is(err, ErrInvalidAPIKey)
}
