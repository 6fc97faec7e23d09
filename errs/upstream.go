package errs

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Upstream space-data API errors
var (
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrUpstreamNotFound   = errors.New("upstream resource not found")
	ErrUpstreamFailure    = errors.New("upstream request failed")
	ErrUpstreamTimeout    = errors.New("upstream request timed out")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// NewRateLimitError is returned once the retry budget against a throttling
// upstream is exhausted.
func NewRateLimitError(endpoint string, attempts int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("NASA API rate limit exceeded after %d attempts for %s", attempts, endpoint),
	}
}

func NewInvalidAPIKeyError(endpoint string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrInvalidAPIKey,
		Details:    fmt.Sprintf("NASA API rejected the configured key for %s", endpoint),
	}
}

func NewUpstreamNotFoundError(endpoint string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrUpstreamNotFound,
		Details:    fmt.Sprintf("NASA API has no data for %s", endpoint),
	}
}

func NewUpstreamError(endpoint string, statusCode int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpstreamFailure,
		Details:    fmt.Sprintf("NASA API returned status %d for %s", statusCode, endpoint),
	}
}

func NewUpstreamTimeoutError(endpoint string, timeout time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusGatewayTimeout,
		err:        ErrUpstreamTimeout,
		Details:    fmt.Sprintf("NASA API did not respond within %s for %s", timeout, endpoint),
	}
}

// NewUploadsDisabledError is returned when a file upload arrives but no asset
// storage bucket is configured.
func NewUploadsDisabledError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    "File uploads are not configured on this server",
	}
}
