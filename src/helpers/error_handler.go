package helpers

import (
	"errors"
	"fmt"
	"net/http"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As checks
type ConfigurationError struct{ DashboardError }
type NetworkError struct{ DashboardError }
type DataSourceError struct{ DashboardError }
type RenderError struct{ DashboardError }

// -----------------------------------------------------------------------------

func NewNetworkError(msg string, cause error) error {
	return &NetworkError{DashboardError{Message: msg, Cause: cause}}
}

func NewDataSourceError(msg string, cause error) error {
	return &DataSourceError{DashboardError{Message: msg, Cause: cause}}
}

func NewRenderError(msg string, cause error) error {
	return &RenderError{DashboardError{Message: msg, Cause: cause}}
}

// -----------------------------------------------------------------------------
// Upstream HTTP status
// -----------------------------------------------------------------------------

// HTTPStatusError reports a non-200 upstream response.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("bad status: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// -----------------------------------------------------------------------------

// Retryable reports whether a request that failed with this status may
// succeed on another attempt (possibly through another proxy).
func (e *HTTPStatusError) Retryable() bool {
	switch {
	case e.StatusCode == http.StatusTooManyRequests, e.StatusCode == http.StatusForbidden:
		return true
	case e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// IsNotFound reports whether err wraps an upstream 404.
func IsNotFound(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
