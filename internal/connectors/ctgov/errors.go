package ctgov

import (
	"errors"
	"fmt"
)

// Registry-specific errors.
var (
	// ErrInvalidCursor indicates the resume cursor format is invalid.
	ErrInvalidCursor = errors.New("ctgov: invalid cursor format")
)

// APIError represents a non-success registry API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ctgov: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates the endpoint was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
