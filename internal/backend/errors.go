package backend

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable (%s): %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Message comes from the backend's {message} body when present.
type HTTPError struct {
	URL     string
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s: HTTP %d: %s", e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s: HTTP %d", e.URL, e.Status)
}

// RejectedError is a 2xx response whose envelope says {success:false}.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "backend rejected the request"
	}
	return "backend rejected the request: " + e.Message
}

// IsUnavailable reports whether err should trigger the local fallback.
func IsUnavailable(err error) bool {
	var ne *NetworkError
	var he *HTTPError
	var re *RejectedError
	return errors.As(err, &ne) || errors.As(err, &he) || errors.As(err, &re)
}

// MessageOf returns the backend-provided message carried by err, if any.
func MessageOf(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}
