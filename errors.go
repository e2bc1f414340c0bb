// Package shinrai provides a Go client for the Phase 6 trust-evaluation API:
// role-gate decisions, resource ceiling checks, provenance records, gaming
// alerts, and dashboard statistics.
package shinrai

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced a response: DNS failure,
// connection refused, TLS failure, context expiry, or a request that could
// not be built or encoded in the first place. Op names the failed step.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("shinrai: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError represents a response from the trust engine with an HTTP status
// code >= 400. Message holds the raw response body text; it is empty when the
// body could not be read. A StatusCode of 0 means the request was rejected
// client-side before any network I/O (e.g. an unsupported HTTP verb).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shinrai: api error (status %d): %s", e.StatusCode, e.Message)
}

// DecodeError means the server returned a success status but the body could
// not be parsed into the expected type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("shinrai: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnauthorized returns true if the error is a 401.
func IsUnauthorized(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == 401
	}
	return false
}

// IsForbidden returns true if the error is a 403.
func IsForbidden(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == 403
	}
	return false
}

// IsNotFound returns true if the error is a 404.
func IsNotFound(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error is a 429 (Too Many Requests).
func IsRateLimited(err error) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == 429
	}
	return false
}
