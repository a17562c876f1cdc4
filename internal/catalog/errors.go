package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog failures.
var (
	// ErrNetwork indicates the request could not be completed or the API
	// answered with a non-success status.
	ErrNetwork = errors.New("catalog: network error")
	// ErrParse indicates the API answered with a body that is not well-formed.
	ErrParse = errors.New("catalog: malformed response")
)

// NetworkError records a failed catalog request.
type NetworkError struct {
	Op         string // "categories", "plants", "plant"
	StatusCode int    // zero when the request never got a response
	Body       string // first bytes of an error response body
	Err        error
}

// Error returns a message including the operation and status.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("catalog: %s: unexpected status %d", e.Op, e.StatusCode)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	if e.Err != nil {
		return fmt.Sprintf("catalog: %s: %v", e.Op, e.Err)
	}
	return "catalog: " + e.Op + ": request failed"
}

// Unwrap returns the transport error, if any.
func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ParseError records a response body that could not be decoded.
type ParseError struct {
	Op  string
	Err error
}

// Error returns a message including the operation.
func (e *ParseError) Error() string {
	return fmt.Sprintf("catalog: %s: malformed response: %v", e.Op, e.Err)
}

// Unwrap returns the decode error.
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
