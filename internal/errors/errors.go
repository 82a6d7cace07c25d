// Package errors provides the error taxonomy for the AI CMS client.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrClientClosed    = errors.New("client is closed")
)

// Kind classifies an error for display and for call-site branching
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindTimeout
	KindServer
	KindValidation
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// RequestError carries the request context shared by the transport-level errors
type RequestError struct {
	Operation  string
	Endpoint   string
	HTTPStatus int
	Body       string
	Cause      error
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// maxBodyLen caps the amount of response body kept for diagnostics
const maxBodyLen = 4096

// WithBody attaches a (truncated) response body for diagnostics
func (e *RequestError) WithBody(body string) *RequestError {
	if len(body) > maxBodyLen {
		body = body[:maxBodyLen]
	}
	e.Body = body
	return e
}

// NetworkError represents a transport failure: the request never produced a response
type NetworkError struct {
	RequestError
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("network error during %s", e.Operation)
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{RequestError{Operation: operation, Endpoint: endpoint, Cause: cause}}
}

// TimeoutError represents a request that ran past its deadline
type TimeoutError struct {
	RequestError
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out during %s", e.Operation)
}

// Is makes a TimeoutError match any NetworkError target
func (e *TimeoutError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(operation, endpoint string, cause error) *TimeoutError {
	return &TimeoutError{RequestError{Operation: operation, Endpoint: endpoint, Cause: cause}}
}

// ServerError represents a response with a non-2xx status
type ServerError struct {
	RequestError
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error [%d] at %s: %s failed", e.HTTPStatus, e.Endpoint, e.Operation)
}

// NewServerError creates a new ServerError
func NewServerError(status int, operation, endpoint string) *ServerError {
	return &ServerError{RequestError{Operation: operation, Endpoint: endpoint, HTTPStatus: status}}
}

// ValidationError represents a client-side check that failed before any request was sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewRequiredFieldError creates a ValidationError for a blank required field
func NewRequiredFieldError(field string) *ValidationError {
	return NewValidationError(field, "is required")
}

// ParseError represents a response body that does not have the expected shape
type ParseError struct {
	Message  string
	Path     string
	Endpoint string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %q: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with the ErrInvalidResponse sentinel
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// FromTransport classifies an error returned by the HTTP client into a
// TimeoutError or a NetworkError
func FromTransport(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(operation, endpoint, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(operation, endpoint, err)
	}
	return NewNetworkError(operation, endpoint, err)
}

// KindOf returns the classification of err
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var (
		timeoutErr    *TimeoutError
		networkErr    *NetworkError
		serverErr     *ServerError
		validationErr *ValidationError
		parseErr      *ParseError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &networkErr):
		return KindNetwork
	case errors.As(err, &serverErr):
		return KindServer
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &parseErr):
		return KindParse
	case errors.Is(err, ErrEmptyMessage):
		return KindValidation
	default:
		return KindUnknown
	}
}

// IsNetworkError reports whether err is a transport failure, timeouts included
func IsNetworkError(err error) bool {
	k := KindOf(err)
	return k == KindNetwork || k == KindTimeout
}

// IsTimeoutError reports whether err is a request timeout
func IsTimeoutError(err error) bool {
	return KindOf(err) == KindTimeout
}

// IsServerError reports whether err is a non-2xx response
func IsServerError(err error) bool {
	return KindOf(err) == KindServer
}

// IsValidationError reports whether err is a client-side validation failure
func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}

// IsParseError reports whether err is a malformed response
func IsParseError(err error) bool {
	return KindOf(err) == KindParse
}

func requestErrorOf(err error) *RequestError {
	var (
		timeoutErr *TimeoutError
		networkErr *NetworkError
		serverErr  *ServerError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return &timeoutErr.RequestError
	case errors.As(err, &networkErr):
		return &networkErr.RequestError
	case errors.As(err, &serverErr):
		return &serverErr.RequestError
	}
	return nil
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	if re := requestErrorOf(err); re != nil {
		return re.HTTPStatus
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	if re := requestErrorOf(err); re != nil {
		return re.Endpoint
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the diagnostic response body carried by err, or ""
func GetResponseBody(err error) string {
	if re := requestErrorOf(err); re != nil {
		return re.Body
	}
	return ""
}
