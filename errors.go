package restkit

import (
	"errors"
	"fmt"
	"sync"
)

// ErrorCode classifies request outcomes that are not successes.
type ErrorCode int

const (
	// ErrCodeConnection indicates a transport failure or a timeout.
	ErrCodeConnection ErrorCode = iota
	// ErrCodeAuth indicates the credential was rejected (HTTP 401).
	ErrCodeAuth
	// ErrCodeMalformed indicates the response body was not valid JSON.
	ErrCodeMalformed
	// ErrCodeBusiness indicates the API understood the request but
	// reported a semantic failure.
	ErrCodeBusiness
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeMalformed:
		return "malformed_response"
	case ErrCodeBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// ErrTimeout is the marker cause carried by connection errors produced
// by an expired request timeout.
var ErrTimeout = errors.New("restkit: request timed out")

// Business error kinds derived from the server's error type tag.
// Unrecognized tags fall back to KindAPI.
const (
	KindInvalidRequest = "invalid_request"
	KindRateLimit      = "rate_limit"
	KindIdempotency    = "idempotency"
	KindAPI            = "api"
)

// ErrorDescriptor is the error object the API embeds in a response body.
type ErrorDescriptor struct {
	// Type is the server-supplied tag that selects the business kind.
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}

// Error is a classified request failure.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Kind is the business error kind (set only for ErrCodeBusiness).
	Kind string
	// Message describes the error.
	Message string
	// Descriptor is the decoded API error object (business/auth errors).
	Descriptor *ErrorDescriptor
	// RawBody is the original response body (may be nil).
	RawBody []byte
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code == ErrCodeBusiness {
		return fmt.Sprintf("restkit: %s/%s (HTTP %d): %s", e.Code, e.Kind, e.StatusCode, e.Message)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("restkit: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("restkit: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConnectionError wraps a transport-level failure.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:    ErrCodeConnection,
		Message: err.Error(),
		Err:     err,
	}
}

// NewTimeoutError creates the connection error reported when a request
// timeout expires. Its cause is ErrTimeout and its message names the
// elapsed timeout.
func NewTimeoutError(timeoutMs int64) *Error {
	return &Error{
		Code:    ErrCodeConnection,
		Message: fmt.Sprintf("request aborted after %dms", timeoutMs),
		Err:     ErrTimeout,
	}
}

// NewAuthError creates an authentication error for a rejected credential.
func NewAuthError(statusCode int, desc *ErrorDescriptor, body []byte) *Error {
	msg := fmt.Sprintf("HTTP %d", statusCode)
	if desc != nil && desc.Message != "" {
		msg = desc.Message
	}
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeAuth,
		Message:    msg,
		Descriptor: desc,
		RawBody:    body,
	}
}

// NewMalformedResponseError creates an error for a body that could not
// be parsed, carrying the raw text and the parse failure.
func NewMalformedResponseError(body []byte, parseErr error) *Error {
	return &Error{
		Code:    ErrCodeMalformed,
		Message: fmt.Sprintf("invalid JSON in response body: %v", parseErr),
		RawBody: body,
		Err:     parseErr,
	}
}

// BusinessErrorFactory builds the typed error for one server error tag.
type BusinessErrorFactory func(statusCode int, desc ErrorDescriptor, body []byte) *Error

func kindFactory(kind string) BusinessErrorFactory {
	return func(statusCode int, desc ErrorDescriptor, body []byte) *Error {
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeBusiness,
			Kind:       kind,
			Message:    desc.Message,
			Descriptor: &desc,
			RawBody:    body,
		}
	}
}

var (
	businessMu        sync.RWMutex
	businessFactories = map[string]BusinessErrorFactory{
		"invalid_request_error": kindFactory(KindInvalidRequest),
		"rate_limit_error":      kindFactory(KindRateLimit),
		"idempotency_error":     kindFactory(KindIdempotency),
		"api_error":             kindFactory(KindAPI),
	}
)

// RegisterBusinessError registers a factory for a server error type tag,
// replacing any existing registration. Unregistered tags map to KindAPI.
func RegisterBusinessError(typeTag string, factory BusinessErrorFactory) {
	businessMu.Lock()
	defer businessMu.Unlock()
	businessFactories[typeTag] = factory
}

// newBusinessError dispatches on the descriptor's type tag.
func newBusinessError(statusCode int, desc ErrorDescriptor, body []byte) *Error {
	businessMu.RLock()
	factory, ok := businessFactories[desc.Type]
	businessMu.RUnlock()
	if !ok {
		factory = kindFactory(KindAPI)
	}
	return factory(statusCode, desc, body)
}

// IsConnection checks if an error is a connection error (including timeouts).
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsTimeout checks if an error is a connection error caused by a timeout.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection && errors.Is(e.Err, ErrTimeout)
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsMalformed checks if an error is a malformed-response error.
func IsMalformed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeMalformed
}

// IsBusiness checks if an error is an API-reported business error.
func IsBusiness(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeBusiness
}

// BusinessKind returns the business kind of an error, or "" if the error
// is not a business error.
func BusinessKind(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code == ErrCodeBusiness {
		return e.Kind
	}
	return ""
}
