package restkit

import (
	"encoding/json"
	"net/http"
	"time"
)

// Request describes one call issued through a resource. A fresh value
// is built per call; it is never shared between exchanges.
type Request struct {
	// Method is the HTTP method (GET, POST, DELETE, etc).
	Method string
	// Command is the operation-specific path suffix, used as-is.
	Command string
	// CommandFunc computes the path suffix from the resource's bound
	// URL parameters. When set it wins over Command.
	CommandFunc PathFunc
	// Payload is the structured request payload handed to the
	// resource's serializer.
	Payload Params
	// AuthToken overrides the provider's credential for this call.
	AuthToken string
	// Headers are caller overrides merged last; they win over every
	// computed default.
	Headers map[string]string
	// Timeout bounds the exchange. Zero falls back to the client
	// config; a negative value disables the timeout entirely.
	Timeout time.Duration
	// Callback, when set, receives the outcome exactly once in
	// (err, resp) form, mirroring the returned Deferred.
	Callback Callback
}

// Response is the successful outcome of an exchange.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// RawBody is the accumulated response body.
	RawBody []byte
	// Data is the JSON-decoded body.
	Data any
}

// Decode unmarshals the raw response body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.RawBody, v)
}

// RequestOption configures a single operation call.
type RequestOption func(*Request)

// WithHeaders sets caller header overrides for the call.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		r.Headers = headers
	}
}

// WithTimeout bounds the call with a request timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(r *Request) {
		r.Timeout = d
	}
}

// WithAuthToken overrides the credential for the call.
func WithAuthToken(token string) RequestOption {
	return func(r *Request) {
		r.AuthToken = token
	}
}

// WithCallback attaches a completion callback to the call.
func WithCallback(cb Callback) RequestOption {
	return func(r *Request) {
		r.Callback = cb
	}
}
