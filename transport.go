package restkit

import "net/http"

// Transport executes a single HTTP exchange. It is the black-box
// send/response/error contract of the core; aborting an in-flight
// exchange is requested by cancelling the request's context.
// *http.Transport satisfies it, and tests can swap in a fake.
type Transport interface {
	RoundTrip(*http.Request) (*http.Response, error)
}
