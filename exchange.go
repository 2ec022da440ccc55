package restkit

import (
	"context"
	"sync/atomic"
	"time"
)

// exchange tracks the in-flight state of one request/response cycle.
// It lives only for the duration of that cycle and guarantees that at
// most one terminal outcome reaches the deferred.
type exchange struct {
	deferred *Deferred
	abort    context.CancelFunc
	aborted  atomic.Bool
	timer    *time.Timer
}

func newExchange(d *Deferred, abort context.CancelFunc) *exchange {
	return &exchange{deferred: d, abort: abort}
}

// armTimeout starts the guard timer. On expiry it marks the exchange
// aborted, cancels the in-flight transport call, and rejects the
// deferred with a connection error naming the elapsed timeout and
// carrying the ErrTimeout marker.
func (ex *exchange) armTimeout(timeout time.Duration) {
	ex.timer = time.AfterFunc(timeout, func() {
		ex.aborted.Store(true)
		ex.abort()
		ex.deferred.reject(NewTimeoutError(timeout.Milliseconds()))
	})
}

// disarm stops the guard timer so a completed exchange cannot receive a
// late spurious timeout.
func (ex *exchange) disarm() {
	if ex.timer != nil {
		ex.timer.Stop()
	}
}

// reportTransportError converts a transport-level failure into a
// connection error, unless the exchange was already aborted: the
// timeout's own report is authoritative and must be the only outcome
// delivered.
func (ex *exchange) reportTransportError(err error) {
	if ex.aborted.Load() {
		return
	}
	ex.deferred.reject(NewConnectionError(err))
}
