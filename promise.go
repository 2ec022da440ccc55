package restkit

import (
	"context"
	"sync"
)

// Callback receives the outcome of an exchange: (nil, resp) on success,
// (err, nil) on failure. It is invoked exactly once, on its own
// goroutine, never synchronously within the stack that settled the
// exchange.
type Callback func(err error, resp *Response)

// Deferred is the pending outcome of one exchange. It settles exactly
// once, with either a response or a typed error.
type Deferred struct {
	done chan struct{}
	once sync.Once
	resp *Response
	err  error
}

func newDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Wait blocks until the exchange settles or ctx is done, and returns
// the outcome.
func (d *Deferred) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.done:
		return d.resp, d.err
	}
}

// Done returns a channel closed when the exchange settles.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Result returns the outcome. It is only meaningful after Done is
// closed; before that it reports not-settled via ok=false.
func (d *Deferred) Result() (resp *Response, err error, ok bool) {
	select {
	case <-d.done:
		return d.resp, d.err, true
	default:
		return nil, nil, false
	}
}

// settle records the outcome. The first caller wins; it reports whether
// this call was the one that settled the deferred.
func (d *Deferred) settle(resp *Response, err error) bool {
	settled := false
	d.once.Do(func() {
		d.resp = resp
		d.err = err
		settled = true
		close(d.done)
	})
	return settled
}

func (d *Deferred) resolve(resp *Response) bool { return d.settle(resp, nil) }
func (d *Deferred) reject(err error) bool       { return d.settle(nil, err) }

// subscribe bridges the deferred to a completion callback. Delivery
// happens on a fresh goroutine once the deferred settles, so callers
// never observe re-entrancy into their own stack even when the
// exchange fails before leaving Execute.
func (d *Deferred) subscribe(cb Callback) {
	if cb == nil {
		return
	}
	go func() {
		<-d.done
		cb(d.err, d.resp)
	}()
}
