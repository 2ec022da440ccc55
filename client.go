package restkit

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client executes requests for the resources built from it. It holds
// the immutable configuration, the transport, and the ambient
// observability hooks; per-request state lives in each exchange.
type Client struct {
	config    Config
	transport Transport
	provider  Provider
	logger    zerolog.Logger
	metrics   *MetricsCollector
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the client logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics installs a Prometheus metrics collector.
func WithMetrics(m *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithProvider replaces the static config-backed credential provider.
func WithProvider(p Provider) Option {
	return func(c *Client) {
		c.provider = p
	}
}

// New creates a client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:    cfg,
		transport: http.DefaultTransport,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.provider == nil {
		c.provider = &staticProvider{cfg: cfg}
	}
	return c, nil
}

// execute starts one exchange and returns its deferred outcome without
// blocking the caller. The exchange runs on its own goroutine; its
// suspension points are client-identifier resolution, the network
// round trip, and the timeout timer.
func (c *Client) execute(ctx context.Context, r *Resource, req Request) *Deferred {
	d := newDeferred()
	d.subscribe(req.Callback)
	go c.run(ctx, r, req, d)
	return d
}

// run performs the full request/response cycle: serialize, assemble
// headers, arm the timeout, round-trip, decode. Exactly one of the
// decoder outcome, the transport-error outcome, and the timeout outcome
// reaches the deferred.
func (c *Client) run(ctx context.Context, r *Resource, req Request, d *Deferred) {
	start := time.Now()
	requestID := uuid.NewString()

	host := r.host
	if host == "" {
		host = c.config.Host
	}
	url := strings.TrimRight(host, "/") + ComposePath(r.basePath, r.path, r.commandPath(req))

	defer c.observeOutcome(d, req.Method, url, requestID, start)

	header := defaultHeaders()
	body, err := r.serialize(req.Method, req.Payload, header)
	if err != nil {
		d.reject(err)
		return
	}

	token := req.AuthToken
	if token == "" {
		token = c.provider.AuthToken()
	}
	if err := c.assembleHeaders(ctx, header, token, requestID, req.Headers); err != nil {
		d.reject(err)
		return
	}

	exCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ex := newExchange(d, cancel)

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.config.Timeout
	}
	if timeout > 0 {
		ex.armTimeout(timeout)
		defer ex.disarm()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(exCtx, req.Method, url, bodyReader)
	if err != nil {
		d.reject(err)
		return
	}
	httpReq.Header = header

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("url", url).
		Msg("request started")

	if c.metrics != nil {
		c.metrics.requestsInFlight.Inc()
		defer c.metrics.requestsInFlight.Dec()
	}

	resp, err := c.transport.RoundTrip(httpReq)
	if err != nil {
		ex.reportTransportError(err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	// Accumulate the body; the transport signals completion via EOF.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		ex.reportTransportError(err)
		return
	}
	ex.disarm()

	out, apiErr := decodeResponse(resp.StatusCode, resp.Header, raw)
	if apiErr != nil {
		d.reject(apiErr)
		return
	}
	d.resolve(out)
}

// observeOutcome logs and counts the settled outcome. When the exchange
// was aborted, the timeout's rejection can land a beat after the
// transport call unwinds, so it waits for the deferred to settle.
func (c *Client) observeOutcome(d *Deferred, method, url, requestID string, start time.Time) {
	<-d.Done()
	resp, err, _ := d.Result()
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.observe(method, status, err, elapsed)
	}

	if err != nil {
		c.logger.Warn().
			Str("request_id", requestID).
			Str("method", method).
			Str("url", url).
			Dur("duration", elapsed).
			Err(err).
			Msg("request failed")
		return
	}
	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", url).
		Int("status", status).
		Dur("duration", elapsed).
		Msg("request completed")
}
