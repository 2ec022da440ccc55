package restkit

import (
	"context"
	"fmt"
	"net/http"
)

// Operation is a named call descriptor assigned to a resource at
// construction time. Resources compose their operation set explicitly
// instead of growing methods after the fact.
type Operation struct {
	// Name identifies the operation for Resource.Call.
	Name string
	// Method is the HTTP method.
	Method string
	// Command is the literal operation path suffix.
	Command string
	// CommandFunc computes the suffix from the resource's bound URL
	// parameters; it wins over Command when set.
	CommandFunc PathFunc
}

// ResourceConfig describes a resource: a named group of related API
// operations sharing a base path and configuration.
type ResourceConfig struct {
	// Path is the resource path template, relative to the base path.
	// Placeholders are bound by URLParams at construction.
	Path string
	// BasePath overrides the provider's base path template.
	BasePath string
	// URLParams bind path placeholders; fixed for the resource's lifetime.
	URLParams map[string]string
	// Host overrides the client host for every call on this resource.
	Host string
	// Serializer replaces the default form encoding for this resource.
	Serializer Serializer
	// Operations are the named call descriptors available via Call.
	Operations []Operation
}

// Resource issues requests for one group of API operations. It is
// immutable after construction and safe for concurrent use across any
// number of in-flight requests.
type Resource struct {
	client     *Client
	basePath   string
	path       string
	params     map[string]string
	host       string
	serializer Serializer
	ops        map[string]Operation
}

// Resource builds a resource from its configuration. Path templates are
// interpolated here, so a placeholder missing from URLParams fails
// construction rather than every later call.
func (c *Client) Resource(cfg ResourceConfig) (*Resource, error) {
	baseTemplate := cfg.BasePath
	if baseTemplate == "" {
		baseTemplate = c.provider.BasePath()
	}
	basePath, err := InterpolatePath(baseTemplate, cfg.URLParams)
	if err != nil {
		return nil, err
	}
	resourcePath, err := InterpolatePath(cfg.Path, cfg.URLParams)
	if err != nil {
		return nil, err
	}

	params := make(map[string]string, len(cfg.URLParams))
	for k, v := range cfg.URLParams {
		params[k] = v
	}

	ops := make(map[string]Operation, len(cfg.Operations))
	for _, op := range cfg.Operations {
		if op.Name == "" {
			return nil, fmt.Errorf("restkit: operation without a name on resource %q", cfg.Path)
		}
		if _, dup := ops[op.Name]; dup {
			return nil, fmt.Errorf("restkit: duplicate operation %q on resource %q", op.Name, cfg.Path)
		}
		ops[op.Name] = op
	}

	return &Resource{
		client:     c,
		basePath:   basePath,
		path:       resourcePath,
		params:     params,
		host:       cfg.Host,
		serializer: cfg.Serializer,
		ops:        ops,
	}, nil
}

// Execute issues one request through the resource and immediately
// returns its deferred outcome. Every failure, pre-flight included,
// surfaces through the deferred (and the callback, when one is set);
// Execute itself never fails.
func (r *Resource) Execute(ctx context.Context, req Request) *Deferred {
	return r.client.execute(ctx, r, req)
}

// Call issues a named operation assigned at construction.
func (r *Resource) Call(ctx context.Context, name string, payload Params, opts ...RequestOption) *Deferred {
	req := Request{Payload: payload}
	for _, opt := range opts {
		opt(&req)
	}

	op, ok := r.ops[name]
	if !ok {
		d := newDeferred()
		d.subscribe(req.Callback)
		d.reject(fmt.Errorf("restkit: unknown operation %q", name))
		return d
	}

	req.Method = op.Method
	req.Command = op.Command
	req.CommandFunc = op.CommandFunc
	return r.client.execute(ctx, r, req)
}

// commandPath resolves the per-call path suffix, invoking a path
// function with the bound parameters when one is set.
func (r *Resource) commandPath(req Request) string {
	if req.CommandFunc != nil {
		return req.CommandFunc(r.params)
	}
	return req.Command
}

func (r *Resource) serialize(method string, payload Params, header http.Header) ([]byte, error) {
	s := r.serializer
	if s == nil {
		s = FormSerializer
	}
	return s(method, payload, header)
}
