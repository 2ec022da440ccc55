package restkit

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// Provider supplies per-request configuration and credentials. The
// default provider serves static Config values; install a custom one
// (WithProvider) for rotating credentials or dynamic version
// negotiation.
type Provider interface {
	// BasePath returns the base path template.
	BasePath() string
	// APIVersion returns the version header value; "" disables it.
	APIVersion() string
	// AuthToken returns the current credential.
	AuthToken() string
	// ClientIdentifier resolves the user-agent string for outgoing
	// requests. Resolution may suspend (environment probing), hence
	// the context.
	ClientIdentifier(ctx context.Context) (string, error)
}

// staticProvider serves Config values and resolves the client
// identifier once, caching the probe result.
type staticProvider struct {
	cfg   Config
	once  sync.Once
	ident string
}

func (p *staticProvider) BasePath() string   { return p.cfg.BasePath }
func (p *staticProvider) APIVersion() string { return p.cfg.APIVersion }
func (p *staticProvider) AuthToken() string  { return p.cfg.AuthToken }

func (p *staticProvider) ClientIdentifier(_ context.Context) (string, error) {
	p.once.Do(func() {
		p.ident = p.cfg.UserAgent
		if p.ident == "" {
			p.ident = defaultClientIdentifier()
		}
	})
	return p.ident, nil
}

// defaultClientIdentifier probes the runtime for platform details.
func defaultClientIdentifier() string {
	return fmt.Sprintf("restkit/%s go/%s (%s; %s)",
		Version, strings.TrimPrefix(runtime.Version(), "go"), runtime.GOOS, runtime.GOARCH)
}
