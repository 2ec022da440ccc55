package restkit

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultBasePath = "/v1"
	defaultTimeout  = 30 * time.Second

	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// Config configures the client.
type Config struct {
	// Host is the scheme and authority requests are sent to, e.g.
	// "https://api.example.com". Resources may override it per instance.
	Host string `yaml:"host" mapstructure:"host"`

	// BasePath is the base path template prepended to every resource
	// path. Defaults to "/v1".
	BasePath string `yaml:"base_path" mapstructure:"base_path"`

	// APIVersion, when set, is sent as the X-API-Version header.
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`

	// AuthToken is the bearer credential. Individual requests can
	// override it.
	AuthToken string `yaml:"auth_token" mapstructure:"auth_token"`

	// Timeout is the default per-request timeout. Defaults to 30s.
	// Requests can override it; a negative request timeout disables it.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent overrides the default client identifier.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BasePath == "" {
		c.BasePath = defaultBasePath
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("restkit: host is required")
	}
	if !strings.HasPrefix(c.Host, "http://") && !strings.HasPrefix(c.Host, "https://") {
		return fmt.Errorf("restkit: host must include an http or https scheme (got %q)", c.Host)
	}
	return nil
}
