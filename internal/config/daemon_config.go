package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIConfigSection contains API server configuration settings.
//
// NOTE: if you add/remove fields you must review the associated Validate implementation,
// along with the template written by Init.
type APIConfigSection struct {
	// Address to bind the API server (e.g., "0.0.0.0:8090")
	// Maps to CLI flag --addr
	Addr *string `json:"addr,omitempty" toml:"addr,omitempty" yaml:"addr,omitempty"`

	// Nested timeout configuration for API operations
	Timeout *APITimeoutConfigSection `json:"timeout,omitempty" toml:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Nested CORS configuration for cross-origin requests
	CORS *CORSConfigSection `json:"cors,omitempty" toml:"cors,omitempty" yaml:"cors,omitempty"`

	// Nested rate limiting configuration
	RateLimit *RateLimitConfigSection `json:"rateLimit,omitempty" toml:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// APITimeoutConfigSection contains timeout settings for API operations.
type APITimeoutConfigSection struct {
	// Shutdown timeout for graceful API server shutdown
	Shutdown *Duration `json:"shutdown,omitempty" toml:"shutdown,omitempty" yaml:"shutdown,omitempty"`
}

// CORSConfigSection contains Cross-Origin Resource Sharing (CORS) configuration.
type CORSConfigSection struct {
	// Enable CORS support
	Enable *bool `json:"enable,omitempty" toml:"enable,omitempty" yaml:"enable,omitempty"`

	// Allowed origins for CORS requests
	Origins []string `json:"allowOrigins,omitempty" toml:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`

	// Allowed HTTP methods for CORS requests
	Methods []string `json:"allowMethods,omitempty" toml:"allow_methods,omitempty" yaml:"allow_methods,omitempty"`

	// Allowed headers for CORS requests
	Headers []string `json:"allowHeaders,omitempty" toml:"allow_headers,omitempty" yaml:"allow_headers,omitempty"`

	// Headers exposed to the client
	ExposeHeaders []string `json:"exposeHeaders,omitempty" toml:"expose_headers,omitempty" yaml:"expose_headers,omitempty"`

	// Allow credentials in CORS requests
	Credentials *bool `json:"allowCredentials,omitempty" toml:"allow_credentials,omitempty" yaml:"allow_credentials,omitempty"`

	// Maximum age for CORS preflight cache
	MaxAge *Duration `json:"maxAge,omitempty" toml:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// RateLimitConfigSection limits the request rate accepted by the API server.
type RateLimitConfigSection struct {
	// Sustained requests per second, zero disables limiting
	RequestsPerSecond *float64 `json:"requestsPerSecond,omitempty" toml:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`

	// Maximum burst above the sustained rate
	Burst *int `json:"burst,omitempty" toml:"burst,omitempty" yaml:"burst,omitempty"`
}

// MCPConfigSection configures the conversion tool served over MCP alongside the API.
type MCPConfigSection struct {
	// Enable serving the MCP endpoint
	Enable *bool `json:"enable,omitempty" toml:"enable,omitempty" yaml:"enable,omitempty"`

	// HTTP path the streamable MCP transport is mounted at
	Path *string `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
}

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(*d).String()), nil
}

// String returns the duration in its largest whole unit, e.g. "150s" rather than "2m30s".
func (d *Duration) String() string {
	if d == nil {
		return ""
	}

	duration := time.Duration(*d)

	// List of duration units in descending order.
	units := []struct {
		unit   time.Duration
		suffix string
	}{
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
		{time.Millisecond, "ms"},
		{time.Microsecond, "µs"},
		{time.Nanosecond, "ns"},
	}

	for _, u := range units {
		if duration%u.unit == 0 {
			return fmt.Sprintf("%d%s", duration/u.unit, u.suffix)
		}
	}

	return duration.String()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// AddrOrDefault returns the configured API address, falling back to defaultAddr if not set.
func (a *APIConfigSection) AddrOrDefault(defaultAddr string) string {
	if a == nil || a.Addr == nil {
		return defaultAddr
	}
	return *a.Addr
}

// ShutdownOrDefault returns the configured shutdown timeout, falling back to defaultTimeout if not set.
func (a *APIConfigSection) ShutdownOrDefault(defaultTimeout time.Duration) time.Duration {
	if a == nil || a.Timeout == nil || a.Timeout.Shutdown == nil {
		return defaultTimeout
	}
	return time.Duration(*a.Timeout.Shutdown)
}

// Validate implements validation for APIConfigSection.
func (a *APIConfigSection) Validate() error {
	if a == nil {
		return nil
	}

	var validationErrors []error

	// Validate address.
	if a.Addr != nil {
		if *a.Addr == "" {
			validationErrors = append(validationErrors, fmt.Errorf("API address cannot be empty"))
		} else if !isValidAddr(*a.Addr) {
			validationErrors = append(validationErrors, fmt.Errorf("API address \"%s\" appears to be invalid (expected format: host:port)", *a.Addr))
		}
	}

	// Validate subsections.
	if err := a.Timeout.Validate(); err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("timeout configuration error: %w", err))
	}
	if err := a.CORS.Validate(); err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("CORS configuration error: %w", err))
	}
	if err := a.RateLimit.Validate(); err != nil {
		validationErrors = append(validationErrors, fmt.Errorf("rate limit configuration error: %w", err))
	}

	return errors.Join(validationErrors...)
}

// Validate implements validation for APITimeoutConfigSection.
func (a *APITimeoutConfigSection) Validate() error {
	if a == nil {
		return nil
	}
	if a.Shutdown != nil && *a.Shutdown <= 0 {
		return fmt.Errorf("API shutdown timeout must be positive")
	}
	return nil
}

// EnableOrDefault returns the CORS enable setting, falling back to defaultEnable if not set.
func (c *CORSConfigSection) EnableOrDefault(defaultEnable bool) bool {
	if c == nil || c.Enable == nil {
		return defaultEnable
	}
	return *c.Enable
}

// CredentialsOrDefault returns the CORS credentials setting, falling back to defaultCredentials if not set.
func (c *CORSConfigSection) CredentialsOrDefault(defaultCredentials bool) bool {
	if c == nil || c.Credentials == nil {
		return defaultCredentials
	}
	return *c.Credentials
}

// MaxAgeOrDefault returns the CORS max age, falling back to defaultMaxAge if not set.
func (c *CORSConfigSection) MaxAgeOrDefault(defaultMaxAge time.Duration) time.Duration {
	if c == nil || c.MaxAge == nil {
		return defaultMaxAge
	}
	return time.Duration(*c.MaxAge)
}

// Validate implements validation for CORSConfigSection.
func (c *CORSConfigSection) Validate() error {
	if c == nil {
		return nil
	}

	var validationErrors []error

	// Validate origins.
	// See: https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Headers/Access-Control-Allow-Origin#sect
	for _, origin := range c.Origins {
		if origin == "*" {
			continue
		}

		if origin == "" {
			validationErrors = append(validationErrors, fmt.Errorf("CORS origin cannot be empty"))
			continue
		}

		if !isValidOrigin(origin) {
			validationErrors = append(validationErrors, fmt.Errorf("invalid origin: %s", origin))
		}
	}

	if c.Credentials != nil && *c.Credentials {
		for _, origin := range c.Origins {
			if origin == "*" {
				validationErrors = append(validationErrors, fmt.Errorf("CORS credentials cannot be allowed with wildcard origin"))
				break
			}
		}
	}

	// Validate methods.
	validMethods := ValidHTTPRequestMethods()
	for _, method := range c.Methods {
		if method == "*" {
			continue
		}

		if method == "" {
			validationErrors = append(validationErrors, fmt.Errorf("CORS method cannot be empty"))
			continue
		}

		if _, ok := validMethods[method]; !ok {
			validationErrors = append(
				validationErrors,
				fmt.Errorf("CORS method %s is not a valid HTTP request method", method),
			)
		}
	}

	// Validate max age.
	if c.MaxAge != nil && *c.MaxAge <= 0 {
		validationErrors = append(validationErrors, fmt.Errorf("CORS max age must be positive"))
	}

	return errors.Join(validationErrors...)
}

// RequestsPerSecondOrDefault returns the configured rate, falling back to defaultRate if not set.
func (r *RateLimitConfigSection) RequestsPerSecondOrDefault(defaultRate float64) float64 {
	if r == nil || r.RequestsPerSecond == nil {
		return defaultRate
	}
	return *r.RequestsPerSecond
}

// BurstOrDefault returns the configured burst, falling back to defaultBurst if not set.
func (r *RateLimitConfigSection) BurstOrDefault(defaultBurst int) int {
	if r == nil || r.Burst == nil {
		return defaultBurst
	}
	return *r.Burst
}

// Validate implements validation for RateLimitConfigSection.
func (r *RateLimitConfigSection) Validate() error {
	if r == nil {
		return nil
	}

	var validationErrors []error

	if r.RequestsPerSecond != nil && *r.RequestsPerSecond < 0 {
		validationErrors = append(validationErrors, fmt.Errorf("requests per second cannot be negative"))
	}
	if r.Burst != nil && *r.Burst < 1 {
		validationErrors = append(validationErrors, fmt.Errorf("burst must be at least 1"))
	}

	return errors.Join(validationErrors...)
}

// EnableOrDefault returns the MCP enable setting, falling back to defaultEnable if not set.
func (m *MCPConfigSection) EnableOrDefault(defaultEnable bool) bool {
	if m == nil || m.Enable == nil {
		return defaultEnable
	}
	return *m.Enable
}

// PathOrDefault returns the MCP endpoint path, falling back to defaultPath if not set.
func (m *MCPConfigSection) PathOrDefault(defaultPath string) string {
	if m == nil || m.Path == nil {
		return defaultPath
	}
	return *m.Path
}

// Validate implements validation for MCPConfigSection.
func (m *MCPConfigSection) Validate() error {
	if m == nil || m.Path == nil {
		return nil
	}

	p := *m.Path
	switch {
	case p == "":
		return fmt.Errorf("MCP path cannot be empty")
	case !strings.HasPrefix(p, "/"):
		return fmt.Errorf("MCP path \"%s\" must start with '/'", p)
	case strings.HasPrefix(p, "/api/"):
		return fmt.Errorf("MCP path \"%s\" conflicts with the API routes", p)
	}

	return nil
}

// ValidHTTPRequestMethods returns a map of all valid HTTP request methods.
// See: https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Methods
func ValidHTTPRequestMethods() map[string]struct{} {
	return map[string]struct{}{
		http.MethodGet:     {},
		http.MethodHead:    {},
		http.MethodPost:    {},
		http.MethodPut:     {},
		http.MethodDelete:  {},
		http.MethodConnect: {},
		http.MethodOptions: {},
		http.MethodTrace:   {},
		http.MethodPatch:   {},
	}
}

// isValidAddr reports whether addr is a plausible "host:port" bind address.
func isValidAddr(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}

	// Special case: ":" (empty host, empty port) is valid for bind-all-interfaces
	if host == "" && port == "" {
		return true
	}

	if port == "" {
		return false
	}

	if host != "" {
		if strings.ContainsAny(host, " \t\n\r") {
			return false
		}

		if net.ParseIP(host) == nil && len(host) > 253 {
			return false
		}
	}

	return true
}

// isValidOrigin reports whether origin is a scheme://host[:port] value without a path.
func isValidOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && (u.Path == "" || u.Path == "/") && u.RawQuery == ""
}
