package daemon

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/radixd/radixd/internal/api"
)

// APIOptions contains optional configuration for the API server.
// NewAPIOptions should be used to create instances of APIOptions.
type APIOptions struct {
	// CORS configuration for cross-origin requests.
	CORS CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	ShutdownTimeout time.Duration

	// RateLimit bounds the request rate across all routes.
	RateLimit RateLimitConfig

	// MCPPath is where the MCP endpoint is mounted when an MCP handler is supplied.
	MCPPath string
}

// RateLimitConfig defines a token bucket shared by all API requests.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the number of requests allowed above the sustained rate.
	Burst int
}

// Enabled reports whether requests should be rate limited.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerSecond > 0
}

// CORSConfig controls which browser origins may call the API.
// The skill webhook is called server to server and never needs it; it exists for web pages
// that call /api/v1/convert directly.
type CORSConfig struct {
	// Enabled adds the CORS middleware to the router.
	Enabled bool

	// AllowCredentials lets browsers send cookies or auth headers with cross-origin calls.
	// Ignored when AllowOrigins contains "*".
	AllowCredentials bool

	// AllowedHeaders are the request headers a browser may send beyond the safelisted ones.
	AllowedHeaders []string

	// AllowMethods are the HTTP methods answered in preflight responses.
	AllowMethods []string

	// AllowOrigins are the page origins permitted to call the API.
	// "*" or an empty list admits any origin.
	AllowOrigins []string

	// ExposedHeaders are the response headers browser scripts may read, such as the error type header.
	ExposedHeaders []string

	// MaxAge is how long a browser may reuse a preflight response.
	MaxAge time.Duration
}

// APIOption defines a functional option for configuring APIOptions.
// Options are applied in order, with later options overriding earlier ones.
type APIOption func(*APIOptions) error

// NewAPIOptions creates APIOptions with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewAPIOptions(opts ...APIOption) (APIOptions, error) {
	options := APIOptions{
		CORS: CORSConfig{
			// Explicitly setting some values for clarity.
			Enabled:          false,
			AllowOrigins:     nil,
			AllowMethods:     DefaultCORSAllowMethods(),
			AllowedHeaders:   DefaultCORSAllowHeaders(),
			AllowCredentials: DefaultCORSAllowCredentials(),
			ExposedHeaders:   DefaultCORSExposeHeaders(),
			MaxAge:           DefaultCORSMaxAge(),
		},
		ShutdownTimeout: DefaultAPIShutdownTimeout(),
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
			Burst:             DefaultRateLimitBurst(),
		},
		MCPPath: DefaultMCPPath(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return APIOptions{}, err
		}
	}

	return options, nil
}

// WithCORSEnabled turns the CORS middleware on or off.
func WithCORSEnabled(enabled bool) APIOption {
	return func(o *APIOptions) error {
		o.CORS.Enabled = enabled
		return nil
	}
}

// WithCORSAllowHeaders replaces the request headers browsers may send with a conversion request.
// Safelisted request headers are always allowed and need not be listed.
func WithCORSAllowHeaders(headers []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowedHeaders = headers
		return nil
	}
}

// WithCORSAllowOrigins replaces the page origins allowed to call the API.
func WithCORSAllowOrigins(origins []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowOrigins = origins
		return nil
	}
}

// WithCORSAllowMethods replaces the methods advertised to browsers in preflight responses.
func WithCORSAllowMethods(methods []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowMethods = methods
		return nil
	}
}

// WithCORSAllowCredentials sets whether browsers may attach credentials to cross-origin calls.
func WithCORSAllowCredentials(allowed bool) APIOption {
	return func(o *APIOptions) error {
		o.CORS.AllowCredentials = allowed
		return nil
	}
}

// WithCORSExposeHeaders replaces the response headers browser scripts may read.
func WithCORSExposeHeaders(headers []string) APIOption {
	return func(o *APIOptions) error {
		o.CORS.ExposedHeaders = headers
		return nil
	}
}

// WithCORSMaxAge sets how long browsers may cache a preflight response.
func WithCORSMaxAge(maxAge time.Duration) APIOption {
	return func(o *APIOptions) error {
		o.CORS.MaxAge = maxAge
		return nil
	}
}

// WithShutdownTimeout configures how long to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) APIOption {
	return func(o *APIOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}

// WithRateLimit limits the API to requestsPerSecond with the given burst. A zero rate disables limiting.
func WithRateLimit(requestsPerSecond float64, burst int) APIOption {
	return func(o *APIOptions) error {
		if requestsPerSecond < 0 {
			return fmt.Errorf("requests per second cannot be negative, got %v", requestsPerSecond)
		}
		if burst < 1 {
			return fmt.Errorf("burst must be at least 1, got %d", burst)
		}
		o.RateLimit = RateLimitConfig{RequestsPerSecond: requestsPerSecond, Burst: burst}
		return nil
	}
}

// WithMCPPath configures where the MCP endpoint is mounted.
func WithMCPPath(path string) APIOption {
	return func(o *APIOptions) error {
		path = strings.TrimSpace(path)
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("MCP path must start with '/', got '%s'", path)
		}
		o.MCPPath = path
		return nil
	}
}

// DefaultCORSAllowHeaders returns the request headers a browser needs to post a conversion.
func DefaultCORSAllowHeaders() []string {
	return []string{
		"Accept",
		"Accept-Language",
		"Content-Language",
		"Content-Type",
	}
}

// DefaultCORSAllowMethods returns the methods the API serves: GET for health and docs, POST for conversions.
func DefaultCORSAllowMethods() []string {
	return []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodOptions,
	}
}

// DefaultCORSExposeHeaders returns the response headers browser scripts may read by default.
func DefaultCORSExposeHeaders() []string {
	return []string{api.HeaderErrorType}
}

// DefaultCORSAllowCredentials returns the default CORS 'allow credentials' setting.
func DefaultCORSAllowCredentials() bool {
	return false
}

// DefaultCORSMaxAge returns how long browsers may cache a preflight response by default.
func DefaultCORSMaxAge() time.Duration {
	return 5 * time.Minute
}

// DefaultAPIShutdownTimeout is the default time allowed for API server graceful shutdown.
func DefaultAPIShutdownTimeout() time.Duration {
	return 5 * time.Second
}

// DefaultRateLimitBurst is the default burst applied when rate limiting is enabled.
func DefaultRateLimitBurst() int {
	return 1
}

// DefaultMCPPath is the default path the MCP endpoint is mounted at.
func DefaultMCPPath() string {
	return "/mcp"
}

// validateAddr checks if the address is a valid "host:port" string.
func validateAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	if port == "" {
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err != nil {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return fmt.Errorf("invalid address port: %s", port)
		}
	}

	if strings.ContainsAny(host, " \t\n\r") {
		return fmt.Errorf("invalid address host: '%s'", host)
	}

	return nil
}
