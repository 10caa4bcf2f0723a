package daemon

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"

	"github.com/radixd/radixd/internal/api"
	"github.com/radixd/radixd/internal/cmd"
	"github.com/radixd/radixd/internal/contracts"
	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/errors"
)

// APIServer manages the HTTP API for the daemon.
// NewAPIServer should be used to create instances of APIServer.
type APIServer struct {
	// Logger for API server operations.
	logger hclog.Logger

	// Routes are the services backing the versioned API.
	routes api.RouteDependencies

	// MCP serves the conversion tool, nil when disabled.
	mcp contracts.MCPHandlerProvider

	// Addr specifies the network address to bind.
	addr string

	// CORS configuration for cross-origin requests.
	cors CORSConfig

	// RateLimit bounds the request rate across all routes.
	rateLimit RateLimitConfig

	// MCPPath is where the MCP handler is mounted.
	mcpPath string

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	shutdownTimeout time.Duration
}

// NewAPIServer creates a new API server with the provided dependencies and options.
// Applies default options first, then user-provided options to ensure all fields have valid values.
func NewAPIServer(deps APIDependencies, opt ...APIOption) (*APIServer, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for API server: %w", err)
	}

	// Ensure we always start with defaults and apply user options on top.
	apiOpts, err := NewAPIOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	var mcp contracts.MCPHandlerProvider
	if deps.MCPEnabled() {
		mcp = deps.MCP
	}

	return &APIServer{
		logger:          deps.Logger.Named("api"),
		routes:          deps.Routes,
		mcp:             mcp,
		addr:            deps.Addr,
		cors:            apiOpts.CORS,
		rateLimit:       apiOpts.RateLimit,
		mcpPath:         apiOpts.MCPPath,
		shutdownTimeout: apiOpts.ShutdownTimeout,
	}, nil
}

// Start starts the API server and blocks until the context is canceled or an error occurs.
func (a *APIServer) Start(ctx context.Context) error {
	handler, apiPathPrefix, err := a.handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)

	// Start the API.
	go func() {
		a.logger.Info("Starting API server", "address", a.addr, "prefix", apiPathPrefix)
		if a.mcp != nil {
			a.logger.Info("MCP endpoint enabled", "path", a.mcpPath)
		}
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Handle graceful shutdown.
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("Shutting down API server...")
		_ = srv.Shutdown(shutdownCtx)
		a.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// handler builds the router serving the API, and the MCP endpoint when enabled.
// It returns the prefix the versioned API routes are registered under.
func (a *APIServer) handler() (http.Handler, string, error) {
	// Create router.
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	// Add CORS middleware if enabled.
	if a.cors.Enabled {
		a.applyCORS(mux)
	}

	if a.rateLimit.Enabled() {
		a.logger.Info(
			"Rate limiting enabled",
			"requests_per_second", a.rateLimit.RequestsPerSecond,
			"burst", a.rateLimit.Burst,
		)
		limiter := rate.NewLimiter(rate.Limit(a.rateLimit.RequestsPerSecond), a.rateLimit.Burst)
		mux.Use(rateLimitMiddleware(a.logger, limiter))
	}

	config := huma.DefaultConfig("radixd docs", cmd.Version())
	router := humachi.New(mux, config)

	// Configure the error handling wrapping.
	huma.NewErrorWithContext = errorHandler(a.logger)

	apiPathPrefix, err := api.RegisterRoutes(router, a.routes)
	if err != nil {
		return nil, "", fmt.Errorf("failed to register API routes: %w", err)
	}

	if a.mcp != nil {
		mux.Handle(a.mcpPath, a.mcp.HTTPHandler(a.mcpPath))
	}

	return mux, apiPathPrefix, nil
}

// applyCORS lets the configured browser origins call the API.
func (a *APIServer) applyCORS(mux *chi.Mux) {
	opts := corsOptions(a.cors)
	a.logger.Info("Enabling CORS", "origins", opts.AllowedOrigins, "credentials", opts.AllowCredentials)
	mux.Use(cors.Handler(opts))
}

// corsOptions translates cfg for the cors middleware without modifying it.
// Blank origins are dropped. A "*" origin admits every page and disables credentials,
// since browsers refuse credentialed responses to a wildcard origin.
func corsOptions(cfg CORSConfig) cors.Options {
	origins := make([]string, 0, len(cfg.AllowOrigins))
	credentials := cfg.AllowCredentials
	for _, origin := range cfg.AllowOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			origins = []string{"*"}
			credentials = false
			break
		}
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   cfg.AllowMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: credentials,
		MaxAge:           int(cfg.MaxAge.Seconds()),
	}
}

// mapError maps application domain errors to appropriate HTTP status codes.
//
// This function is the central place where domain errors from internal/errors are converted to HTTP responses.
// When adding new errors to internal/errors/errors.go, you MUST add them here to prevent them from falling
// through to the default case which returns HTTP 500.
//
// NOTE: Keep this function in sync with internal/errors/errors.go.
// Every error defined there should have an explicit case here otherwise it will default to 500.
//
// Mapping guidelines:
//   - 400: Client errors (bad input, unroutable or stale requests)
//   - 403: Requests addressed to another application
//   - 422: Numerals that could not be converted
//   - 429: Rate limited requests
//   - 500: Unexpected internal errors (default case)
//
// Don't forget to:
// 1. Add test cases to TestMapError (internal/daemon/api_server_test.go)
// 2. Update the documentation in internal/errors/errors.go
func mapError(logger hclog.Logger, err error) huma.StatusError {
	var convErr *conversion.Error

	switch {
	case stdErrors.Is(err, errors.ErrBadRequest):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrInvalidApplicationID):
		logger.Warn("Rejected request for another application", "error", err)
		return huma.Error403Forbidden(err.Error())
	case stdErrors.Is(err, errors.ErrUnknownIntent):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrUnsupportedRequestType):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrStaleRequest):
		logger.Warn("Rejected stale request", "error", err)
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrRateLimited):
		return huma.Error429TooManyRequests(err.Error())
	case stdErrors.As(err, &convErr):
		return api.ConversionError(convErr)
	default:
		logger.Error("Unexpected error handling request", "error", err)
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

// errorHandler wraps error handling for the application when converting to API friendly errors.
// It allows the logger to be supplied to functions that resolve huma.StatusError,
// and it supports different behaviors based on the variadic errors parameter.
// Errors raised by Huma itself with a specific status (e.g. request validation) keep that status.
func errorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status != http.StatusInternalServerError {
			return huma.NewError(status, msg, errs...)
		}

		switch len(errs) {
		case 0:
			// No errors provided; return a generic error.
			return huma.NewError(status, msg)
		case 1:
			// Single error; map it directly.
			return mapError(logger, errs[0])
		default:
			// Multiple errors; join them and map.
			combinedErr := stdErrors.Join(errs...)
			return mapError(logger, combinedErr)
		}
	}
}
