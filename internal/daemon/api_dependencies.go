package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/radixd/radixd/internal/api"
	"github.com/radixd/radixd/internal/contracts"
)

// APIDependencies contains the required external dependencies for the API server.
// NewAPIDependencies should be used to create instances of APIDependencies.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "0.0.0.0:8090").
	Addr string

	// Routes are the services backing the versioned API routes.
	Routes api.RouteDependencies

	// MCP optionally serves the conversion tool over streamable HTTP, nil disables it.
	MCP contracts.MCPHandlerProvider

	// Logger for API server operations.
	Logger hclog.Logger
}

// NewAPIDependencies creates and validates APIDependencies.
func NewAPIDependencies(
	logger hclog.Logger,
	routes api.RouteDependencies,
	mcp contracts.MCPHandlerProvider,
	addr string,
) (APIDependencies, error) {
	deps := APIDependencies{
		Addr:   addr,
		Routes: routes,
		MCP:    mcp,
		Logger: logger,
	}

	if err := deps.Validate(); err != nil {
		return APIDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := validateAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if err := d.Routes.Validate(); err != nil {
		return fmt.Errorf("invalid route dependencies: %w", err)
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}

// MCPEnabled reports whether an MCP handler was supplied.
func (d APIDependencies) MCPEnabled() bool {
	return d.MCP != nil && !reflect.ValueOf(d.MCP).IsNil()
}
