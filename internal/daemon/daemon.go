// Package daemon runs the radixd HTTP API: the voice skill endpoint, direct conversion and the MCP tool.
package daemon

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/radixd/radixd/internal/api"
	"github.com/radixd/radixd/internal/cmd"
	"github.com/radixd/radixd/internal/contracts"
	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/mcptool"
	"github.com/radixd/radixd/internal/skill"
)

// Daemon serves the conversion service over HTTP until its context is canceled.
// NewDaemon should be used to create instances of Daemon.
type Daemon struct {
	logger    hclog.Logger
	service   *conversion.Service
	apiServer *APIServer
}

// NewDaemon wires the skill handler, request validator and optional MCP server into an API server.
func NewDaemon(deps Dependencies, opt ...Option) (*Daemon, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid daemon dependencies: %w", err)
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon options: %w", err)
	}

	logger := deps.Logger.Named("daemon")

	handler, err := skill.NewHandler(logger, deps.Service, opts.SkillOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill handler: %w", err)
	}

	validator, err := skill.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create request validator: %w", err)
	}

	var mcp contracts.MCPHandlerProvider
	if opts.MCPEnabled {
		mcpServer, err := mcptool.NewServer(logger, deps.Service, cmd.AppName, cmd.Version())
		if err != nil {
			return nil, fmt.Errorf("failed to create MCP server: %w", err)
		}
		mcp = mcpServer
	}

	routes := api.RouteDependencies{
		SkillHandler: handler,
		Decoder:      validator,
		Converter:    deps.Service,
		Version:      cmd.Version(),
	}

	apiDeps, err := NewAPIDependencies(logger, routes, mcp, deps.APIAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid API dependencies: %w", err)
	}

	apiServer, err := NewAPIServer(apiDeps, opts.APIOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create daemon API server: %w", err)
	}

	return &Daemon{
		logger:    logger,
		service:   deps.Service,
		apiServer: apiServer,
	}, nil
}

// StartAndManage serves the API and blocks until ctx is canceled or the server fails.
// Cancellation is a clean shutdown and returns nil.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	d.logger.Info(
		"Starting daemon",
		"version", cmd.Version(),
		"source_window", d.service.SourceWindow().String(),
		"target_window", d.service.TargetWindow().String(),
	)

	err := d.apiServer.Start(ctx)
	if err != nil && !stdErrors.Is(err, context.Canceled) {
		return fmt.Errorf("API server failed: %w", err)
	}

	d.logger.Info("Daemon stopped")
	return nil
}
