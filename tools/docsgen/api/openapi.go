//go:build docsgen_api
// +build docsgen_api

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"

	"github.com/radixd/radixd/internal/api"
	"github.com/radixd/radixd/internal/cmd"
	"github.com/radixd/radixd/internal/config"
	"github.com/radixd/radixd/internal/perms"
	"github.com/radixd/radixd/internal/skill"
)

// main generates the OpenAPI specification for the radixd API.
// It assumes it is run from the repository root.
func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "radixd.docsgen.api",
		Level:  hclog.Info,
		Output: os.Stderr,
	})

	outputPath := "./docs/api/openapi.yaml"

	if err := generate(logger, outputPath); err != nil {
		logger.Error("failed to generate OpenAPI spec", "error", err)
		os.Exit(1)
	}
}

func generate(logger hclog.Logger, outputPath string) error {
	// Build the same router the daemon serves, backed by the default configuration.
	service, err := config.Default().Conversion.NewService()
	if err != nil {
		return fmt.Errorf("failed to create conversion service: %w", err)
	}
	handler, err := skill.NewHandler(logger, service)
	if err != nil {
		return fmt.Errorf("failed to create skill handler: %w", err)
	}
	validator, err := skill.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to create request validator: %w", err)
	}

	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)
	router := humachi.New(mux, huma.DefaultConfig("radixd docs", cmd.Version()))

	apiPathPrefix, err := api.RegisterRoutes(router, api.RouteDependencies{
		SkillHandler: handler,
		Decoder:      validator,
		Converter:    service,
		Version:      cmd.Version(),
	})
	if err != nil {
		return fmt.Errorf("failed to register API routes: %w", err)
	}
	logger.Info("Routes registered", "prefix", apiPathPrefix)

	yamlBytes, err := router.OpenAPI().YAML()
	if err != nil {
		return fmt.Errorf("failed to render OpenAPI YAML: %w", err)
	}

	docsDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(docsDir, perms.RegularDir); err != nil {
		return fmt.Errorf("failed to create docs directory %s: %w", docsDir, err)
	}
	if err := os.WriteFile(outputPath, yamlBytes, perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	logger.Info("OpenAPI spec generated", "path", outputPath, "size", fmt.Sprintf("%d bytes", len(yamlBytes)))
	return nil
}
