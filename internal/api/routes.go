// Package api registers the radixd HTTP API routes on a Huma router.
package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/radixd/radixd/internal/contracts"
)

// APIVersion is the version used in the OpenAPI spec and URL paths.
const APIVersion = "v1"

// RouteDependencies are the services backing the API routes.
type RouteDependencies struct {
	SkillHandler contracts.SkillRequestHandler
	Decoder      contracts.EnvelopeDecoder
	Converter    contracts.Converter

	// Version is reported by the health endpoint.
	Version string
}

// Validate ensures all required dependencies are provided.
func (d RouteDependencies) Validate() error {
	if d.SkillHandler == nil || reflect.ValueOf(d.SkillHandler).IsNil() {
		return fmt.Errorf("skill handler cannot be nil")
	}
	if d.Decoder == nil || reflect.ValueOf(d.Decoder).IsNil() {
		return fmt.Errorf("envelope decoder cannot be nil")
	}
	if d.Converter == nil || reflect.ValueOf(d.Converter).IsNil() {
		return fmt.Errorf("converter cannot be nil")
	}
	return nil
}

// RegisterRoutes registers all API routes on the provided Huma router.
// This is the single source of truth for the API route structure.
// Returns the API path prefix (e.g., "/api/v1") under which the routes are created.
func RegisterRoutes(router huma.API, deps RouteDependencies) (string, error) {
	if router == nil || reflect.ValueOf(router).IsNil() {
		return "", fmt.Errorf("router cannot be nil")
	}
	if err := deps.Validate(); err != nil {
		return "", err
	}

	// Safe way to ensure /api/{version}.
	apiPathPrefix, err := url.JoinPath("/api", APIVersion)
	if err != nil {
		return "", fmt.Errorf("failed to construct API path prefix: %w", err)
	}

	// Group all routes under the /api/{version} prefix.
	versionedGroup := huma.NewGroup(router, apiPathPrefix)
	RegisterHealthRoutes(versionedGroup, deps.Version, "/health")
	RegisterSkillRoutes(versionedGroup, deps.Decoder, deps.SkillHandler, "/skill")
	RegisterConvertRoutes(versionedGroup, deps.Converter, "/convert")

	return apiPathPrefix, nil
}
