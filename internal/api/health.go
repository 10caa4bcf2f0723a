package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// HealthStatusOK is reported while the API is serving requests.
const HealthStatusOK HealthStatus = "ok"

// HealthStatus represents the status of the radixd API.
type HealthStatus string

// Health is the liveness report for the API.
type Health struct {
	Status  HealthStatus `doc:"Service status"  example:"ok"  json:"status"`
	Version string       `doc:"radixd version"  example:"dev" json:"version"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Body Health
}

// RegisterHealthRoutes sets up the health endpoint route.
func RegisterHealthRoutes(routerAPI huma.API, version string, path string) {
	huma.Register(
		routerAPI,
		huma.Operation{
			OperationID: "getHealth",
			Method:      http.MethodGet,
			Path:        path,
			Summary:     "Report API liveness",
			Tags:        []string{"Health"},
		},
		func(_ context.Context, _ *struct{}) (*HealthResponse, error) {
			return &HealthResponse{Body: Health{Status: HealthStatusOK, Version: version}}, nil
		},
	)
}
