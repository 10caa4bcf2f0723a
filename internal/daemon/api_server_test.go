package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/radixd/radixd/internal/api"
	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/errors"
	"github.com/radixd/radixd/internal/mcptool"
	"github.com/radixd/radixd/internal/radix"
	"github.com/radixd/radixd/internal/skill"
)

const testIntentRequest = `{
  "version": "1.0",
  "session": {
    "new": true,
    "sessionId": "amzn1.echo-api.session.1",
    "application": { "applicationId": "amzn1.ask.skill.1" }
  },
  "request": {
    "type": "IntentRequest",
    "requestId": "amzn1.echo-api.request.1",
    "timestamp": "%s",
    "intent": {
      "name": "BASECONVERTERINTENT",
      "slots": {
        "to_convert": { "name": "to_convert", "value": "255" },
        "final_base": { "name": "final_base", "value": "16" }
      }
    }
  }
}`

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func testService(t *testing.T) *conversion.Service {
	t.Helper()

	c, err := radix.NewConverter()
	require.NoError(t, err)
	svc, err := conversion.NewService(c)
	require.NoError(t, err)

	return svc
}

func testRouteDependencies(t *testing.T, opt ...skill.Option) api.RouteDependencies {
	t.Helper()

	svc := testService(t)
	opt = append([]skill.Option{skill.WithClock(func() time.Time { return testNow })}, opt...)
	h, err := skill.NewHandler(hclog.NewNullLogger(), svc, opt...)
	require.NoError(t, err)

	v, err := skill.NewValidator()
	require.NoError(t, err)

	return api.RouteDependencies{
		SkillHandler: h,
		Decoder:      v,
		Converter:    svc,
		Version:      "test",
	}
}

func testAPIServer(t *testing.T, routes api.RouteDependencies, opt ...APIOption) *APIServer {
	t.Helper()

	deps, err := NewAPIDependencies(hclog.NewNullLogger(), routes, nil, "localhost:8090")
	require.NoError(t, err)

	server, err := NewAPIServer(deps, opt...)
	require.NoError(t, err)

	return server
}

func testHandler(t *testing.T, server *APIServer) http.Handler {
	t.Helper()

	h, prefix, err := server.handler()
	require.NoError(t, err)
	require.Equal(t, "/api/v1", prefix)

	return h
}

func postSkill(t *testing.T, h http.Handler, timestamp time.Time) *httptest.ResponseRecorder {
	t.Helper()

	body := fmt.Sprintf(testIntentRequest, timestamp.Format(time.RFC3339))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/skill", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestNewAPIServer_AppliesDefaults(t *testing.T) {
	t.Parallel()

	routes := testRouteDependencies(t)

	// Test with no options - should get defaults
	server := testAPIServer(t, routes)
	require.Equal(t, DefaultAPIShutdownTimeout(), server.shutdownTimeout)
	require.False(t, server.cors.Enabled)
	require.False(t, server.rateLimit.Enabled())
	require.Equal(t, DefaultMCPPath(), server.mcpPath)
	require.Nil(t, server.mcp)

	// Test with some options - should get defaults + overrides
	server2 := testAPIServer(t, routes, WithShutdownTimeout(10*time.Second), WithCORSEnabled(true), WithRateLimit(2, 4))
	require.Equal(t, 10*time.Second, server2.shutdownTimeout)
	require.True(t, server2.cors.Enabled)
	require.Equal(t, RateLimitConfig{RequestsPerSecond: 2, Burst: 4}, server2.rateLimit)

	// Test with nil options - should still work
	server3 := testAPIServer(t, routes, nil, WithShutdownTimeout(3*time.Second), nil)
	require.Equal(t, 3*time.Second, server3.shutdownTimeout)
}

func TestNewAPIServer_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := NewAPIServer(APIDependencies{Addr: "localhost:8090", Logger: hclog.NewNullLogger()})
	require.ErrorContains(t, err, "invalid dependencies for API server")

	deps, err := NewAPIDependencies(hclog.NewNullLogger(), testRouteDependencies(t), nil, "localhost:8090")
	require.NoError(t, err)

	_, err = NewAPIServer(deps, WithRateLimit(-1, 1))
	require.ErrorContains(t, err, "invalid API options")
}

func TestAPIServer_Handler_Skill(t *testing.T) {
	h := testHandler(t, testAPIServer(t, testRouteDependencies(t)))

	rec := postSkill(t, h, testNow)
	require.Equal(t, http.StatusOK, rec.Code)

	var got skill.ResponseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "255 in base 10 is f f in base 16.", got.Response.OutputSpeech.Text)
	require.True(t, got.Response.ShouldEndSession)
}

func TestAPIServer_Handler_SkillErrors(t *testing.T) {
	tests := []struct {
		name           string
		opts           []skill.Option
		timestamp      time.Time
		expectedStatus int
	}{
		{
			name:           "request for another application",
			opts:           []skill.Option{skill.WithApplicationID("amzn1.ask.skill.2")},
			timestamp:      testNow,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "stale request",
			timestamp:      testNow.Add(-time.Hour),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown intent",
			opts:           []skill.Option{skill.WithConversionIntent("OtherIntent")},
			timestamp:      testNow,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := testHandler(t, testAPIServer(t, testRouteDependencies(t, tc.opts...)))

			rec := postSkill(t, h, tc.timestamp)
			require.Equal(t, tc.expectedStatus, rec.Code)
		})
	}
}

func TestAPIServer_Handler_SchemaViolation(t *testing.T) {
	h := testHandler(t, testAPIServer(t, testRouteDependencies(t)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/skill", strings.NewReader(`{"version": "1.0"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIServer_Handler_ConvertFailure(t *testing.T) {
	h := testHandler(t, testAPIServer(t, testRouteDependencies(t)))

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/convert",
		strings.NewReader(`{"numeral": "19", "sourceRadix": "8", "targetRadix": "2"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got huma.ErrorModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Errors, 1)
	require.Equal(t, string(conversion.KindInvalidNumeral), got.Errors[0].Message)
}

func TestAPIServer_Handler_RateLimit(t *testing.T) {
	// A rate this low never refills during the test.
	h := testHandler(t, testAPIServer(t, testRouteDependencies(t), WithRateLimit(0.001, 2)))

	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, string(api.RateLimited), rec.Header().Get(api.HeaderErrorType))
	require.Equal(t, "1000", rec.Header().Get("Retry-After"))
}

func TestAPIServer_Handler_MCP(t *testing.T) {
	routes := testRouteDependencies(t)

	mcpServer, err := mcptool.NewServer(hclog.NewNullLogger(), testService(t), "radixd-test", "test")
	require.NoError(t, err)

	deps, err := NewAPIDependencies(hclog.NewNullLogger(), routes, mcpServer, "localhost:8090")
	require.NoError(t, err)
	require.True(t, deps.MCPEnabled())

	server, err := NewAPIServer(deps, WithMCPPath("/tools"))
	require.NoError(t, err)
	h := testHandler(t, server)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{` +
		`"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/tools", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "radixd-test")

	// The default path is not served when another is configured.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body)))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		config          CORSConfig
		wantOrigins     []string
		wantCredentials bool
		wantMaxAge      int
	}{
		{
			name: "listed origins keep credentials",
			config: CORSConfig{
				AllowOrigins:     []string{"http://localhost:3000", "https://converter.example.com"},
				AllowCredentials: true,
				MaxAge:           5 * time.Minute,
			},
			wantOrigins:     []string{"http://localhost:3000", "https://converter.example.com"},
			wantCredentials: true,
			wantMaxAge:      300,
		},
		{
			name: "wildcard among origins drops credentials",
			config: CORSConfig{
				AllowOrigins:     []string{"http://localhost:3000", " * ", "https://converter.example.com"},
				AllowCredentials: true,
				MaxAge:           time.Hour,
			},
			wantOrigins: []string{"*"},
			wantMaxAge:  3600,
		},
		{
			name: "origins are trimmed and blanks dropped",
			config: CORSConfig{
				AllowOrigins: []string{"  http://localhost:3000  ", "\thttps://converter.example.com\n", " "},
			},
			wantOrigins: []string{"http://localhost:3000", "https://converter.example.com"},
		},
		{
			name:        "no origins",
			config:      CORSConfig{AllowOrigins: []string{}},
			wantOrigins: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			given := append([]string(nil), tc.config.AllowOrigins...)
			got := corsOptions(tc.config)

			require.Equal(t, tc.wantOrigins, got.AllowedOrigins)
			require.Equal(t, tc.wantCredentials, got.AllowCredentials)
			require.Equal(t, tc.wantMaxAge, got.MaxAge)
			require.Equal(t, given, tc.config.AllowOrigins, "config origins must not be modified")
		})
	}
}

func TestCORSOptions_PassesThroughHeadersAndMethods(t *testing.T) {
	t.Parallel()

	opts, err := NewAPIOptions(WithCORSEnabled(true))
	require.NoError(t, err)

	got := corsOptions(opts.CORS)
	require.Equal(t, DefaultCORSAllowMethods(), got.AllowedMethods)
	require.Equal(t, DefaultCORSAllowHeaders(), got.AllowedHeaders)
	require.Equal(t, []string{api.HeaderErrorType}, got.ExposedHeaders)
	require.False(t, got.AllowCredentials)
}

func TestAPIServer_Handler_CORS(t *testing.T) {
	const origin = "https://converter.example.com"

	preflight := func(h http.Handler, from string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/convert", nil)
		req.Header.Set("Origin", from)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allowed origin may post conversions", func(t *testing.T) {
		h := testHandler(t, testAPIServer(t, testRouteDependencies(t),
			WithCORSEnabled(true),
			WithCORSAllowOrigins([]string{origin}),
		))

		rec := preflight(h, origin)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))

		req := httptest.NewRequest(
			http.MethodPost,
			"/api/v1/convert",
			strings.NewReader(`{"numeral": "255", "sourceRadix": "10", "targetRadix": "16"}`),
		)
		req.Header.Set("Origin", origin)
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, api.HeaderErrorType, rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("other origins are not admitted", func(t *testing.T) {
		h := testHandler(t, testAPIServer(t, testRouteDependencies(t),
			WithCORSEnabled(true),
			WithCORSAllowOrigins([]string{origin}),
		))

		rec := preflight(h, "https://elsewhere.example.com")
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never allows credentials", func(t *testing.T) {
		h := testHandler(t, testAPIServer(t, testRouteDependencies(t),
			WithCORSEnabled(true),
			WithCORSAllowOrigins([]string{"*"}),
			WithCORSAllowCredentials(true),
		))

		rec := preflight(h, origin)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("disabled by default", func(t *testing.T) {
		h := testHandler(t, testAPIServer(t, testRouteDependencies(t)))

		rec := preflight(h, origin)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestMapError(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "ErrBadRequest maps to 400",
			err:            errors.ErrBadRequest,
			expectedStatus: 400,
		},
		{
			name:           "ErrInvalidApplicationID maps to 403",
			err:            fmt.Errorf("%w: 'amzn1.ask.skill.2'", errors.ErrInvalidApplicationID),
			expectedStatus: 403,
		},
		{
			name:           "ErrUnknownIntent maps to 400",
			err:            errors.ErrUnknownIntent,
			expectedStatus: 400,
		},
		{
			name:           "ErrUnsupportedRequestType maps to 400",
			err:            errors.ErrUnsupportedRequestType,
			expectedStatus: 400,
		},
		{
			name:           "ErrStaleRequest maps to 400",
			err:            errors.ErrStaleRequest,
			expectedStatus: 400,
		},
		{
			name:           "ErrRateLimited maps to 429",
			err:            errors.ErrRateLimited,
			expectedStatus: 429,
		},
		{
			name:           "conversion error maps to 422",
			err:            fmt.Errorf("wrapped: %w", &conversion.Error{Kind: conversion.KindMissingNumeral}),
			expectedStatus: 422,
		},
		{
			name:           "Unknown error maps to 500",
			err:            fmt.Errorf("unknown error"),
			expectedStatus: 500,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			statusErr := mapError(logger, tc.err)
			require.Equal(t, tc.expectedStatus, statusErr.GetStatus())
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	handle := errorHandler(hclog.NewNullLogger())

	// Statuses chosen by the framework are kept.
	statusErr := handle(nil, http.StatusUnprocessableEntity, "validation failed", fmt.Errorf("expected string"))
	require.Equal(t, http.StatusUnprocessableEntity, statusErr.GetStatus())

	// Handler errors are mapped.
	statusErr = handle(nil, http.StatusInternalServerError, "unexpected error occurred", errors.ErrStaleRequest)
	require.Equal(t, http.StatusBadRequest, statusErr.GetStatus())

	statusErr = handle(nil, http.StatusInternalServerError, "unexpected error occurred",
		fmt.Errorf("first"), errors.ErrUnknownIntent)
	require.Equal(t, http.StatusBadRequest, statusErr.GetStatus())

	statusErr = handle(nil, http.StatusInternalServerError, "unexpected error occurred")
	require.Equal(t, http.StatusInternalServerError, statusErr.GetStatus())
}
