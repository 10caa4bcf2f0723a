// Package mcptool exposes radix conversion as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/radixd/radixd/internal/conversion"
	"github.com/radixd/radixd/internal/slots"
)

const (
	// ToolName is the name the conversion tool is registered under.
	ToolName = "convert_base"

	argNumeral     = "numeral"
	argSourceRadix = "source_radix"
	argTargetRadix = "target_radix"
)

// Server is an MCP server offering the conversion tool.
// NewServer should be used to create instances of Server.
type Server struct {
	logger  hclog.Logger
	service *conversion.Service
	mcp     *server.MCPServer
}

// NewServer creates an MCP server named name at version with the conversion tool registered.
func NewServer(logger hclog.Logger, service *conversion.Service, name string, version string) (*Server, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("conversion service cannot be nil")
	}

	s := &Server{
		logger:  logger.Named("mcp"),
		service: service,
		mcp:     server.NewMCPServer(name, version, server.WithToolCapabilities(false)),
	}
	s.mcp.AddTool(s.toolDefinition(), s.handleConvert)

	return s, nil
}

// HTTPHandler returns a streamable HTTP transport for the server, served at path.
func (s *Server) HTTPHandler(path string) http.Handler {
	return server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(path))
}

// ServeStdio serves the tool over stdin/stdout until the input is closed.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) toolDefinition() mcp.Tool {
	src := s.service.SourceWindow()
	dst := s.service.TargetWindow()

	return mcp.NewTool(
		ToolName,
		mcp.WithDescription(fmt.Sprintf(
			"Convert a non-negative integer numeral from one base to another. "+
				"Source bases %d to %d are accepted (default 10); target bases %d to %d. "+
				"Digits above 9 are written with the letters a-z.",
			src.Min, src.Max, dst.Min, dst.Max,
		)),
		mcp.WithString(argNumeral,
			mcp.Required(),
			mcp.Description("The numeral to convert, most significant digit first, e.g. '255' or '1011'"),
		),
		mcp.WithNumber(argSourceRadix,
			mcp.Description("The base the numeral is written in (default: 10)"),
		),
		mcp.WithNumber(argTargetRadix,
			mcp.Required(),
			mcp.Description("The base to convert the numeral into"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

func (s *Server) handleConvert(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := RawSlots(request.GetArguments())

	out, err := s.service.ConvertRaw(raw)
	if err != nil {
		var convErr *conversion.Error
		if !stdErrors.As(err, &convErr) {
			return nil, fmt.Errorf("conversion failed: %w", err)
		}
		s.logger.Debug("Conversion not performed", "kind", convErr.Kind, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(out.Summary())
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}

// RawSlots turns tool arguments into slot text. Numbers are formatted without exponent,
// so fractional radices are kept as text and classified as not-a-number.
func RawSlots(args map[string]any) slots.RawSlots {
	names := map[string]string{
		argNumeral:     slots.Numeral,
		argSourceRadix: slots.SourceRadix,
		argTargetRadix: slots.TargetRadix,
	}

	raw := slots.RawSlots{}
	for arg, logical := range names {
		v, ok := args[arg]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			raw[logical] = t
		case float64:
			raw[logical] = strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			raw[logical] = strconv.Itoa(t)
		case json.Number:
			raw[logical] = t.String()
		default:
			raw[logical] = fmt.Sprintf("%v", t)
		}
	}

	return raw
}
