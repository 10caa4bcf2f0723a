package contracts

import (
	"net/http"

	"github.com/radixd/radixd/internal/mcptool"
)

// MCPHandlerProvider supplies an HTTP transport for the MCP conversion tool.
type MCPHandlerProvider interface {
	// HTTPHandler returns a handler serving MCP requests at path.
	HTTPHandler(path string) http.Handler
}

var _ MCPHandlerProvider = (*mcptool.Server)(nil)
