package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/docgen/pkg/mcplog"
)

// loggingMiddleware records every tool call in the server's tool log. It
// must only be installed when that log is non-nil.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := mcplog.Now()
			result, err := next(ctx, req)

			entry := mcplog.NewEntry(req.Params.Name, req.GetArguments(), start, result, err)
			if werr := s.logger.Write(entry); werr != nil {
				s.options.Logger.Debug("Failed to write tool log", "tool", entry.Tool, "error", werr)
			}
			return result, err
		}
	}
}
