package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/docgen/pkg/importer"
	"github.com/gnana997/docgen/pkg/mcplog"
	"github.com/gnana997/docgen/pkg/parser"
)

const serverVersion = "0.1.0-dev"

// Options configures the MCP server.
type Options struct {
	// Root resolves relative tool paths. Defaults to the working directory.
	Root string

	// Importer follows imports for file-based tools. May be nil.
	Importer *importer.Importer

	// Parser parses sources. Defaults to docgen.DefaultParser().
	Parser *parser.ParserManager

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server implements the MCP server for docgen, exposing component
// documentation tools.
type Server struct {
	mcpServer *server.MCPServer
	options   Options
	logger    *mcplog.Logger // nil disables tool-call logging
	handlers  map[string]server.ToolHandlerFunc
}

// NewServer creates a new MCP server. toolLog may be nil.
func NewServer(options Options, toolLog *mcplog.Logger) *Server {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	s := &Server{options: options, logger: toolLog}

	serverOpts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if toolLog != nil {
		serverOpts = append(serverOpts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("docgen", serverVersion, serverOpts...)

	tools := []server.ServerTool{
		{Tool: documentSourceTool(), Handler: s.handleDocumentSource},
		{Tool: documentFileTool(), Handler: s.handleDocumentFile},
		{Tool: documentDirectoryTool(), Handler: s.handleDocumentDirectory},
		{Tool: listHandlersTool(), Handler: s.handleListHandlers},
	}
	s.handlers = make(map[string]server.ToolHandlerFunc, len(tools))
	for _, t := range tools {
		s.handlers[t.Tool.Name] = t.Handler
	}
	s.mcpServer.AddTools(tools...)

	return s
}

// MCPServer returns the underlying mcp-go server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
