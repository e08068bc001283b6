package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"

	"github.com/gnana997/docgen/pkg/batch"
	"github.com/gnana997/docgen/pkg/docgen"
	"github.com/gnana997/docgen/pkg/handlers"
	"github.com/gnana997/docgen/pkg/resolver"
	"github.com/gnana997/docgen/pkg/util"
)

func (s *Server) handleDocumentSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := s.parseOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if filename := req.GetString("filename", ""); filename != "" {
		opts = append(opts, docgen.WithFilename(s.abs(filename)))
	}

	docs, err := docgen.Parse(ctx, []byte(source), opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.result(docs, req)
}

func (s *Server) handleDocumentFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := s.parseOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path = s.abs(path)
	src, err := util.NewSourceReader(nil).Read(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	docs, err := docgen.Parse(ctx, src.Data, append(opts, docgen.WithFilename(path))...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", path, err)), nil
	}
	return s.result(docs, req)
}

func (s *Server) handleDocumentDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := s.parseOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path = s.abs(path)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("not a directory: %s", path)), nil
	}

	options := batch.DefaultOptions()
	options.Parse = opts
	options.Logger = s.options.Logger
	if include := req.GetString("include", ""); include != "" {
		options.Include = []string{include}
	}
	if exclude := req.GetString("exclude", ""); exclude != "" {
		re, err := regexp.Compile(exclude)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid exclude: %v", err)), nil
		}
		options.Exclude = re
	}

	report, err := batch.Run(ctx, []string{path}, options, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.result(report, req)
}

func (s *Server) handleListHandlers(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.result(map[string]any{
		"resolvers":       resolver.Names(),
		"handlers":        handlers.Names(),
		"defaultHandlers": handlers.DefaultNames(),
	}, req)
}

// parseOptions builds the docgen options shared by every tool.
func (s *Server) parseOptions(req mcp.CallToolRequest) ([]docgen.Option, error) {
	opts := []docgen.Option{docgen.WithLogger(s.options.Logger)}
	if s.options.Parser != nil {
		opts = append(opts, docgen.WithParser(s.options.Parser))
	}
	if s.options.Importer != nil {
		opts = append(opts, docgen.WithImporter(s.options.Importer))
	}
	if name := req.GetString("resolver", ""); name != "" {
		r, err := resolver.ByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, docgen.WithResolver(r))
	}
	return opts, nil
}

// abs resolves a tool path against the server root.
func (s *Server) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	root := s.options.Root
	if root == "" {
		root, _ = os.Getwd()
	}
	return filepath.Join(root, path)
}

// result marshals v and narrows it with the request's query, if any.
func (s *Server) result(v any, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultText(string(data)), nil
	}
	res := gjson.GetBytes(data, query)
	if !res.Exists() {
		return mcp.NewToolResultError(fmt.Sprintf("query %q matched nothing", query)), nil
	}
	return mcp.NewToolResultText(res.Raw), nil
}

// errNoTool is returned by HandleToolCall for unknown tool names.
var errNoTool = errors.New("unknown tool")

// HandleToolCall dispatches a tool call by name without a transport. Calls
// are recorded in the tool log like transport calls.
func (s *Server) HandleToolCall(ctx context.Context, toolName string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[toolName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNoTool, toolName)
	}
	if s.logger != nil {
		handler = s.loggingMiddleware()(handler)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = toolName
	req.Params.Arguments = args
	return handler(ctx, req)
}
