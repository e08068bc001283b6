package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/docgen/pkg/resolver"
)

const queryDescription = "Optional GJSON path applied to the JSON result, e.g. `0.props.@keys` or `0.props.size.type`"

func resolverOption() mcp.PropertyOption {
	return mcp.Enum(resolver.Names()...)
}

func documentSourceTool() mcp.Tool {
	return mcp.NewTool("document_source",
		mcp.WithDescription("Extract component documentation (props, types, defaults, methods, description) from JavaScript or TypeScript source text"),
		mcp.WithString("source", mcp.Required(), mcp.Description("Module source code")),
		mcp.WithString("filename", mcp.Description("File name used to pick the grammar (.js, .jsx, .ts, .tsx) and resolve relative imports; defaults to TSX")),
		mcp.WithString("resolver", mcp.Description("Definition resolver (default: exported)"), resolverOption()),
		mcp.WithString("query", mcp.Description(queryDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func documentFileTool() mcp.Tool {
	return mcp.NewTool("document_file",
		mcp.WithDescription("Extract component documentation from a file, following relative imports"),
		mcp.WithString("path", mcp.Required(), mcp.Description("File path, absolute or relative to the server root")),
		mcp.WithString("resolver", mcp.Description("Definition resolver (default: exported)"), resolverOption()),
		mcp.WithString("query", mcp.Description(queryDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func documentDirectoryTool() mcp.Tool {
	return mcp.NewTool("document_directory",
		mcp.WithDescription("Extract component documentation from every component file under a directory; returns an object keyed by file path"),
		mcp.WithString("path", mcp.Required(), mcp.Description("Directory path, absolute or relative to the server root")),
		mcp.WithString("include", mcp.Description("Optional doublestar pattern relative to the directory, e.g. `**/components/**`")),
		mcp.WithString("exclude", mcp.Description("Optional regular expression; matching file names are skipped")),
		mcp.WithString("resolver", mcp.Description("Definition resolver (default: exported)"), resolverOption()),
		mcp.WithString("query", mcp.Description(queryDescription)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listHandlersTool() mcp.Tool {
	return mcp.NewTool("list_handlers",
		mcp.WithDescription("List the available definition resolvers and documentation handlers"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
