package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/gnana997/docgen/pkg/mcp"
	"github.com/gnana997/docgen/pkg/mcplog"
	"github.com/gnana997/docgen/pkg/parser"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var root, toolLog string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
document_source, document_file, document_directory and list_handlers tools.
Diagnostics are logged to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger(cmd)
			if err != nil {
				return err
			}
			if root == "" {
				if root, err = os.Getwd(); err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
			}

			tl, err := mcplog.NewLogger(toolLog)
			if err != nil {
				return err
			}
			if tl != nil {
				defer tl.Close()
			}

			pm := parser.NewParserManager(logger)
			defer pm.Close()
			imp, err := opts.newImporter(root, pm, logger)
			if err != nil {
				return err
			}

			srv := mcpserver.NewServer(mcpserver.Options{
				Root:     root,
				Importer: imp,
				Parser:   pm,
				Logger:   logger,
			}, tl)
			logger.Info("MCP server starting", "root", root, "tool_log", toolLog)
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "directory relative tool paths resolve against (default: working directory)")
	cmd.Flags().StringVar(&toolLog, "tool-log", "", "append a JSON line per tool call to this file")
	return cmd
}
