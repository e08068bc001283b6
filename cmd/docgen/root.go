package main

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/docgen/pkg/batch"
	"github.com/gnana997/docgen/pkg/docgen"
	"github.com/gnana997/docgen/pkg/importer"
	"github.com/gnana997/docgen/pkg/parser"
	"github.com/gnana997/docgen/pkg/resolver"
	"github.com/gnana997/docgen/pkg/util"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	config      string
	out         string
	pretty      bool
	extensions  []string
	exclude     string
	ignore      []string
	include     []string
	resolver    string
	watch       bool
	progress    bool
	nodeModules bool
	workers     int
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := batch.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "docgen [paths...]",
		Short: "Extract documentation from React component files",
		Long: `docgen extracts component documentation (props, types, default values,
methods and descriptions) from JavaScript and TypeScript React components and
prints it as JSON.

With no paths, or with "-", the source is read from stdin. A single file prints
that file's documentation array; directories or several paths print an object
keyed by file path.

Example usage:
  docgen src/Button.jsx              # Document one file
  docgen src --pretty -o docs.json   # Document a tree into a file
  cat Button.tsx | docgen            # Document stdin
  docgen serve                       # Start the MCP server on stdio`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(opts.config)
			if err != nil {
				return err
			}
			if cfg != nil {
				cfg.apply(opts, cmd)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocument(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "", "write output to this file instead of stdout")
	flags.BoolVar(&opts.pretty, "pretty", false, "pretty-print the JSON output")
	flags.StringSliceVarP(&opts.extensions, "extension", "x", defaults.Extensions, "file extensions to consider, without the dot")
	flags.StringVarP(&opts.exclude, "exclude", "e", "", "skip files whose name matches this regular expression")
	flags.StringSliceVarP(&opts.ignore, "ignore", "i", defaults.Ignore, "directory names to skip (doublestar patterns)")
	flags.StringSliceVar(&opts.include, "include", nil, "only document paths matching these doublestar patterns, relative to each directory")
	flags.StringVar(&opts.resolver, "resolver", resolver.NameExported,
		fmt.Sprintf("definition resolver (%s)", strings.Join(resolver.Names(), ", ")))
	flags.BoolVarP(&opts.watch, "watch", "w", false, "keep running and re-document files as they change")
	flags.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")
	flags.BoolVar(&opts.nodeModules, "node-modules", false, "follow imports of packages in node_modules")
	flags.IntVar(&opts.workers, "workers", 0, "parsing goroutines (default: based on CPU count)")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.config, "config", "", "config file (default is ./"+defaultConfigFile+")")
	persistent.StringVar(&opts.logLevel, "log-level", string(util.LevelWarn), "log level: debug, info, warn, error")
	persistent.StringVar(&opts.logFormat, "log-format", string(util.FormatText), "log format: text, json")

	cmd.AddCommand(newServeCmd(opts), newVersionCmd())
	return cmd
}

// logger builds the command logger. Logs always go to stderr.
func (o *rootOptions) logger(cmd *cobra.Command) (*slog.Logger, error) {
	config, err := util.ParseLoggerConfig(o.logLevel, o.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return util.NewLogger(config), nil
}

// newImporter returns the filesystem importer every command parses with.
func (o *rootOptions) newImporter(root string, pm *parser.ParserManager, logger *slog.Logger) (*importer.Importer, error) {
	return importer.New(importer.Config{
		Root:        root,
		NodeModules: o.nodeModules,
		Parser:      pm,
		Logger:      logger,
	})
}

// parseOptions returns the docgen options for every parsed source.
func (o *rootOptions) parseOptions(pm *parser.ParserManager, imp *importer.Importer, logger *slog.Logger) ([]docgen.Option, error) {
	r, err := resolver.ByName(o.resolver)
	if err != nil {
		return nil, err
	}
	return []docgen.Option{
		docgen.WithParser(pm),
		docgen.WithImporter(imp),
		docgen.WithLogger(logger),
		docgen.WithResolver(r),
	}, nil
}

// batchOptions converts the file-selection flags.
func (o *rootOptions) batchOptions(parseOpts []docgen.Option, logger *slog.Logger) (batch.Options, error) {
	options := batch.Options{
		Extensions: o.extensions,
		Ignore:     o.ignore,
		Include:    o.include,
		Workers:    o.workers,
		Parse:      parseOpts,
		Logger:     logger,
	}
	if o.exclude != "" {
		re, err := regexp.Compile(o.exclude)
		if err != nil {
			return options, fmt.Errorf("invalid --exclude: %w", err)
		}
		options.Exclude = re
	}
	return options, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docgen %s\n", version)
		},
	}
}
