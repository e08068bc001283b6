package docgen

import (
	"log/slog"

	"github.com/gnana997/docgen/pkg/handlers"
	"github.com/gnana997/docgen/pkg/parser"
	"github.com/gnana997/docgen/pkg/resolve"
	"github.com/gnana997/docgen/pkg/resolver"
)

// Option configures a Parse call.
type Option func(*config)

type config struct {
	resolver resolver.Resolver
	handlers []handlers.Handler
	importer resolve.Importer
	filename string
	logger   *slog.Logger
	parser   *parser.ParserManager
}

func newConfig(opts []Option) *config {
	cfg := &config{
		resolver: resolver.FindExported,
		handlers: handlers.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// WithResolver selects how component definitions are found. The default is
// resolver.FindExported.
func WithResolver(r resolver.Resolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithHandlers replaces the handler pipeline. Handlers run in the given
// order.
func WithHandlers(hs ...handlers.Handler) Option {
	return func(c *config) {
		c.handlers = hs
	}
}

// WithImporter lets resolution follow imports into other modules.
func WithImporter(imp resolve.Importer) Option {
	return func(c *config) {
		c.importer = imp
	}
}

// WithFilename sets the path of the source. It selects the grammar and is
// the base for relative imports.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

// WithLogger sets the logger for handler failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithParser reuses a parser manager instead of the shared default.
func WithParser(pm *parser.ParserManager) Option {
	return func(c *config) {
		c.parser = pm
	}
}
