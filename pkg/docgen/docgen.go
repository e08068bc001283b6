// Package docgen extracts documentation from React component sources.
//
// Parse runs a Resolver over a program to find component definitions and
// then a pipeline of Handlers over each definition:
//
//	docs, err := docgen.Parse(ctx, src, docgen.WithFilename("Button.tsx"))
//	if errors.Is(err, docgen.ErrNoDefinition) {
//	    // not a component module
//	}
package docgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/parser"
	"github.com/gnana997/docgen/pkg/resolver"
)

const tracerName = "github.com/gnana997/docgen"

var (
	// ErrNoDefinition is returned when the resolver finds no component.
	ErrNoDefinition = errors.New("no suitable component definition found")

	// ErrMultipleDefinitions is returned by the default resolver when a
	// module exports more than one component.
	ErrMultipleDefinitions = resolver.ErrMultipleDefinitions
)

var (
	defaultParserOnce sync.Once
	defaultParser     *parser.ParserManager
)

// DefaultParser returns the parser manager shared by Parse calls that do
// not supply one.
func DefaultParser() *parser.ParserManager {
	defaultParserOnce.Do(func() {
		defaultParser = parser.NewParserManager(slog.Default())
	})
	return defaultParser
}

// Parse parses src and documents every component definition the resolver
// finds in it, in resolver order.
//
// It fails with ErrNoDefinition when there is none, and passes resolver
// errors such as ErrMultipleDefinitions through. No documentation is
// returned on error.
func Parse(ctx context.Context, src []byte, opts ...Option) ([]*record.Documentation, error) {
	cfg := newConfig(opts)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "docgen.Parse",
		trace.WithAttributes(attribute.String("file", cfg.filename), attribute.Int("bytes", len(src))))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pm := cfg.parser
	if pm == nil {
		pm = DefaultParser()
	}
	file, err := pm.Program(src, cfg.filename)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	docs, err := document(ctx, file, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("definitions", len(docs)))
	return docs, nil
}

// ParseFile documents an already parsed program.
func ParseFile(ctx context.Context, file *ast.File, opts ...Option) ([]*record.Documentation, error) {
	return document(ctx, file, newConfig(opts))
}

func document(ctx context.Context, file *ast.File, cfg *config) ([]*record.Documentation, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "docgen.resolve")
	defs, err := cfg.resolver(file, cfg.importer)
	span.SetAttributes(attribute.Int("definitions", len(defs)))
	span.End()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, ErrNoDefinition
	}

	docs := make([]*record.Documentation, 0, len(defs))
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs = append(docs, cfg.run(ctx, def))
	}
	return docs, nil
}

// run applies every handler to one definition. A handler that panics is
// logged and skipped; the remaining handlers still run.
func (cfg *config) run(ctx context.Context, def *ast.Node) *record.Documentation {
	_, span := otel.Tracer(tracerName).Start(ctx, "docgen.handlers",
		trace.WithAttributes(attribute.String("kind", def.Kind), attribute.Int("line", int(def.Row)+1)))
	defer span.End()

	doc := record.New()
	for i, h := range cfg.handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					err := fmt.Errorf("handler %d panicked: %v", i, r)
					span.RecordError(err)
					cfg.logger.Warn("handler failed",
						"file", cfg.filename,
						"line", def.Row+1,
						"handler", i,
						"error", err)
				}
			}()
			h(doc, def, cfg.importer)
		}()
	}
	return doc
}
