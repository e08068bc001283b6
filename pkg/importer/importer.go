// Package importer resolves imports against the filesystem so values can be
// followed across module boundaries.
//
// Parsed modules are kept in an LRU cache. A cached module is reused while
// its size and modification time are unchanged, or when a re-read yields the
// same content digest.
package importer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/parser"
	"github.com/gnana997/docgen/pkg/resolve"
	"github.com/gnana997/docgen/pkg/util"
)

// Config controls Importer behavior.
type Config struct {
	// Root resolves relative specifiers when the importing file has no
	// path (stdin or in-memory sources). Defaults to the working directory.
	Root string

	// Extensions is the probe order for extensionless specifiers.
	// Defaults to DefaultExtensions.
	Extensions []string

	// NodeModules enables resolution of bare package specifiers through
	// node_modules directories.
	NodeModules bool

	// MaxCachedModules bounds the parsed-module cache. Defaults to 512.
	MaxCachedModules int

	// MaxDepth caps how many re-export hops one import may follow.
	// Defaults to 16.
	MaxDepth int

	// Parser parses imported modules. Defaults to a new ParserManager.
	Parser *parser.ParserManager

	// Reader reads module sources. Defaults to a SourceReader with
	// DefaultSourceReaderConfig.
	Reader util.SourceReader

	// Logger for cache and resolution diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Stats tracks importer metrics.
type Stats struct {
	Hits       int64
	Misses     int64
	Reparsed   int64
	Unresolved int64
	Cached     int
}

type module struct {
	src  *util.Source
	file *ast.File
}

// Importer is a filesystem resolve.Importer. It is safe for concurrent use.
type Importer struct {
	config Config
	logger *slog.Logger
	cache  *lru.Cache[string, *module]

	hits, misses, reparsed, unresolved atomic.Int64
}

var _ resolve.Importer = (*Importer)(nil)

// New creates an Importer, filling zero config fields with defaults.
func New(config Config) (*Importer, error) {
	if config.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("importer root: %w", err)
		}
		config.Root = wd
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultExtensions
	}
	if config.MaxCachedModules <= 0 {
		config.MaxCachedModules = 512
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = 16
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Parser == nil {
		config.Parser = parser.NewParserManager(config.Logger)
	}
	if config.Reader == nil {
		config.Reader = util.NewSourceReader(&util.SourceReaderConfig{
			MaxFileBytes: util.DefaultSourceReaderConfig().MaxFileBytes,
			Logger:       config.Logger,
		})
	}

	logger := config.Logger
	cache, err := lru.NewWithEvict(config.MaxCachedModules, func(path string, _ *module) {
		logger.Debug("evicting module", "path", path)
	})
	if err != nil {
		return nil, fmt.Errorf("module cache: %w", err)
	}
	return &Importer{config: config, logger: logger, cache: cache}, nil
}

// Import returns the value module source exports under name, as seen from
// fromPath. It returns nil when the module cannot be found, read or parsed,
// or does not export name.
func (im *Importer) Import(source, name, fromPath string) *ast.Node {
	return im.importAt(source, name, fromPath, 0)
}

func (im *Importer) importAt(source, name, fromPath string, depth int) *ast.Node {
	if depth >= im.config.MaxDepth {
		im.logger.Debug("import depth exceeded", "source", source, "name", name, "from", fromPath)
		return nil
	}
	path, ok := im.Resolve(source, fromPath)
	if !ok {
		im.unresolved.Add(1)
		im.logger.Debug("module not found", "source", source, "from", fromPath)
		return nil
	}
	file, err := im.Load(path)
	if err != nil {
		im.logger.Debug("module not loaded", "path", path, "error", err)
		return nil
	}
	return resolve.Export(file, name, &chained{im: im, depth: depth + 1})
}

// chained imports on behalf of a module being imported, one hop deeper.
type chained struct {
	im    *Importer
	depth int
}

func (c *chained) Import(source, name, fromPath string) *ast.Node {
	return c.im.importAt(source, name, fromPath, c.depth)
}

// Load returns the parsed module at path, from cache when its content has not
// changed.
func (im *Importer) Load(path string) (*ast.File, error) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	cached, ok := im.cache.Get(path)
	if ok && cached.src.Unchanged(info) {
		im.hits.Add(1)
		return cached.file, nil
	}

	src, err := im.config.Reader.Read(path)
	if err != nil {
		return nil, err
	}
	if ok && cached.src.Digest == src.Digest {
		im.hits.Add(1)
		im.cache.Add(path, &module{src: src, file: cached.file})
		return cached.file, nil
	}

	im.misses.Add(1)
	if ok {
		im.reparsed.Add(1)
	}
	im.logger.Debug("parsing module", "path", path, "bytes", len(src.Data))
	file, err := im.config.Parser.Program(src.Data, path)
	if err != nil {
		return nil, err
	}
	im.cache.Add(path, &module{src: src, file: file})
	return file, nil
}

// Invalidate drops path from the cache.
func (im *Importer) Invalidate(path string) {
	im.cache.Remove(filepath.Clean(path))
}

// Purge drops every cached module.
func (im *Importer) Purge() {
	im.cache.Purge()
}

// Stats returns current importer metrics.
func (im *Importer) Stats() Stats {
	return Stats{
		Hits:       im.hits.Load(),
		Misses:     im.misses.Load(),
		Reparsed:   im.reparsed.Load(),
		Unresolved: im.unresolved.Load(),
		Cached:     im.cache.Len(),
	}
}
