// Package parser turns JavaScript and TypeScript sources into owned syntax
// trees, using pooled tree-sitter parsers.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ParserManager hands out tree-sitter parsers from one pool per grammar.
// Pools are created on first use. It is safe for concurrent use and must be
// closed to free the native parsers.
//
// Example:
//
//	manager := parser.NewParserManager(logger)
//	defer manager.Close()
//
//	file, err := manager.Program(src, "Button.tsx")
type ParserManager struct {
	pools  map[Grammar]*parserPool
	mutex  sync.RWMutex
	logger *slog.Logger

	parsesCalled atomic.Int64
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	// ParsersCreated is the number of native parsers across all pools.
	ParsersCreated int

	// ParsesCalled is the number of parse calls.
	ParsesCalled int
}

// NewParserManager creates a manager. A nil logger uses slog.Default().
func NewParserManager(logger *slog.Logger) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:  make(map[Grammar]*parserPool),
		logger: logger,
	}
}

// parse returns the tree-sitter tree for source. The caller must close it.
// Trees with syntax errors are still returned; tree-sitter recovers.
func (pm *ParserManager) parse(source []byte, g Grammar) (*ts.Tree, error) {
	pm.parsesCalled.Add(1)

	pool, err := pm.pool(g)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", g, err)
	}
	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("%s parser returned no tree", g)
	}
	return tree, nil
}

// pool returns the pool for g, creating it on first use.
func (pm *ParserManager) pool(g Grammar) (*parserPool, error) {
	pm.mutex.RLock()
	pool, ok := pm.pools[g]
	pm.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if pool, ok = pm.pools[g]; ok {
		return pool, nil
	}
	if pm.pools == nil {
		return nil, fmt.Errorf("parser manager is closed")
	}

	size := getDefaultPoolSize()
	pool = newParserPool(g, size, pm.logger)
	pm.pools[g] = pool
	pm.logger.Debug("created parser pool", "grammar", g.String(), "maxSize", size)
	return pool, nil
}

// Close releases every pooled parser. The manager cannot be used after.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.getCreatedCount()
		pool.close()
	}
	pm.pools = nil

	pm.logger.Debug("closed parser manager",
		"parsers_created", created,
		"parses_called", pm.parsesCalled.Load())
	return nil
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.getCreatedCount()
	}
	return ParserStats{
		ParsersCreated: created,
		ParsesCalled:   int(pm.parsesCalled.Load()),
	}
}
