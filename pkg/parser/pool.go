package parser

import (
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool holds up to maxSize parsers for one grammar. Parsers are
// created lazily; once maxSize exist, acquire blocks until one is released.
type parserPool struct {
	grammar Grammar
	pool    chan *ts.Parser
	maxSize int
	logger  *slog.Logger

	mutex   sync.Mutex
	created int
}

func newParserPool(g Grammar, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		grammar: g,
		pool:    make(chan *ts.Parser, maxSize),
		maxSize: maxSize,
		logger:  logger,
	}
}

func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
	}

	p.mutex.Lock()
	if p.created >= p.maxSize {
		p.mutex.Unlock()
		return <-p.pool, nil
	}
	defer p.mutex.Unlock()

	parser := ts.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create parser")
	}
	if err := parser.SetLanguage(ts.NewLanguage(p.grammar.language())); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set %s language: %w", p.grammar, err)
	}
	p.created++
	p.logger.Debug("created parser", "grammar", p.grammar.String(), "pool_size", p.created)
	return parser, nil
}

// release returns parser to the pool. The channel holds maxSize parsers, so
// this only closes the parser if it did not come from this pool.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.pool <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "grammar", p.grammar.String())
	}
}

// close closes every idle parser. Parsers still acquired are not tracked.
func (p *parserPool) close() {
	close(p.pool)
	for parser := range p.pool {
		parser.Close()
	}
}

func (p *parserPool) getCreatedCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
