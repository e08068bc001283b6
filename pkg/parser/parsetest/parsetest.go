// Package parsetest parses inline sources for tests.
package parsetest

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/parser"
)

var (
	once    sync.Once
	manager *parser.ParserManager
)

// Manager returns a process-wide parser manager with logging discarded.
func Manager() *parser.ParserManager {
	once.Do(func() {
		manager = parser.NewParserManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})
	return manager
}

// Parse parses src with the TSX grammar.
func Parse(t testing.TB, src string) *ast.File {
	t.Helper()
	return ParseAs(t, src, "")
}

// ParseAs parses src choosing the grammar from path.
func ParseAs(t testing.TB, src, path string) *ast.File {
	t.Helper()
	file, err := Manager().Program([]byte(src), path)
	require.NoError(t, err, "parse %q", path)
	require.False(t, file.HasErrors, "source should parse without syntax errors:\n%s", src)
	return file
}

// Find returns the first node of the given kind whose text equals text,
// searching depth-first from the root.
func Find(t testing.TB, file *ast.File, kind, text string) *ast.Node {
	t.Helper()
	var found *ast.Node
	ast.Walk(file.Root, func(n *ast.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == kind && (text == "" || n.Text() == text) {
			found = n
			return false
		}
		return true
	})
	require.NotNil(t, found, "no %s node with text %q", kind, text)
	return found
}

// Last returns the last top-level statement of file.
func Last(t testing.TB, file *ast.File) *ast.Node {
	t.Helper()
	body := file.Body()
	require.NotEmpty(t, body)
	return body[len(body)-1]
}

// Expr returns the expression of the last top-level expression statement.
func Expr(t testing.TB, file *ast.File) *ast.Node {
	t.Helper()
	stmt := Last(t, file)
	require.Equal(t, "expression_statement", stmt.Kind, "last statement should be an expression")
	return stmt.FirstNamed()
}
