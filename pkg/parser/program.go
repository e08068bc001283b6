package parser

import (
	"fmt"

	"github.com/gnana997/docgen/pkg/ast"
)

// Program parses source into an owned syntax tree with scope information,
// choosing the grammar from filePath (see GrammarFor).
//
// The tree-sitter tree is closed before Program returns; the returned File
// does not hold native memory. Syntax errors are recovered, not returned,
// and recorded in File.HasErrors.
//
// Example:
//
//	file, err := manager.Program([]byte("export default () => <div/>;"), "Button.jsx")
//	if err != nil {
//	    return err
//	}
//	for _, stmt := range file.Body() {
//	    fmt.Println(stmt.Kind)
//	}
func (pm *ParserManager) Program(source []byte, filePath string) (*ast.File, error) {
	g := GrammarFor(filePath)
	tree, err := pm.parse(source, g)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayPath(filePath), err)
	}
	defer tree.Close()

	file := ast.FromTree(tree, source, filePath)
	if file.HasErrors {
		pm.logger.Debug("recovered from syntax errors",
			"file", displayPath(filePath),
			"grammar", g.String())
	}
	return file, nil
}

func displayPath(p string) string {
	if p == "" {
		return "<source>"
	}
	return p
}
