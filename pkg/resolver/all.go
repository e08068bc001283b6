package resolver

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/classify"
	"github.com/gnana997/docgen/pkg/resolve"
)

// FindAll returns every component defined at module scope, exported or
// not, in source order. Function and class bodies are not searched, so a
// component declared inside another function is not found.
func FindAll(file *ast.File, imp resolve.Importer) ([]*ast.Node, error) {
	var found definitions
	if file == nil || file.Root == nil {
		return nil, nil
	}
	ast.Walk(file.Root, func(n *ast.Node) bool {
		switch {
		case ast.IsFunction(n):
			if classify.IsStateless(n) {
				found.add(n)
			}
			return false
		case ast.IsClass(n):
			if classify.IsComponentClass(n) {
				found.add(NormalizeClass(n))
			}
			return false
		case skipped(n):
			return false
		case n.Kind == "call_expression":
			if classify.IsForwardRefCall(n) {
				found.add(n)
				return false
			}
			if classify.IsCreateClassCall(n) {
				found.add(definitionOf(n, imp))
				return false
			}
		}
		return true
	})
	return found.nodes, nil
}
