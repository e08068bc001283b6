// Package resolver locates the component definitions in a parsed module.
//
// A Resolver walks the module scope only: bodies of functions, classes and
// control flow statements (if, loops, switch, with, try) are never searched.
package resolver

import (
	"fmt"
	"sort"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/classify"
	"github.com/gnana997/docgen/pkg/resolve"
)

// Resolver selects the component definitions of a module. Class
// definitions are returned normalized (see NormalizeClass).
type Resolver func(file *ast.File, imp resolve.Importer) ([]*ast.Node, error)

// Names of the built-in resolvers.
const (
	NameExported    = "exported"
	NameAll         = "all"
	NameAllExported = "all-exported"
)

var builtins = map[string]Resolver{
	NameExported:    FindExported,
	NameAll:         FindAll,
	NameAllExported: FindAllExported,
}

// ByName returns a built-in resolver.
func ByName(name string) (Resolver, error) {
	r, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown resolver %q (available: %v)", name, Names())
	}
	return r, nil
}

// Names lists the built-in resolver names.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// skipped reports whether the module-scope walk must not enter n.
func skipped(n *ast.Node) bool {
	if ast.IsFunction(n) || ast.IsClass(n) {
		return true
	}
	switch n.Kind {
	case "if_statement", "while_statement", "do_statement", "for_statement", "for_in_statement",
		"switch_statement", "with_statement", "try_statement", "import_statement":
		return true
	}
	return false
}

// definitions accumulates unique definitions in discovery order.
type definitions struct {
	nodes []*ast.Node
}

func (d *definitions) has(n *ast.Node) bool {
	for _, existing := range d.nodes {
		if ast.Same(existing, n) {
			return true
		}
	}
	return false
}

func (d *definitions) add(n *ast.Node) bool {
	if n == nil || d.has(n) {
		return false
	}
	d.nodes = append(d.nodes, n)
	return true
}

// definitionOf turns a classified value into the node handlers work on:
// the object literal passed to a factory call, a normalized class, or the
// function or forwardRef call itself.
func definitionOf(n *ast.Node, imp resolve.Importer) *ast.Node {
	n = ast.Unwrap(n)
	switch {
	case classify.IsCreateClassCall(n):
		args := classify.Arguments(n)
		if len(args) == 0 {
			return nil
		}
		obj := resolve.ToValue(args[0], imp)
		if !obj.Is("object") {
			return nil
		}
		return obj
	case classify.IsComponentClass(n):
		return NormalizeClass(n)
	case classify.IsStateless(n), classify.IsForwardRefCall(n):
		return n
	}
	return nil
}
