package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
)

// param is one declared parameter of a function, normalized across the
// JavaScript and TypeScript grammars.
type param struct {
	name     string // "" for destructuring patterns
	pattern  *ast.Node
	typ      *ast.Node
	value    *ast.Node // default value
	optional bool
	rest     bool
}

func parameters(fn *ast.Node) []param {
	if p := fn.ChildByField("parameter"); p != nil {
		return []param{newParam(p)}
	}
	var out []param
	for _, p := range fn.ChildByField("parameters").NamedChildren() {
		out = append(out, newParam(p))
	}
	return out
}

func newParam(n *ast.Node) param {
	p := param{pattern: n}
	if n.Is("required_parameter", "optional_parameter") {
		p.pattern = n.ChildByField("pattern")
		p.typ = n.ChildByField("type")
		p.value = n.ChildByField("value")
		p.optional = n.Kind == "optional_parameter"
	}
	if p.pattern.Is("assignment_pattern") {
		p.value = p.pattern.ChildByField("right")
		p.pattern = p.pattern.ChildByField("left")
	}
	if p.pattern.Is("rest_pattern") {
		p.rest = true
		p.pattern = p.pattern.FirstNamed()
	}
	if p.pattern.Is("identifier") {
		p.name = p.pattern.Text()
	}
	return p
}
