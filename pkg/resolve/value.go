// Package resolve canonicalizes expressions back to the values they denote:
// identifiers to their declarations, imports to their modules, member
// accesses to the object properties they read.
//
// Every function here is pure over the syntax tree and never fails: input
// that cannot be resolved comes back unchanged.
package resolve

import (
	"strings"

	"github.com/gnana997/docgen/pkg/ast"
)

// maxImportHops bounds how many module boundaries one resolution may cross.
const maxImportHops = 32

type valueResolver struct {
	imp     Importer
	visited map[*ast.Node]bool
	hops    int
}

func newValueResolver(imp Importer) *valueResolver {
	return &valueResolver{imp: imp, visited: make(map[*ast.Node]bool)}
}

// ToValue resolves n to the expression or declaration it denotes.
//
//   - a variable declarator resolves to its initializer
//   - an assignment resolves to its right-hand side
//   - an identifier resolves through its scope binding; a name referring to
//     its own function or class declaration resolves to that declaration
//   - an identifier bound by a destructuring pattern resolves to the member
//     access it stands for (`const {a: {b}} = X` gives `X.a.b`), followed
//     further when X is an object literal
//   - a member access on an object literal resolves to the property value
//   - an identifier bound to an import resolves to the import declaration,
//     or into the target module when imp is not nil
//
// Anything else is returned unchanged. Resolution always terminates: every
// node is visited at most once per call.
func ToValue(n *ast.Node, imp Importer) *ast.Node {
	if n == nil {
		return nil
	}
	return newValueResolver(imp).value(n)
}

func (r *valueResolver) value(n *ast.Node) *ast.Node {
	n = ast.Unwrap(n)
	if n == nil {
		return nil
	}
	key := n.Origin()
	if r.visited[key] && !n.Synthetic() {
		return n
	}
	r.visited[key] = true

	switch n.Kind {
	case "variable_declarator":
		if v := n.ChildByField("value"); v != nil {
			return r.value(v)
		}
		if assigned := laterAssignment(n); assigned != nil {
			return r.value(assigned)
		}
	case "assignment_expression":
		return r.value(n.ChildByField("right"))
	case "identifier", "shorthand_property_identifier":
		return r.identifier(n)
	case "member_expression", "subscript_expression":
		return r.member(n)
	}
	return n
}

func (r *valueResolver) identifier(n *ast.Node) *ast.Node {
	if p := n.Parent; p != nil && n.Field == "name" && (ast.IsFunction(p) || ast.IsClass(p)) {
		return p
	}
	scope := ast.ScopeOf(n)
	if scope == nil {
		return n
	}
	b := scope.Lookup(n.Text())
	if b == nil {
		return n
	}
	switch b.Kind {
	case ast.BindingImport:
		if r.imp != nil && r.hops < maxImportHops {
			r.hops++
			if target := ResolveImport(r.imp, b.Ident); target != nil {
				return r.value(target)
			}
		}
		if stmt := ast.ImportStatement(b); stmt != nil {
			return stmt
		}
	case ast.BindingFunction, ast.BindingClass:
		if b.Ident.Parent != nil {
			return b.Ident.Parent
		}
	case ast.BindingVar, ast.BindingLet, ast.BindingConst:
		if b.Ident.Parent != nil && b.Ident.Parent.Kind == "variable_declarator" && b.Ident.Field == "name" {
			return r.value(b.Ident.Parent)
		}
		if m := r.patternMember(b.Ident); m != nil {
			return r.value(m)
		}
	}
	return b.Ident
}

func (r *valueResolver) member(n *ast.Node) *ast.Node {
	name, ok := memberProperty(n)
	if !ok {
		return n
	}
	obj := r.value(n.ChildByField("object"))
	if obj == nil || obj.Kind != "object" {
		return n
	}
	if v := objectProperty(obj, name); v != nil {
		return r.value(v)
	}
	return n
}

// memberProperty returns the static property name read by a member or
// subscript expression.
func memberProperty(n *ast.Node) (string, bool) {
	switch n.Kind {
	case "member_expression":
		return ast.PropertyName(n.ChildByField("property"))
	case "subscript_expression":
		idx := ast.Unwrap(n.ChildByField("index"))
		if idx.Is("number") {
			return idx.Text(), true
		}
		return ast.Unquote(idx)
	}
	return "", false
}

// objectProperty returns the value node of the first property called name in
// an object literal: a pair's value, a method, or a shorthand identifier.
func objectProperty(obj *ast.Node, name string) *ast.Node {
	for _, c := range obj.NamedChildren() {
		key, ok := ast.MemberName(c)
		if !ok || key != name {
			continue
		}
		switch c.Kind {
		case "pair":
			return c.ChildByField("value")
		default:
			return c
		}
	}
	return nil
}

// patternMember rebuilds the member access a destructured binding stands for.
// It returns nil for array patterns, parameters and rest elements.
func (r *valueResolver) patternMember(ident *ast.Node) *ast.Node {
	var keys []*ast.Node
	cur := ident
	for {
		p := cur.Parent
		if p == nil {
			return nil
		}
		switch p.Kind {
		case "pair_pattern":
			if cur.Field != "value" {
				return nil
			}
			keys = append(keys, p.ChildByField("key"))
		case "object_assignment_pattern":
			if cur.Field != "left" {
				return nil
			}
			if cur.Kind == "shorthand_property_identifier_pattern" {
				keys = append(keys, cur)
			}
		case "assignment_pattern":
			if cur.Field != "left" {
				return nil
			}
		case "object_pattern":
			if cur.Kind == "shorthand_property_identifier_pattern" {
				keys = append(keys, cur)
			}
		case "variable_declarator":
			if cur.Field != "name" {
				return nil
			}
			init := p.ChildByField("value")
			if init == nil || len(keys) == 0 {
				return nil
			}
			return buildMember(init, keys)
		default:
			return nil
		}
		cur = p
	}
}

// buildMember synthesizes `init.k1.k2...` for keys collected innermost first.
func buildMember(init *ast.Node, keys []*ast.Node) *ast.Node {
	obj := ast.WithField(init, "object")
	text := init.Text()
	for i := len(keys) - 1; i >= 0; i-- {
		name, ok := ast.PropertyName(keys[i])
		if !ok {
			return nil
		}
		kind, access := "member_expression", "."+name
		prop := ast.NewSynthetic("property_identifier", name, init)
		if keys[i].Kind != "property_identifier" && keys[i].Kind != "shorthand_property_identifier_pattern" {
			kind, access = "subscript_expression", "["+keys[i].Text()+"]"
			prop = ast.NewSynthetic("string", quote(name), init)
		}
		text += access
		if kind == "member_expression" {
			prop = ast.WithField(prop, "property")
		} else {
			prop = ast.WithField(prop, "index")
		}
		obj = ast.WithField(ast.NewSynthetic(kind, text, init.Parent, obj, prop), "object")
	}
	return ast.WithField(obj, "")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// laterAssignment finds the first plain `name = value` statement assigning an
// uninitialized declarator, scanning the declaring scope without entering
// nested functions, classes or control flow.
func laterAssignment(decl *ast.Node) *ast.Node {
	nameNode := decl.ChildByField("name")
	if nameNode == nil || nameNode.Kind != "identifier" {
		return nil
	}
	name := nameNode.Text()
	scope := ast.ScopeOf(decl)
	if scope == nil {
		return nil
	}
	var found *ast.Node
	ast.Walk(scope.Node, func(n *ast.Node) bool {
		if found != nil {
			return false
		}
		if n != scope.Node && n != scope.Node.ChildByField("body") && opaque(n) {
			return false
		}
		if n.Kind == "assignment_expression" {
			left := n.ChildByField("left")
			if left.Is("identifier") && left.Text() == name {
				if b := ast.ScopeOf(left).Lookup(name); b != nil && b.Ident == nameNode {
					found = n.ChildByField("right")
					return false
				}
			}
		}
		return true
	})
	return found
}

// opaque reports whether a shallow scan must not descend into n.
func opaque(n *ast.Node) bool {
	switch {
	case ast.IsFunction(n), ast.IsClass(n):
		return true
	}
	return n.Is("if_statement", "with_statement", "switch_statement", "while_statement",
		"do_statement", "for_statement", "for_in_statement", "try_statement", "statement_block")
}
