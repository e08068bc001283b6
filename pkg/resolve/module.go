package resolve

import (
	"strings"

	"github.com/gnana997/docgen/pkg/ast"
)

var reactModules = map[string]bool{
	"react":        true,
	"react/addons": true,
	"react-native": true,
	"proptypes":    true,
	"prop-types":   true,
}

// IsReactModuleName reports whether a module specifier names React or one of
// the packages that re-export its component API. The comparison ignores case.
func IsReactModuleName(module string) bool {
	return reactModules[strings.ToLower(module)]
}

// ToModule returns the module specifier an expression originates from:
// `require("x")`, an import binding, or a member access / call chain rooted
// at either. It returns "" when the origin is not a module.
func ToModule(n *ast.Node) string {
	seen := make(map[*ast.Node]bool)
	for n != nil {
		n = ToValue(n, nil)
		if n == nil || seen[n.Origin()] {
			return ""
		}
		seen[n.Origin()] = true

		switch n.Kind {
		case "call_expression":
			callee := ast.Unwrap(n.ChildByField("function"))
			if callee.Is("identifier") && callee.Text() == "require" {
				args := n.ChildByField("arguments").NamedChildren()
				if len(args) == 0 {
					return ""
				}
				source, _ := ast.Unquote(args[0])
				return source
			}
			n = callee
		case "import_statement":
			source, _ := ast.ImportSource(n)
			return source
		case "member_expression", "subscript_expression":
			n = n.ChildByField("object")
		case "nested_type_identifier":
			n = n.ChildByField("module")
		case "type_identifier":
			ref, ok := ImportOf(n)
			if !ok {
				return ""
			}
			return ref.Source
		default:
			return ""
		}
	}
	return ""
}

// MemberRoot returns the object at the root of a member access chain:
// `a` for `a.b.c` and `a[0].b`.
func MemberRoot(n *ast.Node) *ast.Node {
	n = ast.Unwrap(n)
	for n.Is("member_expression", "subscript_expression") {
		n = ast.Unwrap(n.ChildByField("object"))
	}
	return n
}

// MemberChain flattens `a.b.c` into its property names ["b", "c"] plus the
// root node. ok is false if any step uses a dynamic key.
func MemberChain(n *ast.Node) (root *ast.Node, props []string, ok bool) {
	n = ast.Unwrap(n)
	for n.Is("member_expression", "subscript_expression") {
		name, static := memberProperty(n)
		if !static {
			return nil, nil, false
		}
		props = append([]string{name}, props...)
		n = ast.Unwrap(n.ChildByField("object"))
	}
	return n, props, true
}

// Reference reports which module export an expression refers to: an
// identifier bound to an import gives (source, imported name); a member
// access `X.name` gives (origin of X, name). Local aliases such as
// `const C = React.Component` or `const {Component} = React` are followed.
func Reference(n *ast.Node) (module, name string, ok bool) {
	seen := make(map[*ast.Node]bool)
	for i := 0; n != nil && i < 32; i++ {
		n = ast.Unwrap(n)
		if seen[n.Origin()] && !n.Synthetic() {
			return "", "", false
		}
		seen[n.Origin()] = true

		switch n.Kind {
		case "identifier", "type_identifier":
			if ref, isImport := ImportOf(n); isImport {
				return ref.Source, ref.Name, true
			}
			n = aliasOf(n)
		case "member_expression", "subscript_expression":
			prop, static := memberProperty(n)
			if !static {
				return "", "", false
			}
			module := ToModule(n.ChildByField("object"))
			if module == "" {
				return "", "", false
			}
			return module, prop, true
		case "nested_type_identifier":
			ref, isImport := ImportOf(n.ChildByField("module"))
			if !isImport {
				return "", "", false
			}
			return ref.Source, n.ChildByField("name").Text(), true
		default:
			return "", "", false
		}
	}
	return "", "", false
}

// aliasOf returns the expression a const/let/var identifier was initialized
// with, or the member access a destructured binding stands for.
func aliasOf(ident *ast.Node) *ast.Node {
	scope := ast.ScopeOf(ident)
	if scope == nil {
		return nil
	}
	b := scope.Lookup(ident.Text())
	if b == nil {
		return nil
	}
	switch b.Kind {
	case ast.BindingVar, ast.BindingLet, ast.BindingConst:
	default:
		return nil
	}
	if d := b.Ident.Parent; d != nil && d.Kind == "variable_declarator" && b.Ident.Field == "name" {
		return d.ChildByField("value")
	}
	return newValueResolver(nil).patternMember(b.Ident)
}
