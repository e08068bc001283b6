package classify

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/resolve"
)

// IsStateless reports whether n is a function component: a function or
// arrow function that returns JSX or a React element call. Returned values
// are followed through local variables, conditional and logical
// expressions, and calls to local functions that themselves return elements.
func IsStateless(n *ast.Node) bool {
	n = ast.Unwrap(n)
	if !n.Is("function_declaration", "function_expression", "function", "arrow_function") {
		return false
	}
	return returnsElement(n, make(map[*ast.Node]bool))
}

func isElement(n *ast.Node) bool {
	n = ast.Unwrap(n)
	return ast.IsJSX(n) || IsCreateElementCall(n) || IsCloneElementCall(n) || IsChildrenElementCall(n)
}

func returnsElement(fn *ast.Node, seen map[*ast.Node]bool) bool {
	body := fn.ChildByField("body")
	if body == nil {
		return false
	}
	if body.Kind != "statement_block" {
		return resolvesToElement(body, seen)
	}
	for _, ret := range resolve.Returns(fn) {
		if arg := ret.FirstNamed(); arg != nil && resolvesToElement(arg, seen) {
			return true
		}
	}
	return false
}

func resolvesToElement(n *ast.Node, seen map[*ast.Node]bool) bool {
	n = ast.Unwrap(n)
	if n == nil || seen[n.Origin()] {
		return false
	}
	seen[n.Origin()] = true

	if isElement(n) {
		return true
	}
	v := resolve.ToValue(n, nil)
	if v == nil {
		return false
	}
	if !ast.Same(v, n) && isElement(v) {
		return true
	}
	switch v.Kind {
	case "ternary_expression":
		return resolvesToElement(v.ChildByField("consequence"), seen) ||
			resolvesToElement(v.ChildByField("alternative"), seen)
	case "binary_expression":
		if v.HasToken("&&") || v.HasToken("||") || v.HasToken("??") {
			return resolvesToElement(v.ChildByField("left"), seen) ||
				resolvesToElement(v.ChildByField("right"), seen)
		}
	case "call_expression":
		callee := resolve.ToValue(v.ChildByField("function"), nil)
		if ast.IsFunction(callee) && !seen[callee.Origin()] {
			seen[callee.Origin()] = true
			return returnsElement(callee, seen)
		}
	}
	return false
}
