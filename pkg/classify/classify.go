// Package classify recognizes React component definitions and React API
// calls. Every predicate verifies the module an identifier comes from, so a
// local object that happens to expose `createClass` is not mistaken for React.
package classify

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/resolve"
)

// createReactClassModule is the standalone package exporting the factory.
const createReactClassModule = "create-react-class"

// IsReactBuiltin reports whether n refers to one of the named exports of a
// React module, e.g. `React.Component` or an imported `{PureComponent}`.
func IsReactBuiltin(n *ast.Node, names ...string) bool {
	module, name, ok := resolve.Reference(n)
	if !ok || !resolve.IsReactModuleName(module) {
		return false
	}
	for _, want := range names {
		if name == want {
			return true
		}
	}
	return false
}

// IsReactBuiltinCall reports whether n is a call to a React export called name.
func IsReactBuiltinCall(n *ast.Node, name string) bool {
	call := callOf(n)
	if call == nil {
		return false
	}
	return IsReactBuiltin(call.ChildByField("function"), name)
}

// callOf unwraps an expression statement and returns n if it is a call.
func callOf(n *ast.Node) *ast.Node {
	n = ast.Unwrap(n)
	if n.Is("expression_statement") {
		n = ast.Unwrap(n.FirstNamed())
	}
	if !n.Is("call_expression") {
		return nil
	}
	return n
}

// Arguments returns the argument expressions of a call.
func Arguments(call *ast.Node) []*ast.Node {
	return call.ChildByField("arguments").NamedChildren()
}

// IsCreateClassCall reports whether n is `React.createClass(...)`, a call to
// an imported `createClass` from React, or a call to the default export of
// create-react-class.
func IsCreateClassCall(n *ast.Node) bool {
	call := callOf(n)
	if call == nil {
		return false
	}
	if IsReactBuiltinCall(call, "createClass") {
		return true
	}
	return resolve.ToModule(call) == createReactClassModule
}

// IsForwardRefCall reports whether n is `React.forwardRef(fn)`.
func IsForwardRefCall(n *ast.Node) bool {
	call := callOf(n)
	return call != nil && len(Arguments(call)) > 0 && IsReactBuiltinCall(call, "forwardRef")
}

// IsMemoCall reports whether n is `React.memo(component)`.
func IsMemoCall(n *ast.Node) bool {
	call := callOf(n)
	return call != nil && len(Arguments(call)) > 0 && IsReactBuiltinCall(call, "memo")
}

// IsCreateElementCall reports whether n is `React.createElement(...)`.
func IsCreateElementCall(n *ast.Node) bool {
	return IsReactBuiltinCall(n, "createElement")
}

// IsCloneElementCall reports whether n is `React.cloneElement(...)`.
func IsCloneElementCall(n *ast.Node) bool {
	return IsReactBuiltinCall(n, "cloneElement")
}

// IsChildrenElementCall reports whether n is `React.Children.only(...)` or
// `React.Children.map(...)`, both of which return elements.
func IsChildrenElementCall(n *ast.Node) bool {
	call := callOf(n)
	if call == nil {
		return false
	}
	callee := ast.Unwrap(call.ChildByField("function"))
	if !callee.Is("member_expression") {
		return false
	}
	method, ok := ast.PropertyName(callee.ChildByField("property"))
	if !ok || (method != "only" && method != "map") {
		return false
	}
	return IsReactBuiltin(callee.ChildByField("object"), "Children")
}

// IsComponentDefinition reports whether n, as is, is any kind of component
// definition: a factory call, a component class, a stateless function or a
// forwardRef call.
func IsComponentDefinition(n *ast.Node) bool {
	return IsCreateClassCall(n) || IsComponentClass(n) || IsStateless(n) || IsForwardRefCall(n)
}

// ForwardRefTarget returns the render function wrapped by a forwardRef call,
// resolved to its value.
func ForwardRefTarget(call *ast.Node) *ast.Node {
	args := Arguments(call)
	if len(args) == 0 {
		return nil
	}
	return resolve.ToValue(args[0], nil)
}
