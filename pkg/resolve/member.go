package resolve

import (
	"github.com/gnana997/docgen/pkg/ast"
)

// memberSynonyms lists alternate names a member may be declared under.
var memberSynonyms = map[string]string{
	"getDefaultProps": "defaultProps",
	"defaultProps":    "getDefaultProps",
}

// MemberValue returns the value of the member called name on a component
// definition, or nil.
//
// The lookup order is: properties of an object literal (or the object passed
// to a factory call), members of a class body (getters included, setters
// never), then `Def.name = value` assignments in the definition's scope.
// Keys must be plain or literal-computed. When several candidates match the
// first in source order wins. A member whose value is a function (or getter)
// resolves to that function's returned value.
func MemberValue(def *ast.Node, name string) *ast.Node {
	v := memberValue(def, name)
	if v == nil {
		if syn, ok := memberSynonyms[name]; ok {
			v = memberValue(def, syn)
		}
	}
	if v != nil && ast.IsFunction(v) {
		if ret := ReturnValue(v); ret != nil {
			return ret
		}
	}
	return v
}

func memberValue(def *ast.Node, name string) *ast.Node {
	switch {
	case def == nil:
		return nil
	case def.Kind == "object":
		return objectProperty(def, name)
	case ast.IsClass(def):
		if v := ClassMember(def, name); v != nil {
			return v
		}
	case def.Kind == "call_expression":
		if obj := firstObjectArgument(def); obj != nil {
			if v := objectProperty(obj, name); v != nil {
				return v
			}
		}
	}
	return StaticAssignment(def, name)
}

func firstObjectArgument(call *ast.Node) *ast.Node {
	args := call.ChildByField("arguments").NamedChildren()
	if len(args) == 0 {
		return nil
	}
	v := ToValue(args[0], nil)
	if v.Is("object") {
		return v
	}
	return nil
}

// ClassMember returns the value of a named class member: a field's
// initializer or a method. Setters and computed non-literal keys are skipped.
func ClassMember(class *ast.Node, name string) *ast.Node {
	body := class.ChildByField("body")
	for _, m := range body.NamedChildren() {
		key, ok := ast.MemberName(m)
		if !ok || key != name {
			continue
		}
		switch m.Kind {
		case "method_definition":
			if m.HasToken("set") {
				continue
			}
			return m
		case "field_definition", "public_field_definition":
			if v := m.ChildByField("value"); v != nil {
				return v
			}
		}
	}
	return nil
}

// Static is an external `Name.member = value` assignment to a definition.
type Static struct {
	Name   string
	Value  *ast.Node
	Assign *ast.Node
}

// StaticAssignments lists every `Name.member = value` (or
// `Name['member'] = value`) in the scope declaring def where Name resolves
// back to def, in source order. The scan does not enter nested functions,
// classes or control flow.
func StaticAssignments(def *ast.Node) []Static {
	name := BindingName(def)
	if name == "" {
		return nil
	}
	stmt := ast.Statement(def.Origin())
	if stmt == nil || stmt.Parent == nil {
		return nil
	}
	scope := ast.ScopeOf(stmt.Parent)
	if scope == nil {
		return nil
	}
	var out []Static
	for _, assign := range ShallowAssignments(scope.Node) {
		left := assign.ChildByField("left")
		obj := ast.Unwrap(left.ChildByField("object"))
		if !obj.Is("identifier") || obj.Text() != name {
			continue
		}
		prop, ok := memberProperty(left)
		if !ok || !refersTo(obj, def) {
			continue
		}
		out = append(out, Static{Name: prop, Value: assign.ChildByField("right"), Assign: assign})
	}
	return out
}

// StaticAssignment returns the value of the first external assignment to
// def's member, or nil.
func StaticAssignment(def *ast.Node, member string) *ast.Node {
	for _, st := range StaticAssignments(def) {
		if st.Name == member {
			return st.Value
		}
	}
	return nil
}

// ShallowAssignments returns every `X.y = value` assignment in the body of a
// scope node, in source order, without entering nested functions, classes
// or control flow.
func ShallowAssignments(scopeNode *ast.Node) []*ast.Node {
	var out []*ast.Node
	body := scopeNode.ChildByField("body")
	ast.Walk(scopeNode, func(n *ast.Node) bool {
		if n != scopeNode && n != body && opaque(n) {
			return false
		}
		if n.Kind == "assignment_expression" {
			if n.ChildByField("left").Is("member_expression", "subscript_expression") {
				out = append(out, n)
			}
		}
		return true
	})
	return out
}

func refersTo(ident, def *ast.Node) bool {
	v := ToValue(ident, nil)
	if ast.Same(v, def) {
		return true
	}
	// a declarator without an initializer resolves to itself
	return v != nil && v.Kind == "variable_declarator" && ast.Same(v.ChildByField("value"), def)
}

// BindingName returns the local name a definition can be referenced by: the
// name of a function or class declaration, or the variable or assignment
// target it is stored in. It returns "" when the definition is anonymous.
func BindingName(def *ast.Node) string {
	def = def.Origin()
	if def.Is("function_declaration", "generator_function_declaration", "class_declaration",
		"abstract_class_declaration") {
		if id := def.ChildByField("name"); id != nil {
			return id.Text()
		}
	}
	cur := def
	for p := def.Parent; p != nil; cur, p = p, p.Parent {
		switch p.Kind {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			continue
		case "variable_declarator":
			if cur.Field == "value" {
				if id := p.ChildByField("name"); id.Is("identifier") {
					return id.Text()
				}
			}
			return ""
		case "assignment_expression":
			if cur.Field == "right" {
				if id := p.ChildByField("left"); id.Is("identifier") {
					return id.Text()
				}
			}
			return ""
		default:
			if def.Kind == "class" {
				if id := def.ChildByField("name"); id != nil {
					return id.Text()
				}
			}
			return ""
		}
	}
	return ""
}

// ReturnValue resolves a function to the value it returns: the body of an
// expression-bodied arrow function, or the argument of its first return
// statement.
func ReturnValue(fn *ast.Node) *ast.Node {
	body := fn.ChildByField("body")
	if body == nil {
		return nil
	}
	if body.Kind != "statement_block" {
		return ToValue(body, nil)
	}
	for _, ret := range Returns(fn) {
		if arg := ret.FirstNamed(); arg != nil {
			return ToValue(arg, nil)
		}
	}
	return nil
}

// Returns lists the return statements belonging to fn itself, in source
// order, including those nested in control flow but not those of inner
// functions or classes.
func Returns(fn *ast.Node) []*ast.Node {
	body := fn.ChildByField("body")
	if body == nil || body.Kind != "statement_block" {
		return nil
	}
	var out []*ast.Node
	ast.Walk(body, func(n *ast.Node) bool {
		if n != body && (ast.IsFunction(n) || ast.IsClass(n)) {
			return false
		}
		if n.Kind == "return_statement" {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}
