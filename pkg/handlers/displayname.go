package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/classify"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
)

// DisplayName sets displayName from an explicit displayName member (a
// string or number, possibly returned by a getter), or else from the name
// the component is declared or bound under.
func DisplayName(doc *record.Documentation, def *ast.Node, imp resolve.Importer) {
	v := resolve.MemberValue(def, "displayName")
	if v == nil {
		if name, ok := inferredName(def); ok {
			doc.Set(record.FieldDisplayName, name)
		}
		return
	}
	v = resolve.ToValue(v, imp)
	if ast.IsFunction(v) {
		v = resolve.ReturnValue(v)
	}
	v = ast.Unwrap(v)
	switch {
	case v.Is("string", "template_string"):
		if s, ok := ast.Unquote(v); ok {
			doc.Set(record.FieldDisplayName, s)
		}
	case v.Is("number"):
		doc.Set(record.FieldDisplayName, v.Text())
	}
}

func inferredName(def *ast.Node) (string, bool) {
	origin := def.Origin()
	switch {
	case origin.Is("class_declaration", "abstract_class_declaration", "function_declaration",
		"generator_function_declaration"):
		if id := origin.ChildByField("name"); id != nil {
			return id.Text(), true
		}
		return "", false
	case origin.Is("arrow_function", "function_expression", "function", "class"), classify.IsForwardRefCall(origin):
	default:
		return "", false
	}

	for cur := origin; cur.Parent != nil; cur = cur.Parent {
		switch p := cur.Parent; p.Kind {
		case "variable_declarator":
			if id := p.ChildByField("name"); id.Is("identifier") {
				return id.Text(), true
			}
			return "", false
		case "assignment_expression":
			if left := p.ChildByField("left"); left.Is("identifier") {
				return left.Text(), true
			}
		}
	}

	// fall back to the name of a named function or class expression
	named := origin
	if classify.IsForwardRefCall(origin) {
		named = classify.ForwardRefTarget(origin)
	}
	if id := named.ChildByField("name"); id != nil && named.Is("function_expression", "function", "class") {
		return id.Text(), true
	}
	return "", false
}
