package resolver

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/resolve"
)

// NormalizeClass returns a view of class whose body also contains a static
// field for every external `Class.x = value` assignment in the class's
// scope, appended after the original members in source order. The source
// tree is left untouched; the view shares identity with class (ast.Same).
func NormalizeClass(class *ast.Node) *ast.Node {
	body := class.ChildByField("body")
	if body == nil {
		return class
	}
	statics := resolve.StaticAssignments(class)
	if len(statics) == 0 {
		return class
	}

	view := ast.Augment(class, nil)
	members := append([]*ast.Node(nil), body.Children...)
	bodyView := ast.Augment(body, nil)
	for _, st := range statics {
		members = append(members, staticField(st, bodyView))
	}
	bodyView.Children = members
	bodyView.Parent = view

	children := make([]*ast.Node, len(class.Children))
	for i, c := range class.Children {
		if c == body {
			children[i] = bodyView
			continue
		}
		children[i] = c
	}
	view.Children = children
	return view
}

// staticField synthesizes `static name = value;` for an external assignment.
func staticField(st resolve.Static, body *ast.Node) *ast.Node {
	field := ast.NewSynthetic("public_field_definition", st.Assign.Text(), body)
	field.StartByte, field.EndByte, field.Row = st.Assign.StartByte, st.Assign.EndByte, st.Assign.Row

	name := ast.NewSynthetic("property_identifier", st.Name, field)
	name.Field = "name"
	field.Children = []*ast.Node{
		ast.NewToken("static", field),
		name,
		ast.WithField(st.Value, "value"),
	}
	return field
}
