package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/classify"
	"github.com/gnana997/docgen/pkg/docblock"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
	"github.com/gnana997/docgen/pkg/typedesc"
)

// maxTypeDepth bounds how deep interface extension and intersections are
// followed.
const maxTypeDepth = 32

// TSTypes describes props from the TypeScript type of the component's
// props: the first type argument of the extended class, the annotation of
// the first parameter of a function component, the props argument of
// `forwardRef<Ref, Props>` or of an annotated `const C: FC<Props>`.
//
// Each property sets the prop's tsType and required flag, and its
// description when none was recorded yet. Extended interfaces and
// intersection members are followed; references that cannot be resolved are
// recorded as composed types.
func TSTypes(doc *record.Documentation, def *ast.Node, imp resolve.Importer) {
	t := propsType(def)
	if t == nil {
		return
	}
	a := &typeApplier{doc: doc, imp: imp, seen: make(map[*ast.Node]bool)}
	a.apply(t, 0)
}

// propsType finds the type node describing def's props.
func propsType(def *ast.Node) *ast.Node {
	n := ast.Unwrap(def)
	if ast.IsClass(n) {
		return classPropsType(n)
	}
	if classify.IsForwardRefCall(n) {
		if args := typeArguments(n); len(args) >= 2 {
			return args[1]
		}
	}
	fn := functionOf(n)
	if fn == nil {
		return nil
	}
	if params := parameters(fn); len(params) > 0 && params[0].typ != nil {
		return params[0].typ
	}
	return declaredComponentType(def)
}

func classPropsType(class *ast.Node) *ast.Node {
	if heritage := class.ChildOfKind("class_heritage"); heritage != nil {
		if args := typeArguments(heritage.ChildOfKind("extends_clause")); len(args) > 0 {
			return args[0]
		}
	}
	for _, m := range class.ChildByField("body").NamedChildren() {
		if name, _ := ast.MemberName(m); name == "props" && !ast.IsStatic(m) {
			if t := m.ChildByField("type"); t != nil {
				return t
			}
		}
	}
	return nil
}

// declaredComponentType reads Props from `const C: React.FC<Props> = ...`.
func declaredComponentType(def *ast.Node) *ast.Node {
	for cur, p := def.Origin(), def.Origin().Parent; p != nil; cur, p = p, p.Parent {
		if p.Is("parenthesized_expression", "as_expression", "satisfies_expression", "call_expression", "arguments") {
			continue
		}
		if !p.Is("variable_declarator") || cur.Field != "value" {
			return nil
		}
		t := p.ChildByField("type")
		for t.Is("type_annotation") {
			t = t.FirstNamed()
		}
		if t.Is("generic_type") {
			if args := typeArguments(t); len(args) > 0 {
				return args[0]
			}
		}
		return nil
	}
	return nil
}

func typeArguments(n *ast.Node) []*ast.Node {
	if args := n.ChildByField("type_arguments"); args != nil {
		return args.NamedChildren()
	}
	return n.ChildOfKind("type_arguments").NamedChildren()
}

type typeApplier struct {
	doc  *record.Documentation
	imp  resolve.Importer
	seen map[*ast.Node]bool
}

func (a *typeApplier) apply(t *ast.Node, depth int) {
	if t == nil || depth > maxTypeDepth {
		return
	}
	resolved := typedesc.ResolveType(t, a.imp)
	if resolved == nil || a.seen[resolved.Origin()] {
		return
	}
	a.seen[resolved.Origin()] = true

	switch resolved.Kind {
	case "object_type":
		a.members(resolved)
	case "interface_declaration":
		for _, base := range resolved.ChildOfKind("extends_type_clause").NamedChildren() {
			a.apply(base, depth+1)
		}
		a.members(resolved.ChildByField("body"))
	case "intersection_type", "union_type":
		for _, member := range resolved.NamedChildren() {
			a.apply(member, depth+1)
		}
	case "type_identifier", "nested_type_identifier":
		a.doc.AddComposes(resolved.Text())
	case "generic_type":
		a.doc.AddComposes(resolved.ChildByField("name").Text())
	}
}

func (a *typeApplier) members(body *ast.Node) {
	for _, m := range body.NamedChildren() {
		if !m.Is("property_signature", "method_signature") {
			continue
		}
		name, ok := ast.MemberName(m)
		if !ok {
			continue
		}
		d := a.doc.PropDescriptor(name)
		d.SetRequired(!m.HasToken("?"))
		if m.Kind == "method_signature" {
			d.TSType = typedesc.TSType(m, a.imp)
		} else {
			d.TSType = typedesc.TSType(m.ChildByField("type"), a.imp)
		}
		if d.Description == nil || *d.Description == "" {
			text, _ := docblock.Get(m, false)
			d.SetDescription(text)
		}
	}
}
