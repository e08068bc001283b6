package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
	"github.com/gnana997/docgen/pkg/typedesc"
)

type descriptorFunc func(doc *record.Documentation, name string) *record.PropDescriptor

// PropTypes describes every key of the definition's propTypes object.
var PropTypes Handler = propTypesHandler("propTypes", (*record.Documentation).PropDescriptor)

// ContextTypes describes every key of contextTypes.
var ContextTypes Handler = propTypesHandler("contextTypes", (*record.Documentation).ContextDescriptor)

// ChildContextTypes describes every key of childContextTypes.
var ChildContextTypes Handler = propTypesHandler("childContextTypes", (*record.Documentation).ChildContextDescriptor)

func propTypesHandler(member string, descriptor descriptorFunc) Handler {
	return func(doc *record.Documentation, def *ast.Node, imp resolve.Importer) {
		v := resolve.MemberValue(def, member)
		if v == nil {
			return
		}
		amendPropTypes(doc, resolve.ToValue(v, imp), descriptor, imp, make(map[*ast.Node]bool))
	}
}

// amendPropTypes records a type for each entry of obj. Spread entries are
// followed when they resolve to another object literal.
func amendPropTypes(doc *record.Documentation, obj *ast.Node, descriptor descriptorFunc,
	imp resolve.Importer, seen map[*ast.Node]bool) {
	if !obj.Is("object") || seen[obj.Origin()] {
		return
	}
	seen[obj.Origin()] = true

	for _, entry := range obj.NamedChildren() {
		var value *ast.Node
		switch entry.Kind {
		case "pair":
			value = entry.ChildByField("value")
		case "shorthand_property_identifier":
			value = entry
		case "spread_element":
			amendPropTypes(doc, resolve.ToValue(entry.FirstNamed(), imp), descriptor, imp, seen)
			continue
		default:
			continue
		}
		name, ok := ast.MemberName(entry)
		if !ok {
			continue
		}
		d := descriptor(doc, name)
		if isPropTypesExpression(value) {
			d.Type = typedesc.PropType(value, imp)
			d.SetRequired(typedesc.IsRequired(value))
		} else {
			d.Type = typedesc.Custom(value.Text())
		}
	}
}

// isPropTypesExpression reports whether n is read from React or prop-types.
func isPropTypesExpression(n *ast.Node) bool {
	module := resolve.ToModule(n)
	return module != "" && (resolve.IsReactModuleName(module) || module == "ReactPropTypes")
}
