package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/docblock"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
)

// PropDocBlock sets each prop's description from the docblock preceding
// its propTypes entry, or to "" when there is none.
func PropDocBlock(doc *record.Documentation, def *ast.Node, imp resolve.Importer) {
	v := resolve.MemberValue(def, "propTypes")
	if v == nil {
		return
	}
	describeProps(doc, resolve.ToValue(v, imp), imp, make(map[*ast.Node]bool))
}

func describeProps(doc *record.Documentation, obj *ast.Node, imp resolve.Importer, seen map[*ast.Node]bool) {
	if !obj.Is("object") || seen[obj.Origin()] {
		return
	}
	seen[obj.Origin()] = true

	for _, entry := range obj.NamedChildren() {
		if entry.Kind == "spread_element" {
			describeProps(doc, resolve.ToValue(entry.FirstNamed(), imp), imp, seen)
			continue
		}
		if !entry.Is("pair", "shorthand_property_identifier", "method_definition") {
			continue
		}
		name, ok := ast.MemberName(entry)
		if !ok {
			continue
		}
		text, _ := docblock.Get(entry, false)
		doc.PropDescriptor(name).SetDescription(text)
	}
}
