package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
)

// PropTypeComposition records the modules propTypes are composed from:
// `propTypes = {...Foo.propTypes}` or `propTypes = Foo.propTypes`, where Foo
// is imported.
func PropTypeComposition(doc *record.Documentation, def *ast.Node, imp resolve.Importer) {
	v := resolve.MemberValue(def, "propTypes")
	if v == nil {
		return
	}
	propTypes := resolve.ToValue(v, imp)
	if !propTypes.Is("object") {
		amendComposes(doc, propTypes)
		return
	}
	for _, entry := range propTypes.NamedChildren() {
		if entry.Kind == "spread_element" {
			amendComposes(doc, resolve.ToValue(entry.FirstNamed(), imp))
		}
	}
}

func amendComposes(doc *record.Documentation, n *ast.Node) {
	if module := resolve.ToModule(n); module != "" {
		doc.AddComposes(module)
	}
}
