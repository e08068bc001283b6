package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/docblock"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
)

// ComponentDocblock sets the description from the docblock of the
// statement containing the definition. For decorated classes the comment
// may also sit between the decorators and the class keyword. The
// description is "" when there is no docblock.
func ComponentDocblock(doc *record.Documentation, def *ast.Node, _ resolve.Importer) {
	origin := def.Origin()
	stmt := ast.Statement(origin)

	candidates := []*ast.Node{stmt, stmt.ChildOfKind("export")}
	if ast.IsClass(origin) {
		candidates = append(candidates, origin.ChildOfKind("class"))
	}
	description := ""
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if text, ok := docblock.Get(c, false); ok {
			description = text
			break
		}
	}
	doc.Set(record.FieldDescription, description)
}
