package resolve

import (
	"github.com/gnana997/docgen/pkg/ast"
)

// ExportedValues resolves the values an export statement makes public, in
// source order: the default export, every declarator of an exported variable
// declaration, an exported function or class, or each local name in an
// export clause. Re-exports from another module are followed only when imp
// is not nil.
func ExportedValues(stmt *ast.Node, imp Importer) []*ast.Node {
	if stmt == nil || stmt.Kind != "export_statement" {
		return nil
	}
	var out []*ast.Node
	if decl := stmt.ChildByField("declaration"); decl != nil {
		if decl.Is("lexical_declaration", "variable_declaration") {
			for _, d := range decl.NamedChildren() {
				if d.Kind == "variable_declarator" {
					out = append(out, ToValue(d, imp))
				}
			}
			return out
		}
		return append(out, ToValue(decl, imp))
	}
	if v := stmt.ChildByField("value"); v != nil {
		return append(out, ToValue(v, imp))
	}
	clause := stmt.ChildOfKind("export_clause")
	if clause == nil {
		return nil
	}
	source, reexport := ast.ImportSource(stmt)
	for _, spec := range clause.NamedChildren() {
		if spec.Kind != "export_specifier" {
			continue
		}
		local := spec.ChildByField("name")
		if !reexport {
			out = append(out, ToValue(local, imp))
			continue
		}
		if imp == nil {
			continue
		}
		name, _ := ast.PropertyName(local)
		if target := imp.Import(source, name, filePath(stmt)); target != nil {
			out = append(out, ToValue(target, imp))
		}
	}
	return out
}

// IsExportsAssignment reports whether an assignment targets `module.exports`,
// `exports.X` or `module.exports.X`.
func IsExportsAssignment(assign *ast.Node) bool {
	if assign == nil || assign.Kind != "assignment_expression" {
		return false
	}
	root, props, ok := MemberChain(assign.ChildByField("left"))
	if !ok || !root.Is("identifier") {
		return false
	}
	switch root.Text() {
	case "module":
		return len(props) >= 1 && len(props) <= 2 && props[0] == "exports"
	case "exports":
		return len(props) == 1
	}
	return false
}

// Export finds the node a module exports under name ("default" for the
// default export) without resolving it further. Star re-exports and
// re-exports from other modules are followed through imp.
func Export(file *ast.File, name string, imp Importer) *ast.Node {
	if file == nil {
		return nil
	}
	var stars []*ast.Node
	for _, stmt := range file.Body() {
		switch stmt.Kind {
		case "export_statement":
			if stmt.HasToken("*") && stmt.ChildOfKind("export_clause") == nil {
				stars = append(stars, stmt)
				continue
			}
			if v := exportFromStatement(stmt, name, imp); v != nil {
				return v
			}
		case "expression_statement":
			if v := exportFromAssignment(stmt.FirstNamed(), name); v != nil {
				return v
			}
		}
	}
	if imp == nil || name == "default" {
		return nil
	}
	for _, stmt := range stars {
		if source, ok := ast.ImportSource(stmt); ok {
			if v := imp.Import(source, name, file.Path); v != nil {
				return v
			}
		}
	}
	return nil
}

func exportFromStatement(stmt *ast.Node, name string, imp Importer) *ast.Node {
	isDefault := stmt.HasToken("default")
	if decl := stmt.ChildByField("declaration"); decl != nil {
		if isDefault {
			if name == "default" {
				return decl
			}
			return nil
		}
		if decl.Is("lexical_declaration", "variable_declaration") {
			for _, d := range decl.NamedChildren() {
				if id := d.ChildByField("name"); d.Kind == "variable_declarator" && id.Is("identifier") && id.Text() == name {
					return d
				}
			}
			return nil
		}
		if id := decl.ChildByField("name"); id != nil && id.Text() == name {
			return decl
		}
		return nil
	}
	if v := stmt.ChildByField("value"); v != nil {
		if isDefault && name == "default" {
			return v
		}
		return nil
	}
	clause := stmt.ChildOfKind("export_clause")
	if clause == nil {
		return nil
	}
	source, reexport := ast.ImportSource(stmt)
	for _, spec := range clause.NamedChildren() {
		local := spec.ChildByField("name")
		exported := local
		if alias := spec.ChildByField("alias"); alias != nil {
			exported = alias
		}
		if exportedName, _ := ast.PropertyName(exported); exportedName != name {
			continue
		}
		if !reexport {
			return local
		}
		if imp == nil {
			return nil
		}
		localName, _ := ast.PropertyName(local)
		return imp.Import(source, localName, filePath(stmt))
	}
	return nil
}

func exportFromAssignment(expr *ast.Node, name string) *ast.Node {
	if !IsExportsAssignment(expr) {
		return nil
	}
	_, props, _ := MemberChain(expr.ChildByField("left"))
	right := expr.ChildByField("right")
	last := props[len(props)-1]
	switch {
	case last == "exports":
		// module.exports = value
		if name == "default" {
			return right
		}
		if obj := ToValue(right, nil); obj.Is("object") {
			return objectProperty(obj, name)
		}
	case last == name:
		return right
	}
	return nil
}

func filePath(n *ast.Node) string {
	if n == nil || n.File == nil {
		return ""
	}
	return n.File.Path
}
