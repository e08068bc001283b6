package resolve

import (
	"github.com/gnana997/docgen/pkg/ast"
)

// Importer resolves a module specifier and export name to the exported
// value inside the target module. name is "default" for default imports.
// Implementations return nil when the module cannot be found or does not
// export name; callers treat nil as "unresolvable", never as an error.
type Importer interface {
	Import(source, name, fromPath string) *ast.Node
}

// ImporterFunc adapts a function to the Importer interface.
type ImporterFunc func(source, name, fromPath string) *ast.Node

// Import calls f.
func (f ImporterFunc) Import(source, name, fromPath string) *ast.Node {
	return f(source, name, fromPath)
}

// NoImport is an Importer that never resolves anything.
var NoImport Importer = ImporterFunc(func(string, string, string) *ast.Node { return nil })

// ImportRef describes where an imported binding comes from.
type ImportRef struct {
	Source    string
	Name      string // "default", "*" or the exported name
	Statement *ast.Node
}

// ImportOf reports the import an identifier is bound to.
func ImportOf(ident *ast.Node) (ImportRef, bool) {
	if !ident.Is("identifier", "shorthand_property_identifier", "type_identifier") {
		return ImportRef{}, false
	}
	scope := ast.ScopeOf(ident)
	if scope == nil {
		return ImportRef{}, false
	}
	b := scope.Lookup(ident.Text())
	if b == nil && ident.Kind == "type_identifier" {
		b = scope.LookupType(ident.Text())
	}
	name, ok := ast.ImportedName(b)
	if !ok {
		return ImportRef{}, false
	}
	stmt := ast.ImportStatement(b)
	source, ok := ast.ImportSource(stmt)
	if !ok {
		return ImportRef{}, false
	}
	return ImportRef{Source: source, Name: name, Statement: stmt}, true
}

// ResolveImport follows an identifier bound to an import (or a member access
// on a namespace import, `NS.Foo`) into the target module through imp.
// It returns nil when imp is nil, the node is not an import reference, or the
// importer declines.
func ResolveImport(imp Importer, n *ast.Node) *ast.Node {
	if imp == nil || n == nil {
		return nil
	}
	n = ast.Unwrap(n)
	from := ""
	if n.File != nil {
		from = n.File.Path
	}
	if n.Is("member_expression", "nested_type_identifier") {
		obj := n.ChildByField("object")
		if obj == nil {
			obj = n.ChildByField("module")
		}
		ref, ok := ImportOf(ast.Unwrap(obj))
		if !ok || ref.Name != "*" {
			return nil
		}
		prop, ok := ast.PropertyName(n.ChildByField("property"))
		if !ok {
			prop, ok = ast.PropertyName(n.ChildByField("name"))
		}
		if !ok {
			return nil
		}
		return imp.Import(ref.Source, prop, from)
	}
	ref, ok := ImportOf(n)
	if !ok || ref.Name == "*" {
		return nil
	}
	return imp.Import(ref.Source, ref.Name, from)
}
