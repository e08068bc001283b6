package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/classify"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
)

// DefaultProps records default values from the destructured props
// parameter of a function component and from defaultProps (or the object
// returned by getDefaultProps). defaultProps is applied second, so it wins
// over a default parameter for the same prop.
func DefaultProps(doc *record.Documentation, def *ast.Node, imp resolve.Importer) {
	if fn := functionOf(def); fn != nil && (classify.IsStateless(fn) || classify.IsForwardRefCall(def)) {
		if params := parameters(fn); len(params) > 0 && params[0].pattern.Is("object_pattern") {
			statelessDefaults(doc, params[0].pattern, imp)
		}
	}
	if v := resolve.MemberValue(def, "defaultProps"); v != nil {
		objectDefaults(doc, resolve.ToValue(v, imp), imp, make(map[*ast.Node]bool))
	}
}

// statelessDefaults reads `{foo = 1, bar: b = 2}` patterns. Entries without
// a default are skipped.
func statelessDefaults(doc *record.Documentation, pattern *ast.Node, imp resolve.Importer) {
	for _, entry := range pattern.NamedChildren() {
		var name string
		var value *ast.Node
		switch entry.Kind {
		case "object_assignment_pattern":
			left := entry.ChildByField("left")
			if !left.Is("shorthand_property_identifier_pattern", "identifier") {
				continue
			}
			name, value = left.Text(), entry.ChildByField("right")
		case "pair_pattern":
			v := entry.ChildByField("value")
			if !v.Is("assignment_pattern") {
				continue
			}
			key, ok := ast.PropertyName(entry.ChildByField("key"))
			if !ok {
				continue
			}
			name, value = key, v.ChildByField("right")
		default:
			continue
		}
		if dv := defaultValue(value, imp); dv != nil {
			doc.PropDescriptor(name).DefaultValue = dv
		}
	}
}

func objectDefaults(doc *record.Documentation, obj *ast.Node, imp resolve.Importer, seen map[*ast.Node]bool) {
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
			objectDefaults(doc, resolve.ToValue(entry.FirstNamed(), imp), imp, seen)
			continue
		default:
			continue
		}
		name, ok := ast.MemberName(entry)
		if !ok {
			continue
		}
		if dv := defaultValue(value, imp); dv != nil {
			doc.PropDescriptor(name).DefaultValue = dv
		}
	}
}

// defaultValue prints a default. Literals print as written; other values
// are resolved first, and a value that is still an identifier, member access
// or call is reported as computed. A value imported from a module that is
// not followed prints as the local name.
func defaultValue(n *ast.Node, imp resolve.Importer) *record.DefaultValue {
	n = ast.Unwrap(n)
	if n == nil {
		return nil
	}
	if ast.IsLiteral(n) {
		return &record.DefaultValue{Value: n.Text()}
	}
	resolved := resolve.ToValue(n, imp)
	if resolved == nil {
		return nil
	}
	if resolved.Is("import_statement") {
		return &record.DefaultValue{Value: n.Text(), Computed: isComputed(n)}
	}
	return &record.DefaultValue{Value: resolved.Text(), Computed: isComputed(resolved)}
}

func isComputed(n *ast.Node) bool {
	return ast.Unwrap(n).Is("call_expression", "member_expression", "subscript_expression", "identifier",
		"shorthand_property_identifier")
}
