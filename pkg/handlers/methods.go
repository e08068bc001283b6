package handlers

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/docblock"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/resolve"
	"github.com/gnana997/docgen/pkg/typedesc"
)

// reactMethods are lifecycle and framework methods that are not part of a
// component's public API.
var reactMethods = map[string]bool{
	"componentDidMount":                true,
	"componentDidReceiveProps":         true,
	"componentDidUpdate":               true,
	"componentWillMount":               true,
	"UNSAFE_componentWillMount":        true,
	"componentWillReceiveProps":        true,
	"UNSAFE_componentWillReceiveProps": true,
	"componentWillUnmount":             true,
	"componentWillUpdate":              true,
	"UNSAFE_componentWillUpdate":       true,
	"getChildContext":                  true,
	"getDefaultProps":                  true,
	"getInitialState":                  true,
	"render":                           true,
	"shouldComponentUpdate":            true,
	"getDerivedStateFromProps":         true,
	"getDerivedStateFromError":         true,
	"getSnapshotBeforeUpdate":          true,
	"componentDidCatch":                true,
}

// method is a member found to be a method, before it is documented.
type method struct {
	name   string
	member *ast.Node // method_definition, field or object entry
	fn     *ast.Node // the function value
	static bool
	doc    *ast.Node // node whose docblock documents the method
}

// ComponentMethods documents the public methods of a component: class
// methods and function-valued fields, function-valued entries of a factory
// spec object and its statics, and `Component.x = function` assignments for
// function components. Constructors, private names and React lifecycle
// methods are skipped. methods is always set, possibly to an empty list.
func ComponentMethods(doc *record.Documentation, def *ast.Node, imp resolve.Importer) {
	var found []method
	switch {
	case ast.IsClass(def):
		for _, m := range def.ChildByField("body").NamedChildren() {
			if mm, ok := memberMethod(m); ok {
				found = append(found, mm)
			}
		}
	case def.Is("object"):
		for _, m := range def.NamedChildren() {
			if mm, ok := memberMethod(m); ok {
				found = append(found, mm)
			}
		}
		if statics := resolve.ToValue(resolve.MemberValue(def, "statics"), nil); statics.Is("object") {
			for _, m := range statics.NamedChildren() {
				if mm, ok := memberMethod(m); ok {
					mm.static = true
					found = append(found, mm)
				}
			}
		}
	default:
		for _, st := range resolve.StaticAssignments(def) {
			fn := resolve.ToValue(st.Value, nil)
			if !ast.IsFunction(fn) {
				continue
			}
			found = append(found, method{
				name:   st.Name,
				member: st.Assign,
				fn:     fn,
				static: true,
				doc:    ast.Statement(st.Assign),
			})
		}
	}

	methods := make([]record.MethodDescriptor, 0, len(found))
	for _, m := range found {
		methods = append(methods, describeMethod(m, imp))
	}
	doc.Set(record.FieldMethods, methods)
}

// memberMethod reports whether a class member or object entry is a public
// method.
func memberMethod(m *ast.Node) (method, bool) {
	var fn *ast.Node
	switch m.Kind {
	case "method_definition":
		fn = m
	case "public_field_definition", "field_definition", "pair":
		fn = resolve.ToValue(m.ChildByField("value"), nil)
		if !ast.IsFunction(fn) {
			return method{}, false
		}
	default:
		return method{}, false
	}
	key := m.ChildByField("name")
	if key == nil {
		key = m.ChildByField("key")
	}
	if key == nil {
		key = m.ChildByField("property")
	}
	if key.Is("private_property_identifier") {
		return method{}, false
	}
	name, ok := ast.MemberName(m)
	if !ok || name == "constructor" || reactMethods[name] {
		return method{}, false
	}
	mm := method{name: name, member: m, fn: fn, static: ast.IsStatic(m), doc: m}
	if m.Synthetic() {
		// a static copied from `Class.x = value` is documented at the assignment
		mm.doc = ast.Statement(m.ChildByField("value").Origin())
	}
	return mm, true
}

func describeMethod(m method, imp resolve.Importer) record.MethodDescriptor {
	text, _ := docblock.Get(m.doc, false)
	md := record.MethodDescriptor{
		Name:      m.name,
		Docblock:  text,
		Modifiers: modifiers(m),
		Params:    []record.MethodParam{},
	}
	for _, p := range parameters(m.fn) {
		if p.pattern.Is("this") {
			continue
		}
		mp := record.MethodParam{Name: p.name, Optional: p.optional}
		if mp.Name == "" {
			mp.Name = p.pattern.Text()
		}
		if p.rest {
			mp.Name = "..." + mp.Name
		}
		if p.typ != nil {
			mp.Type = typedesc.TSType(p.typ, imp)
		}
		md.Params = append(md.Params, mp)
	}
	if ret := m.fn.ChildByField("return_type"); ret != nil {
		md.Returns = &record.MethodReturns{Type: typedesc.TSType(ret, imp)}
	}
	return md
}

func modifiers(m method) []string {
	mods := []string{}
	if m.static {
		mods = append(mods, "static")
	}
	fn := m.fn
	if fn.Is("generator_function", "generator_function_declaration") || (fn.Kind == "method_definition" && fn.HasToken("*")) {
		mods = append(mods, "generator")
	}
	if fn.HasToken("async") {
		mods = append(mods, "async")
	}
	if m.member.Kind == "method_definition" {
		if m.member.HasToken("get") {
			mods = append(mods, "get")
		}
		if m.member.HasToken("set") {
			mods = append(mods, "set")
		}
	}
	return mods
}
