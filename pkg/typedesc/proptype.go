package typedesc

import (
	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/docblock"
	"github.com/gnana997/docgen/pkg/resolve"
)

// simplePropTypes are validators that take no arguments.
var simplePropTypes = map[string]bool{
	"array":       true,
	"bigint":      true,
	"bool":        true,
	"func":        true,
	"number":      true,
	"object":      true,
	"string":      true,
	"any":         true,
	"element":     true,
	"elementType": true,
	"node":        true,
	"symbol":      true,
}

type validatorFunc func(b *propBuilder, arg *ast.Node) *Descriptor

// complexPropTypes are validators called with one argument.
var complexPropTypes map[string]validatorFunc

func init() {
	complexPropTypes = map[string]validatorFunc{
		"oneOf":      (*propBuilder).oneOf,
		"oneOfType":  (*propBuilder).oneOfType,
		"instanceOf": (*propBuilder).instanceOf,
		"arrayOf":    (*propBuilder).arrayOf,
		"objectOf":   (*propBuilder).objectOf,
		"shape":      (*propBuilder).shape,
		"exact":      (*propBuilder).exact,
	}
}

type propBuilder struct {
	imp  resolve.Importer
	seen map[*ast.Node]bool
}

// PropType describes a PropTypes validator expression such as
// `PropTypes.arrayOf(PropTypes.string).isRequired`. Only the validator
// names matter, not the object they are read from. Identifiers are resolved
// to their values first; anything unrecognized becomes a custom descriptor.
func PropType(n *ast.Node, imp resolve.Importer) *Descriptor {
	b := &propBuilder{imp: imp, seen: make(map[*ast.Node]bool)}
	return b.build(n)
}

// member is one link of a validator chain such as React.PropTypes.shape(x).
type member struct {
	name string
	ok   bool
	args []*ast.Node
	call bool
}

// members flattens a member/call chain from its root outwards. The root is
// included when it is an identifier.
func members(n *ast.Node) []member {
	n = ast.Unwrap(n)
	switch n.Kind {
	case "member_expression":
		name, ok := ast.PropertyName(n.ChildByField("property"))
		return append(members(n.ChildByField("object")), member{name: name, ok: ok})
	case "subscript_expression":
		idx := ast.Unwrap(n.ChildByField("index"))
		name, ok := ast.Unquote(idx)
		return append(members(n.ChildByField("object")), member{name: name, ok: ok})
	case "call_expression":
		ms := members(n.ChildByField("function"))
		if len(ms) > 0 {
			last := &ms[len(ms)-1]
			last.call = true
			last.args = n.ChildByField("arguments").NamedChildren()
		}
		return ms
	case "identifier":
		return []member{{name: n.Text(), ok: true}}
	}
	return nil
}

// IsRequired reports whether a validator chain ends in `.isRequired`.
func IsRequired(n *ast.Node) bool {
	for _, m := range members(n) {
		if m.ok && m.name == "isRequired" {
			return true
		}
	}
	return false
}

func (b *propBuilder) build(expr *ast.Node) *Descriptor {
	n := ast.Unwrap(expr)
	if n == nil {
		return Named(NameUnknown)
	}
	for _, m := range members(n) {
		if !m.ok {
			continue
		}
		if simplePropTypes[m.name] {
			return Named(m.name)
		}
		if fn, ok := complexPropTypes[m.name]; ok && m.call && len(m.args) > 0 {
			return fn(b, m.args[0])
		}
	}
	if n.Is("identifier", "member_expression") && !b.seen[n.Origin()] {
		b.seen[n.Origin()] = true
		if v := resolve.ToValue(n, b.imp); v != nil && !ast.Same(v, n) && !v.Is("import_statement") {
			return b.build(v)
		}
	}
	return Custom(expr.Text())
}

func (b *propBuilder) value(n *ast.Node) *ast.Node {
	return ast.Unwrap(resolve.ToValue(n, b.imp))
}

func (b *propBuilder) oneOf(arg *ast.Node) *Descriptor {
	list := b.value(arg)
	if !list.Is("array") {
		return &Descriptor{Name: NameEnum, Computed: true, Value: arg.Text()}
	}
	values := []EnumValue{}
	for _, el := range list.NamedChildren() {
		if el.Is("spread_element") {
			continue
		}
		v := b.value(el)
		if ast.IsLiteral(v) {
			values = append(values, EnumValue{Value: v.Text()})
			continue
		}
		values = append(values, EnumValue{Value: el.Text(), Computed: true})
	}
	return &Descriptor{Name: NameEnum, Value: values}
}

func (b *propBuilder) oneOfType(arg *ast.Node) *Descriptor {
	list := b.value(arg)
	if !list.Is("array") {
		return &Descriptor{Name: NameUnion, Computed: true, Value: arg.Text()}
	}
	types := []*Descriptor{}
	for _, el := range list.NamedChildren() {
		if el.Is("spread_element") {
			continue
		}
		types = append(types, b.build(el))
	}
	return &Descriptor{Name: NameUnion, Value: types}
}

func (b *propBuilder) instanceOf(arg *ast.Node) *Descriptor {
	return &Descriptor{Name: NameInstanceOf, Value: arg.Text()}
}

func (b *propBuilder) arrayOf(arg *ast.Node) *Descriptor {
	return &Descriptor{Name: NameArrayOf, Value: b.build(arg)}
}

func (b *propBuilder) objectOf(arg *ast.Node) *Descriptor {
	return &Descriptor{Name: NameObjectOf, Value: b.build(arg)}
}

func (b *propBuilder) shape(arg *ast.Node) *Descriptor {
	return b.shapish(NameShape, arg)
}

func (b *propBuilder) exact(arg *ast.Node) *Descriptor {
	return b.shapish(NameExact, arg)
}

// shapish maps each key of the object argument to its validator. Members
// marked isRequired are flagged and docblocks become descriptions.
func (b *propBuilder) shapish(name string, arg *ast.Node) *Descriptor {
	obj := b.value(arg)
	if !obj.Is("object") {
		return &Descriptor{Name: name, Computed: true, Value: arg.Text()}
	}
	fields := NewFields()
	for _, entry := range obj.NamedChildren() {
		if entry.Kind != "pair" {
			continue
		}
		key, ok := ast.PropertyName(entry.ChildByField("key"))
		if !ok {
			continue
		}
		value := entry.ChildByField("value")
		d := b.build(value)
		if IsRequired(value) {
			d.WithRequired(true)
		}
		if doc, ok := docblock.Get(entry, false); ok {
			d.Description = doc
		}
		fields.Set(key, d)
	}
	return &Descriptor{Name: name, Value: fields}
}
