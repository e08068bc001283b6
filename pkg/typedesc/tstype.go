package typedesc

import (
	"strconv"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/resolve"
)

// maxTypeHops bounds how many references ResolveType follows.
const maxTypeHops = 32

// utilityTypes unwrap to their single type argument.
var utilityTypes = map[string]bool{
	"Readonly":  true,
	"$ReadOnly": true,
	"$Exact":    true,
}

// tsBuilder carries the alias guard of one top-level TSType call.
type tsBuilder struct {
	imp resolve.Importer
	// visited maps an alias to its finished descriptor; a nil entry marks an
	// alias whose expansion is in progress.
	visited map[string]*Descriptor
}

// TSType builds the descriptor of a TypeScript type node (a type
// annotation or a bare type). References to type aliases are expanded in
// place; a reference back to an alias that is still being expanded yields a
// name-only descriptor. Aliases imported from other modules are followed
// when imp is not nil.
func TSType(n *ast.Node, imp resolve.Importer) *Descriptor {
	b := &tsBuilder{imp: imp, visited: make(map[string]*Descriptor)}
	return b.build(n)
}

func (b *tsBuilder) build(n *ast.Node) *Descriptor {
	if n == nil {
		return Named(NameUnknown)
	}
	name, key := aliasName(n), aliasKey(n)
	n = typeOf(n)
	if n == nil {
		return Named(NameUnknown)
	}
	if key != "" {
		if d, ok := b.visited[key]; ok {
			if d == nil {
				return Named(name)
			}
			return d.Clone()
		}
		b.visited[key] = nil
	}
	d := b.dispatch(n)
	if key != "" {
		b.visited[key] = d.Clone()
	}
	return d
}

// aliasKey identifies the alias whose right-hand side is n.
func aliasKey(n *ast.Node) string {
	name := aliasName(n)
	if name == "" {
		return ""
	}
	path := ""
	if n.File != nil {
		path = n.File.Path
	}
	return path + "#" + name
}

func aliasName(n *ast.Node) string {
	for cur := n; cur != nil && cur.Parent != nil; cur = cur.Parent {
		if cur.Field == "value" && cur.Parent.Kind == "type_alias_declaration" {
			return cur.Parent.ChildByField("name").Text()
		}
		if cur.Parent.Kind != "parenthesized_type" {
			return ""
		}
	}
	return ""
}

// typeOf strips type annotations and parentheses.
func typeOf(n *ast.Node) *ast.Node {
	for n != nil {
		switch n.Kind {
		case "type_annotation", "opting_type_annotation", "omitting_type_annotation", "adding_type_annotation",
			"parenthesized_type":
			n = n.FirstNamed()
		default:
			return n
		}
	}
	return nil
}

func (b *tsBuilder) dispatch(n *ast.Node) *Descriptor {
	switch n.Kind {
	case "predefined_type":
		return Named(n.Text())
	case "literal_type":
		return literal(n.FirstNamed())
	case "string", "number", "true", "false", "null", "undefined":
		return literal(n)
	case "this_type":
		return Named("this")
	case "type_identifier", "nested_type_identifier":
		return b.reference(n, nil, n.Text())
	case "generic_type":
		return b.reference(n.ChildByField("name"), n.ChildByField("type_arguments").NamedChildren(), n.Text())
	case "array_type":
		return &Descriptor{Name: NameArray, Elements: []*Descriptor{b.build(n.FirstNamed())}, Raw: n.Text()}
	case "readonly_type":
		return b.build(n.FirstNamed())
	case "tuple_type":
		return b.tuple(n)
	case "union_type":
		return &Descriptor{Name: NameUnion, Elements: b.flatten(n, "union_type"), Raw: n.Text()}
	case "intersection_type":
		return &Descriptor{Name: NameIntersection, Elements: b.flatten(n, "intersection_type"), Raw: n.Text()}
	case "function_type", "constructor_type", "method_signature":
		return &Descriptor{Name: NameSignature, Type: SignatureFunction, Raw: n.Text(), Signature: b.function(n)}
	case "object_type", "interface_body":
		return &Descriptor{Name: NameSignature, Type: SignatureObject, Raw: n.Text(), Signature: b.object(n)}
	case "type_query":
		return b.typeQuery(n)
	case "index_type_query":
		return b.keyOf(n)
	case "lookup_type":
		return b.lookup(n)
	}
	return &Descriptor{Name: NameUnknown, Raw: n.Text()}
}

func literal(n *ast.Node) *Descriptor {
	if n == nil {
		return Named(NameUnknown)
	}
	switch n.Kind {
	case "null", "undefined":
		return Named(n.Kind)
	}
	return &Descriptor{Name: NameLiteral, Value: n.Text()}
}

// reference describes a named type. Utility wrappers unwrap to their
// argument, generics list their arguments and plain references to aliases
// are expanded.
func (b *tsBuilder) reference(name *ast.Node, args []*ast.Node, raw string) *Descriptor {
	if name == nil {
		return &Descriptor{Name: NameUnknown, Raw: raw}
	}
	text := name.Text()
	if len(args) == 1 && utilityTypes[text] {
		return b.build(args[0])
	}

	d := Named(text)
	if name.Kind == "nested_type_identifier" {
		if module := name.ChildByField("module"); module.Text() == "React" {
			d = &Descriptor{Name: "React" + name.ChildByField("name").Text(), Raw: text}
		}
	}
	if len(args) > 0 {
		d.Raw = raw
		for _, a := range args {
			d.Elements = append(d.Elements, b.build(a))
		}
		return d
	}

	if decl := declarationOf(name, b.imp); decl.Is("type_alias_declaration") {
		return b.build(decl.ChildByField("value"))
	}
	return d
}

func (b *tsBuilder) flatten(n *ast.Node, kind string) []*Descriptor {
	var out []*Descriptor
	for _, c := range n.NamedChildren() {
		if c.Kind == kind {
			out = append(out, b.flatten(c, kind)...)
			continue
		}
		out = append(out, b.build(c))
	}
	return out
}

func (b *tsBuilder) tuple(n *ast.Node) *Descriptor {
	d := &Descriptor{Name: NameTuple, Raw: n.Text(), Elements: []*Descriptor{}}
	for _, m := range n.NamedChildren() {
		switch m.Kind {
		case "tuple_parameter", "optional_tuple_parameter":
			d.Elements = append(d.Elements, b.build(m.ChildByField("type")))
		case "optional_type", "rest_type":
			d.Elements = append(d.Elements, b.build(m.FirstNamed()))
		default:
			d.Elements = append(d.Elements, b.build(m))
		}
	}
	return d
}

func (b *tsBuilder) function(n *ast.Node) *FunctionSignature {
	sig := &FunctionSignature{Arguments: []Argument{}}
	for _, p := range n.ChildByField("parameters").NamedChildren() {
		if !p.Is("required_parameter", "optional_parameter") {
			continue
		}
		arg := Argument{}
		pattern := p.ChildByField("pattern")
		switch {
		case pattern.Is("identifier"):
			arg.Name = pattern.Text()
		case pattern.Is("rest_pattern"):
			arg.Name = pattern.FirstNamed().Text()
			arg.Rest = true
		case pattern.Is("this"):
			continue
		default:
			arg.Name = pattern.Text()
		}
		if t := p.ChildByField("type"); t != nil {
			arg.Type = b.build(t)
		}
		sig.Arguments = append(sig.Arguments, arg)
	}
	if ret := n.ChildByField("return_type"); ret != nil {
		sig.Return = b.build(ret)
	} else if ret := n.ChildByField("type"); ret != nil {
		sig.Return = b.build(ret)
	}
	return sig
}

func (b *tsBuilder) object(n *ast.Node) *ObjectSignature {
	sig := &ObjectSignature{Properties: []Property{}}
	for _, m := range n.NamedChildren() {
		switch m.Kind {
		case "property_signature":
			key, ok := ast.PropertyName(m.ChildByField("name"))
			if !ok {
				continue
			}
			value := Named(NameUnknown)
			if t := m.ChildByField("type"); t != nil {
				value = b.build(t)
			}
			sig.Properties = append(sig.Properties, Property{Key: key, Value: value.WithRequired(!m.HasToken("?"))})
		case "method_signature":
			key, ok := ast.PropertyName(m.ChildByField("name"))
			if !ok {
				continue
			}
			value := &Descriptor{Name: NameSignature, Type: SignatureFunction, Raw: m.Text(), Signature: b.function(m)}
			sig.Properties = append(sig.Properties, Property{Key: key, Value: value.WithRequired(!m.HasToken("?"))})
		case "call_signature", "construct_signature":
			sig.Constructor = &Descriptor{Name: NameSignature, Type: SignatureFunction, Raw: m.Text(), Signature: b.function(m)}
		case "index_signature":
			keyType := m.ChildByField("index_type")
			if keyType == nil {
				continue
			}
			sig.Properties = append(sig.Properties, Property{
				Key:   b.build(keyType),
				Value: b.build(m.ChildByField("type")).WithRequired(true),
			})
		}
	}
	return sig
}

// typeQuery describes `typeof x` by the annotation of x's declaration.
func (b *tsBuilder) typeQuery(n *ast.Node) *Descriptor {
	target := n.FirstNamed()
	if target.Is("identifier") {
		if bnd := ast.ScopeOf(target).Lookup(target.Text()); bnd != nil {
			if decl := ast.Declarator(bnd.Ident); decl != nil {
				if t := decl.ChildByField("type"); t != nil {
					return b.build(t)
				}
			}
		}
	}
	return Named(target.Text())
}

// keyOf turns `keyof T` into a union of T's property names when T resolves
// to an object type.
func (b *tsBuilder) keyOf(n *ast.Node) *Descriptor {
	body := objectBody(ResolveType(n.FirstNamed(), b.imp))
	if body == nil {
		return Named(n.Text())
	}
	d := &Descriptor{Name: NameUnion, Raw: n.Text(), Elements: []*Descriptor{}}
	for _, m := range body.NamedChildren() {
		if !m.Is("property_signature", "method_signature") {
			continue
		}
		if key, ok := ast.PropertyName(m.ChildByField("name")); ok {
			d.Elements = append(d.Elements, &Descriptor{Name: NameLiteral, Value: strconv.Quote(key)})
		}
	}
	return d
}

// lookup describes `T['key']` by the type of T's property.
func (b *tsBuilder) lookup(n *ast.Node) *Descriptor {
	named := n.NamedChildren()
	if len(named) == 2 {
		key, ok := ast.Unquote(typeOf(named[1]).FirstNamed())
		if body := objectBody(ResolveType(named[0], b.imp)); ok && body != nil {
			for _, m := range body.NamedChildren() {
				if name, _ := ast.MemberName(m); m.Kind == "property_signature" && name == key {
					return b.build(m.ChildByField("type"))
				}
			}
		}
	}
	return &Descriptor{Name: NameUnknown, Raw: n.Text()}
}

// objectBody returns the member list of an object type or interface.
func objectBody(n *ast.Node) *ast.Node {
	switch {
	case n.Is("object_type", "interface_body"):
		return n
	case n.Is("interface_declaration"):
		return n.ChildByField("body")
	}
	return nil
}

// declarationOf returns the declaration a type name refers to: a type
// alias, interface, enum or class in scope, or, through imp, the declaration
// an imported name is exported as.
func declarationOf(name *ast.Node, imp resolve.Importer) *ast.Node {
	return declarationAt(name, imp, 0)
}

func declarationAt(name *ast.Node, imp resolve.Importer, hops int) *ast.Node {
	if hops > maxTypeHops {
		return nil
	}
	var target *ast.Node
	if name.Kind == "nested_type_identifier" {
		target = resolve.ResolveImport(imp, name)
	} else {
		bnd := ast.ScopeOf(name).LookupType(name.Text())
		if bnd == nil {
			return nil
		}
		switch bnd.Kind {
		case ast.BindingType, ast.BindingClass:
			return bnd.Ident.Parent
		case ast.BindingImport:
			target = resolve.ResolveImport(imp, name)
		}
	}
	// `export { Props }` hands back the local name
	if target.Is("type_identifier", "identifier") {
		return declarationAt(target, imp, hops+1)
	}
	return target
}

// ResolveType follows type references, aliases and utility wrappers from n
// to the type they denote. Interfaces resolve to their declaration so the
// caller can inspect extends clauses. Anything else is returned as is.
func ResolveType(n *ast.Node, imp resolve.Importer) *ast.Node {
	seen := make(map[*ast.Node]bool)
	for i := 0; i < maxTypeHops; i++ {
		n = typeOf(n)
		if n == nil || seen[n.Origin()] {
			return n
		}
		seen[n.Origin()] = true

		var name *ast.Node
		switch n.Kind {
		case "generic_type":
			args := n.ChildByField("type_arguments").NamedChildren()
			if len(args) == 1 && utilityTypes[n.ChildByField("name").Text()] {
				n = args[0]
				continue
			}
			return n
		case "type_identifier", "nested_type_identifier":
			name = n
		default:
			return n
		}
		decl := declarationOf(name, imp)
		switch {
		case decl.Is("type_alias_declaration"):
			n = decl.ChildByField("value")
		case decl.Is("interface_declaration"):
			return decl
		default:
			return n
		}
	}
	return n
}
