// Package typedesc builds normalized type descriptors for component props,
// either from TypeScript type annotations or from PropTypes validator calls.
//
// Both builders share one output schema and never fail: input they cannot
// interpret degrades to a "custom" (PropTypes) or "unknown" (TypeScript)
// descriptor carrying the raw source text.
package typedesc

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Descriptor names that are not plain type names.
const (
	NameUnknown      = "unknown"
	NameCustom       = "custom"
	NameLiteral      = "literal"
	NameUnion        = "union"
	NameIntersection = "intersection"
	NameTuple        = "tuple"
	NameSignature    = "signature"
	NameArray        = "Array"

	NameEnum       = "enum"
	NameShape      = "shape"
	NameExact      = "exact"
	NameArrayOf    = "arrayOf"
	NameObjectOf   = "objectOf"
	NameInstanceOf = "instanceOf"
)

// Signature kinds.
const (
	SignatureObject   = "object"
	SignatureFunction = "function"
)

// Descriptor describes one type. Which fields are set depends on Name:
// unions, intersections, tuples and generics carry Elements; signatures
// carry Type and Signature; PropTypes descriptors use Value.
//
// Value holds a string (literal, instanceOf, computed enum or union), a
// *Descriptor (arrayOf, objectOf), a []*Descriptor (oneOfType), an
// []EnumValue (oneOf) or a *Fields (shape, exact).
type Descriptor struct {
	Name        string        `json:"name"`
	Type        string        `json:"type,omitempty"`
	Value       any           `json:"value,omitempty"`
	Computed    bool          `json:"computed,omitempty"`
	Raw         string        `json:"raw,omitempty"`
	Elements    []*Descriptor `json:"elements,omitempty"`
	Signature   any           `json:"signature,omitempty"`
	Required    *bool         `json:"required,omitempty"`
	Description string        `json:"description,omitempty"`
}

// Named returns a descriptor carrying only a name.
func Named(name string) *Descriptor {
	return &Descriptor{Name: name}
}

// Custom returns an opaque descriptor for source the builders do not model.
func Custom(raw string) *Descriptor {
	return &Descriptor{Name: NameCustom, Raw: raw}
}

// WithRequired sets the required flag and returns d.
func (d *Descriptor) WithRequired(required bool) *Descriptor {
	d.Required = &required
	return d
}

// Clone returns a deep copy of d, so a cached descriptor can be annotated
// by several callers.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	cp := *d
	if d.Required != nil {
		r := *d.Required
		cp.Required = &r
	}
	if d.Elements != nil {
		cp.Elements = cloneAll(d.Elements)
	}
	switch v := d.Value.(type) {
	case *Descriptor:
		cp.Value = v.Clone()
	case []*Descriptor:
		cp.Value = cloneAll(v)
	case []EnumValue:
		cp.Value = append([]EnumValue(nil), v...)
	case *Fields:
		cp.Value = v.clone()
	}
	switch s := d.Signature.(type) {
	case *ObjectSignature:
		cp.Signature = s.clone()
	case *FunctionSignature:
		cp.Signature = s.clone()
	}
	return &cp
}

func cloneAll(ds []*Descriptor) []*Descriptor {
	out := make([]*Descriptor, len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}

// EnumValue is one allowed value of a oneOf validator.
type EnumValue struct {
	Value    string `json:"value"`
	Computed bool   `json:"computed"`
}

// ObjectSignature is the signature of an object type.
type ObjectSignature struct {
	Properties  []Property  `json:"properties"`
	Constructor *Descriptor `json:"constructor,omitempty"`
}

func (s *ObjectSignature) clone() *ObjectSignature {
	cp := &ObjectSignature{Constructor: s.Constructor.Clone(), Properties: make([]Property, len(s.Properties))}
	for i, p := range s.Properties {
		cp.Properties[i] = Property{Key: p.Key, Value: p.Value.Clone()}
		if k, ok := p.Key.(*Descriptor); ok {
			cp.Properties[i].Key = k.Clone()
		}
	}
	return cp
}

// Property is one member of an object signature. Key is a string for named
// members and a *Descriptor for index signatures.
type Property struct {
	Key   any         `json:"key"`
	Value *Descriptor `json:"value"`
}

// FunctionSignature is the signature of a function type.
type FunctionSignature struct {
	Arguments []Argument  `json:"arguments"`
	Return    *Descriptor `json:"return,omitempty"`
}

func (s *FunctionSignature) clone() *FunctionSignature {
	cp := &FunctionSignature{Return: s.Return.Clone(), Arguments: make([]Argument, len(s.Arguments))}
	for i, a := range s.Arguments {
		cp.Arguments[i] = Argument{Name: a.Name, Type: a.Type.Clone(), Rest: a.Rest}
	}
	return cp
}

// Argument is one parameter of a function signature.
type Argument struct {
	Name string      `json:"name"`
	Type *Descriptor `json:"type,omitempty"`
	Rest bool        `json:"rest,omitempty"`
}

// Fields is an insertion-ordered map of shape members.
type Fields struct {
	m *orderedmap.OrderedMap[string, *Descriptor]
}

// NewFields returns an empty field map.
func NewFields() *Fields {
	return &Fields{m: orderedmap.New[string, *Descriptor]()}
}

// Set stores d under key. A key that already exists keeps its position.
func (f *Fields) Set(key string, d *Descriptor) {
	f.m.Set(key, d)
}

// Get returns the descriptor stored under key.
func (f *Fields) Get(key string) (*Descriptor, bool) {
	return f.m.Get(key)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	keys := make([]string, 0, f.m.Len())
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return f.m.Len()
}

func (f *Fields) clone() *Fields {
	cp := NewFields()
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		cp.Set(pair.Key, pair.Value.Clone())
	}
	return cp
}

// MarshalJSON writes the fields as an object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	return f.m.MarshalJSON()
}
