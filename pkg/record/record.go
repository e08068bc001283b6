// Package record holds the Documentation record handlers fill in for one
// component, and its JSON form.
package record

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gnana997/docgen/pkg/typedesc"
)

// Well-known top-level fields.
const (
	FieldDescription = "description"
	FieldDisplayName = "displayName"
	FieldMethods     = "methods"
)

// DefaultValue is the default of a prop as printed from source. Computed is
// true when the value is an identifier, member access or call rather than
// a literal.
type DefaultValue struct {
	Value    string `json:"value"`
	Computed bool   `json:"computed"`
}

// PropDescriptor collects what is known about one prop. Fields stay nil
// until a handler sets them.
type PropDescriptor struct {
	Type         *typedesc.Descriptor `json:"type,omitempty"`
	TSType       *typedesc.Descriptor `json:"tsType,omitempty"`
	Required     *bool                `json:"required,omitempty"`
	Description  *string              `json:"description,omitempty"`
	DefaultValue *DefaultValue        `json:"defaultValue,omitempty"`
}

// SetRequired records whether the prop is required.
func (p *PropDescriptor) SetRequired(required bool) {
	p.Required = &required
}

// SetDescription records the prop description, possibly empty.
func (p *PropDescriptor) SetDescription(description string) {
	p.Description = &description
}

// IsRequired reports the recorded required flag, false when unknown.
func (p *PropDescriptor) IsRequired() bool {
	return p.Required != nil && *p.Required
}

// MethodParam is one parameter of a documented method.
type MethodParam struct {
	Name        string               `json:"name"`
	Optional    bool                 `json:"optional,omitempty"`
	Type        *typedesc.Descriptor `json:"type,omitempty"`
	Description string               `json:"description,omitempty"`
}

// MethodReturns describes what a method returns.
type MethodReturns struct {
	Type        *typedesc.Descriptor `json:"type,omitempty"`
	Description string               `json:"description,omitempty"`
}

// MethodDescriptor documents one public method of a component.
type MethodDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Docblock    string         `json:"docblock,omitempty"`
	Modifiers   []string       `json:"modifiers"`
	Params      []MethodParam  `json:"params"`
	Returns     *MethodReturns `json:"returns,omitempty"`
}

// Documentation accumulates the facts handlers extract for one component.
// Props keep the order in which they were first referenced.
type Documentation struct {
	fields *orderedmap.OrderedMap[string, any]

	props        *PropMap
	context      *PropMap
	childContext *PropMap
	composes     []string
}

// New returns an empty record.
func New() *Documentation {
	return &Documentation{
		fields:       orderedmap.New[string, any](),
		props:        newPropMap(),
		context:      newPropMap(),
		childContext: newPropMap(),
	}
}

// Set stores a top-level field. Setting a field again replaces its value
// but keeps its position.
func (d *Documentation) Set(key string, value any) {
	d.fields.Set(key, value)
}

// Get returns a top-level field.
func (d *Documentation) Get(key string) (any, bool) {
	return d.fields.Get(key)
}

// PropDescriptor returns the descriptor of a prop, creating it on first use.
func (d *Documentation) PropDescriptor(name string) *PropDescriptor {
	return d.props.descriptor(name)
}

// ContextDescriptor returns the descriptor of a context type.
func (d *Documentation) ContextDescriptor(name string) *PropDescriptor {
	return d.context.descriptor(name)
}

// ChildContextDescriptor returns the descriptor of a child context type.
func (d *Documentation) ChildContextDescriptor(name string) *PropDescriptor {
	return d.childContext.descriptor(name)
}

// AddComposes records a module the props are composed from. Duplicates are
// ignored.
func (d *Documentation) AddComposes(module string) {
	for _, m := range d.composes {
		if m == module {
			return
		}
	}
	d.composes = append(d.composes, module)
}

// Composes returns the composed modules in the order they were added.
func (d *Documentation) Composes() []string {
	return append([]string(nil), d.composes...)
}

// Props returns the props in first-seen order.
func (d *Documentation) Props() *PropMap { return d.props }

// Context returns the context types.
func (d *Documentation) Context() *PropMap { return d.context }

// ChildContext returns the child context types.
func (d *Documentation) ChildContext() *PropMap { return d.childContext }

// Description returns the component description.
func (d *Documentation) Description() string {
	s, _ := d.fields.Value(FieldDescription).(string)
	return s
}

// DisplayName returns the display name, if one was found.
func (d *Documentation) DisplayName() (string, bool) {
	s, ok := d.fields.Value(FieldDisplayName).(string)
	return s, ok
}

// Methods returns the documented methods.
func (d *Documentation) Methods() []MethodDescriptor {
	m, _ := d.fields.Value(FieldMethods).([]MethodDescriptor)
	return m
}

// MarshalJSON writes the fields in the order they were set, followed by
// props, context, childContext and composes when they are not empty.
func (d *Documentation) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, any](d.fields.Len() + 4)
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	for _, section := range []struct {
		key string
		m   *PropMap
	}{{"props", d.props}, {"context", d.context}, {"childContext", d.childContext}} {
		if section.m.Len() > 0 {
			out.Set(section.key, section.m)
		}
	}
	if len(d.composes) > 0 {
		out.Set("composes", d.composes)
	}
	return out.MarshalJSON()
}

// PropMap is an insertion-ordered map of prop descriptors.
type PropMap struct {
	m *orderedmap.OrderedMap[string, *PropDescriptor]
}

func newPropMap() *PropMap {
	return &PropMap{m: orderedmap.New[string, *PropDescriptor]()}
}

func (m *PropMap) descriptor(name string) *PropDescriptor {
	if p, ok := m.m.Get(name); ok {
		return p
	}
	p := &PropDescriptor{}
	m.m.Set(name, p)
	return p
}

// Names returns the prop names in first-seen order.
func (m *PropMap) Names() []string {
	names := make([]string, 0, m.m.Len())
	for pair := m.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Get returns the descriptor of name, if present.
func (m *PropMap) Get(name string) (*PropDescriptor, bool) {
	return m.m.Get(name)
}

// Len returns the number of props.
func (m *PropMap) Len() int {
	return m.m.Len()
}

// MarshalJSON writes the props as an object in first-seen order.
func (m *PropMap) MarshalJSON() ([]byte, error) {
	return m.m.MarshalJSON()
}
