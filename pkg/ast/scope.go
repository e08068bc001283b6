package ast

// BindingKind classifies how a name was introduced.
type BindingKind int

const (
	BindingVar BindingKind = iota
	BindingLet
	BindingConst
	BindingParam
	BindingFunction
	BindingClass
	BindingImport
	BindingType
	BindingCatch
)

// Binding is one declared name.
type Binding struct {
	Name  string
	Kind  BindingKind
	Ident *Node
	Scope *Scope
}

// Scope maps names declared in one lexical region to their bindings.
type Scope struct {
	Node     *Node
	Parent   *Scope
	Function bool

	values map[string]*Binding
	types  map[string]*Binding
}

func newScope(n *Node, parent *Scope, function bool) *Scope {
	return &Scope{
		Node:     n,
		Parent:   parent,
		Function: function,
		values:   make(map[string]*Binding),
		types:    make(map[string]*Binding),
	}
}

// Own returns the binding declared directly in s.
func (s *Scope) Own(name string) *Binding {
	if s == nil {
		return nil
	}
	return s.values[name]
}

// Lookup returns the nearest enclosing binding of a value name.
func (s *Scope) Lookup(name string) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.values[name]; ok {
			return b
		}
	}
	return nil
}

// LookupType returns the nearest binding usable in a type position: type
// aliases and interfaces first, then imports and classes at the same level.
func (s *Scope) LookupType(name string) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.types[name]; ok {
			return b
		}
		if b, ok := cur.values[name]; ok && (b.Kind == BindingImport || b.Kind == BindingClass) {
			return b
		}
	}
	return nil
}

// Names returns the value names declared directly in s.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	return names
}

// ScopeOf returns the innermost scope enclosing n.
func (f *File) ScopeOf(n *Node) *Scope {
	if f == nil {
		return nil
	}
	for cur := n; cur != nil; cur = cur.Parent {
		if s, ok := f.scopes[cur.Origin()]; ok {
			return s
		}
	}
	return f.scopes[f.Root]
}

// ProgramScope returns the module scope.
func (f *File) ProgramScope() *Scope {
	return f.scopes[f.Root]
}

// ScopeOf is a convenience for n.File.ScopeOf(n).
func ScopeOf(n *Node) *Scope {
	if n == nil || n.File == nil {
		return nil
	}
	return n.File.ScopeOf(n)
}

type analyzer struct {
	file *File
}

func analyze(f *File) {
	a := &analyzer{file: f}
	root := a.scope(f.Root, nil, true)
	for _, c := range f.Root.Children {
		a.walk(c, root, root)
	}
}

func (a *analyzer) scope(n *Node, parent *Scope, function bool) *Scope {
	s := newScope(n, parent, function)
	a.file.scopes[n] = s
	return s
}

func declare(s *Scope, ident *Node, kind BindingKind) {
	if s == nil || ident == nil {
		return
	}
	name := ident.Text()
	if name == "" {
		return
	}
	table := s.values
	if kind == BindingType {
		table = s.types
	}
	if _, exists := table[name]; exists {
		return
	}
	table[name] = &Binding{Name: name, Kind: kind, Ident: ident, Scope: s}
}

// declarePattern declares every identifier bound by a binding pattern.
func declarePattern(s *Scope, p *Node, kind BindingKind) {
	if p == nil {
		return
	}
	switch p.Kind {
	case "identifier", "shorthand_property_identifier_pattern":
		declare(s, p, kind)
	case "object_pattern", "array_pattern":
		for _, c := range p.NamedChildren() {
			declarePattern(s, c, kind)
		}
	case "pair_pattern":
		declarePattern(s, p.ChildByField("value"), kind)
	case "object_assignment_pattern", "assignment_pattern":
		declarePattern(s, p.ChildByField("left"), kind)
	case "rest_pattern":
		declarePattern(s, p.FirstNamed(), kind)
	case "required_parameter", "optional_parameter":
		declarePattern(s, p.ChildByField("pattern"), kind)
	}
}

func (a *analyzer) walk(n *Node, block, fn *Scope) {
	switch n.Kind {
	case "function_declaration", "generator_function_declaration":
		declare(block, n.ChildByField("name"), BindingFunction)
		a.function(n, block)
		return
	case "function_expression", "function", "generator_function", "arrow_function", "method_definition":
		a.function(n, block)
		return
	case "class_declaration", "abstract_class_declaration":
		declare(block, n.ChildByField("name"), BindingClass)
		s := a.scope(n, block, false)
		a.walkChildren(n, s, fn)
		return
	case "class":
		s := a.scope(n, block, false)
		declare(s, n.ChildByField("name"), BindingClass)
		a.walkChildren(n, s, fn)
		return
	case "statement_block", "for_statement", "for_in_statement", "switch_body":
		s := a.scope(n, block, false)
		a.walkChildren(n, s, fn)
		return
	case "catch_clause":
		s := a.scope(n, block, false)
		declarePattern(s, n.ChildByField("parameter"), BindingCatch)
		a.walkChildren(n, s, fn)
		return
	case "variable_declaration":
		for _, d := range n.Children {
			if d.Kind == "variable_declarator" {
				declarePattern(fn, d.ChildByField("name"), BindingVar)
			}
		}
	case "lexical_declaration":
		kind := BindingLet
		if n.HasToken("const") {
			kind = BindingConst
		}
		for _, d := range n.Children {
			if d.Kind == "variable_declarator" {
				declarePattern(block, d.ChildByField("name"), kind)
			}
		}
	case "import_statement":
		a.imports(n)
		return
	case "type_alias_declaration", "interface_declaration", "enum_declaration":
		declare(block, n.ChildByField("name"), BindingType)
	}
	a.walkChildren(n, block, fn)
}

func (a *analyzer) walkChildren(n *Node, block, fn *Scope) {
	for _, c := range n.Children {
		if c.Named {
			a.walk(c, block, fn)
		}
	}
}

func (a *analyzer) function(n *Node, block *Scope) {
	s := a.scope(n, block, true)
	if n.Is("function_expression", "function", "generator_function") {
		declare(s, n.ChildByField("name"), BindingFunction)
	}
	if p := n.ChildByField("parameter"); p != nil {
		declarePattern(s, p, BindingParam)
	}
	if params := n.ChildByField("parameters"); params != nil {
		for _, p := range params.NamedChildren() {
			declarePattern(s, p, BindingParam)
			a.walk(p, s, s)
		}
	}
	body := n.ChildByField("body")
	if body == nil {
		return
	}
	if body.Kind == "statement_block" {
		a.file.scopes[body] = s
		a.walkChildren(body, s, s)
		return
	}
	a.walk(body, s, s)
}

func (a *analyzer) imports(n *Node) {
	root := a.file.ProgramScope()
	clause := n.ChildOfKind("import_clause")
	if clause == nil {
		return
	}
	for _, c := range clause.NamedChildren() {
		switch c.Kind {
		case "identifier":
			declare(root, c, BindingImport)
		case "namespace_import":
			declare(root, c.FirstNamed(), BindingImport)
		case "named_imports":
			for _, spec := range c.NamedChildren() {
				if spec.Kind != "import_specifier" {
					continue
				}
				if alias := spec.ChildByField("alias"); alias != nil {
					declare(root, alias, BindingImport)
				} else {
					declare(root, spec.ChildByField("name"), BindingImport)
				}
			}
		}
	}
}
