package ast

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// File is one parsed module: its source, root node and lexical scopes.
type File struct {
	Path   string
	Source []byte
	Root   *Node

	// HasErrors is true when the parser recovered from syntax errors.
	HasErrors bool

	scopes map[*Node]*Scope
}

// FromTree converts a tree-sitter tree into an owned File. The tree may be
// closed as soon as FromTree returns.
func FromTree(tree *ts.Tree, source []byte, path string) *File {
	f := &File{
		Path:   path,
		Source: source,
		scopes: make(map[*Node]*Scope),
	}
	root := tree.RootNode()
	f.HasErrors = root.HasError()

	cursor := root.Walk()
	defer cursor.Close()
	f.Root = f.convert(cursor, nil)

	analyze(f)
	return f
}

// convert walks the cursor depth-first, reusing a single cursor for the
// whole tree.
func (f *File) convert(c *ts.TreeCursor, parent *Node) *Node {
	tn := c.Node()
	n := &Node{
		Kind:      tn.Kind(),
		Field:     c.FieldName(),
		Named:     tn.IsNamed(),
		Parent:    parent,
		StartByte: tn.StartByte(),
		EndByte:   tn.EndByte(),
		Row:       tn.StartPosition().Row,
		File:      f,
	}
	if c.GotoFirstChild() {
		for {
			n.Children = append(n.Children, f.convert(c, n))
			if !c.GotoNextSibling() {
				break
			}
		}
		c.GotoParent()
	}
	return n
}

// Body returns the top-level statements of the program, skipping comments.
func (f *File) Body() []*Node {
	if f == nil || f.Root == nil {
		return nil
	}
	return f.Root.NamedChildren()
}

// NewSynthetic builds a derived node. Children keep their original parents;
// the synthetic node's Parent anchors scope lookups.
func NewSynthetic(kind, text string, parent *Node, children ...*Node) *Node {
	n := &Node{
		Kind:      kind,
		Named:     true,
		Parent:    parent,
		Children:  children,
		text:      text,
		synthetic: true,
	}
	if parent != nil {
		n.File = parent.File
		n.StartByte, n.EndByte, n.Row = parent.StartByte, parent.EndByte, parent.Row
	}
	return n
}

// WithField returns a shallow copy of n stored under a different field name.
// The copy shares children with n and reports n as its origin.
func WithField(n *Node, field string) *Node {
	cp := *n
	cp.Field = field
	cp.origin = n.Origin()
	return &cp
}

// Augment returns a view of container whose child list is replaced by
// children. The view reports container as its origin, so identity checks and
// scope lookups still land on the source node.
func Augment(container *Node, children []*Node) *Node {
	cp := *container
	cp.Children = children
	cp.origin = container.Origin()
	return &cp
}

// NewToken builds a synthetic anonymous token such as "static".
func NewToken(kind string, parent *Node) *Node {
	n := NewSynthetic(kind, kind, parent)
	n.Named = false
	return n
}
