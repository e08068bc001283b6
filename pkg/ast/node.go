// Package ast holds an owned, read-only mirror of a tree-sitter syntax tree.
//
// The mirror outlives the tree-sitter Tree it was built from, so callers can
// close the parser's tree right after conversion. Every Node knows its parent
// and its field name inside the parent, which is what the resolution code
// walks. Nodes are never mutated after construction; derived views (synthetic
// member expressions, augmented class bodies) are new nodes that point back
// into the original tree.
package ast

import (
	"strings"
)

// Node is one syntax node. Anonymous tokens ("static", "?", "=") are kept as
// unnamed children so modifiers can be checked without re-parsing text.
type Node struct {
	Kind     string
	Field    string
	Named    bool
	Children []*Node
	Parent   *Node

	StartByte uint
	EndByte   uint
	Row       uint

	File *File

	// text is set for synthetic nodes only.
	text      string
	synthetic bool
	origin    *Node
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	if n.synthetic {
		return n.text
	}
	if n.File == nil || int(n.EndByte) > len(n.File.Source) {
		return ""
	}
	return string(n.File.Source[n.StartByte:n.EndByte])
}

// Is reports whether the node kind is one of kinds.
func (n *Node) Is(kinds ...string) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// ChildByField returns the first child stored under the given field name.
func (n *Node) ChildByField(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildrenByField returns every child stored under the given field name.
func (n *Node) ChildrenByField(field string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out
}

// ChildOfKind returns the first direct child with the given kind.
func (n *Node) ChildOfKind(kind string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// NamedChildren returns the named children, skipping comments.
func (n *Node) NamedChildren() []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named && c.Kind != "comment" {
			out = append(out, c)
		}
	}
	return out
}

// FirstNamed returns the first named, non-comment child.
func (n *Node) FirstNamed() *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Named && c.Kind != "comment" {
			return c
		}
	}
	return nil
}

// HasToken reports whether the node has an anonymous child token with the
// given text, e.g. "static" on a class member or "?" on a property signature.
func (n *Node) HasToken(tok string) bool {
	if n == nil {
		return false
	}
	for _, c := range n.Children {
		if !c.Named && c.Kind == tok {
			return true
		}
	}
	return false
}

// Index returns the position of n in its parent's children, or -1.
func (n *Node) Index() int {
	if n == nil || n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// PrevSibling returns the preceding sibling including comments and tokens.
func (n *Node) PrevSibling() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.Parent.Children[i-1]
}

// Synthetic reports whether the node was derived during analysis rather than
// parsed from source.
func (n *Node) Synthetic() bool {
	return n != nil && n.synthetic
}

// Origin returns the node this view was derived from, or n itself.
func (n *Node) Origin() *Node {
	if n == nil {
		return nil
	}
	if n.origin != nil {
		return n.origin
	}
	return n
}

// Same reports whether a and b denote the same source construct, looking
// through augmented views.
func Same(a, b *Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Origin() == b.Origin()
}

// Ancestor returns the closest ancestor (not n itself) whose kind is one of kinds.
func (n *Node) Ancestor(kinds ...string) *Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Is(kinds...) {
			return p
		}
	}
	return nil
}

// Unwrap strips parentheses and TypeScript-only expression wrappers
// (`x as T`, `x satisfies T`, `x!`).
func Unwrap(n *Node) *Node {
	for n != nil {
		switch n.Kind {
		case "parenthesized_expression", "non_null_expression", "as_expression",
			"satisfies_expression", "type_assertion":
			inner := n.FirstNamed()
			if n.Kind == "type_assertion" {
				inner = lastNamed(n)
			}
			if inner == nil {
				return n
			}
			n = inner
		default:
			return n
		}
	}
	return n
}

func lastNamed(n *Node) *Node {
	named := n.NamedChildren()
	if len(named) == 0 {
		return nil
	}
	return named[len(named)-1]
}

// String renders the node as a compact s-expression, for debugging and tests.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	writeSexp(&b, n)
	return b.String()
}

func writeSexp(b *strings.Builder, n *Node) {
	b.WriteByte('(')
	if n.Field != "" {
		b.WriteString(n.Field)
		b.WriteString(": ")
	}
	b.WriteString(n.Kind)
	for _, c := range n.Children {
		if !c.Named {
			continue
		}
		b.WriteByte(' ')
		writeSexp(b, c)
	}
	b.WriteByte(')')
}
