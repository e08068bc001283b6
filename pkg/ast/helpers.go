package ast

import (
	"strconv"
	"strings"
)

// IsFunction reports whether n is any function form, methods included.
func IsFunction(n *Node) bool {
	return n.Is("function_declaration", "generator_function_declaration", "function_expression",
		"function", "generator_function", "arrow_function", "method_definition")
}

// IsClass reports whether n is a class declaration or class expression.
func IsClass(n *Node) bool {
	return n.Is("class_declaration", "abstract_class_declaration", "class")
}

// IsJSX reports whether n is a JSX element, self-closing element or fragment.
func IsJSX(n *Node) bool {
	return n.Is("jsx_element", "jsx_self_closing_element", "jsx_fragment")
}

// IsLiteral reports whether n is a primitive literal.
func IsLiteral(n *Node) bool {
	return n.Is("string", "number", "true", "false", "null", "undefined", "regex", "template_string")
}

// Unquote returns the value of a string literal node. Template strings
// without substitutions are accepted too.
func Unquote(n *Node) (string, bool) {
	n = Unwrap(n)
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case "string":
		return unquoteText(n.Text()), true
	case "template_string":
		if n.ChildOfKind("template_substitution") != nil {
			return "", false
		}
		text := n.Text()
		if len(text) >= 2 {
			return text[1 : len(text)-1], true
		}
	}
	return "", false
}

func unquoteText(text string) string {
	if len(text) < 2 {
		return text
	}
	quote := text[0]
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	if quote == '\'' {
		body = strings.ReplaceAll(body, `\'`, `'`)
		body = strings.ReplaceAll(body, `"`, `\"`)
	}
	if s, err := strconv.Unquote(`"` + body + `"`); err == nil {
		return s
	}
	return body
}

// PropertyName returns the static name of an object key or class member
// name: identifiers, string and number literals, and computed keys that are
// themselves literals. ok is false for dynamic keys.
func PropertyName(key *Node) (string, bool) {
	if key == nil {
		return "", false
	}
	switch key.Kind {
	case "property_identifier", "identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier", "type_identifier":
		return key.Text(), true
	case "string":
		return unquoteText(key.Text()), true
	case "number":
		return key.Text(), true
	case "computed_property_name":
		inner := Unwrap(key.FirstNamed())
		switch {
		case inner.Is("string", "template_string"):
			return Unquote(inner)
		case inner.Is("number"):
			return inner.Text(), true
		}
	}
	return "", false
}

// MemberName returns the name of a class member or object entry node.
func MemberName(member *Node) (string, bool) {
	switch member.Kind {
	case "pair", "pair_pattern":
		return PropertyName(member.ChildByField("key"))
	case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		return member.Text(), true
	case "method_definition", "method_signature", "property_signature":
		return PropertyName(member.ChildByField("name"))
	case "field_definition":
		return PropertyName(member.ChildByField("property"))
	case "public_field_definition":
		return PropertyName(member.ChildByField("name"))
	}
	return "", false
}

// IsStatic reports whether a class member carries the static modifier.
func IsStatic(member *Node) bool {
	return member.HasToken("static")
}

// Walk visits n and its descendants in source order. Returning false from
// visit skips the children of the visited node.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Statement returns the closest ancestor-or-self that sits directly in a
// program or statement block.
func Statement(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Parent == nil {
			return cur
		}
		if cur.Parent.Is("program", "statement_block", "class_body", "switch_case") {
			return cur
		}
	}
	return nil
}

// ImportedName returns the name a binding imports: "default", "*", or the
// exported name of the specifier. ok is false for non-import bindings.
func ImportedName(b *Binding) (string, bool) {
	if b == nil || b.Kind != BindingImport {
		return "", false
	}
	id := b.Ident
	switch id.Parent.Kind {
	case "import_clause":
		return "default", true
	case "namespace_import":
		return "*", true
	case "import_specifier":
		name, ok := PropertyName(id.Parent.ChildByField("name"))
		return name, ok
	}
	return "", false
}

// ImportStatement returns the import declaration a binding belongs to.
func ImportStatement(b *Binding) *Node {
	if b == nil || b.Kind != BindingImport {
		return nil
	}
	return b.Ident.Ancestor("import_statement")
}

// ImportSource returns the module specifier of an import or re-export
// statement.
func ImportSource(stmt *Node) (string, bool) {
	return Unquote(stmt.ChildByField("source"))
}

// Declarator returns the variable_declarator a binding identifier belongs
// to, looking through destructuring patterns.
func Declarator(ident *Node) *Node {
	for cur := ident.Parent; cur != nil; cur = cur.Parent {
		switch cur.Kind {
		case "variable_declarator":
			return cur
		case "object_pattern", "array_pattern", "pair_pattern", "object_assignment_pattern",
			"assignment_pattern", "rest_pattern":
			continue
		default:
			return nil
		}
	}
	return nil
}

// SuperClass returns the expression a class extends, or nil.
func SuperClass(class *Node) *Node {
	heritage := class.ChildOfKind("class_heritage")
	if heritage == nil {
		return nil
	}
	if ext := heritage.ChildOfKind("extends_clause"); ext != nil {
		return ext.ChildByField("value")
	}
	if heritage.ChildOfKind("implements_clause") != nil {
		return nil
	}
	return heritage.FirstNamed()
}
