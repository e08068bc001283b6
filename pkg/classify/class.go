package classify

import (
	"regexp"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/docblock"
)

var extendsComponent = regexp.MustCompile(`@extends\s+\w+\.(?:Pure)?Component\b`)

// IsComponentClass reports whether n is a class that renders: it has a
// non-static `render` method or field, is annotated `@extends React.Component`
// in a preceding comment, or extends Component/PureComponent from React.
func IsComponentClass(n *ast.Node) bool {
	n = ast.Unwrap(n)
	if !ast.IsClass(n) {
		return false
	}
	for _, m := range n.ChildByField("body").NamedChildren() {
		if isRenderMember(m) {
			return true
		}
	}
	if annotatedAsComponent(n) {
		return true
	}
	base := ast.SuperClass(n)
	if base == nil {
		return false
	}
	return IsReactBuiltin(base, "Component", "PureComponent")
}

func isRenderMember(m *ast.Node) bool {
	if ast.IsStatic(m) {
		return false
	}
	switch m.Kind {
	case "method_definition":
		if m.HasToken("get") || m.HasToken("set") {
			return false
		}
		if name := m.ChildByField("name"); !name.Is("property_identifier") {
			return false
		}
	case "field_definition":
		if !m.ChildByField("property").Is("property_identifier") {
			return false
		}
	case "public_field_definition":
		if !m.ChildByField("name").Is("property_identifier") {
			return false
		}
	default:
		return false
	}
	name, _ := ast.MemberName(m)
	return name == "render"
}

func annotatedAsComponent(class *ast.Node) bool {
	candidates := []*ast.Node{class}
	if stmt := ast.Statement(class); stmt != nil && stmt != class {
		candidates = append(candidates, stmt)
	}
	for _, c := range candidates {
		for _, text := range docblock.Comments(c) {
			if extendsComponent.MatchString(text) {
				return true
			}
		}
	}
	return false
}
