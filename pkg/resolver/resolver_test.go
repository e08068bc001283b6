package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/parser/parsetest"
	"github.com/gnana997/docgen/pkg/resolve"
)

func kinds(nodes []*ast.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func TestFindExported(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "default class with private helpers",
			src: `import React from 'react';
const Helper = () => <span />;
class Foo extends React.Component { render() { return <Helper />; } }
export default Foo;`,
			want: []string{"class_declaration"},
		},
		{
			name: "same definition exported twice",
			src:  "const A = () => <div />;\nexport default A;\nexport { A };",
			want: []string{"arrow_function"},
		},
		{
			name: "no component",
			src:  "export const x = 1;\nexport function f() { return 2; }",
			want: []string{},
		},
		{
			name: "commonjs factory",
			src: `var React = require('react');
module.exports = React.createClass({ render() { return null; } });`,
			want: []string{"object"},
		},
		{
			name: "exports member",
			src:  "function Button() { return <button />; }\nexports.Button = Button;",
			want: []string{"function_declaration"},
		},
		{
			name: "higher order component",
			src: `import { connect } from 'react-redux';
const Foo = () => <div />;
export default connect(mapState)(Foo);`,
			want: []string{"arrow_function"},
		},
		{
			name: "forwardRef",
			src: `import React from 'react';
export default React.forwardRef((props, ref) => <input ref={ref} />);`,
			want: []string{"call_expression"},
		},
		{
			name: "memo of forwardRef",
			src: `import { memo, forwardRef } from 'react';
export const Input = memo(forwardRef((props, ref) => <input ref={ref} />));`,
			want: []string{"call_expression"},
		},
		{
			name: "export inside control flow",
			src:  "if (x) { module.exports = () => <div />; }",
			want: []string{},
		},
		{
			name: "export inside function",
			src:  "function setup() { module.exports = () => <div />; }",
			want: []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defs, err := FindExported(parsetest.Parse(t, tc.src), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, kinds(defs))
		})
	}
}

func TestFindExportedInlineDefaultClass(t *testing.T) {
	file := parsetest.Parse(t, `import React from 'react';
/** A button. */
export default class extends React.Component { render() { return null; } }`)
	defs, err := FindExported(file, nil)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.True(t, ast.IsClass(defs[0]))
}

func TestFindExportedMultipleDefinitions(t *testing.T) {
	testCases := []string{
		"export const A = () => <div />;\nexport const B = () => <span />;",
		"const A = () => <div />;\nconst B = () => <span />;\nexport { A, B };",
		"export default () => <div />;\nmodule.exports.B = () => <span />;",
	}
	for _, src := range testCases {
		_, err := FindExported(parsetest.Parse(t, src), nil)
		assert.ErrorIs(t, err, ErrMultipleDefinitions, src)
	}
}

func TestFindAllExported(t *testing.T) {
	file := parsetest.Parse(t, `
const Hidden = () => <i />;
export const A = () => <div />;
export const B = () => <span />;`)
	defs, err := FindAllExported(file, nil)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "() => <div />", defs[0].Text())
	assert.Equal(t, "() => <span />", defs[1].Text())
}

func TestFindExportedThroughImporter(t *testing.T) {
	target := parsetest.Parse(t, "export const Button = () => <button />;")
	imp := resolve.ImporterFunc(func(source, name, from string) *ast.Node {
		if source != "./Button" {
			return nil
		}
		return resolve.Export(target, name, nil)
	})
	file := parsetest.Parse(t, "export { Button } from './Button';")

	defs, err := FindExported(file, nil)
	require.NoError(t, err)
	assert.Empty(t, defs)

	defs, err = FindExported(file, imp)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "() => <button />", defs[0].Text())
}

func TestFindAll(t *testing.T) {
	file := parsetest.Parse(t, `
import React from 'react';
function A() { return <div />; }
const B = () => <span />;
class C extends React.Component { render() { return null; } }
const D = React.createClass({ render() { return null; } });
const E = React.forwardRef((props, ref) => <input ref={ref} />);
function helper() { return 1; }
function outer() { const Inner = () => <b />; return null; }
if (x) { var Hidden = () => <i />; }
class Plain { other() {} }`)

	defs, err := FindAll(file, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"function_declaration", "arrow_function", "class_declaration", "object", "call_expression",
	}, kinds(defs))
}

func TestNormalizeClass(t *testing.T) {
	file := parsetest.Parse(t, `
class Foo {
  static displayName = 'Inline';
  render() { return null; }
}
Foo.propTypes = {a: 1};
Foo.displayName = 'External';
function configure() { Foo.contextTypes = {}; }
if (debug) { Foo.childContextTypes = {}; }`)

	defs, err := FindAll(file, nil)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	view := defs[0]
	class := parsetest.Find(t, file, "class_declaration", "")

	assert.True(t, ast.Same(view, class))
	assert.NotSame(t, class, view, "the class is not modified in place")
	assert.Len(t, class.ChildByField("body").NamedChildren(), 2)

	members := view.ChildByField("body").NamedChildren()
	require.Len(t, members, 4)
	for _, m := range members[2:] {
		assert.True(t, ast.IsStatic(m))
	}

	pt := resolve.ClassMember(view, "propTypes")
	require.NotNil(t, pt)
	assert.Equal(t, "{a: 1}", pt.Text())
	assert.Equal(t, "'Inline'", resolve.ClassMember(view, "displayName").Text(), "body members come first")
	assert.Nil(t, resolve.ClassMember(view, "contextTypes"), "nested scopes are not searched")
	assert.Nil(t, resolve.ClassMember(view, "childContextTypes"), "control flow is not searched")
}

func TestNormalizeClassWithoutStatics(t *testing.T) {
	file := parsetest.Parse(t, "class Foo { render() { return null; } }")
	class := parsetest.Find(t, file, "class_declaration", "")
	assert.Same(t, class, NormalizeClass(class))
}

func TestByName(t *testing.T) {
	for _, name := range []string{NameExported, NameAll, NameAllExported} {
		r, err := ByName(name)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}
	_, err := ByName("nope")
	assert.Error(t, err)
	assert.Equal(t, []string{"all", "all-exported", "exported"}, Names())
}
