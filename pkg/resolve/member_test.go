package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/parser/parsetest"
	"github.com/gnana997/docgen/pkg/resolve"
)

func TestMemberValueObject(t *testing.T) {
	file := parsetest.Parse(t, `
var def = {
  propTypes: {a: 1},
  getDefaultProps() { return {a: 'x'}; },
  ['displayName']: 'Lit',
  [dynamic]: 'no',
};`)
	obj := parsetest.Find(t, file, "object", "")

	pt := resolve.MemberValue(obj, "propTypes")
	require.NotNil(t, pt)
	assert.Equal(t, "{a: 1}", pt.Text())

	dp := resolve.MemberValue(obj, "defaultProps")
	require.NotNil(t, dp, "getDefaultProps is a synonym of defaultProps")
	assert.Equal(t, "{a: 'x'}", dp.Text(), "functions resolve to their return value")

	dn := resolve.MemberValue(obj, "displayName")
	require.NotNil(t, dn)
	assert.Equal(t, "'Lit'", dn.Text())

	assert.Nil(t, resolve.MemberValue(obj, "dynamic"))
}

func TestMemberValueClass(t *testing.T) {
	file := parsetest.Parse(t, `
class Foo {
  static propTypes = {a: 1};
  static get defaultProps() { return {b: 2}; }
  set contextTypes(v) {}
  render() { return null; }
}`)
	class := parsetest.Find(t, file, "class_declaration", "")

	assert.Equal(t, "{a: 1}", resolve.MemberValue(class, "propTypes").Text())
	assert.Equal(t, "{b: 2}", resolve.MemberValue(class, "defaultProps").Text(), "getter resolves to its return")
	assert.Nil(t, resolve.MemberValue(class, "contextTypes"), "setters are ignored")
}

func TestMemberValueExternalAssignment(t *testing.T) {
	file := parsetest.Parse(t, `
function Foo(props) { return null; }
Foo.propTypes = {first: 1};
Foo['displayName'] = 'Computed';
Foo.propTypes = {second: 2};
if (x) { Foo.contextTypes = {}; }
function other() { Foo.childContextTypes = {}; }
`)
	fn := parsetest.Find(t, file, "function_declaration", "")

	pt := resolve.MemberValue(fn, "propTypes")
	require.NotNil(t, pt)
	assert.Equal(t, "{first: 1}", pt.Text(), "first assignment wins")

	dn := resolve.MemberValue(fn, "displayName")
	require.NotNil(t, dn)
	assert.Equal(t, "'Computed'", dn.Text())

	assert.Nil(t, resolve.MemberValue(fn, "contextTypes"), "control flow is not scanned")
	assert.Nil(t, resolve.MemberValue(fn, "childContextTypes"), "nested functions are not scanned")
}

func TestMemberValueChecksOrigin(t *testing.T) {
	file := parsetest.Parse(t, `
const Foo = () => null;
{
  const Foo = {};
}
Foo.propTypes = {a: 1};
`)
	arrow := parsetest.Find(t, file, "arrow_function", "")
	assert.NotNil(t, resolve.MemberValue(arrow, "propTypes"))

	shadow := parsetest.Parse(t, `
const Foo = () => null;
function wrap(Foo) {
  Foo.propTypes = {a: 1};
}`)
	assert.Nil(t, resolve.MemberValue(parsetest.Find(t, shadow, "arrow_function", ""), "propTypes"))
}

func TestMemberValueForwardRefCall(t *testing.T) {
	file := parsetest.Parse(t, `
const Button = React.forwardRef((props, ref) => <button ref={ref} />);
Button.displayName = 'FancyButton';
`)
	call := parsetest.Find(t, file, "call_expression", "")
	dn := resolve.MemberValue(call, "displayName")
	require.NotNil(t, dn)
	assert.Equal(t, "'FancyButton'", dn.Text())
}

func TestBindingName(t *testing.T) {
	testCases := []struct {
		src  string
		kind string
		want string
	}{
		{"function Foo() {}", "function_declaration", "Foo"},
		{"const Bar = () => null;", "arrow_function", "Bar"},
		{"let Baz; Baz = class {};", "class", "Baz"},
		{"const Q = class Named {};", "class", "Q"},
		{"export default () => null;", "arrow_function", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			file := parsetest.Parse(t, tc.src)
			assert.Equal(t, tc.want, resolve.BindingName(parsetest.Find(t, file, tc.kind, "")))
		})
	}
}

func TestReturnValue(t *testing.T) {
	file := parsetest.Parse(t, `
function f() {
  const inner = () => 'not me';
  if (a) { return {first: true}; }
  return {second: true};
}`)
	fn := parsetest.Find(t, file, "function_declaration", "")
	assert.Equal(t, "{first: true}", resolve.ReturnValue(fn).Text())
	assert.Len(t, resolve.Returns(fn), 2)
}

func TestExport(t *testing.T) {
	file := parsetest.Parse(t, `
const a = 1;
export default function Main() {}
export const b = 2, c = 3;
export {a as renamed};
export class K {}
module.exports.legacy = 'old';
`)
	cases := map[string]string{
		"b":       "variable_declarator",
		"c":       "variable_declarator",
		"renamed": "identifier",
		"K":       "class_declaration",
		"legacy":  "string",
	}
	for name, kind := range cases {
		n := resolve.Export(file, name, nil)
		require.NotNil(t, n, name)
		assert.Equal(t, kind, n.Kind, name)
	}
	def := resolve.Export(file, "default", nil)
	require.NotNil(t, def)
	assert.True(t, ast.IsFunction(def), "default export is the function, got %s", def.Kind)
	assert.Equal(t, "1", resolve.ToValue(resolve.Export(file, "renamed", nil), nil).Text())
	assert.Nil(t, resolve.Export(file, "a", nil), "a is not exported under its own name")
}

func TestExportedValues(t *testing.T) {
	file := parsetest.Parse(t, `
const X = {x: 1};
export const A = 1, B = X;
export {X as Y};
export * from './all';
`)
	body := file.Body()

	decl := resolve.ExportedValues(body[1], nil)
	require.Len(t, decl, 2)
	assert.Equal(t, "1", decl[0].Text())
	assert.Equal(t, "object", decl[1].Kind)

	clause := resolve.ExportedValues(body[2], nil)
	require.Len(t, clause, 1)
	assert.Equal(t, "{x: 1}", clause[0].Text())

	assert.Empty(t, resolve.ExportedValues(body[3], nil))
}

func TestIsExportsAssignment(t *testing.T) {
	for src, want := range map[string]bool{
		"module.exports = Foo;":     true,
		"exports.Foo = Foo;":        true,
		"module.exports.Foo = Foo;": true,
		"module.foo = Foo;":         false,
		"exports = Foo;":            false,
		"window.exports.Foo = 1;":   false,
	} {
		file := parsetest.Parse(t, src)
		assert.Equal(t, want, resolve.IsExportsAssignment(parsetest.Expr(t, file)), src)
	}
}

func TestMemberChain(t *testing.T) {
	file := parsetest.Parse(t, "a.b['c'].d;")
	root, props, ok := resolve.MemberChain(parsetest.Expr(t, file))
	require.True(t, ok)
	assert.Equal(t, "a", root.Text())
	assert.Equal(t, []string{"b", "c", "d"}, props)

	dyn := parsetest.Parse(t, "a[b].c;")
	_, _, ok = resolve.MemberChain(parsetest.Expr(t, dyn))
	assert.False(t, ok)
}
