package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/gnana997/docgen/pkg/ast"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/handlers"
	"github.com/gnana997/docgen/pkg/parser/parsetest"
	"github.com/gnana997/docgen/pkg/resolve"
	"github.com/gnana997/docgen/pkg/resolver"
)

func parse(t *testing.T, src string, opts ...Option) []*record.Documentation {
	t.Helper()
	opts = append([]Option{WithParser(parsetest.Manager())}, opts...)
	docs, err := Parse(context.Background(), []byte(src), opts...)
	require.NoError(t, err)
	return docs
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestParseClass(t *testing.T) {
	docs := parse(t, `import React from 'react';
class Foo extends React.Component { static displayName = 'Bar'; render() { return null; } }
export default Foo;`)

	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"description":"","displayName":"Bar","methods":[]}`, toJSON(t, docs[0]))
}

func TestParseStatelessDefaults(t *testing.T) {
	docs := parse(t, `export default ({ foo = "bar", bar = 42 }) => <div />;`)

	require.Len(t, docs, 1)
	out := toJSON(t, docs[0])
	assert.JSONEq(t, `{"value":"\"bar\"","computed":false}`, gjson.Get(out, "props.foo.defaultValue").Raw)
	assert.JSONEq(t, `{"value":"42","computed":false}`, gjson.Get(out, "props.bar.defaultValue").Raw)
}

func TestParseOverridePrecedence(t *testing.T) {
	docs := parse(t, `const Foo = ({ abc = 1 }) => <div />;
Foo.defaultProps = { abc: 2 };
export default Foo;`)

	out := toJSON(t, docs[0])
	assert.Equal(t, "2", gjson.Get(out, "props.abc.defaultValue.value").String())
}

func TestParseComposes(t *testing.T) {
	docs := parse(t, `import Foo from 'Foo.react';
import SharedProps from 'SharedProps';
const Component = () => <div />;
Component.propTypes = { ...Foo.propTypes, ...SharedProps };
export default Component;`)

	assert.Equal(t, `["Foo.react","SharedProps"]`, gjson.Get(toJSON(t, docs[0]), "composes").Raw)
}

func TestParseTypeScriptComponent(t *testing.T) {
	docs := parse(t, `import React from 'react';

type Node = { self: Node };

interface Props {
  /** Text to show. */
  label: string;
  tree?: Node;
}

/**
 * Shows a label.
 */
export function Label({ label, tree }: Props) {
  return <span>{label}</span>;
}`, WithFilename("Label.tsx"))

	out := toJSON(t, docs[0])
	assert.Equal(t, "Shows a label.", gjson.Get(out, "description").String())
	assert.Equal(t, "Label", gjson.Get(out, "displayName").String())
	assert.Equal(t, "string", gjson.Get(out, "props.label.tsType.name").String())
	assert.Equal(t, "Text to show.", gjson.Get(out, "props.label.description").String())
	assert.True(t, gjson.Get(out, "props.label.required").Bool())
	assert.False(t, gjson.Get(out, "props.tree.required").Bool())
	assert.Equal(t, "Node", gjson.Get(out, `props.tree.tsType.signature.properties.0.value.name`).String())
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()
	opt := WithParser(parsetest.Manager())

	_, err := Parse(ctx, []byte(`export const x = 1;`), opt)
	assert.ErrorIs(t, err, ErrNoDefinition)

	_, err = Parse(ctx, []byte(`export const A = () => <a />;
export const B = () => <b />;`), opt)
	assert.ErrorIs(t, err, ErrMultipleDefinitions)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Parse(canceled, []byte(`export default () => <div />;`), opt)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseWithAllResolver(t *testing.T) {
	docs := parse(t, `const A = () => <a />;
function B() { return <b />; }
export default A;`, WithResolver(resolver.FindAll))

	require.Len(t, docs, 2)
	a, _ := docs[0].DisplayName()
	b, _ := docs[1].DisplayName()
	assert.Equal(t, []string{"A", "B"}, []string{a, b})
}

func TestParseIsolatesHandlerPanics(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	boom := func(*record.Documentation, *ast.Node, resolve.Importer) { panic("boom") }

	docs := parse(t, `const A = () => <a />;
const B = () => <b />;
export { A, B };`,
		WithResolver(resolver.FindAllExported),
		WithHandlers(boom, handlers.DisplayName),
		WithLogger(logger))

	require.Len(t, docs, 2)
	for i, want := range []string{"A", "B"} {
		name, ok := docs[i].DisplayName()
		assert.True(t, ok)
		assert.Equal(t, want, name)
	}
	assert.Contains(t, logs.String(), "handler failed")
	assert.Contains(t, logs.String(), "boom")
}

func TestParseThroughImporter(t *testing.T) {
	shared := parsetest.ParseAs(t, `import PropTypes from 'prop-types';
export default { size: PropTypes.number };`, "/src/shared.js")
	imp := resolve.ImporterFunc(func(source, name, from string) *ast.Node {
		if source != "./shared" {
			return nil
		}
		return resolve.Export(shared, name, nil)
	})

	docs := parse(t, `import shared from './shared';
const Foo = () => <div />;
Foo.propTypes = { ...shared };
export default Foo;`, WithImporter(imp), WithFilename("/src/Foo.jsx"))

	out := toJSON(t, docs[0])
	assert.Equal(t, "number", gjson.Get(out, "props.size.type.name").String())
	assert.False(t, gjson.Get(out, "composes").Exists())
}
