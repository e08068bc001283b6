package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentDocblock(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "exported class",
			src: `import React from 'react';
/**
 * A button.
 */
export default class Foo extends React.Component { render() { return null; } }`,
			want: "A button.",
		},
		{
			name: "factory in variable",
			src: `var React = require('react');
/** Factory component. */
var Foo = React.createClass({ render() { return null; } });
module.exports = Foo;`,
			want: "Factory component.",
		},
		{
			name: "first statement",
			src: `/** Top of file. */
export default () => <div />;`,
			want: "Top of file.",
		},
		{
			name: "decorated class",
			src: `import React from 'react';
/** Decorated. */
@observer
class Foo extends React.Component { render() { return null; } }
export default Foo;`,
			want: "Decorated.",
		},
		{
			name: "plain comment",
			src: `/* not a docblock */
export default () => <div />;`,
			want: "",
		},
		{
			name: "none",
			src:  `export default () => <div />;`,
			want: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := document(t, tc.src, ComponentDocblock)
			v, ok := doc.Get("description")
			assert.True(t, ok)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestDisplayName(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "static field",
			src: `import React from 'react';
class Foo extends React.Component { static displayName = 'Bar'; render() { return null; } }
export default Foo;`,
			want: "Bar",
		},
		{
			name: "static getter",
			src: `import React from 'react';
class Foo extends React.Component { static get displayName() { return 'Getter'; } render() { return null; } }
export default Foo;`,
			want: "Getter",
		},
		{
			name: "assignment",
			src: `const Foo = () => <div />;
Foo.displayName = 'Assigned';
export default Foo;`,
			want: "Assigned",
		},
		{
			name: "through variable",
			src: `const name = 'FromVar';
const Foo = () => <div />;
Foo.displayName = name;
export default Foo;`,
			want: "FromVar",
		},
		{
			name: "factory spec",
			src: `var React = require('react');
module.exports = React.createClass({ displayName: 'Spec', render() { return null; } });`,
			want: "Spec",
		},
		{
			name: "function declaration",
			src:  `export default function Foo() { return <div />; }`,
			want: "Foo",
		},
		{
			name: "class declaration",
			src: `import React from 'react';
export default class Named extends React.Component { render() { return null; } }`,
			want: "Named",
		},
		{
			name: "variable",
			src:  "const Baz = () => <div />;\nexport default Baz;",
			want: "Baz",
		},
		{
			name: "wrapped in variable",
			src: `import React from 'react';
const Wrapped = React.forwardRef((props, ref) => <input ref={ref} />);
export default Wrapped;`,
			want: "Wrapped",
		},
		{
			name: "named forwardRef render function",
			src: `import React from 'react';
export default React.forwardRef(function Fancy(props, ref) { return <input ref={ref} />; });`,
			want: "Fancy",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := document(t, tc.src, DisplayName)
			name, ok := doc.DisplayName()
			assert.True(t, ok)
			assert.Equal(t, tc.want, name)
		})
	}
}

func TestDisplayNameAnonymous(t *testing.T) {
	doc := document(t, `export default () => <div />;`, DisplayName)
	_, ok := doc.DisplayName()
	assert.False(t, ok)

	doc = document(t, `const Foo = () => <div />;
Foo.displayName = computeName();
export default Foo;`, DisplayName)
	_, ok = doc.DisplayName()
	assert.False(t, ok, "only literal display names are recorded")
}
