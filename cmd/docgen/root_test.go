package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const buttonSource = `import PropTypes from 'prop-types';

/** A clickable button. */
function Button({ size }) {
  return <button />;
}

Button.propTypes = { size: PropTypes.number };

export default Button;`

// --- helpers ---

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	// A nil slice would make cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func decodeReport(t *testing.T, out string) map[string]json.RawMessage {
	t.Helper()
	var files map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &files), out)
	return files
}

// --- tests ---

func TestDocumentSingleFile(t *testing.T) {
	root := writeTree(t, map[string]string{"Button.jsx": buttonSource})

	out, err := run(t, "", filepath.Join(root, "Button.jsx"))
	require.NoError(t, err)
	assert.True(t, gjson.Valid(out))
	assert.Equal(t, "Button", gjson.Get(out, "0.displayName").String())
	assert.Equal(t, "A clickable button.", gjson.Get(out, "0.description").String())
	assert.Equal(t, "number", gjson.Get(out, "0.props.size.type.name").String())
}

func TestDocumentSingleFileError(t *testing.T) {
	root := writeTree(t, map[string]string{"util.js": "export const x = 1;"})

	_, err := run(t, "", filepath.Join(root, "util.js"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suitable component definition found")
}

func TestDocumentRelativePaths(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Button.jsx": buttonSource,
		"Card.tsx":   "export const Card = () => <div />;",
	})
	t.Chdir(root)

	out, err := run(t, "", "Button.jsx")
	require.NoError(t, err)
	assert.Equal(t, "Button", gjson.Get(out, "0.displayName").String())

	out, err = run(t, "", "Button.jsx", "Card.tsx")
	require.NoError(t, err)
	assert.Len(t, decodeReport(t, out), 2)
}

func TestDocumentStdin(t *testing.T) {
	out, err := run(t, buttonSource)
	require.NoError(t, err)
	assert.Equal(t, "Button", gjson.Get(out, "0.displayName").String())

	out, err = run(t, buttonSource, "-")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.Get(out, "#").Int())

	_, err = run(t, "export const x = 1;")
	assert.Error(t, err)
}

func TestDocumentDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Button.jsx":         buttonSource,
		"src/Card.tsx":           "export const Card = () => <div />;",
		"src/util.js":            "export const x = 1;",
		"src/Card.test.tsx":      "export const Fake = () => <div />;",
		"src/__tests__/Test.jsx": "export default () => <div />;",
	})

	out, err := run(t, "", filepath.Join(root, "src"), "--exclude", `\.test\.`, "--progress")
	require.NoError(t, err)

	files := decodeReport(t, out)
	assert.Len(t, files, 2)
	card := files[filepath.Join(root, "src", "Card.tsx")]
	require.NotNil(t, card)
	assert.Equal(t, "Card", gjson.GetBytes(card, "0.displayName").String())
}

func TestDocumentAllFailed(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.js": "export const x = 1;",
		"b.js": "module.exports = {};",
	})

	out, err := run(t, "", root)
	assert.ErrorIs(t, err, errAllFailed)
	assert.JSONEq(t, `{}`, out)
}

func TestDocumentPrettyToFile(t *testing.T) {
	root := writeTree(t, map[string]string{"Button.jsx": buttonSource})
	dest := filepath.Join(root, "docs.json")

	out, err := run(t, "", filepath.Join(root, "Button.jsx"), "--pretty", "-o", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
	assert.Equal(t, "Button", gjson.GetBytes(data, "0.displayName").String())
}

func TestDocumentConfigFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Button.jsx": buttonSource,
		"Pair.tsx":   "export const A = () => <a />;\nexport const B = () => <b />;",
		"docgen.yaml": `extensions: [tsx]
resolver: all-exported
`,
	})
	config := filepath.Join(root, "docgen.yaml")

	out, err := run(t, "", root, "--config", config)
	require.NoError(t, err)
	files := decodeReport(t, out)
	require.Len(t, files, 1)
	assert.Equal(t, int64(2), gjson.GetBytes(files[filepath.Join(root, "Pair.tsx")], "#").Int())

	// Flags win over the file.
	out, err = run(t, "", root, "--config", config, "-x", "jsx,tsx")
	require.NoError(t, err)
	assert.Len(t, decodeReport(t, out), 2)

	_, err = run(t, "", root, "--config", filepath.Join(root, "missing.yaml"))
	assert.Error(t, err)
}

func TestDocumentInvalidFlags(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "resolver", args: []string{"--resolver", "nope"}, want: "unknown resolver"},
		{name: "log level", args: []string{"--log-level", "loud"}, want: "invalid log level"},
		{name: "exclude", args: []string{".", "--exclude", "("}, want: "invalid --exclude"},
		{name: "watch without paths", args: []string{"--watch"}, want: "--watch needs at least one path"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, buttonSource, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "docgen "+version+"\n", out)
}
