package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/gnana997/docgen/pkg/docgen"
	"github.com/gnana997/docgen/pkg/parser/parsetest"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

var sampleTree = map[string]string{
	"src/Button.jsx":                "export default () => <button />;",
	"src/Card.tsx":                  "export const Card = () => <div />;",
	"src/util.js":                   "export const x = 1;",
	"src/styles.css":                ".a {}",
	"src/Button.test.jsx":           "test('x', () => {});",
	"src/__tests__/Button.jsx":      "export default () => null;",
	"src/__mocks__/api.js":          "export default {};",
	"node_modules/lib/index.js":     "export default () => <div />;",
	"packages/ui/src/Badge.jsx":     "export default () => <span />;",
	"packages/ui/stories/Badge.jsx": "export default {};",
}

func TestDiscover(t *testing.T) {
	root := writeTree(t, sampleTree)

	files, err := Discover([]string{root}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"packages/ui/src/Badge.jsx",
		"packages/ui/stories/Badge.jsx",
		"src/Button.jsx",
		"src/Button.test.jsx",
		"src/Card.tsx",
		"src/util.js",
	}, rel(t, root, files))
}

func TestDiscoverFilters(t *testing.T) {
	root := writeTree(t, sampleTree)

	testCases := []struct {
		name    string
		options Options
		want    []string
	}{
		{
			name: "exclude regexp on file name",
			options: Options{
				Extensions: []string{"jsx"},
				Exclude:    regexp.MustCompile(`\.test\.`),
				Ignore:     []string{"node_modules", "__*__"},
			},
			want: []string{"packages/ui/src/Badge.jsx", "packages/ui/stories/Badge.jsx", "src/Button.jsx"},
		},
		{
			name: "include patterns",
			options: Options{
				Extensions: []string{".jsx", ".tsx"},
				Ignore:     []string{"node_modules"},
				Include:    []string{"**/src/**"},
			},
			want: []string{
				"packages/ui/src/Badge.jsx",
				"src/Button.jsx",
				"src/Button.test.jsx",
				"src/Card.tsx",
				"src/__tests__/Button.jsx",
			},
		},
		{
			name:    "ignore stories",
			options: Options{Extensions: []string{"jsx"}, Ignore: []string{"src", "node_modules", "stories"}},
			want:    []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			files, err := Discover([]string{root}, tc.options)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rel(t, root, files))
		})
	}
}

func TestDiscoverExplicitFiles(t *testing.T) {
	root := writeTree(t, sampleTree)
	css := filepath.Join(root, "src", "styles.css")

	files, err := Discover([]string{css, filepath.Join(root, "src"), css}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, files, css, "named files bypass the extension filter")
	assert.Len(t, files, 5)

	_, err = Discover([]string{filepath.Join(root, "missing")}, DefaultOptions())
	assert.Error(t, err)

	_, err = Discover([]string{root}, Options{Ignore: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	root := writeTree(t, sampleTree)
	options := DefaultOptions()
	options.Workers = 3
	options.Parse = []docgen.Option{docgen.WithParser(parsetest.Manager())}

	var mu sync.Mutex
	var calls []int
	report, err := Run(context.Background(), []string{filepath.Join(root, "src")}, options,
		func(done, total int, _ string) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, 4, total)
			calls = append(calls, done)
		})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, calls)
	assert.Equal(t, 4, report.Stats.FilesDiscovered)
	assert.Equal(t, 2, report.Stats.FilesParsed)
	assert.Equal(t, 2, report.Stats.FilesFailed)
	assert.Equal(t, 2, report.Stats.Components)
	assert.Equal(t, 3, report.Stats.WorkerCount)

	failed := report.Errors()
	require.Len(t, failed, 2)
	for _, res := range failed {
		assert.ErrorIs(t, res.Err, docgen.ErrNoDefinition)
	}

	button := report.Files[filepath.Join(root, "src", "Button.jsx")]
	require.NotNil(t, button)
	require.Len(t, button.Docs, 1)
	assert.NotZero(t, button.Digest)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	var out map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Len(t, out, 2, "failed files are left out")
	card := out[filepath.Join(root, "src", "Card.tsx")]
	require.Len(t, card, 1)
	assert.Equal(t, "Card", gjson.GetBytes(card[0], "displayName").String())
}

func TestRunCancelled(t *testing.T) {
	root := writeTree(t, sampleTree)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	options := DefaultOptions()
	options.Parse = []docgen.Option{docgen.WithParser(parsetest.Manager())}
	_, err := Run(ctx, []string{root}, options, nil)
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	report, err := Parse(context.Background(), nil, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Equal(t, 0, report.Stats.WorkerCount)
}
