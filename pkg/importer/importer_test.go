package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/docgen/pkg/parser/parsetest"
)

// writeTree creates files under a temp dir and returns the dir.
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

func newImporter(t *testing.T, root string, mutate ...func(*Config)) *Importer {
	t.Helper()
	config := Config{Root: root, Parser: parsetest.Manager()}
	for _, m := range mutate {
		m(&config)
	}
	im, err := New(config)
	require.NoError(t, err)
	return im
}

func TestResolve(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"src/Button.tsx":        "",
		"src/Button.js":         "",
		"src/util.js":           "",
		"src/theme/index.ts":    "",
		"src/styles.module.cjs": "",
	})
	from := filepath.Join(dir, "src", "App.jsx")
	im := newImporter(t, dir)

	testCases := []struct {
		source string
		want   string
	}{
		{"./Button", "src/Button.tsx"},
		{"./Button.js", "src/Button.js"},
		{"./util", "src/util.js"},
		{"./theme", "src/theme/index.ts"},
		{"./styles.module", "src/styles.module.cjs"},
		{"../src/util", "src/util.js"},
	}
	for _, tc := range testCases {
		t.Run(tc.source, func(t *testing.T) {
			got, ok := im.Resolve(tc.source, from)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dir, filepath.FromSlash(tc.want)), got)
		})
	}

	_, ok := im.Resolve("./missing", from)
	assert.False(t, ok)
	_, ok = im.Resolve("react", from)
	assert.False(t, ok, "bare specifiers need NodeModules")

	got, ok := im.Resolve("./src/util", "")
	require.True(t, ok, "empty fromPath resolves against Root")
	assert.Equal(t, filepath.Join(dir, "src", "util.js"), got)

	got, ok = im.Resolve(filepath.Join(dir, "src", "util"), from)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "src", "util.js"), got)
}

func TestResolveNodeModules(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"node_modules/ui-kit/package.json":      `{"name":"ui-kit","main":"lib/index.js","module":"es/index.js"}`,
		"node_modules/ui-kit/es/index.js":       "",
		"node_modules/ui-kit/lib/index.js":      "",
		"node_modules/ui-kit/es/Button.js":      "",
		"node_modules/@acme/icons/index.jsx":    "",
		"node_modules/@acme/icons/package.json": `{"name":"@acme/icons"}`,
		"node_modules/broken/package.json":      `{"main":`,
		"node_modules/broken/index.js":          "",
		"packages/app/src/components/Card.jsx":  "",
	})
	from := filepath.Join(dir, "packages", "app", "src", "components", "Card.jsx")
	im := newImporter(t, dir, func(c *Config) { c.NodeModules = true })

	testCases := []struct {
		source string
		want   string
	}{
		{"ui-kit", "node_modules/ui-kit/es/index.js"},
		{"ui-kit/es/Button", "node_modules/ui-kit/es/Button.js"},
		{"@acme/icons", "node_modules/@acme/icons/index.jsx"},
		{"broken", "node_modules/broken/index.js"},
	}
	for _, tc := range testCases {
		t.Run(tc.source, func(t *testing.T) {
			got, ok := im.Resolve(tc.source, from)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dir, filepath.FromSlash(tc.want)), got)
		})
	}

	_, ok := im.Resolve("left-pad", from)
	assert.False(t, ok)
}

func TestImport(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"shared.js":  "export default { size: 1 };\nexport const color = 'red';\nexport function helper() {}",
		"cjs.js":     "module.exports = { a: 1 };\nmodule.exports.b = 2;",
		"barrel.js":  "export { color as tint } from './shared';\nexport * from './cjs';",
		"cycle/a.js": "export * from './b';",
		"cycle/b.js": "export * from './a';",
		"App.jsx":    "",
	})
	from := filepath.Join(dir, "App.jsx")
	im := newImporter(t, dir)

	testCases := []struct {
		name   string
		source string
		export string
		want   string
	}{
		{"default", "./shared", "default", "{ size: 1 }"},
		{"named const", "./shared", "color", "color = 'red'"},
		{"named function", "./shared", "helper", "function helper() {}"},
		{"module.exports", "./cjs", "default", "{ a: 1 }"},
		{"module.exports property", "./cjs", "b", "2"},
		{"aliased re-export", "./barrel", "tint", "color = 'red'"},
		{"star re-export", "./barrel", "b", "2"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := im.Import(tc.source, tc.export, from)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Text())
		})
	}

	assert.Nil(t, im.Import("./shared", "missing", from))
	assert.Nil(t, im.Import("./nope", "default", from))
	assert.Nil(t, im.Import("./cycle/a", "x", from), "re-export cycles stop at the depth cap")
	assert.Greater(t, im.Stats().Unresolved, int64(0))
}

func TestLoadCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"Foo.js": "export default 1;"})
	path := filepath.Join(dir, "Foo.js")
	im := newImporter(t, dir)

	first, err := im.Load(path)
	require.NoError(t, err)
	second, err := im.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), im.Stats().Misses)
	assert.Equal(t, int64(1), im.Stats().Hits)

	// Same content with a new mtime is still a hit.
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	touched, err := im.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, touched)
	assert.Equal(t, int64(0), im.Stats().Reparsed)

	require.NoError(t, os.WriteFile(path, []byte("export default 22;"), 0644))
	evenLater := later.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, evenLater, evenLater))
	changed, err := im.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, first, changed)
	assert.Equal(t, int64(1), im.Stats().Reparsed)

	im.Invalidate(path)
	assert.Equal(t, 0, im.Stats().Cached)

	_, err = im.Load(filepath.Join(dir, "missing.js"))
	assert.Error(t, err)
}

func TestCacheBound(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.js": "export default 1;",
		"b.js": "export default 2;",
		"c.js": "export default 3;",
	})
	im := newImporter(t, dir, func(c *Config) { c.MaxCachedModules = 2 })

	for _, name := range []string{"a.js", "b.js", "c.js"} {
		_, err := im.Load(filepath.Join(dir, name))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, im.Stats().Cached)

	im.Purge()
	assert.Equal(t, 0, im.Stats().Cached)
}
