package importer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultExtensions is the probe order for specifiers without an extension.
var DefaultExtensions = []string{".tsx", ".ts", ".jsx", ".js", ".mjs", ".cjs"}

// packageEntryFields are the package.json fields naming a package's entry
// module, in preference order.
var packageEntryFields = []string{"source", "module", "main"}

// Resolve maps a module specifier to a file on disk. Relative specifiers are
// resolved against the directory of fromPath (or Root when fromPath is
// empty), absolute ones as-is. Bare specifiers are looked up in enclosing
// node_modules directories only when NodeModules is enabled.
func (im *Importer) Resolve(source, fromPath string) (string, bool) {
	if source == "" {
		return "", false
	}
	switch {
	case filepath.IsAbs(source):
		return im.probe(filepath.Clean(source))
	case isRelative(source):
		base := im.config.Root
		if fromPath != "" {
			base = filepath.Dir(fromPath)
		}
		return im.probe(filepath.Join(base, source))
	case im.config.NodeModules:
		return im.resolvePackage(source, fromPath)
	}
	return "", false
}

func isRelative(source string) bool {
	return source == "." || source == ".." ||
		strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../")
}

// probe tries path itself, path with each extension, then path/index with
// each extension.
func (im *Importer) probe(path string) (string, bool) {
	if isFile(path) {
		return path, true
	}
	for _, ext := range im.config.Extensions {
		if candidate := path + ext; isFile(candidate) {
			return candidate, true
		}
	}
	if !isDir(path) {
		return "", false
	}
	for _, ext := range im.config.Extensions {
		if candidate := filepath.Join(path, "index"+ext); isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// resolvePackage walks up from fromPath looking for node_modules/<source>.
func (im *Importer) resolvePackage(source, fromPath string) (string, bool) {
	name, sub := splitPackage(source)
	dir := im.config.Root
	if fromPath != "" {
		dir = filepath.Dir(fromPath)
	}
	for {
		pkgDir := filepath.Join(dir, "node_modules", name)
		if isDir(pkgDir) {
			if sub != "" {
				return im.probe(filepath.Join(pkgDir, sub))
			}
			return im.packageEntry(pkgDir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// packageEntry reads the entry module named by package.json, falling back
// to index files.
func (im *Importer) packageEntry(pkgDir string) (string, bool) {
	manifest, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	if err == nil && gjson.ValidBytes(manifest) {
		fields := gjson.GetManyBytes(manifest, packageEntryFields...)
		for _, f := range fields {
			if f.Type != gjson.String || f.Str == "" {
				continue
			}
			if path, ok := im.probe(filepath.Join(pkgDir, f.Str)); ok {
				return path, true
			}
		}
	}
	return im.probe(pkgDir)
}

// splitPackage splits "@scope/pkg/sub/path" into "@scope/pkg" and "sub/path".
func splitPackage(source string) (name, sub string) {
	parts := strings.Split(source, "/")
	n := 1
	if strings.HasPrefix(source, "@") && len(parts) > 1 {
		n = 2
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
