package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands paths into the source files to parse. Files named
// directly are kept as long as they exist; directories are walked, skipping
// ignored directory names and keeping files with a wanted extension whose
// name is not excluded. The result is sorted and free of duplicates.
func Discover(paths []string, options Options) ([]string, error) {
	for _, pattern := range append(append([]string{}, options.Ignore...), options.Include...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern: %s", pattern)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		if err := walk(root, options, add); err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func walk(root string, options Options, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && options.Ignores(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !options.Wants(path) {
			return nil
		}
		if len(options.Include) > 0 {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			if !included(filepath.ToSlash(rel), options.Include) {
				return nil
			}
		}
		add(path)
		return nil
	})
}

func ignored(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func included(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// hasExtension reports whether path ends in one of exts. An empty list
// accepts every file.
func hasExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, want := range exts {
		if strings.EqualFold(ext, strings.TrimPrefix(want, ".")) {
			return true
		}
	}
	return false
}

// Wants reports whether a file found while walking would be parsed: it has a
// wanted extension and its name is not excluded.
func (o Options) Wants(path string) bool {
	if !hasExtension(path, o.Extensions) {
		return false
	}
	return o.Exclude == nil || !o.Exclude.MatchString(filepath.Base(path))
}

// Ignores reports whether a directory with the given base name is skipped.
func (o Options) Ignores(dirName string) bool {
	return ignored(dirName, o.Ignore)
}
