package parser

import (
	"path/filepath"
	"strings"
	"unsafe"

	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Grammar identifies the tree-sitter grammar a module is parsed with.
type Grammar int

const (
	// GrammarTSX is TypeScript with JSX. It also accepts plain JavaScript
	// and is used for sources without a recognised file name.
	GrammarTSX Grammar = iota
	// GrammarTypeScript is TypeScript without JSX (.ts, .mts, .cts), where
	// `<T>x` is a type assertion.
	GrammarTypeScript
	// GrammarJavaScript covers .js, .jsx, .mjs and .cjs, JSX included.
	GrammarJavaScript
)

func (g Grammar) String() string {
	switch g {
	case GrammarTSX:
		return "tsx"
	case GrammarTypeScript:
		return "typescript"
	case GrammarJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// GrammarFor picks the grammar for a file path by extension, case
// insensitively.
func GrammarFor(filePath string) Grammar {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return GrammarTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return GrammarJavaScript
	default:
		return GrammarTSX
	}
}

// language returns the tree-sitter language pointer for g.
func (g Grammar) language() unsafe.Pointer {
	switch g {
	case GrammarTypeScript:
		return ts_typescript.LanguageTypescript()
	case GrammarJavaScript:
		return ts_javascript.Language()
	default:
		return ts_typescript.LanguageTSX()
	}
}
