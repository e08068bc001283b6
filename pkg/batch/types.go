package batch

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/gnana997/docgen/pkg/docgen"
	"github.com/gnana997/docgen/pkg/record"
	"github.com/gnana997/docgen/pkg/util"
)

// Options configures discovery and parsing of a batch run.
type Options struct {
	// Extensions are the file extensions to parse, without the dot.
	Extensions []string

	// Exclude skips files whose base name matches.
	Exclude *regexp.Regexp

	// Ignore lists directory names to skip while walking. Entries may be
	// doublestar patterns, matched against the directory's base name.
	Ignore []string

	// Include restricts discovery to paths (relative to the walked root)
	// matching one of these doublestar patterns. Empty means everything.
	Include []string

	// Workers is the number of parsing goroutines (0 = auto-detect).
	Workers int

	// Parse options applied to every file. WithFilename is set per file.
	Parse []docgen.Option

	// Reader reads file content. Defaults to util.NewSourceReader(nil).
	Reader util.SourceReader

	// Logger for progress and failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the options the CLI starts from.
func DefaultOptions() Options {
	return Options{
		Extensions: []string{"js", "jsx", "ts", "tsx"},
		Ignore:     []string{"node_modules", "__tests__", "__mocks__"},
	}
}

// FileResult is the outcome of parsing one file.
type FileResult struct {
	Path   string
	Docs   []*record.Documentation
	Err    error
	Digest uint64
}

// Stats summarizes a batch run.
type Stats struct {
	FilesDiscovered int
	FilesParsed     int
	FilesFailed     int
	Components      int
	WorkerCount     int
	Duration        time.Duration
}

// Report holds every file's result, keyed by path.
type Report struct {
	Files map[string]*FileResult
	Stats Stats
}

// Paths returns the result paths in sorted order.
func (r *Report) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for p := range r.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Errors returns the failed results in path order.
func (r *Report) Errors() []*FileResult {
	var out []*FileResult
	for _, p := range r.Paths() {
		if res := r.Files[p]; res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// MarshalJSON encodes successful results as an object mapping each path to
// its documentation list. Failed files are left out.
func (r *Report) MarshalJSON() ([]byte, error) {
	out := make(map[string][]*record.Documentation, len(r.Files))
	for p, res := range r.Files {
		if res.Err == nil {
			out[p] = res.Docs
		}
	}
	return json.Marshal(out)
}

// ProgressCallback is called after each file is parsed.
//
// Parameters:
//   - done: Number of files finished so far (parsed or failed)
//   - total: Total number of files in the run
//   - currentFile: Path of the file that just finished
type ProgressCallback func(done, total int, currentFile string)
