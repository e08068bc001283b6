// Package mcplog records MCP tool calls as JSON lines.
package mcplog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"
)

// LogEntry is one line of the tool-call log. Components counts the
// documented components of a successful, unqueried document_* call.
type LogEntry struct {
	Ts            string         `json:"ts"`
	Tool          string         `json:"tool"`
	Params        map[string]any `json:"params"`
	DurationMs    int64          `json:"duration_ms"`
	ResponseBytes int            `json:"response_bytes"`
	TokensEst     int            `json:"tokens_est"`
	Components    int            `json:"components"`
	IsError       bool           `json:"is_error"`
	Error         *string        `json:"error"`
}

// NewEntry describes a finished tool call that started at start. Error
// holds the transport error, or the message of a tool-level error result.
func NewEntry(tool string, args map[string]any, start time.Time, result *mcp.CallToolResult, err error) LogEntry {
	rb := ResponseBytes(result)
	entry := LogEntry{
		Ts:            start.UTC().Format(time.RFC3339),
		Tool:          tool,
		Params:        SanitizeParams(args),
		DurationMs:    Now().Sub(start).Milliseconds(),
		ResponseBytes: rb,
		TokensEst:     rb / 4,
	}
	switch {
	case err != nil:
		msg := err.Error()
		entry.IsError = true
		entry.Error = &msg
	case result != nil && result.IsError:
		entry.IsError = true
		if msg := resultText(result); msg != "" {
			entry.Error = &msg
		}
	case strings.HasPrefix(tool, "document_") && args["query"] == nil:
		entry.Components = countComponents(resultText(result))
	}
	return entry
}

func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// countComponents counts the docs in a doc array, or in the doc arrays of
// a report keyed by file.
func countComponents(text string) int {
	res := gjson.Parse(text)
	if res.IsArray() {
		return len(res.Array())
	}
	n := 0
	if res.IsObject() {
		res.ForEach(func(_, v gjson.Result) bool {
			if v.IsArray() {
				n += len(v.Array())
			}
			return true
		})
	}
	return n
}

// Logger appends entries to a writer. It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
}

// New returns a Logger writing to w. Close closes w if it is an io.Closer.
func New(w io.Writer) *Logger {
	return &Logger{w: w, enc: json.NewEncoder(w)}
}

// NewLogger opens (or creates) the file at path for appending, creating
// parent directories as needed. An empty path returns nil, nil; callers
// treat a nil Logger as disabled.
func NewLogger(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("mcplog: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("mcplog: open log file: %w", err)
	}
	return New(f), nil
}

// Write appends a single entry.
func (l *Logger) Write(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(entry)
}

// Close closes the underlying writer.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// payloadKeys are never logged verbatim, whatever their length.
var payloadKeys = map[string]bool{"source": true}

// SanitizeParams returns a copy of args safe for logging. Module sources
// and strings longer than 64 bytes are replaced with a "{key}_len" entry.
func SanitizeParams(args map[string]any) map[string]any {
	const shortStringMax = 64
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok && (payloadKeys[k] || len(s) > shortStringMax) {
			out[k+"_len"] = len(s)
		} else {
			out[k] = v
		}
	}
	return out
}

// ResponseBytes returns the serialized length of a result's content, or 0
// for a nil result.
func ResponseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}

// Now is a replaceable clock for testing.
var Now = func() time.Time { return time.Now() }
