package mcplog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []LogEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if scanner.Text() == "" {
			continue
		}
		var e LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e), "torn or invalid line %q", scanner.Text())
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestSanitizeParams(t *testing.T) {
	testCases := []struct {
		name  string
		input map[string]any
		want  map[string]any
	}{
		{
			name:  "nil map",
			input: nil,
			want:  map[string]any{},
		},
		{
			name:  "short values pass through",
			input: map[string]any{"resolver": "all", "pretty": true, "extra": nil},
			want:  map[string]any{"resolver": "all", "pretty": true, "extra": nil},
		},
		{
			name:  "source is replaced at any length",
			input: map[string]any{"source": "export default () => null;"},
			want:  map[string]any{"source_len": 26},
		},
		{
			name:  "long strings are replaced",
			input: map[string]any{"path": strings.Repeat("a", 65), "query": "0.props"},
			want:  map[string]any{"path_len": 65, "query": "0.props"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeParams(tc.input))
		})
	}
}

func TestResponseBytes(t *testing.T) {
	assert.Equal(t, 0, ResponseBytes(nil))

	result := mcp.NewToolResultText(`[{"displayName":"Button"}]`)
	assert.Greater(t, ResponseBytes(result), len(`[{"displayName":"Button"}]`))
}

func TestNewEntry(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	restore := Now
	Now = func() time.Time { return start.Add(42 * time.Millisecond) }
	t.Cleanup(func() { Now = restore })

	testCases := []struct {
		name       string
		tool       string
		args       map[string]any
		result     *mcp.CallToolResult
		err        error
		components int
		wantErr    string
	}{
		{
			name:       "doc array",
			tool:       "document_source",
			args:       map[string]any{"source": "x"},
			result:     mcp.NewToolResultText(`[{"displayName":"A"},{"displayName":"B"}]`),
			components: 2,
		},
		{
			name:       "report keyed by file",
			tool:       "document_directory",
			args:       map[string]any{"path": "src"},
			result:     mcp.NewToolResultText(`{"/src/A.jsx":[{}],"/src/B.jsx":[{},{}]}`),
			components: 3,
		},
		{
			name:   "queried result is not counted",
			tool:   "document_source",
			args:   map[string]any{"source": "x", "query": "#"},
			result: mcp.NewToolResultText(`2`),
		},
		{
			name:   "other tools are not counted",
			tool:   "list_handlers",
			result: mcp.NewToolResultText(`{"resolvers":["all","exported"]}`),
		},
		{
			name:    "tool error",
			tool:    "document_source",
			args:    map[string]any{"source": "x"},
			result:  mcp.NewToolResultError("no suitable component definition found"),
			wantErr: "no suitable component definition found",
		},
		{
			name:    "handler error",
			tool:    "document_file",
			args:    map[string]any{"path": "a.jsx"},
			err:     errors.New("marshal result: boom"),
			wantErr: "marshal result: boom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := NewEntry(tc.tool, tc.args, start, tc.result, tc.err)
			assert.Equal(t, "2026-01-02T03:04:05Z", entry.Ts)
			assert.Equal(t, tc.tool, entry.Tool)
			assert.Equal(t, SanitizeParams(tc.args), entry.Params)
			assert.Equal(t, int64(42), entry.DurationMs)
			assert.Equal(t, ResponseBytes(tc.result), entry.ResponseBytes)
			assert.Equal(t, tc.components, entry.Components)
			if tc.wantErr == "" {
				assert.False(t, entry.IsError)
				assert.Nil(t, entry.Error)
				return
			}
			assert.True(t, entry.IsError)
			require.NotNil(t, entry.Error)
			assert.Equal(t, tc.wantErr, *entry.Error)
		})
	}
}

func TestLoggerWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.jsonl")
	logger, err := NewLogger(path)
	require.NoError(t, err)

	msg := "boom"
	entries := []LogEntry{
		{Ts: "2026-01-02T03:04:05Z", Tool: "list_handlers", Params: map[string]any{}, DurationMs: 5, ResponseBytes: 100, TokensEst: 25},
		{Ts: "2026-01-02T03:04:06Z", Tool: "document_source", Params: map[string]any{"source_len": float64(1200)}, DurationMs: 42, ResponseBytes: 800, TokensEst: 200},
		{Ts: "2026-01-02T03:04:07Z", Tool: "document_file", Params: map[string]any{"path": "src/Button.jsx"}, IsError: true, Error: &msg},
	}
	for _, e := range entries {
		require.NoError(t, logger.Write(e))
	}
	require.NoError(t, logger.Close())

	assert.Equal(t, entries, readEntries(t, path))

	// Reopening appends.
	logger, err = NewLogger(path)
	require.NoError(t, err)
	require.NoError(t, logger.Write(LogEntry{Tool: "list_handlers"}))
	require.NoError(t, logger.Close())
	assert.Len(t, readEntries(t, path), len(entries)+1)
}

func TestLoggerConcurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concurrent.jsonl")
	logger, err := NewLogger(path)
	require.NoError(t, err)

	const goroutines = 50
	const writesEach = 10

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < writesEach; j++ {
				_ = logger.Write(LogEntry{Tool: "document_source", Params: map[string]any{"source_len": j}})
			}
		}()
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	assert.Len(t, readEntries(t, path), goroutines*writesEach)
}

func TestNewLogger(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deep", "mcp.jsonl")
		logger, err := NewLogger(path)
		require.NoError(t, err)
		defer logger.Close()

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("empty path disables logging", func(t *testing.T) {
		logger, err := NewLogger("")
		require.NoError(t, err)
		assert.Nil(t, logger)
	})
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	require.NoError(t, logger.Write(LogEntry{Tool: "document_source", IsError: true}))
	require.NoError(t, logger.Close(), "Close on a writer that is not a Closer")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, `"is_error":true`)
	assert.Contains(t, line, `"error":null`)
}
