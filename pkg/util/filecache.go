// Source reading for the importer, batch and watch paths.
//
// Files are mapped read-only with mmap, copied out and unmapped right away:
// parsed files keep a reference to their source, so the bytes must outlive
// the mapping. Reads fall back to os.ReadFile when mmap fails.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/minio/highwayhash"
)

// digestKey is the fixed HighwayHash key used for content digests. Digests
// only need to be stable within one process.
var digestKey = []byte("docgen-source-digest-key-0123456")

// Digest returns the 64-bit HighwayHash of data.
func Digest(data []byte) uint64 {
	h, err := highwayhash.New64(digestKey)
	if err != nil {
		// Only returned for a key that is not 32 bytes long.
		panic(err)
	}
	_, _ = h.Write(data)
	return h.Sum64()
}

// Source is the content of one file on disk.
type Source struct {
	// Path is the path the file was read from.
	Path string

	// Data holds a private copy of the file content.
	Data []byte

	// Digest is the HighwayHash of Data.
	Digest uint64

	// Size and ModTime come from the stat taken when the file was read.
	Size    int64
	ModTime time.Time
}

// Unchanged reports whether info still describes the file s was read from.
func (s *Source) Unchanged(info os.FileInfo) bool {
	return info.Size() == s.Size && info.ModTime().Equal(s.ModTime)
}

// SourceReader reads files through mmap.
//
// Thread-safe: Multiple goroutines can call Read concurrently.
type SourceReader interface {
	// Read returns the content of filePath.
	//
	// Returns error if:
	//   - File not found or not a regular file
	//   - File is larger than MaxFileBytes
	//   - Both mmap and fallback fail
	Read(filePath string) (*Source, error)

	// Stats returns current reader metrics.
	Stats() SourceReaderStats
}

// SourceReaderConfig controls SourceReader behavior.
type SourceReaderConfig struct {
	// MaxFileBytes rejects files above this size. Bundled or generated
	// files can be tens of megabytes and are never component sources.
	//
	// Set to 0 for unlimited.
	MaxFileBytes int64

	// Logger for warnings. If nil, uses slog.Default().
	Logger *slog.Logger
}

// DefaultSourceReaderConfig returns a config that skips files above 4MB.
func DefaultSourceReaderConfig() *SourceReaderConfig {
	return &SourceReaderConfig{
		MaxFileBytes: 4 << 20,
	}
}

// SourceReaderStats tracks reader metrics.
type SourceReaderStats struct {
	// FilesRead is the number of successful reads (cumulative).
	FilesRead int64

	// BytesRead is the total size of successful reads (cumulative).
	BytesRead int64

	// MmapFailures is the number of reads that fell back to os.ReadFile.
	MmapFailures int64
}

// NewSourceReader creates a SourceReader. If config is nil, uses
// DefaultSourceReaderConfig().
func NewSourceReader(config *SourceReaderConfig) SourceReader {
	if config == nil {
		config = DefaultSourceReaderConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &sourceReader{config: config, logger: logger}
}

type sourceReader struct {
	config *SourceReaderConfig
	logger *slog.Logger

	stats   SourceReaderStats
	statsMu sync.Mutex
}

func (r *sourceReader) Read(filePath string) (*Source, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}
	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a regular file", filePath)
	}
	if r.config.MaxFileBytes > 0 && stat.Size() > r.config.MaxFileBytes {
		return nil, fmt.Errorf("file %q is %d bytes (limit: %d bytes)",
			filePath, stat.Size(), r.config.MaxFileBytes)
	}

	data, err := r.load(file, filePath, stat.Size())
	if err != nil {
		return nil, err
	}

	r.statsMu.Lock()
	r.stats.FilesRead++
	r.stats.BytesRead += int64(len(data))
	r.statsMu.Unlock()

	return &Source{
		Path:    filePath,
		Data:    data,
		Digest:  Digest(data),
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
	}, nil
}

// load copies the file content out of a private read-only mapping.
func (r *sourceReader) load(file *os.File, filePath string, size int64) ([]byte, error) {
	// Can't mmap zero bytes
	if size == 0 {
		return []byte{}, nil
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		r.logger.Warn("mmap failed, using fallback",
			"file", filePath,
			"size", size,
			"error", err)

		r.statsMu.Lock()
		r.stats.MmapFailures++
		r.statsMu.Unlock()

		data, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				filePath, err, readErr)
		}
		return data, nil
	}

	data := make([]byte, len(m))
	copy(data, m)
	if err := m.Unmap(); err != nil {
		r.logger.Warn("failed to unmap file", "path", filePath, "error", err)
	}
	return data, nil
}

func (r *sourceReader) Stats() SourceReaderStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}
