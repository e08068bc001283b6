// Package batch documents many files at once: it discovers source files
// under a set of paths and parses them on a worker pool.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnana997/docgen/pkg/util"
)

// Run discovers the files under paths and parses each one. Per-file errors
// are recorded in the report and logged; Run itself fails only when
// discovery fails or ctx is cancelled.
func Run(ctx context.Context, paths []string, options Options, progress ProgressCallback) (*Report, error) {
	start := time.Now()
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	files, err := Discover(paths, options)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	logger.Debug("File discovery complete", "files_found", len(files))

	report, err := Parse(ctx, files, options, progress)
	if err != nil {
		return nil, err
	}
	report.Stats.Duration = time.Since(start)

	logger.Info("Batch complete",
		"files_parsed", report.Stats.FilesParsed,
		"files_failed", report.Stats.FilesFailed,
		"components", report.Stats.Components,
		"duration_ms", report.Stats.Duration.Milliseconds())
	return report, nil
}

// Parse parses an explicit list of files on a worker pool.
func Parse(ctx context.Context, files []string, options Options, progress ProgressCallback) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reader := options.Reader
	if reader == nil {
		reader = util.NewSourceReader(&util.SourceReaderConfig{
			MaxFileBytes: util.DefaultSourceReaderConfig().MaxFileBytes,
			Logger:       logger,
		})
	}

	report := &Report{
		Files: make(map[string]*FileResult, len(files)),
		Stats: Stats{FilesDiscovered: len(files)},
	}
	if len(files) == 0 {
		return report, nil
	}

	pool := NewWorkerPool(ctx, options.Workers, reader, options.Parse, logger)
	report.Stats.WorkerCount = pool.numWorkers
	pool.Start()
	defer pool.Stop()

	// Submit from a separate goroutine so a full jobs channel never blocks
	// result collection.
	submitErr := make(chan error, 1)
	go func() {
		defer pool.FinishSubmitting()
		for i, file := range files {
			if err := pool.Submit(FileJob{FilePath: file, JobID: i}); err != nil {
				submitErr <- err
				return
			}
		}
	}()

	for done := 0; done < len(files); done++ {
		var result *FileResult
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-submitErr:
			return nil, fmt.Errorf("failed to submit job: %w", err)
		case result = <-pool.Results():
		}

		report.Files[result.Path] = result
		if result.Err != nil {
			report.Stats.FilesFailed++
			logger.Warn("File processing failed", "file", result.Path, "error", result.Err)
		} else {
			report.Stats.FilesParsed++
			report.Stats.Components += len(result.Docs)
		}
		if progress != nil {
			progress(done+1, len(files), result.Path)
		}
	}

	report.Stats.Duration = time.Since(start)
	return report, nil
}
