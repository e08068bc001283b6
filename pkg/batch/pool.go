package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gnana997/docgen/pkg/docgen"
	"github.com/gnana997/docgen/pkg/util"
)

// FileJob is a file to be parsed by the worker pool.
type FileJob struct {
	FilePath string
	JobID    int
}

// WorkerPool parses files on a fixed set of goroutines.
//
// Usage:
//
//	pool := NewWorkerPool(ctx, numWorkers, reader, parseOpts, logger)
//	pool.Start()
//	defer pool.Stop()
//
//	go func() {
//	    for _, file := range files {
//	        pool.Submit(FileJob{FilePath: file})
//	    }
//	    pool.FinishSubmitting()
//	}()
//
//	for i := 0; i < len(files); i++ {
//	    result := <-pool.Results()
//	}
type WorkerPool struct {
	numWorkers int
	jobs       chan FileJob
	results    chan *FileResult
	wg         sync.WaitGroup
	reader     util.SourceReader
	parseOpts  []docgen.Option
	logger     *slog.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	started    atomic.Bool
	stopped    atomic.Bool
	jobsClosed atomic.Bool

	jobsSubmitted atomic.Int64
	jobsProcessed atomic.Int64
	jobsFailed    atomic.Int64
}

// NewWorkerPool creates a worker pool. numWorkers of 0 uses
// util.GetOptimalPoolSize(), which matches the parser pool size.
func NewWorkerPool(ctx context.Context, numWorkers int, reader util.SourceReader,
	parseOpts []docgen.Option, logger *slog.Logger) *WorkerPool {
	numWorkers = util.GetOptimalPoolSizeWithOverride(numWorkers)
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		numWorkers: numWorkers,
		jobs:       make(chan FileJob, numWorkers*2),
		results:    make(chan *FileResult, numWorkers),
		reader:     reader,
		parseOpts:  parseOpts,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start spawns the worker goroutines. Must be called before submitting jobs.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		wp.logger.Warn("WorkerPool already started")
		return
	}

	wp.logger.Debug("Starting worker pool", "workers", wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			result := wp.processJob(id, job)
			select {
			case wp.results <- result:
			case <-wp.ctx.Done():
				return
			}
		}
	}
}

func (wp *WorkerPool) processJob(workerID int, job FileJob) *FileResult {
	result := &FileResult{Path: job.FilePath}

	src, err := wp.reader.Read(job.FilePath)
	if err != nil {
		wp.jobsFailed.Add(1)
		result.Err = fmt.Errorf("failed to read file: %w", err)
		return result
	}
	result.Digest = src.Digest

	wp.logger.Debug("Parsing file", "worker_id", workerID, "file", job.FilePath, "size", len(src.Data))

	opts := append(append([]docgen.Option{}, wp.parseOpts...), docgen.WithFilename(job.FilePath))
	docs, err := docgen.Parse(wp.ctx, src.Data, opts...)
	if err != nil {
		wp.jobsFailed.Add(1)
		result.Err = err
		return result
	}

	wp.jobsProcessed.Add(1)
	result.Docs = docs
	return result
}

// Submit enqueues a job. It blocks while the jobs channel is full.
func (wp *WorkerPool) Submit(job FileJob) error {
	if wp.stopped.Load() {
		return fmt.Errorf("worker pool is stopped")
	}

	wp.jobsSubmitted.Add(1)

	select {
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool cancelled: %w", wp.ctx.Err())
	case wp.jobs <- job:
		return nil
	}
}

// Results returns the results channel.
func (wp *WorkerPool) Results() <-chan *FileResult {
	return wp.results
}

// FinishSubmitting closes the jobs channel so workers exit once it drains.
// Safe to call multiple times.
func (wp *WorkerPool) FinishSubmitting() {
	if wp.jobsClosed.CompareAndSwap(false, true) {
		close(wp.jobs)
	}
}

// Stop cancels outstanding work, waits for the workers and closes the
// results channel. Safe to call multiple times.
func (wp *WorkerPool) Stop() {
	if !wp.stopped.CompareAndSwap(false, true) {
		return
	}

	wp.FinishSubmitting()
	wp.cancel()
	wp.wg.Wait()
	close(wp.results)

	wp.logger.Debug("Worker pool stopped",
		"jobs_submitted", wp.jobsSubmitted.Load(),
		"jobs_processed", wp.jobsProcessed.Load(),
		"jobs_failed", wp.jobsFailed.Load())
}

// GetStats returns current worker pool statistics.
func (wp *WorkerPool) GetStats() WorkerPoolStats {
	return WorkerPoolStats{
		NumWorkers:    wp.numWorkers,
		JobsSubmitted: wp.jobsSubmitted.Load(),
		JobsProcessed: wp.jobsProcessed.Load(),
		JobsFailed:    wp.jobsFailed.Load(),
		QueueLength:   len(wp.jobs),
	}
}

// WorkerPoolStats contains statistics about the worker pool.
type WorkerPoolStats struct {
	NumWorkers    int
	JobsSubmitted int64
	JobsProcessed int64
	JobsFailed    int64
	QueueLength   int // Current jobs in queue
}
