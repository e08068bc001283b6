package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/gnana997/docgen/pkg/batch"
	"github.com/gnana997/docgen/pkg/docgen"
	"github.com/gnana997/docgen/pkg/importer"
	"github.com/gnana997/docgen/pkg/parser"
	"github.com/gnana997/docgen/pkg/watch"
)

// errAllFailed makes the command exit non-zero when no file was documented.
var errAllFailed = errors.New("no component documentation could be extracted")

func runDocument(cmd *cobra.Command, opts *rootOptions, args []string) error {
	logger, err := opts.logger(cmd)
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	pm := parser.NewParserManager(logger)
	defer pm.Close()
	imp, err := opts.newImporter(cwd, pm, logger)
	if err != nil {
		return err
	}
	parseOpts, err := opts.parseOptions(pm, imp, logger)
	if err != nil {
		return err
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		if opts.watch {
			return errors.New("--watch needs at least one path")
		}
		return documentStdin(cmd, opts, parseOpts)
	}

	options, err := opts.batchOptions(parseOpts, logger)
	if err != nil {
		return err
	}
	var progress batch.ProgressCallback
	if opts.progress {
		progress = newProgress(cmd.ErrOrStderr())
	}

	ctx := cmd.Context()
	report, err := batch.Run(ctx, args, options, progress)
	if err != nil {
		return err
	}

	out := &output{cmd: cmd, opts: opts, single: singleFile(args)}
	if err := out.write(report); err != nil {
		return err
	}
	if opts.watch {
		return watchFiles(ctx, args, options, imp, report, out, logger)
	}
	if report.Stats.FilesFailed > 0 && report.Stats.FilesParsed == 0 {
		return errAllFailed
	}
	return nil
}

func documentStdin(cmd *cobra.Command, opts *rootOptions, parseOpts []docgen.Option) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	docs, err := docgen.Parse(cmd.Context(), src, parseOpts...)
	if err != nil {
		return err
	}
	out := &output{cmd: cmd, opts: opts}
	return out.emit(docs)
}

// singleFile returns the cleaned path when args names exactly one regular
// file, in which case output is that file's documentation array.
func singleFile(args []string) string {
	if len(args) != 1 {
		return ""
	}
	info, err := os.Stat(args[0])
	if err != nil || info.IsDir() {
		return ""
	}
	return filepath.Clean(args[0])
}

// output renders reports to stdout or the --out file.
type output struct {
	cmd    *cobra.Command
	opts   *rootOptions
	single string
	mu     sync.Mutex
}

func (o *output) write(report *batch.Report) error {
	if o.single == "" {
		return o.emit(report)
	}
	res, ok := report.Files[o.single]
	if !ok {
		return fmt.Errorf("%s: not documented", o.single)
	}
	if res.Err != nil {
		return fmt.Errorf("%s: %w", o.single, res.Err)
	}
	return o.emit(res.Docs)
}

func (o *output) emit(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if o.opts.pretty {
		data = pretty.Pretty(data)
	} else {
		data = append(data, '\n')
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.opts.out == "" {
		_, err = o.cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(o.opts.out, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// newProgress returns a batch progress callback drawing a bar on w. The bar
// is created on the first call, once the file count is known.
func newProgress(w io.Writer) batch.ProgressCallback {
	var bar *progressbar.ProgressBar
	return func(done, total int, currentFile string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Documenting"),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(w)
				}),
			)
		}
		_ = bar.Set(done)
	}
}

// watchFiles keeps report current as files change and rewrites the output
// after every change, until ctx is cancelled.
func watchFiles(ctx context.Context, roots []string, options batch.Options, imp *importer.Importer,
	report *batch.Report, out *output, logger *slog.Logger) error {
	var mu sync.Mutex
	w, err := watch.New(watch.Options{Files: options, Invalidate: imp.Invalidate}, func(ev watch.Event) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Removed {
			delete(report.Files, ev.Path)
		} else {
			report.Files[ev.Path] = ev.Result
		}
		if err := out.write(report); err != nil {
			logger.Error("Failed to write output", "file", ev.Path, "error", err)
		}
	})
	if err != nil {
		return err
	}
	w.Seed(report)
	if err := w.Start(roots...); err != nil {
		return err
	}
	defer w.Stop()

	logger.Info("Watching for changes", "paths", roots)
	<-ctx.Done()
	return nil
}
