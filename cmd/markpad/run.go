package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	markpad "github.com/quessia/markpad"
	"github.com/quessia/markpad/internal/fileutil"
)

var (
	ErrBadFlags  = errors.New("invalid flags")
	ErrNoInput   = errors.New("no input file")
	ErrReadInput = errors.New("failed to read input file")
	ErrReadCSS   = errors.New("failed to read CSS file")
	ErrWriteHTML = errors.New("failed to write HTML output")
)

// run executes one CLI invocation: parse flags, overlay config, render the
// input once (or watch it), and optionally export a PDF.
func run(args []string, stdout, stderr io.Writer) error {
	f, fs, err := parseFlags(args)
	if err != nil {
		return err
	}

	if f.version {
		fmt.Fprintf(stdout, "markpad %s\n", Version)
		return nil
	}

	if f.common.config != "" {
		cfg, err := loadConfig(f.common.config)
		if err != nil {
			return err
		}
		applyConfig(f, fs, cfg)
	}

	if f.input == "" {
		return fmt.Errorf("%w: usage: markpad [flags] <input.md>", ErrNoInput)
	}

	css, err := resolveStyle(f.style)
	if err != nil {
		return err
	}

	writeOut := func(html string) error {
		if f.out == "" {
			_, err := io.WriteString(stdout, html)
			return err
		}
		if err := fileutil.WriteFileAtomic(f.out, html); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteHTML, err)
		}
		return nil
	}

	coord := newSessionCoordinator(f, css, stderr, writeOut)
	defer coord.Close()

	content, err := readInput(f.input)
	if err != nil {
		return err
	}
	coord.ApplyEdit(content, len(content), len(content))
	coord.Flush()

	if res, ok := coord.LastResult(); ok && res.Failed {
		return fmt.Errorf("render failed: %s", res.Message)
	}

	if f.pdf != "" {
		if err := exportAndWait(coord, f, stderr); err != nil {
			return err
		}
	}

	if !f.watch {
		return nil
	}
	return watchInput(coord, f, stderr)
}

// newSessionCoordinator wires the editing core for one CLI session. The
// display callback publishes every render to the output sink; in watch
// mode a write failure is reported and watching continues.
func newSessionCoordinator(f *cliFlags, css string, stderr io.Writer, writeOut func(string) error) *markpad.Coordinator {
	var recorderOpts []markpad.RecorderOption
	if f.common.debug {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		recorderOpts = append(recorderOpts, markpad.WithLogger(logger))
	}

	var store markpad.Store
	if f.autosave != "" {
		var storeOpts []markpad.FileStoreOption
		if !f.common.quiet {
			storeOpts = append(storeOpts, markpad.WithStoreLogger(slog.New(slog.NewTextHandler(stderr, nil))))
		}
		store = markpad.NewFileStore(f.autosave, storeOpts...)
	} else {
		store = markpad.NewMemStore()
	}

	opts := []markpad.CoordinatorOption{
		markpad.WithStore(store),
		markpad.WithRenderer(markpad.NewRenderer(markpad.WithPreviewStyle(css))),
		markpad.WithRecorder(markpad.NewRecorder(f.common.debug, recorderOpts...)),
		markpad.WithDebounce(f.debounce),
		markpad.WithDisplay(func(res markpad.RenderResult) {
			if res.Failed {
				fmt.Fprintf(stderr, "render failed: %s\n", res.Message)
				return
			}
			if err := writeOut(res.HTML); err != nil {
				fmt.Fprintln(stderr, err)
			}
		}),
	}
	if f.pdf != "" {
		opts = append(opts,
			markpad.WithExporter(markpad.NewPDFExporter(markpad.WithPageSettings(&markpad.PageSettings{
				Size:        f.page.size,
				Orientation: f.page.orientation,
				Margin:      f.page.margin,
			}))),
			markpad.WithExportPath(f.pdf),
		)
	}
	return markpad.NewCoordinator(opts...)
}

// exportAndWait starts an asynchronous export and blocks until it finishes,
// since a CLI invocation has nothing else to do with the time.
func exportAndWait(coord *markpad.Coordinator, f *cliFlags, stderr io.Writer) error {
	done := make(chan error, 1)
	coord.Events().Subscribe(markpad.EventExportSucceeded, func(markpad.Event) {
		done <- nil
	})
	coord.Events().Subscribe(markpad.EventExportFailed, func(e markpad.Event) {
		done <- e.Data.(markpad.ExportFailedData).Err
	})

	if err := coord.StartExport(context.Background(), f.pdf); err != nil {
		return err
	}
	if err := <-done; err != nil {
		return err
	}
	if f.common.verbose {
		fmt.Fprintf(stderr, "exported %s\n", f.pdf)
	}
	return nil
}

// watchInput polls the input file and feeds changes through the
// coordinator, whose debounce coalesces save bursts into single renders.
// Returns when interrupted.
func watchInput(coord *markpad.Coordinator, f *cliFlags, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.common.verbose {
		fmt.Fprintf(stderr, "watching %s (poll %s, debounce %s)\n", f.input, f.interval, f.debounce)
	}

	var lastMod time.Time
	var lastSize int64
	if info, err := os.Stat(f.input); err == nil {
		lastMod, lastSize = info.ModTime(), info.Size()
	}

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			coord.Flush()
			return nil
		case <-ticker.C:
			info, err := os.Stat(f.input)
			if err != nil {
				// The file may be mid-rename during an editor save.
				continue
			}
			if info.ModTime().Equal(lastMod) && info.Size() == lastSize {
				continue
			}
			lastMod, lastSize = info.ModTime(), info.Size()

			content, err := readInput(f.input)
			if err != nil {
				fmt.Fprintln(stderr, err)
				continue
			}
			coord.ApplyEdit(content, len(content), len(content))
		}
	}
}

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

// resolveStyle accepts raw CSS or a stylesheet path. Raw CSS is anything
// that looks like a declaration block; a string with path separators, or
// a bare name that resolves to an existing file, is read from disk.
func resolveStyle(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if fileutil.IsCSS(s) {
		return s, nil
	}
	if fileutil.IsFilePath(s) || fileutil.FileExists(s) {
		data, err := os.ReadFile(s)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %q is neither a stylesheet path nor raw CSS", ErrReadCSS, s)
}
