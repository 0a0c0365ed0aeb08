package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	debug   bool
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// cliFlags holds all parsed command-line flags plus the input path.
type cliFlags struct {
	common   commonFlags
	input    string
	out      string
	pdf      string
	style    string
	watch    bool
	interval time.Duration
	debounce time.Duration
	autosave string
	page     pageFlags
	version  bool
}

// parseFlags parses command-line arguments. The returned FlagSet exposes
// Changed so the config overlay can tell explicit flags from defaults.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("markpad", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.common.config, "config", "c", "", "YAML config file")
	fs.BoolVarP(&f.common.quiet, "quiet", "q", false, "suppress progress output")
	fs.BoolVarP(&f.common.verbose, "verbose", "v", false, "verbose progress output")
	fs.BoolVar(&f.common.debug, "debug", false, "record render-cycle diagnostics to stderr")

	fs.StringVarP(&f.out, "out", "o", "", "write preview HTML to this path (default stdout)")
	fs.StringVar(&f.pdf, "pdf", "", "also export a PDF to this path")
	fs.StringVar(&f.style, "style", "", "preview stylesheet (CSS file path or raw CSS)")
	fs.BoolVarP(&f.watch, "watch", "w", false, "re-render whenever the input file changes")
	fs.DurationVar(&f.interval, "interval", 200*time.Millisecond, "watch poll interval")
	fs.DurationVar(&f.debounce, "debounce", 300*time.Millisecond, "render quiet period in watch mode")
	fs.StringVar(&f.autosave, "autosave", "", "maintain a draft copy at this path on every change")

	fs.StringVar(&f.page.size, "page-size", "letter", "PDF page size: letter, a4, legal")
	fs.StringVar(&f.page.orientation, "orientation", "portrait", "PDF orientation: portrait, landscape")
	fs.Float64Var(&f.page.margin, "margin", 0.5, "PDF margin in inches (0.25 to 3)")

	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadFlags, err)
	}

	if rest := fs.Args(); len(rest) > 0 {
		f.input = rest[0]
		if len(rest) > 1 {
			return nil, nil, fmt.Errorf("%w: unexpected arguments after %q", ErrBadFlags, f.input)
		}
	}

	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrBadFlags)
	}
	if f.debounce < 0 {
		return nil, nil, fmt.Errorf("%w: --debounce must not be negative", ErrBadFlags)
	}
	if f.interval <= 0 {
		return nil, nil, fmt.Errorf("%w: --interval must be positive", ErrBadFlags)
	}

	return f, fs, nil
}
