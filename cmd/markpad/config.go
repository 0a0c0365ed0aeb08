package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/quessia/markpad/internal/yamlutil"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("config file invalid")
)

// fileConfig is the YAML config file shape. Every field has a matching
// flag; explicit flags win over config values.
type fileConfig struct {
	Style    string         `yaml:"style"`
	Out      string         `yaml:"out"`
	PDF      string         `yaml:"pdf"`
	Autosave string         `yaml:"autosave"`
	Debounce time.Duration  `yaml:"debounce"`
	Page     pageFileConfig `yaml:"page"`
}

type pageFileConfig struct {
	Size        string  `yaml:"size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"`
}

// loadConfig reads and strictly decodes a YAML config file. Unknown keys
// are rejected so typos surface instead of silently doing nothing.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	var cfg fileConfig
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &cfg, nil
}

// applyConfig overlays config file values onto flags that were not set
// explicitly on the command line.
func applyConfig(f *cliFlags, fs *flag.FlagSet, cfg *fileConfig) {
	if cfg == nil {
		return
	}
	if !fs.Changed("style") && cfg.Style != "" {
		f.style = cfg.Style
	}
	if !fs.Changed("out") && cfg.Out != "" {
		f.out = cfg.Out
	}
	if !fs.Changed("pdf") && cfg.PDF != "" {
		f.pdf = cfg.PDF
	}
	if !fs.Changed("autosave") && cfg.Autosave != "" {
		f.autosave = cfg.Autosave
	}
	if !fs.Changed("debounce") && cfg.Debounce > 0 {
		f.debounce = cfg.Debounce
	}
	if !fs.Changed("page-size") && cfg.Page.Size != "" {
		f.page.size = cfg.Page.Size
	}
	if !fs.Changed("orientation") && cfg.Page.Orientation != "" {
		f.page.orientation = cfg.Page.Orientation
	}
	if !fs.Changed("margin") && cfg.Page.Margin != 0 {
		f.page.margin = cfg.Page.Margin
	}
}
