// Package config loads treespan.toml, the per-project defaults for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"treespan/internal/format"
	"treespan/internal/parser"
	"treespan/internal/treebank"
)

// FileName is the name searched for by Find.
const FileName = "treespan.toml"

type Config struct {
	// Path is the file the config was read from; empty for defaults.
	Path   string       `toml:"-"`
	Parse  ParseConfig  `toml:"parse"`
	Load   LoadConfig   `toml:"load"`
	Output OutputConfig `toml:"output"`
}

type ParseConfig struct {
	NormalizeNFC bool `toml:"normalize_nfc"`
	MaxWordLen   int  `toml:"max_word_len"`
}

type LoadConfig struct {
	Jobs       int      `toml:"jobs"`
	SkipBlank  bool     `toml:"skip_blank"`
	Extensions []string `toml:"extensions"`
	Cache      bool     `toml:"cache"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Load: LoadConfig{SkipBlank: true},
		Output: OutputConfig{
			Format:         "bracket",
			Color:          "auto",
			MaxDiagnostics: 100,
		},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest treespan.toml above startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Parse.MaxWordLen < 0 {
		return fmt.Errorf("[parse].max_word_len must be >= 0, got %d", c.Parse.MaxWordLen)
	}
	if c.Load.Jobs < 0 {
		return fmt.Errorf("[load].jobs must be >= 0, got %d", c.Load.Jobs)
	}
	for _, ext := range c.Load.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[load].extensions: %q must start with '.'", ext)
		}
	}
	if _, err := format.ParseStyle(c.Output.Format); err != nil {
		return fmt.Errorf("[output].format: %w", err)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto|on|off, got %q", c.Output.Color)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0, got %d", c.Output.MaxDiagnostics)
	}
	return nil
}

// ParseOptions returns parser options without a reporter.
func (c Config) ParseOptions() parser.Options {
	return parser.Options{
		NormalizeNFC: c.Parse.NormalizeNFC,
		MaxWordLen:   c.Parse.MaxWordLen,
	}
}

// TreebankOptions returns loader options; cache, file set and progress are
// left for the caller.
func (c Config) TreebankOptions() treebank.Options {
	opts := treebank.DefaultOptions()
	opts.Parse = c.ParseOptions()
	opts.Jobs = c.Load.Jobs
	opts.SkipBlank = c.Load.SkipBlank
	if len(c.Load.Extensions) > 0 {
		opts.Extensions = c.Load.Extensions
	}
	return opts
}
