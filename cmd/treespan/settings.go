package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"treespan/internal/config"
	"treespan/internal/treebank"
	"treespan/internal/treecache"
)

// settings are the effective options of one run: treespan.toml values
// overridden by explicitly set flags.
type settings struct {
	cfg        config.Config
	quiet      bool
	timings    bool
	diagFormat string
	colorErr   bool // цвет для stderr
}

type settingsKey struct{}

func withSettings(ctx context.Context, s *settings) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(cmd *cobra.Command) *settings {
	if s, ok := cmd.Context().Value(settingsKey{}).(*settings); ok {
		return s
	}
	return &settings{cfg: config.Default(), diagFormat: "pretty"}
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	pf := cmd.Root().PersistentFlags()

	cfgPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	if pf.Changed("color") {
		if cfg.Output.Color, err = pf.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if pf.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if pf.Changed("jobs") {
		if cfg.Load.Jobs, err = pf.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if pf.Changed("cache") {
		if cfg.Load.Cache, err = pf.GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if pf.Changed("nfc") {
		if cfg.Parse.NormalizeNFC, err = pf.GetBool("nfc"); err != nil {
			return nil, fmt.Errorf("failed to get nfc flag: %w", err)
		}
	}
	if pf.Changed("max-word-len") {
		if cfg.Parse.MaxWordLen, err = pf.GetInt("max-word-len"); err != nil {
			return nil, fmt.Errorf("failed to get max-word-len flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.diagFormat, err = pf.GetString("diag-format"); err != nil {
		return nil, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	switch s.diagFormat {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", s.diagFormat)
	}

	colorMode, err := parseAutoSwitch("color", cfg.Output.Color)
	if err != nil {
		return nil, err
	}
	// в режиме auto fatih/color сам смотрит на stdout
	switch colorMode {
	case switchOn:
		color.NoColor = false
	case switchOff:
		color.NoColor = true
	}
	s.colorErr = colorMode.resolve(os.Stderr)
	return s, nil
}

// treebankOptions builds loader options; the cache is opened lazily and a
// failure to open it only disables caching.
func (s *settings) treebankOptions(cmd *cobra.Command) treebank.Options {
	opts := s.cfg.TreebankOptions()
	if s.cfg.Load.Cache {
		c, err := treecache.Open("treespan")
		if err != nil {
			if !s.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = c
		}
	}
	return opts
}
