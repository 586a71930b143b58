package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"treespan/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "treespan",
	Short: "Bracketed constituency tree parser and span query tool",
	Long: `treespan parses Penn-Treebank style bracketed trees, one tree per line,
and answers span queries: enclosing constituents, labels of an exact span
and the split points of a span.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

// cleanups runs in main after Execute: cobra skips PersistentPostRun when
// RunE fails.
var cleanups []func(error)

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(spansCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	pf.String("config", "", "path to treespan.toml (default: search upward from the working directory)")

	// Разбор и загрузка
	pf.Int("jobs", 0, "max parallel line parsers per file (0=auto)")
	pf.Bool("cache", false, "reuse parsed trees from the on-disk cache")
	pf.Bool("nfc", false, "normalize leaf words to Unicode NFC")
	pf.Int("max-word-len", 0, "maximum word length in bytes (0=default)")

	// Трассировка и профилирование
	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for ring mode")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file")
	pf.String("runtime-trace", "", "write runtime execution trace to file")
}

// main executes the root command and exits with status 1 when it fails.
func main() {
	err := rootCmd.Execute()
	runCleanups(err)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func runCleanups(err error) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](err)
	}
	cleanups = nil
}

// setupRun loads settings and starts tracing and profiling for every command.
func setupRun(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cmd.SetContext(withSettings(cmd.Context(), s))

	cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanupTrace)

	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, func(error) { cleanupProf() })
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
