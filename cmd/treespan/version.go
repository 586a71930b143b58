package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"treespan/internal/treecache"
	"treespan/internal/version"
)

// buildField - одна строка отчёта `treespan version`.
type buildField struct {
	key   string // ключ в JSON
	label string // подпись в pretty-выводе
	value string
}

var (
	versionFormat string
	versionExtras []string
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolFunc("hash", "include git commit hash", wantExtras("commit"))
	versionCmd.Flags().BoolFunc("date", "include build timestamp", wantExtras("built"))
	versionCmd.Flags().BoolFunc("full", "include commit, build date, cache schema and Go runtime", wantExtras("commit", "built", "cache_schema", "go"))
}

// wantExtras копит запрошенные поля; --hash=false ничего не добавляет.
func wantExtras(keys ...string) func(string) error {
	return func(v string) error {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		if on {
			versionExtras = append(versionExtras, keys...)
		}
		return nil
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show treespan build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() { versionExtras = nil }()
		fields := buildFields(versionExtras)
		switch strings.ToLower(versionFormat) {
		case "json":
			return writeVersionJSON(cmd.OutOrStdout(), fields)
		case "pretty":
			writeVersionPretty(cmd.OutOrStdout(), fields)
			return nil
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
	},
}

// buildFields собирает tool/version и запрошенные extras в стабильном порядке.
func buildFields(extras []string) []buildField {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	fields := []buildField{{key: "tool", value: "treespan"}, {key: "version", value: v}}

	known := []buildField{
		{key: "commit", label: "commit", value: strings.TrimSpace(version.GitCommit)},
		{key: "built", label: "built", value: strings.TrimSpace(version.BuildDate)},
		{key: "cache_schema", label: "cache schema", value: strconv.Itoa(int(treecache.SchemaVersion()))},
		{key: "go", label: "go", value: runtime.Version()},
	}
	for _, f := range known {
		for _, want := range extras {
			if want == f.key {
				if f.value == "" {
					f.value = "unknown"
				}
				fields = append(fields, f)
				break
			}
		}
	}
	return fields
}

func writeVersionPretty(out io.Writer, fields []buildField) {
	v := fields[1].value
	if v == version.Version {
		v = version.Colored()
	}
	fmt.Fprintf(out, "treespan %s\n", v)
	for _, f := range fields[2:] {
		fmt.Fprintf(out, "%-13s %s\n", f.label+":", f.value)
	}
}

func writeVersionJSON(out io.Writer, fields []buildField) error {
	// ручная сборка объекта сохраняет порядок ключей
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range fields {
		key, _ := json.Marshal(f.key)
		val, _ := json.Marshal(f.value)
		fmt.Fprintf(&b, "  %s: %s", key, val)
		if i < len(fields)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	_, err := io.WriteString(out, b.String())
	return err
}
