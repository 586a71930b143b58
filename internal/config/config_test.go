package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[parse]
normalize_nfc = true

[load]
jobs = 4
extensions = [".mrg"]

[output]
format = "yaml"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)
	require.True(t, cfg.Parse.NormalizeNFC)
	require.Equal(t, 4, cfg.Load.Jobs)
	require.True(t, cfg.Load.SkipBlank, "absent keys keep defaults")
	require.Equal(t, "yaml", cfg.Output.Format)
	require.Equal(t, "auto", cfg.Output.Color)
	require.Equal(t, 100, cfg.Output.MaxDiagnostics)

	opts := cfg.TreebankOptions()
	require.Equal(t, []string{".mrg"}, opts.Extensions)
	require.True(t, opts.Parse.NormalizeNFC)
	require.Equal(t, 4, opts.Jobs)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{"unknown key", "[load]\nthreads = 2\n", "unknown keys: load.threads"},
		{"bad format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"bad color", "[output]\ncolor = \"always\"\n", "[output].color"},
		{"negative jobs", "[load]\njobs = -1\n", "[load].jobs"},
		{"bad extension", "[load]\nextensions = [\"mrg\"]\n", "must start with '.'"},
		{"syntax", "[load\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.body)
			_, err := Load(path)
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tc.want), err.Error())
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[load]\nskip_blank = false\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	require.False(t, cfg.Load.SkipBlank)
	require.Equal(t, filepath.Join(root, FileName), cfg.Path)
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
	opts := Default().TreebankOptions()
	require.True(t, opts.SkipBlank)
	require.NotEmpty(t, opts.Extensions)
}
