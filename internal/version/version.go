package version

import "github.com/fatih/color"

// Version information for the treespan CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders Version with colored major/minor/patch parts. Versions that
// are not in major.minor.patch form are returned unchanged.
func Colored() string {
	major, rest, ok := cut(Version)
	if !ok {
		return Version
	}
	minor, rest, ok := cut(rest)
	if !ok {
		return Version
	}
	patch, suffix := rest, ""
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			patch, suffix = rest[:i], rest[i:]
			break
		}
	}
	return versionMajorColor.Sprint(major) + "." +
		versionMinorColor.Sprint(minor) + "." +
		versionPatchColor.Sprint(patch) + suffix
}

func cut(s string) (head, tail string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s[:i], s[i+1:], i > 0
		}
	}
	return s, "", false
}
