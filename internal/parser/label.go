package parser

import "strings"

// stripLabel drops function tags and co-indexes: "NP-SBJ-1" → "NP",
// "NP=2" → "NP". A leading dash empties the label: "-NONE-" → "".
func stripLabel(raw string) string {
	if i := strings.IndexAny(raw, "-="); i >= 0 {
		return raw[:i]
	}
	return raw
}
