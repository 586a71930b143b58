package format

import (
	"fmt"
	"strings"
)

// Style selects a tree rendering.
type Style uint8

const (
	StyleBracket Style = iota
	StylePretty
	StyleJSON
	StyleYAML
	StyleTokens
)

var styleNames = [...]string{
	StyleBracket: "bracket",
	StylePretty:  "pretty",
	StyleJSON:    "json",
	StyleYAML:    "yaml",
	StyleTokens:  "tokens",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", s)
}

// ParseStyle maps a style name to a Style.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if strings.EqualFold(name, n) {
			return Style(i), nil //nolint:gosec // i < len(styleNames)
		}
	}
	return 0, fmt.Errorf("unknown output format %q (want bracket|pretty|json|yaml|tokens)", name)
}

// Options controls the indented renderings.
type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}
