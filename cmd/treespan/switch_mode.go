package main

import (
	"fmt"
	"os"
	"strings"
)

// autoSwitch is a flag value of the form auto|on|off, used by --ui and
// --color. auto follows the terminals the output goes to.
type autoSwitch string

const (
	switchAuto autoSwitch = "auto"
	switchOn   autoSwitch = "on"
	switchOff  autoSwitch = "off"
)

func parseAutoSwitch(flag, value string) (autoSwitch, error) {
	switch v := autoSwitch(strings.ToLower(strings.TrimSpace(value))); v {
	case "":
		return switchAuto, nil
	case switchAuto, switchOn, switchOff:
		return v, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve returns the effective state; auto is on only when every file is a
// terminal.
func (m autoSwitch) resolve(files ...*os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	for _, f := range files {
		if !isTerminal(f) {
			return false
		}
	}
	return true
}
