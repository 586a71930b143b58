package parser

import (
	"errors"
	"fmt"

	"treespan/internal/diag"
	"treespan/internal/source"
)

// ErrMalformedBracketing is wrapped by every parse error.
var ErrMalformedBracketing = errors.New("malformed bracketing")

// Error is a fatal parse error of one tree.
type Error struct {
	Diag diag.Diagnostic
	Path string
	Pos  source.LineCol
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Path, e.Pos.Line, e.Pos.Col, e.Diag.Code.ID(), e.Diag.Message)
}

func (e *Error) Unwrap() error { return ErrMalformedBracketing }

// Code returns the diagnostic code of the error.
func (e *Error) Code() diag.Code { return e.Diag.Code }
