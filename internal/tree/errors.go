package tree

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySpan      = errors.New("empty span")
	ErrSpanOutOfRange = errors.New("span out of range")
)

// SpanError describes a rejected span query.
type SpanError struct {
	Op    string
	Left  int
	Right int
	Len   int
	Err   error
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("tree: %s [%d,%d] over %d tokens: %v", e.Op, e.Left, e.Right, e.Len, e.Err)
}

func (e *SpanError) Unwrap() error { return e.Err }
