package fuzztests

import (
	"errors"
	"testing"

	"treespan/internal/parser"
	"treespan/internal/testkit"
)

// FuzzParserRoundTrip checks that a successfully parsed tree prints to a
// string that parses back to the same string and satisfies span invariants.
func FuzzParserRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		line := string(clampInput(input))

		root, err := parser.ParseLine(line, parser.Options{})
		if err != nil {
			if !errors.Is(err, parser.ErrMalformedBracketing) {
				t.Fatalf("parse error does not wrap ErrMalformedBracketing: %v", err)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(root); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
		// TOP поверх TOP снимается только один раз за разбор
		if root.Label() == "TOP" {
			return
		}

		first := root.String()
		again, err := parser.ParseLine(first, parser.Options{})
		if err != nil {
			t.Fatalf("reparse of %q failed: %v", first, err)
		}
		if second := again.String(); second != first {
			t.Fatalf("round trip mismatch:\n first: %q\nsecond: %q", first, second)
		}
	})
}

// FuzzSpanQueries exercises the query contract on a fixed tree.
func FuzzSpanQueries(f *testing.F) {
	root, err := parser.ParseLine("(S (NP (DT the) (JJ big) (NN dog)) (VP (VBD saw) (NP (PRP it))) (. .))", parser.Options{})
	if err != nil {
		f.Fatal(err)
	}
	f.Add(0, 2)
	f.Add(1, 4)
	f.Add(3, 1)
	f.Add(-1, 9)
	f.Fuzz(func(t *testing.T, left, right int) {
		enc, err := root.Enclosing(left, right, true)
		if err != nil {
			if _, err2 := root.SpanLabels(left, right); err2 == nil {
				t.Fatalf("Enclosing failed (%v) but SpanLabels accepted [%d,%d]", err, left, right)
			}
			return
		}
		if l, r := enc.Span(); l > left || r < right {
			t.Fatalf("enclosing [%d,%d] does not contain [%d,%d]", l, r, left, right)
		}
		for _, c := range enc.Children() {
			if l, r := c.Span(); l <= left && right <= r {
				t.Fatalf("child [%d,%d] of enclosing node also contains [%d,%d]", l, r, left, right)
			}
		}
		splits, err := root.SpanSplits(left, right)
		if err != nil {
			t.Fatal(err)
		}
		for _, s := range splits {
			if s <= left || s > right {
				t.Fatalf("split %d outside (%d,%d]", s, left, right)
			}
		}
	})
}
