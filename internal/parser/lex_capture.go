package parser

import "treespan/internal/diag"

// lexCapture запоминает первую ошибку лексера и пробрасывает всё дальше.
type lexCapture struct {
	next diag.Reporter
	err  *diag.Diagnostic
}

func (c *lexCapture) Report(d diag.Diagnostic) {
	if d.Severity == diag.SevError && c.err == nil {
		c.err = &d
	}
	diag.Emit(c.next, d)
}

func (c *lexCapture) first() (diag.Diagnostic, bool) {
	if c.err == nil {
		return diag.Diagnostic{}, false
	}
	return *c.err, true
}
