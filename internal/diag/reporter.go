package diag

import "sync"

// Reporter: приёмник диагностик лексера, парсера и загрузчика.
// *Bag реализует его напрямую.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Emit передаёт d в r, если r задан, и возвращает d.
func Emit(r Reporter, d Diagnostic) Diagnostic {
	if r != nil {
		r.Report(d)
	}
	return d
}

// Report adds d to the bag; past the cap it is dropped.
func (b *Bag) Report(d Diagnostic) { b.Add(d) }

// Dedup wraps next so that a diagnostic with an already seen code, severity,
// primary span and message is dropped.
func Dedup(next Reporter) Reporter {
	type key struct {
		code    Code
		sev     Severity
		primary string
		msg     string
	}
	var mu sync.Mutex
	seen := make(map[key]struct{})
	return ReporterFunc(func(d Diagnostic) {
		k := key{d.Code, d.Severity, d.Primary.String(), d.Message}
		mu.Lock()
		_, dup := seen[k]
		seen[k] = struct{}{}
		mu.Unlock()
		if !dup {
			Emit(next, d)
		}
	})
}
