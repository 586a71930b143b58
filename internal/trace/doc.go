// Package trace follows a treespan run from the CLI command down to single
// treebank lines and span queries. Every span and heartbeat carries the file
// and line it belongs to, which is what you need to find a slow file or a
// pathological line.
//
//	treespan parse --trace=- --trace-level=detail corpus.mrg
//
// Storage modes:
//   - stream: each event is written at once (file or stderr)
//   - ring: the last events are kept in memory and written only when the
//     command fails
//   - both: stream, and the ring tail goes to stderr on failure
//
// Levels: phase traces commands and files, detail adds one span per parsed
// line, debug adds span queries.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "load", trace.Loc{File: path})
//	defer span.End("")
package trace
