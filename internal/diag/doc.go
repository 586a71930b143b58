// Package diag defines the diagnostic model shared by the lexer, the parser,
// the span queries and the treebank loader.
//
// A Diagnostic records one problem found while reading bracketed trees:
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable string ID (LEX/SYN/QRY/IO/OBS).
//   - Message – short, actionable text.
//   - Primary – the source.Span pointing at the issue.
//   - Notes – secondary spans, e.g. "bracket opened here".
//   - Fixes – optional text edits, e.g. inserting a missing ')'.
//
// Producers hand diagnostics to a Reporter via Emit. *Bag is the usual
// Reporter; Dedup and ReporterFunc wrap or replace it. Apart from FormatShort
// the package does no formatting and no IO; rendering lives in
// internal/diagfmt.
//
// Parsing of a tree line is fail-fast: the parser reports the first error and
// stops. The batch loader still collects the diagnostic of every failing line
// into one Bag.
package diag
