// Package token defines lexical token kinds for bracketed tree notation.
// Invariants:
//   - Token.Text is a copy of the source bytes under Span; it does not alias
//     File.Content.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace never appears in the token stream; it only separates tokens.
//   - A Word is any maximal run of bytes that are neither whitespace nor
//     parentheses. Whether it is a label or a leaf word is decided by the parser.
package token
