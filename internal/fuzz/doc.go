// Package fuzztests houses Go fuzz harnesses for the bracketed-tree pipeline
// (source -> lexer -> parser -> span queries). Its goal is to smoke test
// robustness and guard against panics on arbitrary inputs.
//
// Назначение: прогонять случайные байты через лексер и парсер, проверять
// идемпотентность печати и инварианты спанов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/tree, internal/testkit.

package fuzztests
