// Package driver wires the lexer, parser and treebank loader into the
// operations exposed by the CLI.
//
// Назначение: собрать FileSet, Bag и опции, запустить нужную стадию и вернуть
// результат вместе с диагностиками и таймингами.
// Не делает: вывод на терминал и разбор флагов.
package driver
