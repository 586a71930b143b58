// Package treebank loads files that hold one bracketed tree per line.
//
// Lines are parsed concurrently but results keep file order. Loading is
// fail-fast: the failing line with the lowest number aborts the file, and the
// same line is reported no matter how the work was scheduled.
package treebank
