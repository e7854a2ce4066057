// Package constant pushes literal values.
//
// Each factory picks the shortest instruction available for the value and
// falls back to a Pooled constant otherwise. The Size of every constant is
// the value size pushed.
package constant
