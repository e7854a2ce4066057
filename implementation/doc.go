// Package implementation provides common method bodies.
//
// Each Implementation checks the method it is applied to and returns a
// valid body or an *errors.Error describing why the body cannot be built.
package implementation
