// Package errors provides structured error types for the classgen library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the member and type involved, a detail message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
//		Member("com/example/Foo.bar()V").
//		Type("com/example/Baz").
//		Detail("receiver is not a subtype of the declaring type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.IllegalArgument(errors.PhaseAssemble, "cannot load a void local")
//	err := errors.IllegalState(errors.PhaseAssemble, "static method has no receiver")
//
// Construction-time failures are reported through these errors. Compositions
// that are well-formed but cannot be emitted are reported through
// stack.Manipulation.IsValid instead.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
