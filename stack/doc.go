// Package stack provides the stack manipulation abstraction of the assembler.
//
// A Manipulation emits instructions into a bytecode.Sink and returns the
// Size of its operand stack effect: the net change of the depth and the
// largest transient increase. Manipulations compose into a Compound whose
// Size is the in-order fold of its members:
//
//	running := Size{}
//	for each member m:
//	    s := m.Apply(sink)
//	    running.Max = max(running.Max, running.Net+s.Max)
//	    running.Net += s.Net
//
// Member maxima are relative to the depth at which the member starts, so the
// fold cannot be reordered.
//
// # Validity
//
// IsValid gates emission. An invalid member makes the whole compound invalid
// without raising an error, so callers can compose tentatively and check once
// before applying. Applying an invalid manipulation is a programming error.
//
// # Subpackages
//
//	stack/primitive   primitive widening, boxing and unboxing
//	stack/assign      assignment between types (widening, boxing, casts)
//	stack/member      field access, method invocation, locals, returns
//	stack/collection  array creation and element access
//	stack/constant    constant loading and default values
package stack
