// Package descriptor provides read-only descriptions of types, fields and
// methods consumed by the stack manipulation factories.
//
// Descriptions are never mutated after construction. The assembler reads
// their declaring type, modifiers and parameter/return types; it does not
// build or change them.
//
//	pool := descriptor.NewTypePool()
//	calc := descriptor.NewClass("com/example/Calc", descriptor.AccPublic, descriptor.Object)
//	pool.Define(calc)
//	sum := descriptor.NewMethod(calc, "sum", descriptor.AccPublic|descriptor.AccStatic,
//		descriptor.Long, descriptor.Int, descriptor.Long)
//	sum.Descriptor() // "(IJ)J"
//
// Assignability only consults the locally described super class and
// interface links.
package descriptor
