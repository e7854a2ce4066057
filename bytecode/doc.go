// Package bytecode defines the instruction-level contract between stack
// manipulations and the class writer.
//
// # Sink
//
// Stack manipulations emit logical instructions into a Sink. A Sink accepts
// opcode-only instructions, instructions with an immediate operand, local
// variable access, type references, member references and pool literals.
//
// # Recorder
//
// Recorder is a Sink that keeps the instruction stream in memory:
//
//	rec := bytecode.NewRecorder()
//	size := manipulation.Apply(rec)
//	fmt.Print(rec.String())
//
// Pool literals are collected in first-use order and deduplicated by value.
//
// # Encoding
//
// Encode lowers recorded instructions into a code array. Member and type
// references are registered in a Pool; local slots above 255 use the wide
// prefix and literals past index 255 use ldc_w.
//
//	pool := bytecode.NewPool()
//	code, err := bytecode.Encode(rec.Instructions(), pool)
package bytecode
