package bytecode

// Sink is the emission target of stack manipulations.
//
// A Sink receives logical instructions only; it never sees raw bytes. The
// methods mirror the operand shapes of the instruction set: opcode only,
// opcode with an immediate operand, local variable access, type reference,
// member reference and pool literal.
//
// Sinks are not safe for concurrent use. One assembly runs against one sink
// on one goroutine.
type Sink interface {
	// Insn emits an instruction without operands.
	Insn(op Opcode)

	// IntInsn emits BIPUSH, SIPUSH or NEWARRAY with its immediate operand.
	IntInsn(op Opcode, operand int32)

	// VarInsn emits a generic local variable load or store.
	VarInsn(op Opcode, slot int)

	// IincInsn emits a local variable increment.
	IincInsn(slot int, delta int32)

	// TypeInsn emits NEW, ANEWARRAY, CHECKCAST or INSTANCEOF.
	TypeInsn(op Opcode, internalName string)

	// FieldInsn emits a field access.
	FieldInsn(op Opcode, owner, name, descriptor string)

	// MethodInsn emits a method invocation. ownerIsInterface reports whether
	// owner is an interface type.
	MethodInsn(op Opcode, owner, name, descriptor string, ownerIsInterface bool)

	// LdcInsn loads a literal from the constant pool.
	LdcInsn(c Constant)
}
