package member

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/stack"
)

// FieldAccess reads or writes a described field.
//
// Legality of the access itself, such as writing a final field, is not
// checked.
type FieldAccess struct {
	field *descriptor.FieldDescription
}

// ForField returns the accessor of f.
func ForField(f *descriptor.FieldDescription) FieldAccess {
	return FieldAccess{field: f}
}

// receiver returns the slots consumed by the owning instance.
func (a FieldAccess) receiver() int {
	if a.field.IsStatic() {
		return 0
	}
	return 1
}

// Read pushes the field value, consuming the receiver of an instance field.
func (a FieldAccess) Read() stack.Manipulation {
	op := bytecode.GETFIELD
	if a.field.IsStatic() {
		op = bytecode.GETSTATIC
	}
	delta := a.field.Type().StackSize().Slots() - a.receiver()
	return fieldInsn{field: a.field, op: op, size: stack.Size{Net: delta, Max: delta}}
}

// Write stores the value on top of the stack, consuming the receiver of an
// instance field.
func (a FieldAccess) Write() stack.Manipulation {
	op := bytecode.PUTFIELD
	if a.field.IsStatic() {
		op = bytecode.PUTSTATIC
	}
	delta := a.field.Type().StackSize().Slots() + a.receiver()
	return fieldInsn{field: a.field, op: op, size: stack.Size{Net: -delta}}
}

type fieldInsn struct {
	field *descriptor.FieldDescription
	op    bytecode.Opcode
	size  stack.Size
}

func (f fieldInsn) IsValid() bool { return true }

func (f fieldInsn) Apply(sink bytecode.Sink) stack.Size {
	sink.FieldInsn(f.op, f.field.DeclaringType().InternalName(), f.field.Name(), f.field.Descriptor())
	return f.size
}
