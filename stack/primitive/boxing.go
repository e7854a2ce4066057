package primitive

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/stack"
)

// boxing calls the wrapper's static valueOf factory.
type boxing struct {
	kind descriptor.Kind
}

func (b boxing) IsValid() bool { return true }

func (b boxing) Apply(sink bytecode.Sink) stack.Size {
	wrapper := descriptor.Wrapper(b.kind)
	sink.MethodInsn(bytecode.INVOKESTATIC, wrapper.InternalName(), "valueOf",
		"("+string(b.kind.Descriptor())+")"+wrapper.Descriptor(), false)
	return b.kind.StackSize().ToDecreasingSize().Aggregate(stack.Single.ToIncreasingSize())
}

// unboxing calls the wrapper's <kind>Value accessor.
type unboxing struct {
	kind descriptor.Kind
}

func (u unboxing) IsValid() bool { return true }

func (u unboxing) Apply(sink bytecode.Sink) stack.Size {
	wrapper := descriptor.Wrapper(u.kind)
	sink.MethodInsn(bytecode.INVOKEVIRTUAL, wrapper.InternalName(), u.kind.String()+"Value",
		"()"+string(u.kind.Descriptor()), false)
	return stack.Single.ToDecreasingSize().Aggregate(u.kind.StackSize().ToIncreasingSize())
}

// Box converts a primitive value on top of the stack into its wrapper
// instance. Non-primitive kinds are illegal.
func Box(k descriptor.Kind) stack.Manipulation {
	if !k.IsPrimitive() {
		return stack.Illegal
	}
	return boxing{k}
}

// Unbox converts a wrapper instance on top of the stack into its primitive
// value. The reference must already be of the wrapper type.
func Unbox(k descriptor.Kind) stack.Manipulation {
	if !k.IsPrimitive() {
		return stack.Illegal
	}
	return unboxing{k}
}
