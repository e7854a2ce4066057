package member

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/stack"
)

type returning struct {
	op   bytecode.Opcode
	size stack.ValueSize
}

func (r returning) IsValid() bool { return true }

func (r returning) Apply(sink bytecode.Sink) stack.Size {
	sink.Insn(r.op)
	return r.size.ToDecreasingSize()
}

// Return returns a value of type t from the method, or nothing for void.
func Return(t *descriptor.TypeDescription) stack.Manipulation {
	switch t.Kind() {
	case descriptor.KindVoid:
		return returning{bytecode.RETURN, stack.Zero}
	case descriptor.KindLong:
		return returning{bytecode.LRETURN, stack.Double}
	case descriptor.KindFloat:
		return returning{bytecode.FRETURN, stack.Single}
	case descriptor.KindDouble:
		return returning{bytecode.DRETURN, stack.Double}
	case descriptor.KindReference:
		return returning{bytecode.ARETURN, stack.Single}
	default:
		return returning{bytecode.IRETURN, stack.Single}
	}
}

type creation struct {
	t *descriptor.TypeDescription
}

func (c creation) IsValid() bool { return true }

func (c creation) Apply(sink bytecode.Sink) stack.Size {
	sink.TypeInsn(bytecode.NEW, c.t.InternalName())
	return stack.Single.ToIncreasingSize()
}

// New pushes an uninitialized instance of t. Primitive, array, abstract and
// interface types cannot be instantiated this way.
func New(t *descriptor.TypeDescription) stack.Manipulation {
	if t.Kind() != descriptor.KindReference || t.IsArray() || t.IsAbstract() {
		return stack.Illegal
	}
	return creation{t}
}
