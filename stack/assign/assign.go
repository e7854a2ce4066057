package assign

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/stack"
	"github.com/wippyai/classgen/stack/constant"
	"github.com/wippyai/classgen/stack/primitive"
)

type cast struct {
	t *descriptor.TypeDescription
}

func (c cast) IsValid() bool { return true }

func (c cast) Apply(sink bytecode.Sink) stack.Size {
	sink.TypeInsn(bytecode.CHECKCAST, c.t.InternalName())
	return stack.Size{}
}

func (c cast) String() string { return "checkcast " + c.t.InternalName() }

// Cast checks that the reference on top of the stack is an instance of t.
// Primitive and void types cannot be cast to.
func Cast(t *descriptor.TypeDescription) stack.Manipulation {
	if t.Kind() != descriptor.KindReference {
		return stack.Illegal
	}
	return cast{t}
}

// Assign converts a value of type source on top of the stack to type target.
//
// Primitives are widened, boxed or unboxed as needed. References that are
// not statically assignable are cast when dynamic is set and illegal
// otherwise. A void source yields the target's default value when dynamic
// is set; a void target discards the source value.
func Assign(source, target *descriptor.TypeDescription, dynamic bool) stack.Manipulation {
	switch {
	case source.IsVoid() && target.IsVoid():
		return stack.Trivial
	case source.IsVoid():
		if dynamic {
			return constant.DefaultValue(target)
		}
		return stack.Illegal
	case target.IsVoid():
		return stack.Pop(source.StackSize())
	case source.IsPrimitive() && target.IsPrimitive():
		return primitive.WidenTo(source.Kind(), target.Kind())
	case source.IsPrimitive():
		wrapper := descriptor.Wrapper(source.Kind())
		return stack.Compose(primitive.Box(source.Kind()), reference(wrapper, target, dynamic))
	case target.IsPrimitive():
		return unbox(source, target, dynamic)
	default:
		return reference(source, target, dynamic)
	}
}

func reference(source, target *descriptor.TypeDescription, dynamic bool) stack.Manipulation {
	switch {
	case target.IsAssignableFrom(source):
		return stack.Trivial
	case dynamic:
		return Cast(target)
	default:
		return stack.Illegal
	}
}

func unbox(source, target *descriptor.TypeDescription, dynamic bool) stack.Manipulation {
	if k, ok := descriptor.Unwrap(source); ok {
		return stack.Compose(primitive.Unbox(k), primitive.WidenTo(k, target.Kind()))
	}
	if !dynamic {
		return stack.Illegal
	}
	return stack.Compose(Cast(descriptor.Wrapper(target.Kind())), primitive.Unbox(target.Kind()))
}
