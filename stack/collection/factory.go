package collection

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/stack"
	"github.com/wippyai/classgen/stack/constant"
)

// ArrayFactory creates arrays of one component type.
type ArrayFactory struct {
	component *descriptor.TypeDescription
	code      int32
	store     stack.Manipulation
}

// ForElementType returns the factory for arrays of t.
func ForElementType(t *descriptor.TypeDescription) (*ArrayFactory, error) {
	if t.IsVoid() {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Type(t.String()).
			Detail("arrays cannot hold void").
			Build()
	}
	return &ArrayFactory{
		component: t,
		code:      elements[t.Kind()].code,
		store:     Store(t),
	}, nil
}

// ComponentType returns the element type.
func (f *ArrayFactory) ComponentType() *descriptor.TypeDescription { return f.component }

// ArrayType returns the type of the created arrays.
func (f *ArrayFactory) ArrayType() *descriptor.TypeDescription {
	return descriptor.ArrayOf(f.component)
}

// Create replaces a length on top of the stack with a new array.
func (f *ArrayFactory) Create() stack.Manipulation {
	return creation{f}
}

// WithValues creates an array holding the values pushed by elements, in
// order. Each element must push exactly one value of the component type.
// The result is invalid if any element is.
func (f *ArrayFactory) WithValues(elements ...stack.Manipulation) stack.Manipulation {
	return arrayWithValues{factory: f, elements: elements}
}

type creation struct {
	factory *ArrayFactory
}

func (c creation) IsValid() bool { return true }

func (c creation) Apply(sink bytecode.Sink) stack.Size {
	if c.factory.component.IsPrimitive() {
		sink.IntInsn(bytecode.NEWARRAY, c.factory.code)
	} else {
		sink.TypeInsn(bytecode.ANEWARRAY, c.factory.component.InternalName())
	}
	return stack.Size{}
}

type arrayWithValues struct {
	factory  *ArrayFactory
	elements []stack.Manipulation
}

func (a arrayWithValues) IsValid() bool {
	for _, e := range a.elements {
		if !e.IsValid() {
			return false
		}
	}
	return true
}

func (a arrayWithValues) Apply(sink bytecode.Sink) stack.Size {
	size := constant.Int(int32(len(a.elements))).Apply(sink)
	size = size.Aggregate(a.factory.Create().Apply(sink))
	for i, e := range a.elements {
		size = size.Aggregate(stack.DupSingle.Apply(sink))
		size = size.Aggregate(constant.Int(int32(i)).Apply(sink))
		size = size.Aggregate(e.Apply(sink))
		size = size.Aggregate(a.factory.store.Apply(sink))
	}
	return size
}
