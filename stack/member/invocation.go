package member

import (
	"fmt"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/stack"
)

// Mode is the dispatch mode of an invocation.
type Mode uint8

const (
	ModeStatic Mode = iota
	ModeSpecial
	ModeInterface
	ModeVirtual
)

// Opcode returns the invoke instruction of the mode.
func (m Mode) Opcode() bytecode.Opcode {
	switch m {
	case ModeStatic:
		return bytecode.INVOKESTATIC
	case ModeSpecial:
		return bytecode.INVOKESPECIAL
	case ModeInterface:
		return bytecode.INVOKEINTERFACE
	default:
		return bytecode.INVOKEVIRTUAL
	}
}

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeSpecial:
		return "special"
	case ModeInterface:
		return "interface"
	case ModeVirtual:
		return "virtual"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode returns the mode named by s.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "static":
		return ModeStatic, true
	case "special":
		return ModeSpecial, true
	case "interface":
		return ModeInterface, true
	case "virtual":
		return ModeVirtual, true
	default:
		return 0, false
	}
}

// Invocation calls a method on its receiver type with a fixed mode.
type Invocation struct {
	method *descriptor.MethodDescription
	target *descriptor.TypeDescription
	mode   Mode
}

// Invoke returns the invocation of m on its declaring type. The mode is
// derived from the method in order: static, then private or constructor,
// then interface-declared, else virtual. Type initializers cannot be invoked.
func Invoke(m *descriptor.MethodDescription) (*Invocation, error) {
	if m.IsTypeInitializer() {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(m.String()).
			Detail("cannot invoke a type initializer").
			Build()
	}
	var mode Mode
	switch {
	case m.IsStatic():
		mode = ModeStatic
	case m.IsPrivate() || m.IsConstructor():
		mode = ModeSpecial
	case m.DeclaringType().IsInterface():
		mode = ModeInterface
	default:
		mode = ModeVirtual
	}
	return &Invocation{method: m, target: m.DeclaringType(), mode: mode}, nil
}

// Method returns the invoked method.
func (i *Invocation) Method() *descriptor.MethodDescription { return i.method }

// Target returns the receiver type named by the instruction.
func (i *Invocation) Target() *descriptor.TypeDescription { return i.target }

// Mode returns the dispatch mode.
func (i *Invocation) Mode() Mode { return i.mode }

func (i *Invocation) IsValid() bool { return true }

// Apply emits the invoke instruction. Parameters, and the receiver for
// non-static modes, are consumed and the return value is pushed.
func (i *Invocation) Apply(sink bytecode.Sink) stack.Size {
	sink.MethodInsn(i.mode.Opcode(), i.target.InternalName(), i.method.Name(), i.method.Descriptor(), i.target.IsInterface())
	delta := i.method.ReturnType().StackSize().Slots() - i.method.StackSize()
	return stack.Size{Net: delta, Max: max(0, delta)}
}

func (i *Invocation) String() string {
	return i.mode.String() + " " + i.target.InternalName() + "." + i.method.Name() + i.method.Descriptor()
}

func (i *Invocation) checkTarget(target *descriptor.TypeDescription) error {
	if i.method.IsStatic() {
		return errors.New(errors.PhaseAssemble, errors.KindIllegalState).
			Member(i.method.String()).
			Detail("cannot retarget a static method").
			Build()
	}
	if !i.method.DeclaringType().IsAssignableFrom(target) {
		return errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(i.method.String()).
			Type(target.String()).
			Detail("receiver is not a subtype of %s", i.method.DeclaringType()).
			Build()
	}
	return nil
}

// Virtual invokes the method virtually on target. An interface target
// switches to interface dispatch, except for methods of java/lang/Object
// which keep the original invocation.
func (i *Invocation) Virtual(target *descriptor.TypeDescription) (stack.Manipulation, error) {
	if err := i.checkTarget(target); err != nil {
		return nil, err
	}
	if i.method.IsPrivate() || i.method.IsConstructor() {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(i.method.String()).
			Detail("private methods and constructors cannot be invoked virtually").
			Build()
	}
	if target.IsInterface() {
		if i.method.DeclaringType().Equal(descriptor.Object) {
			return i, nil
		}
		return &Invocation{method: i.method, target: target, mode: ModeInterface}, nil
	}
	return &Invocation{method: i.method, target: target, mode: ModeVirtual}, nil
}

// Special invokes the method non-virtually on target, as a super call does.
// Private methods and constructors only accept their declaring type.
func (i *Invocation) Special(target *descriptor.TypeDescription) (stack.Manipulation, error) {
	if err := i.checkTarget(target); err != nil {
		return nil, err
	}
	if i.method.IsPrivate() || i.method.IsConstructor() {
		if !i.method.DeclaringType().Equal(target) {
			return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
				Member(i.method.String()).
				Type(target.String()).
				Detail("private methods and constructors can only be invoked on their declaring type").
				Build()
		}
		return &Invocation{method: i.method, target: target, mode: ModeSpecial}, nil
	}
	if i.method.IsAbstract() {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(i.method.String()).
			Detail("cannot invoke an abstract method non-virtually").
			Build()
	}
	return &Invocation{method: i.method, target: target, mode: ModeSpecial}, nil
}

// Retarget invokes the method on target with an explicit mode. Static
// retargets are rejected; interface and virtual both resolve through
// Virtual.
func (i *Invocation) Retarget(mode Mode, target *descriptor.TypeDescription) (stack.Manipulation, error) {
	switch mode {
	case ModeVirtual, ModeInterface:
		return i.Virtual(target)
	case ModeSpecial:
		return i.Special(target)
	default:
		if i.method.IsStatic() {
			return nil, errors.IllegalState(errors.PhaseAssemble, "cannot retarget a static method")
		}
		return nil, errors.IllegalArgument(errors.PhaseAssemble, "cannot retarget to %s mode", mode)
	}
}
