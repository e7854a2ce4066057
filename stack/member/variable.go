package member

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/stack"
)

// compactSlots is the number of slots with dedicated load and store forms.
const compactSlots = 4

// Variable accesses local variables of one stack representation.
type Variable struct {
	load         bytecode.Opcode
	store        bytecode.Opcode
	compactLoad  bytecode.Opcode
	compactStore bytecode.Opcode
	size         stack.ValueSize
}

// Local variable accessors.
var (
	Integer   = Variable{bytecode.ILOAD, bytecode.ISTORE, bytecode.ILOAD_0, bytecode.ISTORE_0, stack.Single}
	Long      = Variable{bytecode.LLOAD, bytecode.LSTORE, bytecode.LLOAD_0, bytecode.LSTORE_0, stack.Double}
	Float     = Variable{bytecode.FLOAD, bytecode.FSTORE, bytecode.FLOAD_0, bytecode.FSTORE_0, stack.Single}
	Double    = Variable{bytecode.DLOAD, bytecode.DSTORE, bytecode.DLOAD_0, bytecode.DSTORE_0, stack.Double}
	Reference = Variable{bytecode.ALOAD, bytecode.ASTORE, bytecode.ALOAD_0, bytecode.ASTORE_0, stack.Single}
)

// VariableFor returns the accessor for locals of type t. Boolean, byte,
// short and char share the integer accessor. Void has no locals.
func VariableFor(t *descriptor.TypeDescription) (Variable, error) {
	switch t.Kind() {
	case descriptor.KindVoid:
		return Variable{}, errors.IllegalArgument(errors.PhaseAssemble, "void has no local variable representation")
	case descriptor.KindLong:
		return Long, nil
	case descriptor.KindFloat:
		return Float, nil
	case descriptor.KindDouble:
		return Double, nil
	case descriptor.KindReference:
		return Reference, nil
	default:
		return Integer, nil
	}
}

// Size returns the slot size of the accessed values.
func (v Variable) Size() stack.ValueSize { return v.size }

// Load pushes the local at slot. Negative slots are illegal.
func (v Variable) Load(slot int) stack.Manipulation {
	if slot < 0 {
		return stack.Illegal
	}
	return localInsn{compact: v.compactLoad, generic: v.load, slot: slot, size: v.size.ToIncreasingSize()}
}

// Store pops the top of the stack into the local at slot. Negative slots
// are illegal.
func (v Variable) Store(slot int) stack.Manipulation {
	if slot < 0 {
		return stack.Illegal
	}
	return localInsn{compact: v.compactStore, generic: v.store, slot: slot, size: v.size.ToDecreasingSize()}
}

type localInsn struct {
	compact bytecode.Opcode
	generic bytecode.Opcode
	slot    int
	size    stack.Size
}

func (l localInsn) IsValid() bool { return true }

func (l localInsn) Apply(sink bytecode.Sink) stack.Size {
	if l.slot < compactSlots {
		sink.Insn(l.compact + bytecode.Opcode(l.slot))
	} else {
		sink.VarInsn(l.generic, l.slot)
	}
	return l.size
}

type increment struct {
	slot  int
	delta int32
}

func (i increment) IsValid() bool { return true }

func (i increment) Apply(sink bytecode.Sink) stack.Size {
	sink.IincInsn(i.slot, i.delta)
	return stack.Size{}
}

// Increment adds delta to the int local at slot without touching the stack.
func Increment(slot int, delta int32) stack.Manipulation {
	if slot < 0 {
		return stack.Illegal
	}
	return increment{slot: slot, delta: delta}
}

// LoadThis pushes the receiver of an instance method.
func LoadThis() stack.Manipulation {
	return Reference.Load(0)
}

// LoadAllArguments pushes the receiver of an instance method followed by
// every parameter in declaration order.
func LoadAllArguments(m *descriptor.MethodDescription) stack.Compound {
	loads := make([]stack.Manipulation, 0, len(m.Parameters())+1)
	if !m.IsStatic() {
		loads = append(loads, LoadThis())
	}
	return stack.Compose(append(loads, LoadParameters(m))...)
}

// LoadParameters pushes every parameter of m in declaration order.
func LoadParameters(m *descriptor.MethodDescription) stack.Compound {
	params := m.Parameters()
	loads := make([]stack.Manipulation, 0, len(params))
	offset := m.ParameterOffset(0)
	for _, p := range params {
		v, err := VariableFor(p)
		if err != nil {
			loads = append(loads, stack.Illegal)
			continue
		}
		loads = append(loads, v.Load(offset))
		offset += v.Size().Slots()
	}
	return stack.Compose(loads...)
}

// LoadParameter pushes parameter i of m.
func LoadParameter(m *descriptor.MethodDescription, i int) (stack.Manipulation, error) {
	params := m.Parameters()
	if i < 0 || i >= len(params) {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(m.String()).
			Value(i).
			Detail("parameter index out of range").
			Build()
	}
	v, err := VariableFor(params[i])
	if err != nil {
		return nil, err
	}
	return v.Load(m.ParameterOffset(i)), nil
}
