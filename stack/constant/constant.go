package constant

import (
	"math"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/stack"
)

// insn pushes a constant with a dedicated opcode.
type insn struct {
	op   bytecode.Opcode
	size stack.ValueSize
}

func (i insn) IsValid() bool { return true }

func (i insn) Apply(sink bytecode.Sink) stack.Size {
	sink.Insn(i.op)
	return i.size.ToIncreasingSize()
}

func (i insn) String() string { return i.op.String() }

// push pushes a small int through bipush or sipush.
type push struct {
	op    bytecode.Opcode
	value int32
}

func (p push) IsValid() bool { return true }

func (p push) Apply(sink bytecode.Sink) stack.Size {
	sink.IntInsn(p.op, p.value)
	return stack.Single.ToIncreasingSize()
}

// Pooled pushes a literal stored in the constant pool.
//
// Pooled values are comparable; equal values refer to the same pool entry.
type Pooled struct {
	Constant bytecode.Constant
}

func (p Pooled) IsValid() bool { return true }

func (p Pooled) Apply(sink bytecode.Sink) stack.Size {
	sink.LdcInsn(p.Constant)
	if p.Constant.Wide() {
		return stack.Double.ToIncreasingSize()
	}
	return stack.Single.ToIncreasingSize()
}

func (p Pooled) String() string { return "ldc " + p.Constant.String() }

var ints = [...]stack.Manipulation{
	insn{bytecode.ICONST_M1, stack.Single},
	insn{bytecode.ICONST_0, stack.Single},
	insn{bytecode.ICONST_1, stack.Single},
	insn{bytecode.ICONST_2, stack.Single},
	insn{bytecode.ICONST_3, stack.Single},
	insn{bytecode.ICONST_4, stack.Single},
	insn{bytecode.ICONST_5, stack.Single},
}

// Int pushes an int. Values -1 to 5 use iconst, byte and short ranges use
// bipush and sipush, anything else is loaded from the pool.
func Int(v int32) stack.Manipulation {
	switch {
	case v >= -1 && v <= 5:
		return ints[v+1]
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return push{bytecode.BIPUSH, v}
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return push{bytecode.SIPUSH, v}
	default:
		return Pooled{bytecode.IntConstant(v)}
	}
}

// Bool pushes 1 for true and 0 for false.
func Bool(b bool) stack.Manipulation {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Long pushes a long.
func Long(v int64) stack.Manipulation {
	switch v {
	case 0:
		return insn{bytecode.LCONST_0, stack.Double}
	case 1:
		return insn{bytecode.LCONST_1, stack.Double}
	default:
		return Pooled{bytecode.LongConstant(v)}
	}
}

// Float pushes a float. Only +0, 1 and 2 have dedicated opcodes; negative
// zero goes through the pool.
func Float(v float32) stack.Manipulation {
	switch math.Float32bits(v) {
	case math.Float32bits(0):
		return insn{bytecode.FCONST_0, stack.Single}
	case math.Float32bits(1):
		return insn{bytecode.FCONST_1, stack.Single}
	case math.Float32bits(2):
		return insn{bytecode.FCONST_2, stack.Single}
	default:
		return Pooled{bytecode.FloatConstant(v)}
	}
}

// Double pushes a double. Only +0 and 1 have dedicated opcodes.
func Double(v float64) stack.Manipulation {
	switch math.Float64bits(v) {
	case math.Float64bits(0):
		return insn{bytecode.DCONST_0, stack.Double}
	case math.Float64bits(1):
		return insn{bytecode.DCONST_1, stack.Double}
	default:
		return Pooled{bytecode.DoubleConstant(v)}
	}
}

// Null pushes the null reference.
var Null stack.Manipulation = insn{bytecode.ACONST_NULL, stack.Single}

// Text pushes a string literal.
func Text(s string) stack.Manipulation {
	return Pooled{bytecode.StringConstant(s)}
}

// TypeOf pushes the class literal of t. Primitive types resolve through the
// TYPE field of their wrapper class.
func TypeOf(t *descriptor.TypeDescription) stack.Manipulation {
	switch {
	case t.IsVoid():
		return primitiveType{owner: "java/lang/Void"}
	case t.IsPrimitive():
		return primitiveType{owner: descriptor.Wrapper(t.Kind()).InternalName()}
	default:
		return Pooled{bytecode.ClassConstant(t.InternalName())}
	}
}

type primitiveType struct {
	owner string
}

func (p primitiveType) IsValid() bool { return true }

func (p primitiveType) Apply(sink bytecode.Sink) stack.Size {
	sink.FieldInsn(bytecode.GETSTATIC, p.owner, "TYPE", "Ljava/lang/Class;")
	return stack.Single.ToIncreasingSize()
}

// DefaultValue pushes the zero value of t: 0 of the matching kind for
// primitives, null for references and nothing for void.
func DefaultValue(t *descriptor.TypeDescription) stack.Manipulation {
	switch t.Kind() {
	case descriptor.KindVoid:
		return stack.Trivial
	case descriptor.KindLong:
		return Long(0)
	case descriptor.KindFloat:
		return Float(0)
	case descriptor.KindDouble:
		return Double(0)
	case descriptor.KindReference:
		return Null
	default:
		return Int(0)
	}
}
