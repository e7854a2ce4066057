package primitive

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/stack"
)

// conversion is a single primitive conversion instruction.
type conversion struct {
	op   bytecode.Opcode
	size stack.Size
}

func (c conversion) IsValid() bool { return true }

func (c conversion) Apply(sink bytecode.Sink) stack.Size {
	sink.Insn(c.op)
	return c.size
}

func (c conversion) String() string { return c.op.String() }

var (
	i2l = conversion{bytecode.I2L, stack.Size{Net: 1, Max: 1}}
	i2f = conversion{bytecode.I2F, stack.Size{Net: 0, Max: 0}}
	i2d = conversion{bytecode.I2D, stack.Size{Net: 1, Max: 1}}
	l2f = conversion{bytecode.L2F, stack.Size{Net: -1, Max: 0}}
	l2d = conversion{bytecode.L2D, stack.Size{Net: 0, Max: 0}}
	f2d = conversion{bytecode.F2D, stack.Size{Net: 1, Max: 1}}
)

var (
	nop = stack.Trivial
	bad = stack.Illegal
)

// widenings holds every source/target cell in descriptor.PrimitiveKinds
// order. Rows are sources, columns are targets:
// boolean, byte, short, char, int, long, float, double.
var widenings = [8][8]stack.Manipulation{
	/* boolean */ {nop, bad, bad, bad, bad, bad, bad, bad},
	/* byte    */ {bad, nop, nop, bad, nop, i2l, i2f, i2d},
	/* short   */ {bad, bad, nop, bad, nop, i2l, i2f, i2d},
	/* char    */ {bad, bad, bad, nop, nop, i2l, i2f, i2d},
	/* int     */ {bad, bad, bad, bad, nop, i2l, i2f, i2d},
	/* long    */ {bad, bad, bad, bad, bad, nop, l2f, l2d},
	/* float   */ {bad, bad, bad, bad, bad, bad, nop, f2d},
	/* double  */ {bad, bad, bad, bad, bad, bad, bad, nop},
}

func index(k descriptor.Kind) int {
	return int(k - descriptor.KindBoolean)
}

// WidenTo returns the widening conversion from source to target. Narrowing,
// conversions involving boolean and conversions to char are illegal, as are
// non-primitive kinds.
func WidenTo(source, target descriptor.Kind) stack.Manipulation {
	if !source.IsPrimitive() || !target.IsPrimitive() {
		return stack.Illegal
	}
	return widenings[index(source)][index(target)]
}
