package collection

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/stack"
)

type element struct {
	load  bytecode.Opcode
	store bytecode.Opcode
	code  int32 // newarray operand, zero for references
}

var elements = map[descriptor.Kind]element{
	descriptor.KindBoolean:   {bytecode.BALOAD, bytecode.BASTORE, bytecode.T_BOOLEAN},
	descriptor.KindByte:      {bytecode.BALOAD, bytecode.BASTORE, bytecode.T_BYTE},
	descriptor.KindShort:     {bytecode.SALOAD, bytecode.SASTORE, bytecode.T_SHORT},
	descriptor.KindChar:      {bytecode.CALOAD, bytecode.CASTORE, bytecode.T_CHAR},
	descriptor.KindInt:       {bytecode.IALOAD, bytecode.IASTORE, bytecode.T_INT},
	descriptor.KindLong:      {bytecode.LALOAD, bytecode.LASTORE, bytecode.T_LONG},
	descriptor.KindFloat:     {bytecode.FALOAD, bytecode.FASTORE, bytecode.T_FLOAT},
	descriptor.KindDouble:    {bytecode.DALOAD, bytecode.DASTORE, bytecode.T_DOUBLE},
	descriptor.KindReference: {bytecode.AALOAD, bytecode.AASTORE, 0},
}

type arrayInsn struct {
	op   bytecode.Opcode
	size stack.Size
}

func (a arrayInsn) IsValid() bool { return true }

func (a arrayInsn) Apply(sink bytecode.Sink) stack.Size {
	sink.Insn(a.op)
	return a.size
}

// Load replaces an array reference and an index with the element of type t.
func Load(t *descriptor.TypeDescription) stack.Manipulation {
	e, ok := elements[t.Kind()]
	if !ok {
		return stack.Illegal
	}
	return arrayInsn{e.load, t.StackSize().ToIncreasingSize().Aggregate(stack.Size{Net: -2})}
}

// Store consumes an array reference, an index and an element of type t.
func Store(t *descriptor.TypeDescription) stack.Manipulation {
	e, ok := elements[t.Kind()]
	if !ok {
		return stack.Illegal
	}
	return arrayInsn{e.store, t.StackSize().ToDecreasingSize().Aggregate(stack.Size{Net: -2})}
}

// Length replaces an array reference with its length.
var Length stack.Manipulation = arrayInsn{bytecode.ARRAYLENGTH, stack.Size{}}
