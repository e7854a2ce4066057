package assembly

import "github.com/wippyai/classgen/bytecode"

// tracker forwards to a sink while recording the local variable slots and
// instructions seen.
type tracker struct {
	sink         bytecode.Sink
	maxLocals    int
	instructions int
}

var _ bytecode.Sink = (*tracker)(nil)

func (t *tracker) touch(slot, width int) {
	if end := slot + width; end > t.maxLocals {
		t.maxLocals = end
	}
}

func localWidth(op bytecode.Opcode) int {
	switch op {
	case bytecode.LLOAD, bytecode.DLOAD, bytecode.LSTORE, bytecode.DSTORE:
		return 2
	default:
		return 1
	}
}

// compact decodes <x>load_<n> and <x>store_<n>.
func compact(op bytecode.Opcode) (slot int, width int, ok bool) {
	var base bytecode.Opcode
	switch {
	case op >= bytecode.ILOAD_0 && op < bytecode.ILOAD_0+20:
		base = bytecode.ILOAD_0
	case op >= bytecode.ISTORE_0 && op < bytecode.ISTORE_0+20:
		base = bytecode.ISTORE_0
	default:
		return 0, 0, false
	}
	offset := int(op - base)
	width = 1
	// Groups of four in order int, long, float, double, reference.
	if group := offset / 4; group == 1 || group == 3 {
		width = 2
	}
	return offset % 4, width, true
}

func (t *tracker) Insn(op bytecode.Opcode) {
	t.instructions++
	if slot, width, ok := compact(op); ok {
		t.touch(slot, width)
	}
	t.sink.Insn(op)
}

func (t *tracker) IntInsn(op bytecode.Opcode, operand int32) {
	t.instructions++
	t.sink.IntInsn(op, operand)
}

func (t *tracker) VarInsn(op bytecode.Opcode, slot int) {
	t.instructions++
	t.touch(slot, localWidth(op))
	t.sink.VarInsn(op, slot)
}

func (t *tracker) IincInsn(slot int, delta int32) {
	t.instructions++
	t.touch(slot, 1)
	t.sink.IincInsn(slot, delta)
}

func (t *tracker) TypeInsn(op bytecode.Opcode, internalName string) {
	t.instructions++
	t.sink.TypeInsn(op, internalName)
}

func (t *tracker) FieldInsn(op bytecode.Opcode, owner, name, descriptor string) {
	t.instructions++
	t.sink.FieldInsn(op, owner, name, descriptor)
}

func (t *tracker) MethodInsn(op bytecode.Opcode, owner, name, descriptor string, ownerIsInterface bool) {
	t.instructions++
	t.sink.MethodInsn(op, owner, name, descriptor, ownerIsInterface)
}

func (t *tracker) LdcInsn(c bytecode.Constant) {
	t.instructions++
	t.sink.LdcInsn(c)
}
