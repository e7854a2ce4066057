package bytecode

import (
	"fmt"
	"strings"
)

// Form classifies the operand shape of a recorded instruction.
type Form uint8

const (
	FormInsn Form = iota
	FormInt
	FormVar
	FormIinc
	FormType
	FormField
	FormMethod
	FormLdc
)

// Instruction is a logical instruction captured by a Recorder.
type Instruction struct {
	Owner      string // type reference or member owner
	Name       string
	Descriptor string
	Constant   Constant
	Operand    int32 // immediate, local slot or iinc slot
	Delta      int32 // iinc increment
	Opcode     Opcode
	Form       Form
	Interface  bool
}

// String renders the instruction in listing form.
func (i Instruction) String() string {
	switch i.Form {
	case FormInt:
		if i.Opcode == NEWARRAY {
			return fmt.Sprintf("%s %s", i.Opcode, arrayTypeName(i.Operand))
		}
		return fmt.Sprintf("%s %d", i.Opcode, i.Operand)
	case FormVar:
		return fmt.Sprintf("%s %d", i.Opcode, i.Operand)
	case FormIinc:
		return fmt.Sprintf("%s %d %d", i.Opcode, i.Operand, i.Delta)
	case FormType:
		return fmt.Sprintf("%s %s", i.Opcode, i.Owner)
	case FormField:
		return fmt.Sprintf("%s %s.%s:%s", i.Opcode, i.Owner, i.Name, i.Descriptor)
	case FormMethod:
		s := fmt.Sprintf("%s %s.%s%s", i.Opcode, i.Owner, i.Name, i.Descriptor)
		if i.Interface && i.Opcode != INVOKEINTERFACE {
			s += " (itf)"
		}
		return s
	case FormLdc:
		return fmt.Sprintf("%s %s", i.Opcode, i.Constant)
	default:
		return i.Opcode.String()
	}
}

func arrayTypeName(code int32) string {
	switch code {
	case T_BOOLEAN:
		return "boolean"
	case T_CHAR:
		return "char"
	case T_FLOAT:
		return "float"
	case T_DOUBLE:
		return "double"
	case T_BYTE:
		return "byte"
	case T_SHORT:
		return "short"
	case T_INT:
		return "int"
	case T_LONG:
		return "long"
	default:
		return fmt.Sprintf("type(%d)", code)
	}
}

// Recorder is a Sink that keeps every emitted instruction in order.
//
// The recorder also collects pool literals in first-use order, deduplicated
// by value.
type Recorder struct {
	instrs    []Instruction
	constants []Constant
	seen      map[Constant]int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{seen: make(map[Constant]int)}
}

func (r *Recorder) add(i Instruction) {
	r.instrs = append(r.instrs, i)
}

// Insn implements Sink.
func (r *Recorder) Insn(op Opcode) {
	r.add(Instruction{Opcode: op, Form: FormInsn})
}

// IntInsn implements Sink.
func (r *Recorder) IntInsn(op Opcode, operand int32) {
	r.add(Instruction{Opcode: op, Form: FormInt, Operand: operand})
}

// VarInsn implements Sink.
func (r *Recorder) VarInsn(op Opcode, slot int) {
	r.add(Instruction{Opcode: op, Form: FormVar, Operand: int32(slot)})
}

// IincInsn implements Sink.
func (r *Recorder) IincInsn(slot int, delta int32) {
	r.add(Instruction{Opcode: IINC, Form: FormIinc, Operand: int32(slot), Delta: delta})
}

// TypeInsn implements Sink.
func (r *Recorder) TypeInsn(op Opcode, internalName string) {
	r.add(Instruction{Opcode: op, Form: FormType, Owner: internalName})
}

// FieldInsn implements Sink.
func (r *Recorder) FieldInsn(op Opcode, owner, name, descriptor string) {
	r.add(Instruction{Opcode: op, Form: FormField, Owner: owner, Name: name, Descriptor: descriptor})
}

// MethodInsn implements Sink.
func (r *Recorder) MethodInsn(op Opcode, owner, name, descriptor string, ownerIsInterface bool) {
	r.add(Instruction{
		Opcode:     op,
		Form:       FormMethod,
		Owner:      owner,
		Name:       name,
		Descriptor: descriptor,
		Interface:  ownerIsInterface,
	})
}

// LdcInsn implements Sink.
func (r *Recorder) LdcInsn(c Constant) {
	op := LDC
	if c.Wide() {
		op = LDC2_W
	}
	r.add(Instruction{Opcode: op, Form: FormLdc, Constant: c})
	if _, ok := r.seen[c]; !ok {
		r.seen[c] = len(r.constants)
		r.constants = append(r.constants, c)
	}
}

// Instructions returns the recorded instructions.
func (r *Recorder) Instructions() []Instruction {
	return r.instrs
}

// Constants returns the distinct pool literals in first-use order.
func (r *Recorder) Constants() []Constant {
	return r.constants
}

// Len returns the number of recorded instructions.
func (r *Recorder) Len() int {
	return len(r.instrs)
}

// Count returns how many recorded instructions use the given opcode.
func (r *Recorder) Count(op Opcode) int {
	n := 0
	for _, i := range r.instrs {
		if i.Opcode == op {
			n++
		}
	}
	return n
}

// Opcodes returns the opcode sequence of the recorded instructions.
func (r *Recorder) Opcodes() []Opcode {
	ops := make([]Opcode, len(r.instrs))
	for i, instr := range r.instrs {
		ops[i] = instr.Opcode
	}
	return ops
}

// Reset discards all recorded instructions and literals.
func (r *Recorder) Reset() {
	r.instrs = r.instrs[:0]
	r.constants = r.constants[:0]
	clear(r.seen)
}

// String returns a numbered listing of the recorded instructions.
func (r *Recorder) String() string {
	var b strings.Builder
	for n, i := range r.instrs {
		fmt.Fprintf(&b, "%4d: %s\n", n, i)
	}
	return b.String()
}
