package stack

import (
	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/errors"
)

// Manipulation is a unit of instruction emission with a statically known
// effect on the operand stack.
//
// Manipulations are immutable and can be shared between assemblies running
// on different goroutines. Apply must only be called when IsValid reports
// true; composers check validity once before emission and Apply does not
// repeat the check.
type Manipulation interface {
	// IsValid reports whether the manipulation can be applied.
	IsValid() bool

	// Apply emits the instructions to sink and returns their stack effect.
	Apply(sink bytecode.Sink) Size
}

type trivial struct{}

func (trivial) IsValid() bool            { return true }
func (trivial) Apply(bytecode.Sink) Size { return Size{} }
func (trivial) String() string           { return "trivial" }

type illegal struct{}

func (illegal) IsValid() bool { return false }

func (illegal) Apply(bytecode.Sink) Size {
	panic(errors.IllegalState(errors.PhaseAssemble, "an illegal stack manipulation must not be applied"))
}

func (illegal) String() string { return "illegal" }

var (
	// Trivial emits nothing and has no stack effect.
	Trivial Manipulation = trivial{}

	// Illegal is never valid. Applying it panics.
	Illegal Manipulation = illegal{}
)

// Compound is an ordered sequence of manipulations applied one after another.
type Compound []Manipulation

// Compose creates a Compound of the given manipulations. Nested compounds are
// flattened into the result.
func Compose(ms ...Manipulation) Compound {
	c := make(Compound, 0, len(ms))
	for _, m := range ms {
		if nested, ok := m.(Compound); ok {
			c = append(c, nested...)
			continue
		}
		c = append(c, m)
	}
	return c
}

// IsValid reports whether every member is valid. An empty compound is valid.
func (c Compound) IsValid() bool {
	for _, m := range c {
		if !m.IsValid() {
			return false
		}
	}
	return true
}

// Apply applies the members in order, folding their sizes.
func (c Compound) Apply(sink bytecode.Sink) Size {
	var size Size
	for _, m := range c {
		size = size.Aggregate(m.Apply(sink))
	}
	return size
}

// Duplication duplicates the value on top of the stack.
type Duplication struct {
	size ValueSize
}

// Duplications by value size.
var (
	DupZero   = Duplication{Zero}
	DupSingle = Duplication{Single}
	DupDouble = Duplication{Double}
)

// Dup returns the duplication for a value of the given size.
func Dup(size ValueSize) Duplication {
	return Duplication{size}
}

func (d Duplication) IsValid() bool { return true }

func (d Duplication) Apply(sink bytecode.Sink) Size {
	switch d.size {
	case Single:
		sink.Insn(bytecode.DUP)
	case Double:
		sink.Insn(bytecode.DUP2)
	}
	return d.size.ToIncreasingSize()
}

// FlipOver duplicates the top value and inserts the copy below a value of
// size under.
func (d Duplication) FlipOver(under ValueSize) Manipulation {
	if d.size == Zero {
		return Trivial
	}
	if under == Zero {
		return d
	}
	return flippedDup{size: d.size, under: under}
}

type flippedDup struct {
	size  ValueSize
	under ValueSize
}

func (f flippedDup) IsValid() bool { return true }

func (f flippedDup) Apply(sink bytecode.Sink) Size {
	switch {
	case f.size == Single && f.under == Single:
		sink.Insn(bytecode.DUP_X1)
	case f.size == Single:
		sink.Insn(bytecode.DUP_X2)
	case f.under == Single:
		sink.Insn(bytecode.DUP2_X1)
	default:
		sink.Insn(bytecode.DUP2_X2)
	}
	return f.size.ToIncreasingSize()
}

// Removal discards the value on top of the stack.
type Removal struct {
	size ValueSize
}

// Pop returns the removal for a value of the given size.
func Pop(size ValueSize) Removal {
	return Removal{size}
}

func (r Removal) IsValid() bool { return true }

func (r Removal) Apply(sink bytecode.Sink) Size {
	switch r.size {
	case Single:
		sink.Insn(bytecode.POP)
	case Double:
		sink.Insn(bytecode.POP2)
	}
	return r.size.ToDecreasingSize()
}

type throw struct{}

func (throw) IsValid() bool { return true }

func (throw) Apply(sink bytecode.Sink) Size {
	sink.Insn(bytecode.ATHROW)
	return Single.ToDecreasingSize()
}

// Throw throws the exception reference on top of the stack.
var Throw Manipulation = throw{}
