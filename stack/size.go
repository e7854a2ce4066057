package stack

import "fmt"

// ValueSize is the number of operand stack or local variable slots a value
// occupies.
type ValueSize uint8

const (
	// Zero is the size of the absence of a value (void).
	Zero ValueSize = 0
	// Single is the size of every value except long and double.
	Single ValueSize = 1
	// Double is the size of long and double values.
	Double ValueSize = 2
)

// Slots returns the slot count.
func (v ValueSize) Slots() int {
	return int(v)
}

// ToIncreasingSize returns the Size of pushing a value of this size.
func (v ValueSize) ToIncreasingSize() Size {
	return Size{Net: int(v), Max: int(v)}
}

// ToDecreasingSize returns the Size of popping a value of this size.
func (v ValueSize) ToDecreasingSize() Size {
	return Size{Net: -int(v), Max: 0}
}

// Maximum returns the larger of both sizes.
func (v ValueSize) Maximum(other ValueSize) ValueSize {
	if other > v {
		return other
	}
	return v
}

func (v ValueSize) String() string {
	switch v {
	case Zero:
		return "zero"
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("size(%d)", uint8(v))
	}
}

// Size describes the operand stack effect of emitting a manipulation.
//
// Net is the signed change of the stack depth once the emitted instructions
// have run. Max is the largest increase over the starting depth observed
// while they run; it is never negative.
type Size struct {
	Net int
	Max int
}

// Aggregate appends other to s. Max of other is relative to the depth at
// which other starts, which is s.Net, so the fold is order dependent.
func (s Size) Aggregate(other Size) Size {
	return Size{
		Net: s.Net + other.Net,
		Max: max(s.Max, s.Net+other.Max),
	}
}

func (s Size) String() string {
	return fmt.Sprintf("(net %+d, max %d)", s.Net, s.Max)
}
