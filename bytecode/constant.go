package bytecode

import (
	"math"
	"strconv"
)

// ConstantTag identifies the kind of a pool literal.
type ConstantTag uint8

const (
	TagInt ConstantTag = iota + 1
	TagLong
	TagFloat
	TagDouble
	TagString
	TagClass
)

// Constant is a literal loaded from the constant pool.
//
// Constant is comparable: two constants are equal iff they denote the same
// pool entry, so they can be used as map keys for deduplication. Floating
// point values are kept as raw bits so that NaN payloads and signed zeros
// stay distinct.
type Constant struct {
	Text string
	Bits uint64
	Tag  ConstantTag
}

// IntConstant creates an int pool literal.
func IntConstant(v int32) Constant {
	return Constant{Tag: TagInt, Bits: uint64(uint32(v))}
}

// LongConstant creates a long pool literal.
func LongConstant(v int64) Constant {
	return Constant{Tag: TagLong, Bits: uint64(v)}
}

// FloatConstant creates a float pool literal.
func FloatConstant(v float32) Constant {
	return Constant{Tag: TagFloat, Bits: uint64(math.Float32bits(v))}
}

// DoubleConstant creates a double pool literal.
func DoubleConstant(v float64) Constant {
	return Constant{Tag: TagDouble, Bits: math.Float64bits(v)}
}

// StringConstant creates a string pool literal.
func StringConstant(s string) Constant {
	return Constant{Tag: TagString, Text: s}
}

// ClassConstant creates a class literal for the given internal name.
func ClassConstant(internalName string) Constant {
	return Constant{Tag: TagClass, Text: internalName}
}

// Wide reports whether the constant occupies two pool slots and two
// operand stack slots (long and double).
func (c Constant) Wide() bool {
	return c.Tag == TagLong || c.Tag == TagDouble
}

// Value returns the Go value of the constant.
func (c Constant) Value() any {
	switch c.Tag {
	case TagInt:
		return int32(uint32(c.Bits))
	case TagLong:
		return int64(c.Bits)
	case TagFloat:
		return math.Float32frombits(uint32(c.Bits))
	case TagDouble:
		return math.Float64frombits(c.Bits)
	default:
		return c.Text
	}
}

func (c Constant) String() string {
	switch c.Tag {
	case TagInt:
		return strconv.FormatInt(int64(int32(uint32(c.Bits))), 10)
	case TagLong:
		return strconv.FormatInt(int64(c.Bits), 10) + "L"
	case TagFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(c.Bits))), 'g', -1, 32) + "f"
	case TagDouble:
		return strconv.FormatFloat(math.Float64frombits(c.Bits), 'g', -1, 64) + "d"
	case TagString:
		return strconv.Quote(c.Text)
	case TagClass:
		return c.Text + ".class"
	default:
		return "?"
	}
}
