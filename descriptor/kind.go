package descriptor

import "github.com/wippyai/classgen/stack"

// Kind classifies a type by its operand stack representation.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindReference
)

// PrimitiveKinds lists the eight primitive value kinds in table order.
var PrimitiveKinds = [...]Kind{
	KindBoolean, KindByte, KindShort, KindChar, KindInt, KindLong, KindFloat, KindDouble,
}

// IsPrimitive reports whether k is one of the eight primitive value kinds.
func (k Kind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindDouble
}

// StackSize returns the number of slots a value of this kind occupies.
func (k Kind) StackSize() stack.ValueSize {
	switch k {
	case KindVoid:
		return stack.Zero
	case KindLong, KindDouble:
		return stack.Double
	default:
		return stack.Single
	}
}

// Descriptor returns the descriptor character of a primitive or void kind.
// References return 'L'.
func (k Kind) Descriptor() byte {
	return kindInfo[k].descriptor
}

func (k Kind) String() string {
	if int(k) < len(kindInfo) {
		return kindInfo[k].name
	}
	return "invalid"
}

var kindInfo = [...]struct {
	name       string
	descriptor byte
}{
	KindVoid:      {"void", 'V'},
	KindBoolean:   {"boolean", 'Z'},
	KindByte:      {"byte", 'B'},
	KindShort:     {"short", 'S'},
	KindChar:      {"char", 'C'},
	KindInt:       {"int", 'I'},
	KindLong:      {"long", 'J'},
	KindFloat:     {"float", 'F'},
	KindDouble:    {"double", 'D'},
	KindReference: {"reference", 'L'},
}

// Modifiers is the access flag set of a type or member.
type Modifiers uint16

const (
	AccPublic       Modifiers = 0x0001
	AccPrivate      Modifiers = 0x0002
	AccProtected    Modifiers = 0x0004
	AccStatic       Modifiers = 0x0008
	AccFinal        Modifiers = 0x0010
	AccSynchronized Modifiers = 0x0020
	AccVolatile     Modifiers = 0x0040
	AccBridge       Modifiers = 0x0040
	AccTransient    Modifiers = 0x0080
	AccVarargs      Modifiers = 0x0080
	AccNative       Modifiers = 0x0100
	AccInterface    Modifiers = 0x0200
	AccAbstract     Modifiers = 0x0400
	AccSynthetic    Modifiers = 0x1000
	AccEnum         Modifiers = 0x4000
)

// Has reports whether all flags in f are set.
func (m Modifiers) Has(f Modifiers) bool {
	return m&f == f
}

var modifierNames = map[string]Modifiers{
	"public":       AccPublic,
	"private":      AccPrivate,
	"protected":    AccProtected,
	"static":       AccStatic,
	"final":        AccFinal,
	"synchronized": AccSynchronized,
	"volatile":     AccVolatile,
	"transient":    AccTransient,
	"native":       AccNative,
	"interface":    AccInterface,
	"abstract":     AccAbstract,
	"synthetic":    AccSynthetic,
	"enum":         AccEnum,
}

// ParseModifier returns the flag for a modifier keyword.
func ParseModifier(name string) (Modifiers, bool) {
	m, ok := modifierNames[name]
	return m, ok
}
