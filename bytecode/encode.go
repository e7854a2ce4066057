package bytecode

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/wippyai/classgen/errors"
)

// MaxCodeLength is the largest code array a single method may carry.
const MaxCodeLength = 65535

// PoolTag identifies a constant pool entry kind.
type PoolTag uint8

const (
	PoolUtf8               PoolTag = 1
	PoolInteger            PoolTag = 3
	PoolFloat              PoolTag = 4
	PoolLong               PoolTag = 5
	PoolDouble             PoolTag = 6
	PoolClass              PoolTag = 7
	PoolString             PoolTag = 8
	PoolFieldref           PoolTag = 9
	PoolMethodref          PoolTag = 10
	PoolInterfaceMethodref PoolTag = 11
	PoolNameAndType        PoolTag = 12
)

// PoolEntry is a single constant pool entry.
type PoolEntry struct {
	Owner      string // Class/member owner, or Utf8 text
	Name       string
	Descriptor string
	Constant   Constant
	Tag        PoolTag
}

// Pool assigns constant pool indices to the entries referenced by code.
// Equal entries share an index. Long and double entries take two indices.
type Pool struct {
	index   map[PoolEntry]uint16
	entries []PoolEntry
	next    int
}

// NewPool creates an empty Pool. The first index handed out is 1.
func NewPool() *Pool {
	return &Pool{index: make(map[PoolEntry]uint16), next: 1}
}

func (p *Pool) add(e PoolEntry, slots int) (uint16, error) {
	if idx, ok := p.index[e]; ok {
		return idx, nil
	}
	if p.next+slots-1 > math.MaxUint16 {
		return 0, errors.Overflow(errors.PhaseEncode, []string{"constant_pool"}, p.next+slots-1, "65535 entries")
	}
	idx := uint16(p.next)
	p.next += slots
	p.index[e] = idx
	p.entries = append(p.entries, e)
	return idx, nil
}

// Utf8 returns the index of a Utf8 entry. The text must fit in 65535
// bytes of modified UTF-8.
func (p *Pool) Utf8(s string) (uint16, error) {
	if n := modifiedUTF8Len(s); n > math.MaxUint16 {
		return 0, errors.Overflow(errors.PhaseEncode, []string{"utf8"}, n, "65535 bytes")
	}
	return p.add(PoolEntry{Tag: PoolUtf8, Owner: s}, 1)
}

// Class returns the index of a Class entry for the internal name.
func (p *Pool) Class(internalName string) (uint16, error) {
	if _, err := p.Utf8(internalName); err != nil {
		return 0, err
	}
	return p.add(PoolEntry{Tag: PoolClass, Owner: internalName}, 1)
}

func (p *Pool) nameAndType(name, descriptor string) (uint16, error) {
	if _, err := p.Utf8(name); err != nil {
		return 0, err
	}
	if _, err := p.Utf8(descriptor); err != nil {
		return 0, err
	}
	return p.add(PoolEntry{Tag: PoolNameAndType, Name: name, Descriptor: descriptor}, 1)
}

func (p *Pool) member(tag PoolTag, owner, name, descriptor string) (uint16, error) {
	if _, err := p.Class(owner); err != nil {
		return 0, err
	}
	if _, err := p.nameAndType(name, descriptor); err != nil {
		return 0, err
	}
	return p.add(PoolEntry{Tag: tag, Owner: owner, Name: name, Descriptor: descriptor}, 1)
}

// Field returns the index of a Fieldref entry.
func (p *Pool) Field(owner, name, descriptor string) (uint16, error) {
	return p.member(PoolFieldref, owner, name, descriptor)
}

// Method returns the index of a Methodref or InterfaceMethodref entry.
func (p *Pool) Method(owner, name, descriptor string, ownerIsInterface bool) (uint16, error) {
	tag := PoolMethodref
	if ownerIsInterface {
		tag = PoolInterfaceMethodref
	}
	return p.member(tag, owner, name, descriptor)
}

// Literal returns the index of the entry holding a loadable constant.
func (p *Pool) Literal(c Constant) (uint16, error) {
	switch c.Tag {
	case TagInt:
		return p.add(PoolEntry{Tag: PoolInteger, Constant: c}, 1)
	case TagFloat:
		return p.add(PoolEntry{Tag: PoolFloat, Constant: c}, 1)
	case TagLong:
		return p.add(PoolEntry{Tag: PoolLong, Constant: c}, 2)
	case TagDouble:
		return p.add(PoolEntry{Tag: PoolDouble, Constant: c}, 2)
	case TagString:
		if _, err := p.Utf8(c.Text); err != nil {
			return 0, err
		}
		return p.add(PoolEntry{Tag: PoolString, Constant: c}, 1)
	case TagClass:
		return p.Class(c.Text)
	default:
		return 0, errors.InvalidInput(errors.PhaseEncode, "constant without tag")
	}
}

// modifiedUTF8Len returns the class-file length of s: NUL takes two bytes
// and supplementary characters are stored as surrogate pairs.
func modifiedUTF8Len(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r == 0:
			n += 2
		case r < 0x80:
			n++
		case r < 0x800:
			n += 2
		case r < 0x10000:
			n += 3
		default:
			n += 6
		}
	}
	return n
}

// Entries returns the entries in index order.
func (p *Pool) Entries() []PoolEntry {
	return p.entries
}

// Count returns the constant_pool_count value: one more than the highest index.
func (p *Pool) Count() int {
	return p.next
}

// Encode lowers logical instructions into a code array, registering every
// referenced entry in pool.
func Encode(instrs []Instruction, pool *Pool) ([]byte, error) {
	var buf bytes.Buffer
	u16 := func(v uint16) {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], v)
		buf.Write(b[:])
	}

	for n, i := range instrs {
		switch i.Form {
		case FormInsn:
			buf.WriteByte(byte(i.Opcode))

		case FormInt:
			buf.WriteByte(byte(i.Opcode))
			switch i.Opcode {
			case SIPUSH:
				u16(uint16(int16(i.Operand)))
			default:
				buf.WriteByte(byte(int8(i.Operand)))
			}

		case FormVar:
			if i.Operand < 0 || i.Operand > math.MaxUint16 {
				return nil, errors.Overflow(errors.PhaseEncode, []string{"local"}, i.Operand, "65535")
			}
			if i.Operand > math.MaxUint8 {
				buf.WriteByte(byte(WIDE))
				buf.WriteByte(byte(i.Opcode))
				u16(uint16(i.Operand))
			} else {
				buf.WriteByte(byte(i.Opcode))
				buf.WriteByte(byte(i.Operand))
			}

		case FormIinc:
			if i.Operand < 0 || i.Operand > math.MaxUint16 {
				return nil, errors.Overflow(errors.PhaseEncode, []string{"local"}, i.Operand, "65535")
			}
			if i.Delta < math.MinInt16 || i.Delta > math.MaxInt16 {
				return nil, errors.Overflow(errors.PhaseEncode, []string{"iinc"}, i.Delta, "the int16 range")
			}
			if i.Operand > math.MaxUint8 || i.Delta < math.MinInt8 || i.Delta > math.MaxInt8 {
				buf.WriteByte(byte(WIDE))
				buf.WriteByte(byte(IINC))
				u16(uint16(i.Operand))
				u16(uint16(int16(i.Delta)))
			} else {
				buf.WriteByte(byte(IINC))
				buf.WriteByte(byte(i.Operand))
				buf.WriteByte(byte(int8(i.Delta)))
			}

		case FormType:
			idx, err := pool.Class(i.Owner)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(byte(i.Opcode))
			u16(idx)

		case FormField:
			idx, err := pool.Field(i.Owner, i.Name, i.Descriptor)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(byte(i.Opcode))
			u16(idx)

		case FormMethod:
			idx, err := pool.Method(i.Owner, i.Name, i.Descriptor, i.Interface)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(byte(i.Opcode))
			u16(idx)
			if i.Opcode == INVOKEINTERFACE {
				slots, err := argumentSlots(i.Descriptor)
				if err != nil {
					return nil, err
				}
				buf.WriteByte(byte(slots + 1))
				buf.WriteByte(0)
			}

		case FormLdc:
			idx, err := pool.Literal(i.Constant)
			if err != nil {
				return nil, err
			}
			switch {
			case i.Constant.Wide():
				buf.WriteByte(byte(LDC2_W))
				u16(idx)
			case idx > math.MaxUint8:
				buf.WriteByte(byte(LDC_W))
				u16(idx)
			default:
				buf.WriteByte(byte(LDC))
				buf.WriteByte(byte(idx))
			}

		default:
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path("instruction").
				Value(n).
				Detail("unknown instruction form %d", i.Form).
				Build()
		}
	}

	if buf.Len() > MaxCodeLength {
		return nil, errors.Overflow(errors.PhaseEncode, []string{"code"}, buf.Len(), "65535 bytes")
	}
	return buf.Bytes(), nil
}

// argumentSlots counts the operand stack slots taken by the parameters of a
// method descriptor.
func argumentSlots(descriptor string) (int, error) {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return 0, errors.InvalidDescriptor(descriptor, 0)
	}
	slots := 0
	for i := 1; i < len(descriptor); i++ {
		switch descriptor[i] {
		case ')':
			return slots, nil
		case 'J', 'D':
			slots += 2
		case 'L':
			for i < len(descriptor) && descriptor[i] != ';' {
				i++
			}
			slots++
		case '[':
			for i < len(descriptor) && descriptor[i] == '[' {
				i++
			}
			if i < len(descriptor) && descriptor[i] == 'L' {
				for i < len(descriptor) && descriptor[i] != ';' {
					i++
				}
			}
			slots++
		case 'Z', 'B', 'C', 'S', 'I', 'F':
			slots++
		default:
			return 0, errors.InvalidDescriptor(descriptor, i)
		}
	}
	return 0, errors.InvalidDescriptor(descriptor, len(descriptor))
}
