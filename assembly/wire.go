package assembly

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/classgen/errors"
)

// Record is the serialized form of an assembled method.
type Record struct {
	Owner      string   `cbor:"1,keyasint"`
	Name       string   `cbor:"2,keyasint"`
	Descriptor string   `cbor:"3,keyasint"`
	Modifiers  uint16   `cbor:"4,keyasint"`
	MaxStack   int      `cbor:"5,keyasint"`
	MaxLocals  int      `cbor:"6,keyasint"`
	Code       []byte   `cbor:"7,keyasint,omitempty"`
	Listing    []string `cbor:"8,keyasint,omitempty"` // one instruction per entry
	Constants  []string `cbor:"9,keyasint,omitempty"` // pool literals in first-use order
}

// Bundle groups the methods assembled for one type.
type Bundle struct {
	Type    string   `cbor:"1,keyasint"`
	Methods []Record `cbor:"2,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("assembly: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Record returns the serialized form of m.
func (m *Method) Record() Record {
	r := Record{
		Owner:      m.Descriptor.DeclaringType().InternalName(),
		Name:       m.Descriptor.Name(),
		Descriptor: m.Descriptor.Descriptor(),
		Modifiers:  uint16(m.Descriptor.Modifiers()),
		MaxStack:   m.MaxStack,
		MaxLocals:  m.MaxLocals,
		Code:       m.Code,
	}
	for _, ins := range m.Instructions {
		r.Listing = append(r.Listing, ins.String())
	}
	for _, c := range m.Constants {
		r.Constants = append(r.Constants, c.String())
	}
	return r
}

// NewBundle collects the records of methods assembled for typeName.
func NewBundle(typeName string, methods []*Method) *Bundle {
	b := &Bundle{Type: typeName, Methods: make([]Record, 0, len(methods))}
	for _, m := range methods {
		b.Methods = append(b.Methods, m.Record())
	}
	return b
}

// MarshalBundle serializes a Bundle to canonical CBOR bytes.
func MarshalBundle(b *Bundle) ([]byte, error) {
	data, err := cborEncMode.Marshal(b)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal bundle")
	}
	return data, nil
}

// UnmarshalBundle deserializes a Bundle from CBOR bytes.
func UnmarshalBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := cbor.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "unmarshal bundle")
	}
	return &b, nil
}
