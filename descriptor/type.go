package descriptor

import (
	"strings"

	"github.com/wippyai/classgen/stack"
)

// TypeDescription is a read-only description of a primitive, class,
// interface or array type.
//
// Reference types are identified by their internal name ("java/lang/Object").
// Two descriptions denote the same type iff Equal reports true; pointer
// identity is not required.
type TypeDescription struct {
	superClass *TypeDescription
	component  *TypeDescription
	name       string
	interfaces []*TypeDescription
	modifiers  Modifiers
	kind       Kind
}

func primitive(k Kind) *TypeDescription {
	return &TypeDescription{name: k.String(), kind: k, modifiers: AccPublic | AccFinal | AccAbstract}
}

// Primitive and void types.
var (
	Void    = primitive(KindVoid)
	Boolean = primitive(KindBoolean)
	Byte    = primitive(KindByte)
	Short   = primitive(KindShort)
	Char    = primitive(KindChar)
	Int     = primitive(KindInt)
	Long    = primitive(KindLong)
	Float   = primitive(KindFloat)
	Double  = primitive(KindDouble)
)

// Well-known reference types.
var (
	Object       = &TypeDescription{name: "java/lang/Object", kind: KindReference, modifiers: AccPublic}
	Cloneable    = NewInterface("java/lang/Cloneable", AccPublic)
	Serializable = NewInterface("java/io/Serializable", AccPublic)
	String       = NewClass("java/lang/String", AccPublic|AccFinal, Object, Serializable)
	Number       = NewClass("java/lang/Number", AccPublic|AccAbstract, Object, Serializable)
	Throwable    = NewClass("java/lang/Throwable", AccPublic, Object, Serializable)
	Class        = NewClass("java/lang/Class", AccPublic|AccFinal, Object, Serializable)
)

// Primitive returns the description of a primitive or void kind.
func Primitive(k Kind) *TypeDescription {
	switch k {
	case KindVoid:
		return Void
	case KindBoolean:
		return Boolean
	case KindByte:
		return Byte
	case KindShort:
		return Short
	case KindChar:
		return Char
	case KindInt:
		return Int
	case KindLong:
		return Long
	case KindFloat:
		return Float
	case KindDouble:
		return Double
	default:
		return nil
	}
}

// NewClass describes a class type. A nil superClass means the type has no
// super class, which only holds for java/lang/Object.
func NewClass(name string, modifiers Modifiers, superClass *TypeDescription, interfaces ...*TypeDescription) *TypeDescription {
	return &TypeDescription{
		name:       name,
		kind:       KindReference,
		modifiers:  modifiers &^ AccInterface,
		superClass: superClass,
		interfaces: interfaces,
	}
}

// NewInterface describes an interface type.
func NewInterface(name string, modifiers Modifiers, interfaces ...*TypeDescription) *TypeDescription {
	return &TypeDescription{
		name:       name,
		kind:       KindReference,
		modifiers:  modifiers | AccInterface | AccAbstract,
		superClass: Object,
		interfaces: interfaces,
	}
}

// ArrayOf describes an array with the given component type.
func ArrayOf(component *TypeDescription) *TypeDescription {
	return &TypeDescription{
		name:       "[" + component.Descriptor(),
		kind:       KindReference,
		modifiers:  AccPublic | AccFinal | AccAbstract,
		superClass: Object,
		interfaces: []*TypeDescription{Cloneable, Serializable},
		component:  component,
	}
}

// Name returns the internal name of a reference type or the keyword of a
// primitive type. Array names are their descriptors.
func (t *TypeDescription) Name() string { return t.name }

// Kind returns the stack representation kind.
func (t *TypeDescription) Kind() Kind { return t.kind }

// Modifiers returns the access flags.
func (t *TypeDescription) Modifiers() Modifiers { return t.modifiers }

// SuperClass returns the super class, or nil.
func (t *TypeDescription) SuperClass() *TypeDescription { return t.superClass }

// Interfaces returns the directly implemented interfaces.
func (t *TypeDescription) Interfaces() []*TypeDescription { return t.interfaces }

// Component returns the component type of an array, or nil.
func (t *TypeDescription) Component() *TypeDescription { return t.component }

// IsPrimitive reports whether t is a primitive value type. Void is not.
func (t *TypeDescription) IsPrimitive() bool { return t.kind.IsPrimitive() }

// IsVoid reports whether t is void.
func (t *TypeDescription) IsVoid() bool { return t.kind == KindVoid }

// IsArray reports whether t is an array type.
func (t *TypeDescription) IsArray() bool { return t.component != nil }

// IsInterface reports whether t is an interface type.
func (t *TypeDescription) IsInterface() bool { return t.modifiers.Has(AccInterface) }

// IsAbstract reports whether t is abstract.
func (t *TypeDescription) IsAbstract() bool { return t.modifiers.Has(AccAbstract) }

// StackSize returns the slot size of a value of this type.
func (t *TypeDescription) StackSize() stack.ValueSize { return t.kind.StackSize() }

// Descriptor returns the field descriptor of the type.
func (t *TypeDescription) Descriptor() string {
	switch {
	case t.kind != KindReference:
		return string(t.kind.Descriptor())
	case t.component != nil:
		return t.name
	default:
		return "L" + t.name + ";"
	}
}

// InternalName returns the name used in type instructions: the internal
// name for classes, the descriptor for arrays.
func (t *TypeDescription) InternalName() string { return t.name }

// Equal reports whether both descriptions denote the same type.
func (t *TypeDescription) Equal(other *TypeDescription) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.kind == other.kind && t.name == other.name
}

// Represents reports whether t is the reference type with the given
// internal name.
func (t *TypeDescription) Represents(internalName string) bool {
	return t.kind == KindReference && t.name == internalName
}

// IsAssignableFrom reports whether a value of type other can be assigned to
// a variable of type t without conversion. Only the locally described
// hierarchy is consulted.
func (t *TypeDescription) IsAssignableFrom(other *TypeDescription) bool {
	if t.Equal(other) {
		return true
	}
	if t.kind != KindReference || other.kind != KindReference {
		return false
	}
	if t.Equal(Object) {
		return true
	}
	if other.IsArray() {
		if t.IsArray() {
			if t.component.IsPrimitive() || other.component.IsPrimitive() {
				return t.component.Equal(other.component)
			}
			return t.component.IsAssignableFrom(other.component)
		}
		return t.Equal(Cloneable) || t.Equal(Serializable)
	}
	return t.isSuperTypeOf(other, make(map[string]bool))
}

func (t *TypeDescription) isSuperTypeOf(other *TypeDescription, visited map[string]bool) bool {
	if other == nil || visited[other.name] {
		return false
	}
	visited[other.name] = true
	if t.Equal(other) {
		return true
	}
	if t.isSuperTypeOf(other.superClass, visited) {
		return true
	}
	for _, itf := range other.interfaces {
		if t.isSuperTypeOf(itf, visited) {
			return true
		}
	}
	return false
}

// IsAssignableTo reports whether a value of type t can be assigned to a
// variable of type other.
func (t *TypeDescription) IsAssignableTo(other *TypeDescription) bool {
	return other.IsAssignableFrom(t)
}

// String returns the source-level spelling of the type.
func (t *TypeDescription) String() string {
	if t.component != nil {
		return t.component.String() + "[]"
	}
	return strings.ReplaceAll(t.name, "/", ".")
}
