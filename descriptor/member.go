package descriptor

import "strings"

// Names of the special methods.
const (
	ConstructorName     = "<init>"
	TypeInitializerName = "<clinit>"
)

// FieldDescription is a read-only description of a field.
type FieldDescription struct {
	declaringType *TypeDescription
	fieldType     *TypeDescription
	name          string
	modifiers     Modifiers
}

// NewField describes a field declared on declaringType.
func NewField(declaringType *TypeDescription, name string, modifiers Modifiers, fieldType *TypeDescription) *FieldDescription {
	return &FieldDescription{
		declaringType: declaringType,
		fieldType:     fieldType,
		name:          name,
		modifiers:     modifiers,
	}
}

func (f *FieldDescription) DeclaringType() *TypeDescription { return f.declaringType }
func (f *FieldDescription) Type() *TypeDescription          { return f.fieldType }
func (f *FieldDescription) Name() string                    { return f.name }
func (f *FieldDescription) Modifiers() Modifiers            { return f.modifiers }
func (f *FieldDescription) IsStatic() bool                  { return f.modifiers.Has(AccStatic) }
func (f *FieldDescription) IsFinal() bool                   { return f.modifiers.Has(AccFinal) }

// Descriptor returns the field descriptor.
func (f *FieldDescription) Descriptor() string { return f.fieldType.Descriptor() }

func (f *FieldDescription) String() string {
	return f.declaringType.InternalName() + "." + f.name + ":" + f.Descriptor()
}

// MethodDescription is a read-only description of a method, constructor or
// type initializer.
type MethodDescription struct {
	declaringType *TypeDescription
	returnType    *TypeDescription
	name          string
	parameters    []*TypeDescription
	modifiers     Modifiers
}

// NewMethod describes a method declared on declaringType.
func NewMethod(declaringType *TypeDescription, name string, modifiers Modifiers, returnType *TypeDescription, parameters ...*TypeDescription) *MethodDescription {
	return &MethodDescription{
		declaringType: declaringType,
		returnType:    returnType,
		name:          name,
		parameters:    parameters,
		modifiers:     modifiers,
	}
}

// NewConstructor describes a constructor declared on declaringType.
func NewConstructor(declaringType *TypeDescription, modifiers Modifiers, parameters ...*TypeDescription) *MethodDescription {
	return NewMethod(declaringType, ConstructorName, modifiers&^AccStatic, Void, parameters...)
}

func (m *MethodDescription) DeclaringType() *TypeDescription { return m.declaringType }
func (m *MethodDescription) ReturnType() *TypeDescription    { return m.returnType }
func (m *MethodDescription) Name() string                    { return m.name }
func (m *MethodDescription) Parameters() []*TypeDescription  { return m.parameters }
func (m *MethodDescription) Modifiers() Modifiers            { return m.modifiers }
func (m *MethodDescription) IsStatic() bool                  { return m.modifiers.Has(AccStatic) }
func (m *MethodDescription) IsPrivate() bool                 { return m.modifiers.Has(AccPrivate) }
func (m *MethodDescription) IsAbstract() bool                { return m.modifiers.Has(AccAbstract) }
func (m *MethodDescription) IsConstructor() bool             { return m.name == ConstructorName }
func (m *MethodDescription) IsTypeInitializer() bool         { return m.name == TypeInitializerName }

// Descriptor returns the method descriptor, e.g. "(IJ)V".
func (m *MethodDescription) Descriptor() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range m.parameters {
		b.WriteString(p.Descriptor())
	}
	b.WriteByte(')')
	b.WriteString(m.returnType.Descriptor())
	return b.String()
}

// ParameterSize returns the slots taken by the declared parameters.
func (m *MethodDescription) ParameterSize() int {
	n := 0
	for _, p := range m.parameters {
		n += p.StackSize().Slots()
	}
	return n
}

// StackSize returns the slots consumed by invoking the method: the declared
// parameters plus the receiver for non-static methods.
func (m *MethodDescription) StackSize() int {
	if m.IsStatic() {
		return m.ParameterSize()
	}
	return m.ParameterSize() + 1
}

// ParameterOffset returns the local variable slot of parameter i.
func (m *MethodDescription) ParameterOffset(i int) int {
	offset := 0
	if !m.IsStatic() {
		offset = 1
	}
	for _, p := range m.parameters[:i] {
		offset += p.StackSize().Slots()
	}
	return offset
}

func (m *MethodDescription) String() string {
	return m.declaringType.InternalName() + "." + m.name + m.Descriptor()
}
