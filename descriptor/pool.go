package descriptor

import (
	"strings"
	"sync"

	"github.com/wippyai/classgen/errors"
)

var primitivesByName = map[string]*TypeDescription{
	"void":    Void,
	"boolean": Boolean,
	"byte":    Byte,
	"short":   Short,
	"char":    Char,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
}

var primitivesByDescriptor = map[byte]*TypeDescription{
	'V': Void,
	'Z': Boolean,
	'B': Byte,
	'S': Short,
	'C': Char,
	'I': Int,
	'J': Long,
	'F': Float,
	'D': Double,
}

// TypePool resolves type names to descriptions.
//
// The pool starts with the primitive types, java/lang/Object, String, Class,
// Number, Throwable, Cloneable, Serializable and the primitive wrappers.
// Safe for concurrent use.
type TypePool struct {
	types map[string]*TypeDescription
	mu    sync.RWMutex
}

// NewTypePool creates a pool with the built-in types.
func NewTypePool() *TypePool {
	p := &TypePool{types: make(map[string]*TypeDescription)}
	for _, t := range []*TypeDescription{Object, String, Class, Number, Throwable, Cloneable, Serializable} {
		p.types[t.name] = t
	}
	for _, w := range wrappers {
		p.types[w.name] = w
	}
	return p
}

// Define adds or replaces a reference type.
func (p *TypePool) Define(t *TypeDescription) {
	p.mu.Lock()
	p.types[t.name] = t
	p.mu.Unlock()
}

// Lookup returns a defined reference type by internal name.
func (p *TypePool) Lookup(internalName string) (*TypeDescription, bool) {
	p.mu.RLock()
	t, ok := p.types[internalName]
	p.mu.RUnlock()
	return t, ok
}

// Describe resolves a primitive keyword ("int"), a source name
// ("java.lang.String", "int[]"), an internal name ("java/lang/String") or a
// field descriptor ("I", "[J", "Ljava/lang/String;").
func (p *TypePool) Describe(name string) (*TypeDescription, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseDescribe, "empty type name")
	}
	if t, ok := primitivesByName[name]; ok {
		return t, nil
	}
	if strings.HasSuffix(name, "[]") {
		component, err := p.Describe(strings.TrimSuffix(name, "[]"))
		if err != nil {
			return nil, err
		}
		if component.IsVoid() {
			return nil, errors.IllegalArgument(errors.PhaseDescribe, "array of void")
		}
		return ArrayOf(component), nil
	}
	if len(name) == 1 {
		if t, ok := primitivesByDescriptor[name[0]]; ok {
			return t, nil
		}
	}
	if name[0] == '[' {
		return p.ParseField(name)
	}
	if name[0] == 'L' && name[len(name)-1] == ';' {
		if t, err := p.ParseField(name); err == nil {
			return t, nil
		}
	}
	internal := strings.ReplaceAll(name, ".", "/")
	if t, ok := p.Lookup(internal); ok {
		return t, nil
	}
	return nil, errors.NotFound(errors.PhaseDescribe, "type", internal)
}

// ParseField parses a field descriptor.
func (p *TypePool) ParseField(descriptor string) (*TypeDescription, error) {
	t, n, err := p.parseType(descriptor, 0)
	if err != nil {
		return nil, err
	}
	if n != len(descriptor) {
		return nil, errors.InvalidDescriptor(descriptor, n)
	}
	return t, nil
}

// ParseMethod parses a method descriptor into its return and parameter types.
func (p *TypePool) ParseMethod(descriptor string) (*TypeDescription, []*TypeDescription, error) {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return nil, nil, errors.InvalidDescriptor(descriptor, 0)
	}
	var params []*TypeDescription
	i := 1
	for {
		if i >= len(descriptor) {
			return nil, nil, errors.InvalidDescriptor(descriptor, i)
		}
		if descriptor[i] == ')' {
			i++
			break
		}
		t, next, err := p.parseType(descriptor, i)
		if err != nil {
			return nil, nil, err
		}
		if t.IsVoid() {
			return nil, nil, errors.InvalidDescriptor(descriptor, i)
		}
		params = append(params, t)
		i = next
	}
	ret, next, err := p.parseType(descriptor, i)
	if err != nil {
		return nil, nil, err
	}
	if next != len(descriptor) {
		return nil, nil, errors.InvalidDescriptor(descriptor, next)
	}
	return ret, params, nil
}

func (p *TypePool) parseType(descriptor string, i int) (*TypeDescription, int, error) {
	if i >= len(descriptor) {
		return nil, i, errors.InvalidDescriptor(descriptor, i)
	}
	c := descriptor[i]
	if t, ok := primitivesByDescriptor[c]; ok {
		return t, i + 1, nil
	}
	switch c {
	case '[':
		component, next, err := p.parseType(descriptor, i+1)
		if err != nil {
			return nil, next, err
		}
		if component.IsVoid() {
			return nil, i, errors.InvalidDescriptor(descriptor, i+1)
		}
		return ArrayOf(component), next, nil
	case 'L':
		end := strings.IndexByte(descriptor[i:], ';')
		if end <= 1 {
			return nil, i, errors.InvalidDescriptor(descriptor, i)
		}
		name := descriptor[i+1 : i+end]
		t, ok := p.Lookup(name)
		if !ok {
			return nil, i, errors.New(errors.PhaseDescribe, errors.KindNotFound).
				Type(name).
				Detail("referenced by descriptor %q", descriptor).
				Build()
		}
		return t, i + end + 1, nil
	default:
		return nil, i, errors.InvalidDescriptor(descriptor, i)
	}
}
