package recipe

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/classgen/assembly"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/implementation"
	"github.com/wippyai/classgen/stack"
	"github.com/wippyai/classgen/stack/constant"
)

// Plan is a recipe resolved against a type pool.
type Plan struct {
	Type    *descriptor.TypeDescription
	Fields  []*descriptor.FieldDescription
	Methods []PlannedMethod
}

// PlannedMethod pairs a method with its implementation.
type PlannedMethod struct {
	Method         *descriptor.MethodDescription
	Implementation implementation.Implementation
	Body           string
}

// Resolve defines the recipe's types in pool and resolves every field and
// method. Referenced types are defined in declaration order, so a type can
// only extend types declared before it.
func (r *Recipe) Resolve(pool *descriptor.TypePool) (*Plan, error) {
	for i, t := range r.Types {
		if _, err := defineType(pool, t); err != nil {
			return nil, withPath(err, "types", strconv.Itoa(i))
		}
	}
	typ, err := defineType(pool, r.Type)
	if err != nil {
		return nil, withPath(err, "type")
	}

	plan := &Plan{Type: typ}
	fields := make(map[string]*descriptor.FieldDescription, len(r.Fields))
	for i, f := range r.Fields {
		fd, err := resolveField(pool, typ, f)
		if err != nil {
			return nil, withPath(err, "fields", strconv.Itoa(i))
		}
		fields[f.Name] = fd
		plan.Fields = append(plan.Fields, fd)
	}

	for i, m := range r.Methods {
		pm, err := resolveMethod(pool, typ, fields, m)
		if err != nil {
			return nil, withPath(err, "methods", strconv.Itoa(i))
		}
		plan.Methods = append(plan.Methods, pm)
	}
	return plan, nil
}

// Assemble builds and records every planned method.
func (p *Plan) Assemble(asm *assembly.Assembler) ([]*assembly.Method, error) {
	out := make([]*assembly.Method, 0, len(p.Methods))
	for _, pm := range p.Methods {
		body, err := pm.Implementation.Body(pm.Method)
		if err != nil {
			return nil, err
		}
		m, err := asm.Record(pm.Method, body)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	Logger().Debug("assembled recipe",
		zap.Stringer("type", p.Type),
		zap.Int("methods", len(out)))
	return out, nil
}

func withPath(err error, path ...string) error {
	if e, ok := err.(*errors.Error); ok {
		cp := *e
		cp.Path = append(append([]string{}, path...), e.Path...)
		return &cp
	}
	return errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, strings.Join(path, "."))
}

func modifiers(names []string) (descriptor.Modifiers, error) {
	var mods descriptor.Modifiers
	for _, n := range names {
		m, ok := descriptor.ParseModifier(n)
		if !ok {
			return 0, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Path("modifiers").
				Value(n).
				Detail("unknown modifier %q", n).
				Build()
		}
		mods |= m
	}
	return mods, nil
}

func defineType(pool *descriptor.TypePool, t Type) (*descriptor.TypeDescription, error) {
	if t.Name == "" {
		return nil, errors.InvalidInput(errors.PhaseLoad, "type without name")
	}
	mods, err := modifiers(t.Modifiers)
	if err != nil {
		return nil, err
	}
	var itfs []*descriptor.TypeDescription
	for _, name := range t.Interfaces {
		itf, err := pool.Describe(name)
		if err != nil {
			return nil, err
		}
		if !itf.IsInterface() {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Type(itf.String()).
				Detail("implemented type is not an interface").
				Build()
		}
		itfs = append(itfs, itf)
	}

	name := strings.ReplaceAll(t.Name, ".", "/")
	var desc *descriptor.TypeDescription
	switch t.Kind {
	case "interface":
		desc = descriptor.NewInterface(name, mods, itfs...)
	case "class":
		super := descriptor.Object
		if t.Super != "" {
			if super, err = pool.Describe(t.Super); err != nil {
				return nil, err
			}
			if super.IsInterface() || super.IsPrimitive() || super.IsArray() {
				return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
					Type(super.String()).
					Detail("cannot extend %s", super).
					Build()
			}
		}
		desc = descriptor.NewClass(name, mods, super, itfs...)
	default:
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Value(t.Kind).
			Detail("unknown type kind %q", t.Kind).
			Build()
	}
	pool.Define(desc)
	return desc, nil
}

func resolveField(pool *descriptor.TypePool, owner *descriptor.TypeDescription, f Field) (*descriptor.FieldDescription, error) {
	typ, err := pool.Describe(f.Type)
	if err != nil {
		return nil, err
	}
	if typ.IsVoid() {
		return nil, errors.IllegalArgument(errors.PhaseLoad, "field %s cannot be void", f.Name)
	}
	mods, err := modifiers(f.Modifiers)
	if err != nil {
		return nil, err
	}
	return descriptor.NewField(owner, f.Name, mods, typ), nil
}

func resolveMethod(pool *descriptor.TypePool, owner *descriptor.TypeDescription, fields map[string]*descriptor.FieldDescription, m Method) (PlannedMethod, error) {
	ret, err := pool.Describe(m.Returns)
	if err != nil {
		return PlannedMethod{}, err
	}
	var params []*descriptor.TypeDescription
	for _, p := range m.Params {
		pt, err := pool.Describe(p)
		if err != nil {
			return PlannedMethod{}, err
		}
		if pt.IsVoid() {
			return PlannedMethod{}, errors.IllegalArgument(errors.PhaseLoad, "parameter of %s cannot be void", m.Name)
		}
		params = append(params, pt)
	}
	mods, err := modifiers(m.Modifiers)
	if err != nil {
		return PlannedMethod{}, err
	}

	var method *descriptor.MethodDescription
	if m.Name == descriptor.ConstructorName {
		method = descriptor.NewConstructor(owner, mods, params...)
	} else {
		method = descriptor.NewMethod(owner, m.Name, mods, ret, params...)
	}

	impl, err := implementationFor(pool, fields, m)
	if err != nil {
		return PlannedMethod{}, err
	}
	return PlannedMethod{Method: method, Implementation: impl, Body: m.Body}, nil
}

func implementationFor(pool *descriptor.TypePool, fields map[string]*descriptor.FieldDescription, m Method) (implementation.Implementation, error) {
	switch m.Body {
	case BodyStub:
		return implementation.Stub, nil
	case BodySuper:
		return implementation.SuperCall, nil
	case BodyArguments:
		return implementation.ArgumentArray, nil
	case BodyFixed:
		value, typ, err := fixedValue(pool, m.Value, m.ValueType)
		if err != nil {
			return nil, err
		}
		return implementation.FixedValue(value, typ), nil
	case BodyGetter, BodySetter:
		f, ok := fields[m.Field]
		if !ok {
			return nil, errors.NotFound(errors.PhaseLoad, "field", m.Field)
		}
		if m.Body == BodyGetter {
			return implementation.FieldGetter(f), nil
		}
		return implementation.FieldSetter(f), nil
	case BodyDelegate:
		target, err := parseTarget(pool, m.Target, m.TargetModifiers)
		if err != nil {
			return nil, err
		}
		return implementation.Delegate(target, m.Dynamic), nil
	case BodyThrow:
		name := m.Exception
		if name == "" {
			name = "java/lang/Throwable"
		}
		exception, err := pool.Describe(name)
		if err != nil {
			return nil, err
		}
		return implementation.Throwing(exception, m.Message), nil
	default:
		return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
			Path("body").
			Value(m.Body).
			Detail("unknown body %q", m.Body).
			Build()
	}
}

// parseTarget resolves "owner.name(descriptor)".
func parseTarget(pool *descriptor.TypePool, target string, mods []string) (*descriptor.MethodDescription, error) {
	open := strings.IndexByte(target, '(')
	if open < 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "delegate target needs a descriptor: "+target)
	}
	dot := strings.LastIndexByte(target[:open], '.')
	if dot <= 0 || dot == open-1 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "delegate target needs an owner and a name: "+target)
	}
	owner, err := pool.Describe(target[:dot])
	if err != nil {
		return nil, err
	}
	ret, params, err := pool.ParseMethod(target[open:])
	if err != nil {
		return nil, err
	}
	flags, err := modifiers(mods)
	if err != nil {
		return nil, err
	}
	if flags == 0 {
		flags = descriptor.AccPublic
	}
	return descriptor.NewMethod(owner, target[dot+1:open], flags, ret, params...), nil
}

// fixedValue turns a decoded TOML value into a constant and its type.
func fixedValue(pool *descriptor.TypePool, value any, typeName string) (stack.Manipulation, *descriptor.TypeDescription, error) {
	if typeName == "" {
		switch v := value.(type) {
		case int64:
			typeName = "int"
			if v < math.MinInt32 || v > math.MaxInt32 {
				typeName = "long"
			}
		case float64:
			typeName = "double"
		case bool:
			typeName = "boolean"
		case string:
			typeName = "java.lang.String"
		case nil:
			return nil, nil, errors.InvalidInput(errors.PhaseLoad, "fixed body needs a value")
		default:
			return nil, nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Value(value).
				Detail("unsupported fixed value %T", value).
				Build()
		}
	}
	typ, err := pool.Describe(typeName)
	if err != nil {
		return nil, nil, err
	}

	mismatch := func() error {
		return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Type(typ.String()).
			Value(value).
			Detail("value %v does not fit %s", value, typ).
			Build()
	}

	switch typ.Kind() {
	case descriptor.KindBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, nil, mismatch()
		}
		return constant.Bool(b), typ, nil
	case descriptor.KindByte, descriptor.KindShort, descriptor.KindChar, descriptor.KindInt:
		v, ok := value.(int64)
		if !ok || !fitsInt(typ.Kind(), v) {
			return nil, nil, mismatch()
		}
		return constant.Int(int32(v)), typ, nil
	case descriptor.KindLong:
		v, ok := value.(int64)
		if !ok {
			return nil, nil, mismatch()
		}
		return constant.Long(v), typ, nil
	case descriptor.KindFloat, descriptor.KindDouble:
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case int64:
			f = float64(v)
		default:
			return nil, nil, mismatch()
		}
		if typ.Kind() == descriptor.KindFloat {
			return constant.Float(float32(f)), typ, nil
		}
		return constant.Double(f), typ, nil
	case descriptor.KindReference:
		if s, ok := value.(string); ok && typ.IsAssignableFrom(descriptor.String) {
			return constant.Text(s), descriptor.String, nil
		}
		return nil, nil, mismatch()
	default:
		return nil, nil, mismatch()
	}
}

func fitsInt(k descriptor.Kind, v int64) bool {
	switch k {
	case descriptor.KindByte:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case descriptor.KindShort:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case descriptor.KindChar:
		return v >= 0 && v <= math.MaxUint16
	default:
		return v >= math.MinInt32 && v <= math.MaxInt32
	}
}
