package implementation

import (
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/stack"
	"github.com/wippyai/classgen/stack/assign"
	"github.com/wippyai/classgen/stack/collection"
	"github.com/wippyai/classgen/stack/constant"
	"github.com/wippyai/classgen/stack/member"
)

// Implementation builds the body of a method.
type Implementation interface {
	Body(method *descriptor.MethodDescription) (stack.Manipulation, error)
}

// Func adapts a function to Implementation.
type Func func(method *descriptor.MethodDescription) (stack.Manipulation, error)

func (f Func) Body(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	return f(method)
}

func notAssignable(method *descriptor.MethodDescription, from, to *descriptor.TypeDescription) error {
	return errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
		Member(method.String()).
		Type(from.String()).
		Detail("cannot assign %s to %s", from, to).
		Build()
}

// returning converts a value of type t to the method's return type and
// returns it.
func returning(method *descriptor.MethodDescription, t *descriptor.TypeDescription, dynamic bool) (stack.Manipulation, error) {
	conv := assign.Assign(t, method.ReturnType(), dynamic)
	if !conv.IsValid() {
		return nil, notAssignable(method, t, method.ReturnType())
	}
	return stack.Compose(conv, member.Return(method.ReturnType())), nil
}

// Stub returns the default value of the return type.
var Stub Implementation = Func(func(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	return stack.Compose(
		constant.DefaultValue(method.ReturnType()),
		member.Return(method.ReturnType()),
	), nil
})

type fixedValue struct {
	value     stack.Manipulation
	valueType *descriptor.TypeDescription
}

// FixedValue returns the value pushed by value, which is of type valueType.
// Primitive values are widened or boxed to the return type.
func FixedValue(value stack.Manipulation, valueType *descriptor.TypeDescription) Implementation {
	return fixedValue{value: value, valueType: valueType}
}

func (f fixedValue) Body(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	ret, err := returning(method, f.valueType, false)
	if err != nil {
		return nil, err
	}
	return stack.Compose(f.value, ret), nil
}

type throwing struct {
	exception *descriptor.TypeDescription
	message   string
}

// Throwing throws a new instance of exception. A non-empty message is passed
// to the (Ljava/lang/String;)V constructor, otherwise the no-argument
// constructor is used.
func Throwing(exception *descriptor.TypeDescription, message string) Implementation {
	return throwing{exception: exception, message: message}
}

func (t throwing) Body(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	if !descriptor.Throwable.IsAssignableFrom(t.exception) {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(method.String()).
			Type(t.exception.String()).
			Detail("not a throwable type").
			Build()
	}
	var ctor *descriptor.MethodDescription
	var args stack.Manipulation = stack.Trivial
	if t.message != "" {
		ctor = descriptor.NewConstructor(t.exception, descriptor.AccPublic, descriptor.String)
		args = constant.Text(t.message)
	} else {
		ctor = descriptor.NewConstructor(t.exception, descriptor.AccPublic)
	}
	init, err := member.Invoke(ctor)
	if err != nil {
		return nil, err
	}
	return stack.Compose(
		member.New(t.exception),
		stack.DupSingle,
		args,
		init,
		stack.Throw,
	), nil
}

// SuperCall invokes the overridden method of the super class with the same
// arguments and returns its result.
var SuperCall Implementation = Func(func(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	if method.IsStatic() {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalState).
			Member(method.String()).
			Detail("static methods have no super call").
			Build()
	}
	if method.IsPrivate() {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalState).
			Member(method.String()).
			Detail("private methods have no super call").
			Build()
	}
	super := method.DeclaringType().SuperClass()
	if super == nil {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalState).
			Member(method.String()).
			Detail("declaring type has no super class").
			Build()
	}
	target := descriptor.NewMethod(super, method.Name(), method.Modifiers()&^descriptor.AccAbstract,
		method.ReturnType(), method.Parameters()...)
	inv, err := member.Invoke(target)
	if err != nil {
		return nil, err
	}
	call, err := inv.Special(super)
	if err != nil {
		return nil, err
	}
	return stack.Compose(
		member.LoadAllArguments(method),
		call,
		member.Return(method.ReturnType()),
	), nil
})

type delegate struct {
	target  *descriptor.MethodDescription
	dynamic bool
}

// Delegate passes the arguments to target and returns its result. Arguments
// and the result are converted with assign.Assign; dynamic allows casts.
// An instance target is invoked on the receiver of the implemented method.
func Delegate(target *descriptor.MethodDescription, dynamic bool) Implementation {
	return delegate{target: target, dynamic: dynamic}
}

func (d delegate) Body(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	params, targetParams := method.Parameters(), d.target.Parameters()
	if len(params) != len(targetParams) {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(method.String()).
			Detail("%s takes %d arguments, got %d", d.target, len(targetParams), len(params)).
			Build()
	}

	inv, err := member.Invoke(d.target)
	if err != nil {
		return nil, err
	}

	steps := make([]stack.Manipulation, 0, 2*len(params)+4)
	if !d.target.IsStatic() {
		if method.IsStatic() {
			return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalState).
				Member(method.String()).
				Detail("static method cannot delegate to instance method %s", d.target).
				Build()
		}
		steps = append(steps, member.LoadThis(),
			assign.Assign(method.DeclaringType(), d.target.DeclaringType(), d.dynamic))
	}
	for i, p := range params {
		load, err := member.LoadParameter(method, i)
		if err != nil {
			return nil, err
		}
		conv := assign.Assign(p, targetParams[i], d.dynamic)
		if !conv.IsValid() {
			return nil, notAssignable(method, p, targetParams[i])
		}
		steps = append(steps, load, conv)
	}
	ret, err := returning(method, d.target.ReturnType(), d.dynamic)
	if err != nil {
		return nil, err
	}
	body := stack.Compose(append(steps, inv, ret)...)
	if !body.IsValid() {
		return nil, notAssignable(method, method.DeclaringType(), d.target.DeclaringType())
	}
	return body, nil
}

type fieldGetter struct {
	field *descriptor.FieldDescription
}

// FieldGetter returns the value of field.
func FieldGetter(field *descriptor.FieldDescription) Implementation {
	return fieldGetter{field: field}
}

func (f fieldGetter) Body(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	receiver, err := fieldReceiver(method, f.field)
	if err != nil {
		return nil, err
	}
	ret, err := returning(method, f.field.Type(), false)
	if err != nil {
		return nil, err
	}
	return stack.Compose(receiver, member.ForField(f.field).Read(), ret), nil
}

type fieldSetter struct {
	field *descriptor.FieldDescription
}

// FieldSetter stores the single argument into field. The method returns
// nothing or the default value of its return type.
func FieldSetter(field *descriptor.FieldDescription) Implementation {
	return fieldSetter{field: field}
}

func (f fieldSetter) Body(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	if len(method.Parameters()) != 1 {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalArgument).
			Member(method.String()).
			Detail("setter takes exactly one argument").
			Build()
	}
	receiver, err := fieldReceiver(method, f.field)
	if err != nil {
		return nil, err
	}
	load, err := member.LoadParameter(method, 0)
	if err != nil {
		return nil, err
	}
	conv := assign.Assign(method.Parameters()[0], f.field.Type(), false)
	if !conv.IsValid() {
		return nil, notAssignable(method, method.Parameters()[0], f.field.Type())
	}
	return stack.Compose(
		receiver,
		load,
		conv,
		member.ForField(f.field).Write(),
		constant.DefaultValue(method.ReturnType()),
		member.Return(method.ReturnType()),
	), nil
}

func fieldReceiver(method *descriptor.MethodDescription, field *descriptor.FieldDescription) (stack.Manipulation, error) {
	if field.IsStatic() {
		return stack.Trivial, nil
	}
	if method.IsStatic() || !field.DeclaringType().IsAssignableFrom(method.DeclaringType()) {
		return nil, errors.New(errors.PhaseAssemble, errors.KindIllegalState).
			Member(method.String()).
			Detail("instance field %s is not accessible from %s", field, method).
			Build()
	}
	return member.LoadThis(), nil
}

// ArgumentArray returns all arguments boxed into an Object[].
var ArgumentArray Implementation = Func(func(method *descriptor.MethodDescription) (stack.Manipulation, error) {
	factory, err := collection.ForElementType(descriptor.Object)
	if err != nil {
		return nil, err
	}
	values := make([]stack.Manipulation, 0, len(method.Parameters()))
	for i, p := range method.Parameters() {
		load, err := member.LoadParameter(method, i)
		if err != nil {
			return nil, err
		}
		values = append(values, stack.Compose(load, assign.Assign(p, descriptor.Object, false)))
	}
	ret, err := returning(method, factory.ArrayType(), false)
	if err != nil {
		return nil, err
	}
	return stack.Compose(factory.WithValues(values...), ret), nil
})
