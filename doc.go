// Package classgen assembles method bodies for an operand-stack virtual
// machine from composable stack manipulations.
//
// Every manipulation emits logical instructions to a sink and reports its
// static effect on the operand stack, so a method body knows its maximum
// stack depth without running a verifier.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	classgen/            Root package: load, resolve and assemble a recipe in one call
//	├── errors/          Structured error types with phase and kind
//	├── bytecode/        Opcodes, the Sink interface, Recorder and code-array encoder
//	├── stack/           Size model, Manipulation, compounds, dup/pop/athrow
//	│   ├── primitive/   Widening table, boxing and unboxing
//	│   ├── assign/      Casts and the combined assigner
//	│   ├── member/      Fields, invocations, locals, returns, object creation
//	│   ├── collection/  Array creation and element access
//	│   └── constant/    Numeric, text, null and class constants
//	├── descriptor/      Read-only type, field and method descriptions
//	├── assembly/        Assembler computing max stack and max locals, CBOR export
//	├── implementation/  Ready-made method bodies
//	├── recipe/          TOML recipes resolved into method plans
//	└── cmd/stackasm/    CLI and interactive browser
//
// # Quick Start
//
// Build a method body by hand:
//
//	calc := descriptor.NewClass("com/example/Calc", descriptor.AccPublic, descriptor.Object)
//	add := descriptor.NewMethod(calc, "add", descriptor.AccPublic|descriptor.AccStatic,
//		descriptor.Long, descriptor.Long, descriptor.Long)
//	body := stack.Compose(member.LoadAllArguments(add), stack.Pop(stack.Double), member.Return(descriptor.Long))
//	m, err := assembly.New().Record(add, body)
//	// m.MaxStack == 4, m.MaxLocals == 4
//
// Or assemble a whole recipe:
//
//	out, err := classgen.Build("counter.toml", nil)
//	data, err := assembly.MarshalBundle(out.Bundle())
//
// # Error Handling
//
// Construction errors are *errors.Error values carrying a phase and a kind:
//
//	_, err := member.VariableFor(descriptor.Void)
//	stderrors.Is(err, errors.ErrIllegalArgument) // true
//
// Whether a manipulation can be emitted at all is reported by IsValid;
// applying an invalid manipulation panics.
package classgen
