// Package assembly applies method bodies built from stack manipulations and
// computes the frame sizes a method needs.
//
// Basic usage:
//
//	asm := assembly.New()
//	m, err := asm.Record(method, stack.Compose(
//		member.LoadAllArguments(method),
//		inv,
//		member.Return(method.ReturnType()),
//	))
//	if err != nil {
//		return err
//	}
//	fmt.Println(m.MaxStack, m.MaxLocals, len(m.Code))
//
// # Validity
//
// Assemble rejects invalid bodies before anything is emitted. Stack and
// local limits from Config are checked after emission and reported as
// overflow errors.
//
// # Logging
//
// The package logs through a zap logger that defaults to a no-op; install
// one with SetLogger.
package assembly
