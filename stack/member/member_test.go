package member

import (
	"testing"

	"github.com/wippyai/classgen/bytecode"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/stack"
)

var (
	shape    = descriptor.NewInterface("com/example/Shape", descriptor.AccPublic)
	base     = descriptor.NewClass("com/example/Base", descriptor.AccPublic, descriptor.Object, shape)
	derived  = descriptor.NewClass("com/example/Derived", descriptor.AccPublic, base)
	abstract = descriptor.NewClass("com/example/Abstract", descriptor.AccPublic|descriptor.AccAbstract, descriptor.Object)
)

func errorKind(t *testing.T, err error) errors.Kind {
	t.Helper()
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error type %T: %v", err, err)
	}
	return e.Kind
}

func TestFieldAccess(t *testing.T) {
	tests := []struct {
		name  string
		field *descriptor.FieldDescription
		read  stack.Size
		write stack.Size
		get   bytecode.Opcode
		put   bytecode.Opcode
	}{
		{
			name:  "static int",
			field: descriptor.NewField(base, "count", descriptor.AccStatic, descriptor.Int),
			read:  stack.Size{Net: 1, Max: 1},
			write: stack.Size{Net: -1},
			get:   bytecode.GETSTATIC,
			put:   bytecode.PUTSTATIC,
		},
		{
			name:  "static long",
			field: descriptor.NewField(base, "total", descriptor.AccStatic, descriptor.Long),
			read:  stack.Size{Net: 2, Max: 2},
			write: stack.Size{Net: -2},
			get:   bytecode.GETSTATIC,
			put:   bytecode.PUTSTATIC,
		},
		{
			name:  "instance int",
			field: descriptor.NewField(base, "x", descriptor.AccPrivate, descriptor.Int),
			read:  stack.Size{},
			write: stack.Size{Net: -2},
			get:   bytecode.GETFIELD,
			put:   bytecode.PUTFIELD,
		},
		{
			name:  "instance double",
			field: descriptor.NewField(base, "d", descriptor.AccPrivate, descriptor.Double),
			read:  stack.Size{Net: 1, Max: 1},
			write: stack.Size{Net: -3},
			get:   bytecode.GETFIELD,
			put:   bytecode.PUTFIELD,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bytecode.NewRecorder()
			access := ForField(tt.field)
			if got := access.Read().Apply(rec); got != tt.read {
				t.Errorf("Read size = %v, want %v", got, tt.read)
			}
			if got := access.Write().Apply(rec); got != tt.write {
				t.Errorf("Write size = %v, want %v", got, tt.write)
			}
			ins := rec.Instructions()
			if ins[0].Opcode != tt.get || ins[1].Opcode != tt.put {
				t.Errorf("emitted %v", rec.Opcodes())
			}
			if ins[0].Owner != "com/example/Base" || ins[0].Name != tt.field.Name() || ins[0].Descriptor != tt.field.Descriptor() {
				t.Errorf("field insn = %v", ins[0])
			}
		})
	}
}

func TestInvokeModes(t *testing.T) {
	tests := []struct {
		name   string
		method *descriptor.MethodDescription
		want   Mode
	}{
		{"static", descriptor.NewMethod(base, "of", descriptor.AccStatic, base), ModeStatic},
		{"static private", descriptor.NewMethod(base, "helper", descriptor.AccStatic|descriptor.AccPrivate, descriptor.Void), ModeStatic},
		{"private", descriptor.NewMethod(base, "secret", descriptor.AccPrivate, descriptor.Int), ModeSpecial},
		{"constructor", descriptor.NewConstructor(base, descriptor.AccPublic), ModeSpecial},
		{"interface", descriptor.NewMethod(shape, "area", descriptor.AccPublic|descriptor.AccAbstract, descriptor.Double), ModeInterface},
		{"virtual", descriptor.NewMethod(base, "area", descriptor.AccPublic, descriptor.Double), ModeVirtual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Invoke(tt.method)
			if err != nil {
				t.Fatal(err)
			}
			if inv.Mode() != tt.want {
				t.Errorf("Mode() = %v, want %v", inv.Mode(), tt.want)
			}
			rec := bytecode.NewRecorder()
			inv.Apply(rec)
			if ops := rec.Opcodes(); len(ops) != 1 || ops[0] != tt.want.Opcode() {
				t.Errorf("emitted %v", ops)
			}
		})
	}
}

func TestInvokeTypeInitializer(t *testing.T) {
	clinit := descriptor.NewMethod(base, descriptor.TypeInitializerName, descriptor.AccStatic, descriptor.Void)
	_, err := Invoke(clinit)
	if err == nil {
		t.Fatal("expected error")
	}
	if k := errorKind(t, err); k != errors.KindIllegalArgument {
		t.Errorf("Kind = %v", k)
	}
}

func TestInvocationSize(t *testing.T) {
	tests := []struct {
		name   string
		method *descriptor.MethodDescription
		want   stack.Size
	}{
		{"static ()V", descriptor.NewMethod(base, "run", descriptor.AccStatic, descriptor.Void), stack.Size{}},
		{"static ()J", descriptor.NewMethod(base, "now", descriptor.AccStatic, descriptor.Long), stack.Size{Net: 2, Max: 2}},
		{"static (JJ)J", descriptor.NewMethod(base, "add", descriptor.AccStatic, descriptor.Long, descriptor.Long, descriptor.Long), stack.Size{Net: -2}},
		{"virtual ()I", descriptor.NewMethod(base, "size", descriptor.AccPublic, descriptor.Int), stack.Size{}},
		{"virtual ()J", descriptor.NewMethod(base, "id", descriptor.AccPublic, descriptor.Long), stack.Size{Net: 1, Max: 1}},
		{"virtual (ID)V", descriptor.NewMethod(base, "set", descriptor.AccPublic, descriptor.Void, descriptor.Int, descriptor.Double), stack.Size{Net: -4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Invoke(tt.method)
			if err != nil {
				t.Fatal(err)
			}
			if got := inv.Apply(bytecode.NewRecorder()); got != tt.want {
				t.Errorf("size = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetargetPrivate(t *testing.T) {
	secret := descriptor.NewMethod(base, "secret", descriptor.AccPrivate, descriptor.Void)
	inv, err := Invoke(secret)
	if err != nil {
		t.Fatal(err)
	}

	m, err := inv.Retarget(ModeSpecial, base)
	if err != nil {
		t.Fatalf("special on declaring type: %v", err)
	}
	if got := m.(*Invocation); got.Mode() != ModeSpecial || !got.Target().Equal(base) {
		t.Errorf("got %v", got)
	}

	if _, err := inv.Retarget(ModeSpecial, derived); err == nil || errorKind(t, err) != errors.KindIllegalArgument {
		t.Errorf("special on subtype: %v", err)
	}
	for _, target := range []*descriptor.TypeDescription{base, derived} {
		if _, err := inv.Retarget(ModeVirtual, target); err == nil || errorKind(t, err) != errors.KindIllegalArgument {
			t.Errorf("virtual on %v: %v", target, err)
		}
	}
}

func TestRetargetStatic(t *testing.T) {
	inv, err := Invoke(descriptor.NewMethod(base, "of", descriptor.AccStatic, base))
	if err != nil {
		t.Fatal(err)
	}
	for _, mode := range []Mode{ModeVirtual, ModeSpecial, ModeInterface, ModeStatic} {
		_, err := inv.Retarget(mode, base)
		if err == nil || errorKind(t, err) != errors.KindIllegalState {
			t.Errorf("%v: %v", mode, err)
		}
	}
}

func TestRetargetVirtual(t *testing.T) {
	area := descriptor.NewMethod(base, "area", descriptor.AccPublic, descriptor.Double)
	inv, err := Invoke(area)
	if err != nil {
		t.Fatal(err)
	}

	m, err := inv.Virtual(derived)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.(*Invocation); got.Mode() != ModeVirtual || !got.Target().Equal(derived) {
		t.Errorf("got %v", got)
	}

	if _, err := inv.Virtual(descriptor.String); err == nil || errorKind(t, err) != errors.KindIllegalArgument {
		t.Errorf("unrelated target: %v", err)
	}

	m, err = inv.Special(derived)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.(*Invocation); got.Mode() != ModeSpecial {
		t.Errorf("special mode = %v", got.Mode())
	}
}

func TestRetargetInterface(t *testing.T) {
	sub := descriptor.NewInterface("com/example/Polygon", descriptor.AccPublic, shape)
	area := descriptor.NewMethod(shape, "area", descriptor.AccPublic|descriptor.AccAbstract, descriptor.Double)
	inv, err := Invoke(area)
	if err != nil {
		t.Fatal(err)
	}
	m, err := inv.Virtual(sub)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.(*Invocation); got.Mode() != ModeInterface {
		t.Errorf("mode = %v, want interface", got.Mode())
	}
	rec := bytecode.NewRecorder()
	m.Apply(rec)
	if ins := rec.Instructions()[0]; ins.Opcode != bytecode.INVOKEINTERFACE || ins.Owner != "com/example/Polygon" || !ins.Interface {
		t.Errorf("emitted %v", ins)
	}

	if _, err := inv.Special(sub); err == nil || errorKind(t, err) != errors.KindIllegalArgument {
		t.Errorf("special abstract: %v", err)
	}
}

func TestRetargetObjectMethodOnInterface(t *testing.T) {
	hash := descriptor.NewMethod(descriptor.Object, "hashCode", descriptor.AccPublic, descriptor.Int)
	inv, err := Invoke(hash)
	if err != nil {
		t.Fatal(err)
	}
	m, err := inv.Virtual(shape)
	if err != nil {
		t.Fatal(err)
	}
	if m != stack.Manipulation(inv) {
		t.Errorf("expected the original invocation, got %v", m)
	}
}

func TestVariables(t *testing.T) {
	tests := []struct {
		typ     *descriptor.TypeDescription
		slot    int
		load    bytecode.Opcode
		store   bytecode.Opcode
		generic bool
		size    int
	}{
		{descriptor.Int, 0, bytecode.ILOAD_0, bytecode.ISTORE_0, false, 1},
		{descriptor.Boolean, 3, bytecode.ILOAD_0 + 3, bytecode.ISTORE_0 + 3, false, 1},
		{descriptor.Long, 1, bytecode.LLOAD_0 + 1, bytecode.LSTORE_0 + 1, false, 2},
		{descriptor.Float, 2, bytecode.FLOAD_0 + 2, bytecode.FSTORE_0 + 2, false, 1},
		{descriptor.Double, 3, bytecode.DLOAD_0 + 3, bytecode.DSTORE_0 + 3, false, 2},
		{descriptor.String, 0, bytecode.ALOAD_0, bytecode.ASTORE_0, false, 1},
		{descriptor.Int, 4, bytecode.ILOAD, bytecode.ISTORE, true, 1},
		{descriptor.Double, 300, bytecode.DLOAD, bytecode.DSTORE, true, 2},
		{descriptor.ArrayOf(descriptor.Int), 7, bytecode.ALOAD, bytecode.ASTORE, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.load.String(), func(t *testing.T) {
			v, err := VariableFor(tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			rec := bytecode.NewRecorder()
			if got := v.Load(tt.slot).Apply(rec); got != (stack.Size{Net: tt.size, Max: tt.size}) {
				t.Errorf("load size = %v", got)
			}
			if got := v.Store(tt.slot).Apply(rec); got != (stack.Size{Net: -tt.size}) {
				t.Errorf("store size = %v", got)
			}
			ins := rec.Instructions()
			if ins[0].Opcode != tt.load || ins[1].Opcode != tt.store {
				t.Errorf("emitted %v", rec.Opcodes())
			}
			if tt.generic && (ins[0].Form != bytecode.FormVar || ins[0].Operand != int32(tt.slot)) {
				t.Errorf("generic load = %v", ins[0])
			}
		})
	}

	for _, v := range []Variable{Integer, Long, Float, Double, Reference} {
		if v.Load(-1).IsValid() || v.Store(-1).IsValid() {
			t.Errorf("%v: negative slot should be illegal", v.Size())
		}
	}
	if Increment(-1, 1).IsValid() {
		t.Error("iinc on a negative slot should be illegal")
	}

	if _, err := VariableFor(descriptor.Void); err == nil || errorKind(t, err) != errors.KindIllegalArgument {
		t.Errorf("void: %v", err)
	}
}

func TestIncrement(t *testing.T) {
	rec := bytecode.NewRecorder()
	if got := Increment(5, -3).Apply(rec); got != (stack.Size{}) {
		t.Errorf("size = %v", got)
	}
	ins := rec.Instructions()[0]
	if ins.Opcode != bytecode.IINC || ins.Operand != 5 || ins.Delta != -3 {
		t.Errorf("emitted %v", ins)
	}
}

func TestLoadAllArguments(t *testing.T) {
	params := []*descriptor.TypeDescription{descriptor.Int, descriptor.Long, descriptor.String, descriptor.Double, descriptor.Float}

	t.Run("instance", func(t *testing.T) {
		m := descriptor.NewMethod(base, "apply", descriptor.AccPublic, descriptor.Void, params...)
		rec := bytecode.NewRecorder()
		size := LoadAllArguments(m).Apply(rec)
		if size != (stack.Size{Net: 8, Max: 8}) {
			t.Errorf("size = %v", size)
		}
		want := []string{"aload_0", "iload_1", "lload_2", "aload", "dload", "fload"}
		ins := rec.Instructions()
		if len(ins) != len(want) {
			t.Fatalf("emitted %v", rec.Opcodes())
		}
		for i, w := range want {
			if ins[i].Opcode.String() != w {
				t.Errorf("[%d] = %v, want %s", i, ins[i], w)
			}
		}
		slots := []int32{4, 5, 7}
		for i, s := range slots {
			if ins[3+i].Operand != s {
				t.Errorf("[%d] slot = %d, want %d", 3+i, ins[3+i].Operand, s)
			}
		}
	})

	t.Run("static", func(t *testing.T) {
		m := descriptor.NewMethod(base, "apply", descriptor.AccStatic, descriptor.Void, params...)
		rec := bytecode.NewRecorder()
		size := LoadAllArguments(m).Apply(rec)
		if size != (stack.Size{Net: 7, Max: 7}) {
			t.Errorf("size = %v", size)
		}
		want := []string{"iload_0", "lload_1", "aload_3", "dload", "fload"}
		for i, w := range want {
			if got := rec.Instructions()[i].Opcode.String(); got != w {
				t.Errorf("[%d] = %s, want %s", i, got, w)
			}
		}
	})

	t.Run("parameters only", func(t *testing.T) {
		m := descriptor.NewMethod(base, "apply", descriptor.AccPublic, descriptor.Void, descriptor.Int)
		rec := bytecode.NewRecorder()
		LoadParameters(m).Apply(rec)
		if ops := rec.Opcodes(); len(ops) != 1 || ops[0] != bytecode.ILOAD_0+1 {
			t.Errorf("emitted %v", ops)
		}
	})

	t.Run("no parameters", func(t *testing.T) {
		m := descriptor.NewMethod(base, "run", descriptor.AccStatic, descriptor.Void)
		c := LoadAllArguments(m)
		if !c.IsValid() || c.Apply(bytecode.NewRecorder()) != (stack.Size{}) {
			t.Error("expected empty valid compound")
		}
	})
}

func TestLoadParameter(t *testing.T) {
	m := descriptor.NewMethod(base, "apply", descriptor.AccPublic, descriptor.Void, descriptor.Long, descriptor.Int)
	p, err := LoadParameter(m, 1)
	if err != nil {
		t.Fatal(err)
	}
	rec := bytecode.NewRecorder()
	p.Apply(rec)
	if ops := rec.Opcodes(); ops[0] != bytecode.ILOAD_0+3 {
		t.Errorf("emitted %v", ops)
	}
	if _, err := LoadParameter(m, 2); err == nil {
		t.Error("expected out of range error")
	}
}

func TestReturn(t *testing.T) {
	tests := []struct {
		typ  *descriptor.TypeDescription
		op   bytecode.Opcode
		size stack.Size
	}{
		{descriptor.Void, bytecode.RETURN, stack.Size{}},
		{descriptor.Boolean, bytecode.IRETURN, stack.Size{Net: -1}},
		{descriptor.Int, bytecode.IRETURN, stack.Size{Net: -1}},
		{descriptor.Long, bytecode.LRETURN, stack.Size{Net: -2}},
		{descriptor.Float, bytecode.FRETURN, stack.Size{Net: -1}},
		{descriptor.Double, bytecode.DRETURN, stack.Size{Net: -2}},
		{descriptor.Object, bytecode.ARETURN, stack.Size{Net: -1}},
	}
	for _, tt := range tests {
		rec := bytecode.NewRecorder()
		if got := Return(tt.typ).Apply(rec); got != tt.size {
			t.Errorf("%v: size = %v, want %v", tt.typ, got, tt.size)
		}
		if ops := rec.Opcodes(); len(ops) != 1 || ops[0] != tt.op {
			t.Errorf("%v: emitted %v", tt.typ, ops)
		}
	}
}

func TestNew(t *testing.T) {
	rec := bytecode.NewRecorder()
	if got := New(derived).Apply(rec); got != (stack.Size{Net: 1, Max: 1}) {
		t.Errorf("size = %v", got)
	}
	if ins := rec.Instructions()[0]; ins.Opcode != bytecode.NEW || ins.Owner != "com/example/Derived" {
		t.Errorf("emitted %v", ins)
	}
	for _, typ := range []*descriptor.TypeDescription{descriptor.Int, shape, abstract, descriptor.ArrayOf(descriptor.Int)} {
		if New(typ).IsValid() {
			t.Errorf("New(%v) should be illegal", typ)
		}
	}
}
