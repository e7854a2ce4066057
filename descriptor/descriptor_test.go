package descriptor

import (
	"testing"

	"github.com/wippyai/classgen/errors"
	"github.com/wippyai/classgen/stack"
)

func TestKindStackSize(t *testing.T) {
	tests := []struct {
		kind Kind
		want stack.ValueSize
	}{
		{KindVoid, stack.Zero},
		{KindBoolean, stack.Single},
		{KindByte, stack.Single},
		{KindShort, stack.Single},
		{KindChar, stack.Single},
		{KindInt, stack.Single},
		{KindLong, stack.Double},
		{KindFloat, stack.Single},
		{KindDouble, stack.Double},
		{KindReference, stack.Single},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.StackSize(); got != tt.want {
				t.Errorf("StackSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeDescriptor(t *testing.T) {
	tests := []struct {
		typ  *TypeDescription
		want string
	}{
		{Void, "V"},
		{Int, "I"},
		{Long, "J"},
		{Boolean, "Z"},
		{Object, "Ljava/lang/Object;"},
		{ArrayOf(Int), "[I"},
		{ArrayOf(ArrayOf(String)), "[[Ljava/lang/String;"},
	}
	for _, tt := range tests {
		if got := tt.typ.Descriptor(); got != tt.want {
			t.Errorf("%v.Descriptor() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestIsAssignableFrom(t *testing.T) {
	runnable := NewInterface("java/lang/Runnable", AccPublic)
	base := NewClass("com/example/Base", AccPublic, Object, runnable)
	derived := NewClass("com/example/Derived", AccPublic, base)

	tests := []struct {
		name   string
		target *TypeDescription
		source *TypeDescription
		want   bool
	}{
		{"same primitive", Int, Int, true},
		{"primitive widening is not assignment", Long, Int, false},
		{"object from class", Object, derived, true},
		{"object from array", Object, ArrayOf(Int), true},
		{"super from sub", base, derived, true},
		{"sub from super", derived, base, false},
		{"interface through super", runnable, derived, true},
		{"cloneable from array", Cloneable, ArrayOf(Long), true},
		{"covariant arrays", ArrayOf(base), ArrayOf(derived), true},
		{"primitive arrays are invariant", ArrayOf(Long), ArrayOf(Int), false},
		{"reference from primitive", Object, Int, false},
		{"equal by name", NewClass("com/example/Base", AccPublic, Object), base, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.IsAssignableFrom(tt.source); got != tt.want {
				t.Errorf("%v.IsAssignableFrom(%v) = %v, want %v", tt.target, tt.source, got, tt.want)
			}
		})
	}
}

func TestMethodDescription(t *testing.T) {
	owner := NewClass("com/example/Calc", AccPublic, Object)
	m := NewMethod(owner, "sum", AccPublic, Long, Int, Long, String)

	if got := m.Descriptor(); got != "(IJLjava/lang/String;)J" {
		t.Errorf("Descriptor() = %q", got)
	}
	if got := m.ParameterSize(); got != 4 {
		t.Errorf("ParameterSize() = %d, want 4", got)
	}
	if got := m.StackSize(); got != 5 {
		t.Errorf("StackSize() = %d, want 5", got)
	}
	for i, want := range []int{1, 2, 4} {
		if got := m.ParameterOffset(i); got != want {
			t.Errorf("ParameterOffset(%d) = %d, want %d", i, got, want)
		}
	}

	s := NewMethod(owner, "sum", AccPublic|AccStatic, Long, Int, Long)
	if got := s.StackSize(); got != 3 {
		t.Errorf("static StackSize() = %d, want 3", got)
	}
	if got := s.ParameterOffset(1); got != 1 {
		t.Errorf("static ParameterOffset(1) = %d, want 1", got)
	}

	ctor := NewConstructor(owner, AccPublic|AccStatic)
	if !ctor.IsConstructor() || ctor.IsStatic() {
		t.Errorf("constructor flags: constructor=%v static=%v", ctor.IsConstructor(), ctor.IsStatic())
	}
	if got := ctor.Descriptor(); got != "()V" {
		t.Errorf("constructor Descriptor() = %q", got)
	}
}

func TestWrapper(t *testing.T) {
	for _, k := range PrimitiveKinds {
		w := Wrapper(k)
		if w == nil {
			t.Fatalf("Wrapper(%v) = nil", k)
		}
		got, ok := Unwrap(w)
		if !ok || got != k {
			t.Errorf("Unwrap(%v) = %v, %v", w, got, ok)
		}
	}
	if Wrapper(KindVoid) != nil {
		t.Error("void has no wrapper")
	}
	if !Number.IsAssignableFrom(Wrapper(KindInt)) {
		t.Error("Integer should be a Number")
	}
	if _, ok := Unwrap(String); ok {
		t.Error("String is not a wrapper")
	}
}

func TestTypePoolDescribe(t *testing.T) {
	pool := NewTypePool()
	calc := NewClass("com/example/Calc", AccPublic, Object)
	pool.Define(calc)

	tests := []struct {
		name string
		want string
	}{
		{"int", "I"},
		{"void", "V"},
		{"J", "J"},
		{"java.lang.String", "Ljava/lang/String;"},
		{"java/lang/Integer", "Ljava/lang/Integer;"},
		{"com.example.Calc", "Lcom/example/Calc;"},
		{"Lcom/example/Calc;", "Lcom/example/Calc;"},
		{"int[]", "[I"},
		{"java.lang.Object[][]", "[[Ljava/lang/Object;"},
		{"[D", "[D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pool.Describe(tt.name)
			if err != nil {
				t.Fatalf("Describe(%q): %v", tt.name, err)
			}
			if got.Descriptor() != tt.want {
				t.Errorf("Describe(%q) = %q, want %q", tt.name, got.Descriptor(), tt.want)
			}
		})
	}
}

func TestTypePoolDescribeErrors(t *testing.T) {
	pool := NewTypePool()
	tests := []struct {
		name string
		kind errors.Kind
	}{
		{"", errors.KindInvalidInput},
		{"com.example.Missing", errors.KindNotFound},
		{"void[]", errors.KindIllegalArgument},
		{"[V", errors.KindInvalidData},
		{"[Lcom/example/Missing;", errors.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pool.Describe(tt.name)
			if err == nil {
				t.Fatalf("Describe(%q) succeeded", tt.name)
			}
			e, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("error type %T", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.kind)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	pool := NewTypePool()
	ret, params, err := pool.ParseMethod("(I[JLjava/lang/String;)Ljava/lang/Object;")
	if err != nil {
		t.Fatal(err)
	}
	if !ret.Equal(Object) {
		t.Errorf("return = %v", ret)
	}
	if len(params) != 3 || !params[0].Equal(Int) || params[1].Descriptor() != "[J" || !params[2].Equal(String) {
		t.Errorf("params = %v", params)
	}

	for _, bad := range []string{"", "I", "(I", "(V)V", "()", "()VV", "(Q)V", "(L;)V"} {
		if _, _, err := pool.ParseMethod(bad); err == nil {
			t.Errorf("ParseMethod(%q) succeeded", bad)
		}
	}
}

func TestParseModifier(t *testing.T) {
	m, ok := ParseModifier("static")
	if !ok || m != AccStatic {
		t.Errorf("ParseModifier(static) = %v, %v", m, ok)
	}
	if _, ok := ParseModifier("sealed"); ok {
		t.Error("unknown modifier accepted")
	}
}
