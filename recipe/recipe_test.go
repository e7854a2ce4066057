package recipe

import (
	"path/filepath"
	"testing"

	"github.com/wippyai/classgen/assembly"
	"github.com/wippyai/classgen/descriptor"
	"github.com/wippyai/classgen/errors"
)

func TestLoad(t *testing.T) {
	r, err := Load(filepath.Join("testdata", "counter.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Type.Name != "com.example.Counter" || r.Type.Kind != "class" {
		t.Errorf("Type = %+v", r.Type)
	}
	if len(r.Types) != 4 || len(r.Fields) != 2 || len(r.Methods) != 9 {
		t.Errorf("types=%d fields=%d methods=%d", len(r.Types), len(r.Fields), len(r.Methods))
	}
	last := r.Methods[len(r.Methods)-1]
	if last.Body != BodyStub || last.Returns != "void" {
		t.Errorf("defaults not applied: %+v", last)
	}
	if r.Path == "" {
		t.Error("Path not set")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	if err == nil {
		t.Fatal("expected error")
	}
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.PhaseLoad {
		t.Errorf("error = %v", err)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("[type\nname = 1"))
	if err == nil {
		t.Fatal("expected error")
	}
	if e, ok := err.(*errors.Error); !ok || e.Phase != errors.PhaseParse {
		t.Errorf("error = %v", err)
	}
}

func TestResolveAndAssemble(t *testing.T) {
	r, err := Load(filepath.Join("testdata", "counter.toml"))
	if err != nil {
		t.Fatal(err)
	}
	pool := descriptor.NewTypePool()
	plan, err := r.Resolve(pool)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Type.InternalName() != "com/example/Counter" {
		t.Errorf("Type = %v", plan.Type)
	}
	if _, ok := pool.Lookup("com/example/Counter"); !ok {
		t.Error("generated type not defined in pool")
	}
	supplier, _ := pool.Lookup("java/util/function/Supplier")
	if !supplier.IsAssignableFrom(plan.Type) {
		t.Error("Counter should implement Supplier")
	}

	methods, err := plan.Assemble(assembly.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(methods) != len(r.Methods) {
		t.Fatalf("assembled %d methods", len(methods))
	}

	want := map[string]struct {
		listing   []string
		maxStack  int
		maxLocals int
	}{
		"<init>":   {[]string{"aload_0", "invokespecial com/example/AbstractCounter.<init>()V", "return"}, 1, 1},
		"getCount": {[]string{"aload_0", "getfield com/example/Counter.count:I", "i2l", "lreturn"}, 2, 1},
		"limit":    {[]string{"ldc 100000", "i2d", "dreturn"}, 2, 0},
		"add": {[]string{
			"iload_0", "i2l", "iload_1", "i2l",
			"invokestatic com/example/Counters.add(JJ)J", "lreturn",
		}, 4, 2},
		"close": {[]string{"return"}, 0, 1},
	}
	for _, m := range methods {
		w, ok := want[m.Descriptor.Name()]
		if !ok {
			continue
		}
		if len(m.Instructions) != len(w.listing) {
			t.Errorf("%s: %d instructions, want %d", m.Descriptor, len(m.Instructions), len(w.listing))
			continue
		}
		for i, ins := range m.Instructions {
			if ins.String() != w.listing[i] {
				t.Errorf("%s [%d] = %q, want %q", m.Descriptor, i, ins.String(), w.listing[i])
			}
		}
		if m.MaxStack != w.maxStack || m.MaxLocals != w.maxLocals {
			t.Errorf("%s: max stack %d locals %d, want %d %d", m.Descriptor, m.MaxStack, m.MaxLocals, w.maxStack, w.maxLocals)
		}
		if len(m.Code) == 0 {
			t.Errorf("%s: no code", m.Descriptor)
		}
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		recipe string
		kind   errors.Kind
	}{
		{"missing type name", `[type]`, errors.KindInvalidInput},
		{"unknown super", "[type]\nname = \"a.B\"\nsuper = \"a.Missing\"", errors.KindNotFound},
		{"unknown modifier", "[type]\nname = \"a.B\"\nmodifiers = [\"sealed\"]", errors.KindInvalidInput},
		{"class as interface", "[type]\nname = \"a.B\"\ninterfaces = [\"java.lang.String\"]", errors.KindInvalidInput},
		{"void field", "[type]\nname = \"a.B\"\n[[fields]]\nname = \"f\"\ntype = \"void\"", errors.KindIllegalArgument},
		{"unknown body", "[type]\nname = \"a.B\"\n[[methods]]\nname = \"m\"\nbody = \"magic\"", errors.KindUnsupported},
		{"unknown field", "[type]\nname = \"a.B\"\n[[methods]]\nname = \"m\"\nbody = \"getter\"\nfield = \"x\"", errors.KindNotFound},
		{"bad target", "[type]\nname = \"a.B\"\n[[methods]]\nname = \"m\"\nbody = \"delegate\"\ntarget = \"nowhere\"", errors.KindInvalidInput},
		{"value overflow", "[type]\nname = \"a.B\"\n[[methods]]\nname = \"m\"\nreturns = \"byte\"\nbody = \"fixed\"\nvalue = 300\nvalue-type = \"byte\"", errors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.recipe))
			if err != nil {
				t.Fatal(err)
			}
			_, err = r.Resolve(descriptor.NewTypePool())
			if err == nil {
				t.Fatal("expected error")
			}
			e, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("error type %T", err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", e.Kind, tt.kind, err)
			}
		})
	}
}

func TestFixedValueInference(t *testing.T) {
	pool := descriptor.NewTypePool()
	tests := []struct {
		value any
		want  string
	}{
		{int64(5), "I"},
		{int64(1) << 40, "J"},
		{1.5, "D"},
		{true, "Z"},
		{"text", "Ljava/lang/String;"},
	}
	for _, tt := range tests {
		_, typ, err := fixedValue(pool, tt.value, "")
		if err != nil {
			t.Fatalf("%v: %v", tt.value, err)
		}
		if typ.Descriptor() != tt.want {
			t.Errorf("%v: type %s, want %s", tt.value, typ.Descriptor(), tt.want)
		}
	}
	if _, _, err := fixedValue(pool, nil, ""); err == nil {
		t.Error("expected error for missing value")
	}
}
