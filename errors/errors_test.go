package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAssemble,
				Kind:   KindIllegalArgument,
				Path:   []string{"method", "sum"},
				Member: "com/example/Calc.sum(IJ)J",
				Type:   "com/example/Other",
				Detail: "not a subtype",
			},
			contains: []string{"[assemble]", "illegal_argument", "method.sum", "com/example/Calc.sum(IJ)J", "com/example/Other", "not a subtype"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseParse,
				Kind:  KindInvalidData,
			},
			contains: []string{"[parse]", "invalid_data"},
		},
		{
			name: "type only",
			err: &Error{
				Phase:  PhaseDescribe,
				Kind:   KindNotFound,
				Type:   "java/util/List",
				Detail: "unknown",
			},
			contains: []string{"type java/util/List - unknown"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "bad recipe",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "bad recipe", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(PhaseEncode, KindOverflow, cause, "code too large")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := IllegalArgument(PhaseAssemble, "bad receiver %s", "Foo")

	if !errors.Is(err, ErrIllegalArgument) {
		t.Error("Is should match the kind sentinel")
	}
	if errors.Is(err, ErrIllegalState) {
		t.Error("Is should not match a different kind")
	}
	if !errors.Is(err, &Error{Phase: PhaseAssemble, Kind: KindIllegalArgument}) {
		t.Error("Is should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseParse, Kind: KindIllegalArgument}) {
		t.Error("Is should not match a different phase")
	}
	if err.Detail != "bad receiver Foo" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseAssemble, KindIllegalState).
		Path("type", "method").
		Member("A.m()V").
		Type("A").
		Value(7).
		Cause(cause).
		Detail("expected %s, got %s", "instance", "static").
		Build()

	if err.Phase != PhaseAssemble {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseAssemble)
	}
	if err.Kind != KindIllegalState {
		t.Errorf("Kind = %v, want %v", err.Kind, KindIllegalState)
	}
	if len(err.Path) != 2 || err.Path[1] != "method" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Member != "A.m()V" || err.Type != "A" {
		t.Errorf("Member=%v Type=%v", err.Member, err.Type)
	}
	if err.Value != 7 {
		t.Errorf("Value = %v, want 7", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected instance, got static" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidDescriptor", func(t *testing.T) {
		err := InvalidDescriptor("(IX)V", 2)
		if err.Kind != KindInvalidData || err.Phase != PhaseParse {
			t.Errorf("Kind=%v Phase=%v", err.Kind, err.Phase)
		}
		if !strings.Contains(err.Detail, "offset 2") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseAssemble, []string{"max_stack"}, 70000, "65535")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != 70000 {
			t.Errorf("Value = %v, want 70000", err.Value)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseDescribe, "type", "a/B")
		if !errors.Is(err, ErrNotFound) {
			t.Error("NotFound should match ErrNotFound")
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseLoad, "body kind")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		err := ParseFailed("literal", errors.New("x"))
		if err.Detail != "parse literal" {
			t.Errorf("Detail = %v", err.Detail)
		}
	})
}
