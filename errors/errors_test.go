package errors

import (
	"errors"
	"fmt"
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
				Phase:  PhaseParse,
				Kind:   KindUnknownType,
				Line:   3,
				Column: 1,
				Token:  "uint9",
				Detail: "not a primitive type",
			},
			contains: []string{"[parse]", "unknown_type", "line 3:1", `"uint9"`, "not a primitive type"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLayout,
				Kind:  KindShortBuffer,
			},
			contains: []string{"[layout]", "short_buffer"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseIO,
				Kind:   KindIO,
				Detail: "read schema",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[io]", "io", "read schema", "caused by", "underlying error"},
		},
		{
			name: "path",
			err: &Error{
				Phase: PhaseVerify,
				Kind:  KindLayoutMismatch,
				Path:  []string{"Reading", "value"},
			},
			contains: []string{"Reading.value"},
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
	err := &Error{
		Phase: PhaseIO,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := UnknownType(2, 1, "uint9")

	if !err.Is(&Error{Phase: PhaseParse, Kind: KindUnknownType}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEmit, Kind: KindUnknownType}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseParse, Kind: KindInvalidIdentifier}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Error("errors.Is should match the phaseless sentinel")
	}

	wrapped := fmt.Errorf("generate: %w", err)
	if !errors.Is(wrapped, ErrUnknownType) {
		t.Error("errors.Is should match through fmt wrapping")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("x: %w", InvalidMessageName("7Msg"))); got != KindInvalidMessageName {
		t.Errorf("KindOf = %q, want %q", got, KindInvalidMessageName)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseParse, KindMalformedDeclaration).
		Line(4).
		Column(7).
		Token("+").
		Path("Reading").
		Cause(cause).
		Detail("expected %q, got %q", "=", "+").
		Build()

	if err.Phase != PhaseParse {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseParse)
	}
	if err.Kind != KindMalformedDeclaration {
		t.Errorf("Kind = %v, want %v", err.Kind, KindMalformedDeclaration)
	}
	if err.Line != 4 || err.Column != 7 {
		t.Errorf("position = %d:%d, want 4:7", err.Line, err.Column)
	}
	if err.Token != "+" {
		t.Errorf("Token = %q, want '+'", err.Token)
	}
	if len(err.Path) != 1 || err.Path[0] != "Reading" {
		t.Errorf("Path = %v, want [Reading]", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != `expected "=", got "+"` {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err  *Error
		name string
		kind Kind
	}{
		{InvalidMessageName("7Msg"), "InvalidMessageName", KindInvalidMessageName},
		{UnknownType(1, 1, "uint9"), "UnknownType", KindUnknownType},
		{InvalidIdentifier(1, 7, "7x"), "InvalidIdentifier", KindInvalidIdentifier},
		{MalformedDeclaration(1, "int32", "expected 2 or 4 tokens"), "MalformedDeclaration", KindMalformedDeclaration},
		{DuplicateField(PhaseParse, 3, "id", 1), "DuplicateField", KindDuplicateField},
		{InvalidConstant(1, 11, "x", "int32", nil), "InvalidConstant", KindInvalidConstant},
		{ShortBuffer(PhaseVerify, 8, 4), "ShortBuffer", KindShortBuffer},
		{LayoutMismatch([]string{"a"}, "offset %d", 4), "LayoutMismatch", KindLayoutMismatch},
		{UnknownTarget(PhaseEmit, "rust"), "UnknownTarget", KindUnknownTarget},
		{InvalidConfig("bad", nil), "InvalidConfig", KindInvalidConfig},
		{IO("read", errors.New("x")), "IO", KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Phase == "" {
				t.Error("Phase should be set")
			}
		})
	}

	t.Run("DuplicateField detail", func(t *testing.T) {
		err := DuplicateField(PhaseParse, 3, "id", 1)
		if !strings.Contains(err.Detail, "line 1") {
			t.Errorf("Detail = %q, should name the first line", err.Detail)
		}
	})

	t.Run("ShortBuffer detail", func(t *testing.T) {
		err := ShortBuffer(PhaseVerify, 8, 4)
		if !strings.Contains(err.Detail, "8") || !strings.Contains(err.Detail, "4") {
			t.Errorf("Detail = %q, should contain both sizes", err.Detail)
		}
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk")
	err := Wrap(PhaseIO, KindIO, cause, "write header")
	if err.Detail != "write header" || !errors.Is(err, cause) {
		t.Errorf("Wrap = %v", err)
	}
}
