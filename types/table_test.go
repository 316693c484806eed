package types

import (
	"errors"
	"reflect"
	"testing"

	"go.bytecodealliance.org/wit"

	msgcerrors "github.com/wippyai/msgc/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		ctype  string
		pytype string
		width  uint32
		code   byte
		class  Class
	}{
		{"int8", "int8_t", "int", 1, 'b', Signed},
		{"uint8", "uint8_t", "int", 1, 'B', Unsigned},
		{"int16", "int16_t", "int", 2, 'h', Signed},
		{"uint16", "uint16_t", "int", 2, 'H', Unsigned},
		{"int32", "int32_t", "int", 4, 'i', Signed},
		{"uint32", "uint32_t", "int", 4, 'I', Unsigned},
		{"int64", "int64_t", "int", 8, 'q', Signed},
		{"uint64", "uint64_t", "int", 8, 'Q', Unsigned},
		{"float32", "float32_t", "float", 4, 'f', Float},
		{"float64", "float64_t", "float", 8, 'd', Float},
	}

	tbl := Default()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tbl.Lookup(tc.name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tc.name, err)
			}
			if p.Width != tc.width {
				t.Errorf("Width = %d, want %d", p.Width, tc.width)
			}
			if p.WireCode != tc.code {
				t.Errorf("WireCode = %c, want %c", p.WireCode, tc.code)
			}
			if p.CType != tc.ctype {
				t.Errorf("CType = %q, want %q", p.CType, tc.ctype)
			}
			if p.PyType != tc.pytype {
				t.Errorf("PyType = %q, want %q", p.PyType, tc.pytype)
			}
			if p.Class != tc.class {
				t.Errorf("Class = %v, want %v", p.Class, tc.class)
			}
			if p.Bits() != int(tc.width)*8 {
				t.Errorf("Bits = %d", p.Bits())
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"uint9", "int", "Int32", "", "float16", "bool"} {
		t.Run(name, func(t *testing.T) {
			p, err := Default().Lookup(name)
			if p != nil {
				t.Errorf("expected nil primitive, got %v", p)
			}
			if !errors.Is(err, msgcerrors.ErrUnknownType) {
				t.Errorf("expected unknown type error, got %v", err)
			}
		})
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same table")
	}
	a, _ := Default().Lookup("int32")
	b, _ := Default().Lookup("int32")
	if a != b {
		t.Error("Lookup should return the same *Primitive")
	}
}

func TestNamesOrder(t *testing.T) {
	want := []string{"int8", "uint8", "int16", "uint16", "int32", "uint32", "int64", "uint64", "float32", "float64"}
	got := Default().Names()
	if len(got) != len(want) {
		t.Fatalf("Names() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if Default().Len() != len(want) {
		t.Errorf("Len() = %d", Default().Len())
	}
}

func TestAllIsACopy(t *testing.T) {
	all := Default().All()
	all[0] = nil
	if Default().All()[0] == nil {
		t.Error("All should not expose the table's slice")
	}
}

func TestWitSpelling(t *testing.T) {
	tests := []struct {
		want wit.Type
		name string
	}{
		{wit.S8{}, "int8"},
		{wit.U8{}, "uint8"},
		{wit.S16{}, "int16"},
		{wit.U16{}, "uint16"},
		{wit.S32{}, "int32"},
		{wit.U32{}, "uint32"},
		{wit.S64{}, "int64"},
		{wit.U64{}, "uint64"},
		{wit.F32{}, "float32"},
		{wit.F64{}, "float64"},
	}
	for _, tc := range tests {
		p, _ := Default().Lookup(tc.name)
		if reflect.TypeOf(p.Wit) != reflect.TypeOf(tc.want) {
			t.Errorf("%s: Wit = %T, want %T", tc.name, p.Wit, tc.want)
		}
	}
}

func TestWasmSpelling(t *testing.T) {
	for _, p := range Default().All() {
		switch {
		case p.Class == Float && p.Width == 4:
			if p.Wasm.ValType != ValF32 {
				t.Errorf("%s: ValType = %#x", p.Name, p.Wasm.ValType)
			}
		case p.Class == Float:
			if p.Wasm.ValType != ValF64 {
				t.Errorf("%s: ValType = %#x", p.Name, p.Wasm.ValType)
			}
		case p.Width == 8:
			if p.Wasm.ValType != ValI64 {
				t.Errorf("%s: ValType = %#x", p.Name, p.Wasm.ValType)
			}
		default:
			if p.Wasm.ValType != ValI32 {
				t.Errorf("%s: ValType = %#x", p.Name, p.Wasm.ValType)
			}
		}
		if p.Wasm.Load == 0 || p.Wasm.Store == 0 {
			t.Errorf("%s: missing wasm opcodes", p.Name)
		}
	}
}

func TestClassString(t *testing.T) {
	tests := []struct {
		want  string
		class Class
	}{
		{"signed", Signed},
		{"unsigned", Unsigned},
		{"float", Float},
		{"unknown", Class(99)},
	}
	for _, tc := range tests {
		if got := tc.class.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
	if !Signed.IsInteger() || !Unsigned.IsInteger() || Float.IsInteger() {
		t.Error("IsInteger classification is wrong")
	}
}
