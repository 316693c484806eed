package record

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	msgcerrors "github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
	"github.com/wippyai/msgc/types"
)

func prim(t *testing.T, name string) *types.Primitive {
	t.Helper()
	p, err := types.Default().Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return p
}

func info(t *testing.T, src string) layout.Info {
	t.Helper()
	msg, err := schema.Parse(src, "M")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return layout.Calculate(msg)
}

func TestValueAccessors(t *testing.T) {
	tests := []struct {
		typ   string
		value Value
		int   int64
		uint  uint64
		str   string
	}{
		{"int8", FromInt(prim(t, "int8"), -1), -1, 0xFF, "-1"},
		{"int16", FromInt(prim(t, "int16"), -300), -300, 0xFED4, "-300"},
		{"uint16", FromUint(prim(t, "uint16"), 0x1_0001), 1, 1, "1"},
		{"int32", FromInt(prim(t, "int32"), math.MinInt32), math.MinInt32, 0x8000_0000, "-2147483648"},
		{"uint64", FromUint(prim(t, "uint64"), math.MaxUint64), -1, math.MaxUint64, "18446744073709551615"},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := tt.value.Int(); got != tt.int {
				t.Errorf("Int() = %d, want %d", got, tt.int)
			}
			if got := tt.value.Uint(); got != tt.uint {
				t.Errorf("Uint() = %#x, want %#x", got, tt.uint)
			}
			if got := tt.value.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestFloatValues(t *testing.T) {
	f32 := FromFloat(prim(t, "float32"), 2.5)
	if f32.Bits != uint64(math.Float32bits(2.5)) || f32.Float() != 2.5 {
		t.Errorf("float32 value = %#x / %v", f32.Bits, f32.Float())
	}
	f64 := FromFloat(prim(t, "float64"), -0.1)
	if f64.Float() != -0.1 || f64.String() != "-0.1" {
		t.Errorf("float64 value = %v / %s", f64.Float(), f64.String())
	}
}

func TestDecodeReading(t *testing.T) {
	in := info(t, "int32 id\nfloat32 value\nuint8 flag = 1")
	buf := []byte{0x2A, 0, 0, 0, 0, 0, 0x20, 0x40}

	rec, err := Decode(in, buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(rec) != 2 {
		t.Fatalf("len = %d, want 2", len(rec))
	}
	if rec[0].Int() != 42 {
		t.Errorf("id = %d, want 42", rec[0].Int())
	}
	v, ok := rec.Field(in, "value")
	if !ok || v.Float() != 2.5 {
		t.Errorf("value = %v (found %v), want 2.5", v.Float(), ok)
	}
	if _, ok := rec.Field(in, "flag"); ok {
		t.Error("constants have no slot")
	}
}

func TestShortBuffer(t *testing.T) {
	in := info(t, "int32 id\nfloat32 value")

	_, err := Decode(in, make([]byte, 7))
	if !errors.Is(err, msgcerrors.ErrShortBuffer) {
		t.Errorf("Decode error = %v, want short buffer", err)
	}

	rec := Record{FromInt(prim(t, "int32"), 1), FromFloat(prim(t, "float32"), 1)}
	dst := []byte{9, 9, 9}
	n, err := EncodeInto(in, rec, dst)
	if n != 0 || !errors.Is(err, msgcerrors.ErrShortBuffer) {
		t.Errorf("EncodeInto = %d, %v; want 0, short buffer", n, err)
	}
	if !bytes.Equal(dst, []byte{9, 9, 9}) {
		t.Errorf("dst modified on short buffer: %v", dst)
	}
}

func TestEncodeMismatch(t *testing.T) {
	in := info(t, "int32 id\nfloat32 value")

	if _, err := Encode(in, Record{FromInt(prim(t, "int32"), 1)}); msgcerrors.KindOf(err) != msgcerrors.KindLayoutMismatch {
		t.Errorf("short record error = %v", err)
	}
	wrong := Record{FromInt(prim(t, "int64"), 1), FromFloat(prim(t, "float32"), 1)}
	if _, err := Encode(in, wrong); msgcerrors.KindOf(err) != msgcerrors.KindLayoutMismatch {
		t.Errorf("wrong width error = %v", err)
	}
}

func TestEncodeDecodeIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	names := types.Default().Names()

	for i := 0; i < 200; i++ {
		var src bytes.Buffer
		n := r.Intn(12)
		for j := 0; j < n; j++ {
			src.WriteString(names[r.Intn(len(names))])
			src.WriteString(" f")
			src.WriteByte(byte('a' + j))
			src.WriteByte('\n')
		}
		in := info(t, src.String())

		buf := make([]byte, in.Size)
		r.Read(buf)

		rec, err := Decode(in, buf)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		out, err := Encode(in, rec)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if !bytes.Equal(out, buf) {
			t.Fatalf("round trip of %q\n got %x\nwant %x", src.String(), out, buf)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	in := info(t, "")
	rec, err := Decode(in, nil)
	if err != nil || len(rec) != 0 {
		t.Errorf("Decode(empty) = %v, %v", rec, err)
	}
	out, err := Encode(in, rec)
	if err != nil || len(out) != 0 {
		t.Errorf("Encode(empty) = %v, %v", out, err)
	}
}
