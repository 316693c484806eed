package manifest

import (
	"strings"
	"testing"

	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
)

func TestEmitReading(t *testing.T) {
	msg, err := schema.Parse("int32 id\nfloat32 value\nuint8 flag = 1", "Reading")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	info := layout.Calculate(msg)
	data, err := New().Emit(msg, info)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("manifest should end with a newline")
	}

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if m.Name != "Reading" || m.Size != 8 || m.Format != "<if" || m.ByteOrder != "little" || m.NaturalSize != 8 {
		t.Errorf("manifest header = %+v", m)
	}
	if len(m.Fields) != 2 {
		t.Fatalf("fields = %+v", m.Fields)
	}
	for i, s := range info.Slots {
		f := m.Fields[i]
		if f.Name != s.Field.Name || f.Offset != s.Offset || f.Width != s.Width || f.Code != string(s.Field.Type.WireCode) {
			t.Errorf("field %d = %+v, slot %+v", i, f, s)
		}
	}
	if len(m.Constants) != 1 || m.Constants[0].Name != "flag" || m.Constants[0].Value != "1" || m.Constants[0].Type != "uint8" {
		t.Errorf("constants = %+v", m.Constants)
	}
}

func TestBuildPadded(t *testing.T) {
	msg, _ := schema.Parse("uint8 a\nuint64 b", "P")
	m := Build(msg, layout.Calculate(msg))
	if m.Size != 9 || m.NaturalSize != 16 {
		t.Errorf("size %d natural %d, want 9 and 16", m.Size, m.NaturalSize)
	}
}

func TestEmitEmptyLists(t *testing.T) {
	msg, _ := schema.Parse("", "E")
	data, err := New().Emit(msg, layout.Calculate(msg))
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"fields": []`) || !strings.Contains(s, `"constants": []`) {
		t.Errorf("empty lists should encode as [], got\n%s", s)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode([]byte("{")); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
