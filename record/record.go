// Package record is a Go codec for packed messages.
//
// It reads and writes exactly the bytes described by a layout.Info and is
// the reference the generated artifacts are checked against.
package record

import (
	"encoding/binary"

	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/layout"
)

// Record holds one Value per storage slot, in slot order.
type Record []Value

// Field returns the value of the first slot named name.
func (r Record) Field(info layout.Info, name string) (Value, bool) {
	for i, s := range info.Slots {
		if s.Field.Name == name && i < len(r) {
			return r[i], true
		}
	}
	return Value{}, false
}

// Decode reads info.Size bytes from buf. Extra bytes are ignored.
func Decode(info layout.Info, buf []byte) (Record, error) {
	if len(buf) < int(info.Size) {
		return nil, errors.ShortBuffer(errors.PhaseLayout, int(info.Size), len(buf))
	}
	rec := make(Record, len(info.Slots))
	for i, s := range info.Slots {
		rec[i] = Value{Type: s.Field.Type, Bits: load(buf[s.Offset:s.End()])}
	}
	return rec, nil
}

// Encode returns the packed bytes of rec.
func Encode(info layout.Info, rec Record) ([]byte, error) {
	out := make([]byte, info.Size)
	if _, err := EncodeInto(info, rec, out); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeInto writes rec into dst and returns info.Size. A dst shorter than
// info.Size is an error and dst is left untouched.
func EncodeInto(info layout.Info, rec Record, dst []byte) (int, error) {
	if len(dst) < int(info.Size) {
		return 0, errors.ShortBuffer(errors.PhaseLayout, int(info.Size), len(dst))
	}
	if len(rec) != len(info.Slots) {
		return 0, errors.New(errors.PhaseLayout, errors.KindLayoutMismatch).
			Detail("record has %d values, layout has %d slots", len(rec), len(info.Slots)).
			Build()
	}
	for i, s := range info.Slots {
		if rec[i].Type != nil && rec[i].Type.Width != s.Width {
			return 0, errors.New(errors.PhaseLayout, errors.KindLayoutMismatch).
				Path(s.Field.Name).
				Detail("value is %d bytes wide, slot is %d", rec[i].Type.Width, s.Width).
				Build()
		}
	}
	for i, s := range info.Slots {
		store(dst[s.Offset:s.End()], rec[i].Bits)
	}
	return int(info.Size), nil
}

func load(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func store(b []byte, v uint64) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, v)
	}
}
