package layout

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/msgc/schema"
)

// Natural is the aligned in-memory layout of the C aggregate.
type Natural struct {
	Offsets []uint32
	Size    uint32
	Align   uint32
	Packed  uint32
}

// Padded reports whether the aggregate contains padding, so that its
// sizeof differs from the packed size or a member sits off its wire offset.
func (n Natural) Padded() bool {
	return n.Size != n.Packed
}

// NaturalLayout computes the natural layout of msg's storage fields by
// treating them as a WIT record.
func NaturalLayout(msg *schema.Message) Natural {
	storage := msg.Storage()
	fields := make([]wit.Field, 0, len(storage))
	packed := uint32(0)
	for _, f := range storage {
		fields = append(fields, wit.Field{Name: f.Name, Type: f.Type.Wit})
		packed += f.Type.Width
	}

	offsets, size, align := calculateRecord(&wit.Record{Fields: fields})
	return Natural{
		Offsets: offsets,
		Size:    size,
		Align:   align,
		Packed:  packed,
	}
}

func calculateRecord(r *wit.Record) ([]uint32, uint32, uint32) {
	if len(r.Fields) == 0 {
		return nil, 0, 1
	}

	offsets := make([]uint32, 0, len(r.Fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		size := scalarSize(field.Type)

		offset = alignTo(offset, size)
		offsets = append(offsets, offset)

		if size > maxAlign {
			maxAlign = size
		}

		offset += size
	}

	return offsets, alignTo(offset, maxAlign), maxAlign
}

// scalarSize returns the size of a primitive WIT type, which is also
// its alignment.
func scalarSize(t wit.Type) uint32 {
	switch t.(type) {
	case wit.U8, wit.S8:
		return 1
	case wit.U16, wit.S16:
		return 2
	case wit.U32, wit.S32, wit.F32:
		return 4
	case wit.U64, wit.S64, wit.F64:
		return 8
	default:
		return 1
	}
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
