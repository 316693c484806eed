package layout

import (
	"strings"

	"github.com/wippyai/msgc/schema"
)

// FormatPrefix forces little-endian byte order and standard sizes with no
// alignment in a Python struct format string.
const FormatPrefix = "<"

// Slot is the placement of one storage field.
type Slot struct {
	Field  schema.Field
	Offset uint32
	Width  uint32
}

// End returns the offset one past the slot's last byte.
func (s Slot) End() uint32 {
	return s.Offset + s.Width
}

// Info is the packed layout of a message.
type Info struct {
	Slots []Slot
	Size  uint32
}

// Calculate places storage fields back to back in declaration order.
// The result depends only on the sequence of field kinds and types.
func Calculate(msg *schema.Message) Info {
	var info Info
	offset := uint32(0)

	for _, f := range msg.Fields {
		switch f.Kind {
		case schema.Storage:
			info.Slots = append(info.Slots, Slot{
				Field:  f,
				Offset: offset,
				Width:  f.Type.Width,
			})
			offset += f.Type.Width
		case schema.Constant:
			// no footprint
		}
	}

	info.Size = offset
	return info
}

// Format returns the Python struct format descriptor for the layout.
func (i Info) Format() string {
	var b strings.Builder
	b.Grow(len(FormatPrefix) + len(i.Slots))
	b.WriteString(FormatPrefix)
	for _, s := range i.Slots {
		b.WriteByte(s.Field.Type.WireCode)
	}
	return b.String()
}

// Offsets returns the offset of every storage field keyed by name.
// With duplicate names the first declaration wins.
func (i Info) Offsets() map[string]uint32 {
	offs := make(map[string]uint32, len(i.Slots))
	for _, s := range i.Slots {
		if _, ok := offs[s.Field.Name]; !ok {
			offs[s.Field.Name] = s.Offset
		}
	}
	return offs
}
