package wasmmod

type buffer struct {
	bytes []byte
}

func (b *buffer) appendByte(v ...byte) {
	b.bytes = append(b.bytes, v...)
}

// writeU32 writes unsigned LEB128 encoding.
func (b *buffer) writeU32(v uint32) {
	for {
		byt := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			byt |= 0x80
		}
		b.appendByte(byt)
		if v == 0 {
			break
		}
	}
}

// writeI32 writes signed LEB128 encoding.
func (b *buffer) writeI32(v int32) {
	for {
		byt := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && byt&0x40 == 0) || (v == -1 && byt&0x40 != 0) {
			b.appendByte(byt)
			break
		}
		b.appendByte(byt | 0x80)
	}
}

func (b *buffer) writeName(s string) {
	b.writeU32(uint32(len(s)))
	b.bytes = append(b.bytes, s...)
}

// writeSection frames content as section id.
func (b *buffer) writeSection(id byte, content *buffer) {
	b.appendByte(id)
	b.writeU32(uint32(len(content.bytes)))
	b.bytes = append(b.bytes, content.bytes...)
}
