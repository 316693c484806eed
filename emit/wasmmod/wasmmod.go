// Package wasmmod renders a message as a WebAssembly core module.
//
// The module exports its linear memory and, for a message of packed size N:
//
//	size() -> i32                        N
//	get_<field>(ptr i32) -> T            load the field of the record at ptr
//	set_<field>(ptr i32, v T)            store the field of the record at ptr
//	decode(dst, src, srcLen i32) -> i32  copy N bytes src->dst, 0 if srcLen < N
//	encode(src, dst, dstLen i32) -> i32  copy N bytes src->dst, 0 if dstLen < N
//
// T is the field's wasm value type from the type table. Accessors use the
// packed offsets, so the module reads exactly the bytes the C and Python
// artifacts write. decode and encode require the bulk memory feature.
package wasmmod

import (
	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
)

const (
	// Target selects the wasm accessor module emitter.
	Target = "wasm"
	// Suffix is the binary module file extension.
	Suffix = ".wasm"
)

// Emitter renders wasm accessor modules.
type Emitter struct{}

// New returns a wasm accessor module emitter.
func New() *Emitter {
	return &Emitter{}
}

func (*Emitter) Target() string { return Target }
func (*Emitter) Suffix() string { return Suffix }

// Emit encodes the accessor module for msg. Duplicate storage names are
// rejected.
func (*Emitter) Emit(msg *schema.Message, info layout.Info) ([]byte, error) {
	seen := make(map[string]int, len(info.Slots))
	for _, s := range info.Slots {
		if first, dup := seen[s.Field.Name]; dup {
			return nil, errors.New(errors.PhaseEmit, errors.KindDuplicateField).
				Line(s.Field.Line).
				Token(s.Field.Name).
				Path(msg.Name).
				Detail("accessor exports must be unique (first declared on line %d)", first).
				Build()
		}
		seen[s.Field.Name] = s.Field.Line
	}

	m := &module{pages: 1}
	m.exports = append(m.exports, export{name: "memory", kind: exportMemory, idx: 0})
	size := int32(info.Size)

	body := &buffer{}
	body.appendByte(opI32Const)
	body.writeI32(size)
	m.addFunc("size", funcType{results: []byte{valI32}}, body.bytes)

	for _, s := range info.Slots {
		w := s.Field.Type.Wasm

		body = &buffer{}
		body.appendByte(opLocalGet, 0)
		body.appendByte(w.Load)
		memarg(body, s.Offset)
		m.addFunc("get_"+s.Field.Name, funcType{params: []byte{valI32}, results: []byte{w.ValType}}, body.bytes)

		body = &buffer{}
		body.appendByte(opLocalGet, 0)
		body.appendByte(opLocalGet, 1)
		body.appendByte(w.Store)
		memarg(body, s.Offset)
		m.addFunc("set_"+s.Field.Name, funcType{params: []byte{valI32, w.ValType}}, body.bytes)
	}

	copyType := funcType{params: []byte{valI32, valI32, valI32}, results: []byte{valI32}}
	m.addFunc("decode", copyType, copyBody(0, 1, size))
	m.addFunc("encode", copyType, copyBody(1, 0, size))

	return m.encode(), nil
}

// memarg writes an alignment hint of 1 byte and the field offset; records
// may sit at any address.
func memarg(b *buffer, offset uint32) {
	b.writeU32(0)
	b.writeU32(offset)
}

// copyBody takes (a, b, len) and copies size bytes to local dst from
// local src after checking len against size.
func copyBody(dst, src byte, size int32) []byte {
	b := &buffer{}
	b.appendByte(opLocalGet, 2)
	b.appendByte(opI32Const)
	b.writeI32(size)
	b.appendByte(opI32LtU)
	b.appendByte(opIf, blockEmpty)
	b.appendByte(opI32Const)
	b.writeI32(0)
	b.appendByte(opReturn)
	b.appendByte(opEnd)

	b.appendByte(opLocalGet, dst)
	b.appendByte(opLocalGet, src)
	b.appendByte(opI32Const)
	b.writeI32(size)
	b.appendByte(opPrefixFC)
	b.writeU32(fcMemoryCopy)
	b.appendByte(0x00, 0x00) // dst and src memory 0

	b.appendByte(opI32Const)
	b.writeI32(size)
	return b.bytes
}
