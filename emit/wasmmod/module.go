package wasmmod

import "bytes"

const (
	sectionType     byte = 1
	sectionFunction byte = 3
	sectionMemory   byte = 5
	sectionExport   byte = 7
	sectionCode     byte = 10

	funcTypeMarker byte = 0x60
	exportFunc     byte = 0x00
	exportMemory   byte = 0x02
	limitsNoMax    byte = 0x00

	opReturn     byte = 0x0F
	opIf         byte = 0x04
	opEnd        byte = 0x0B
	opLocalGet   byte = 0x20
	opI32Const   byte = 0x41
	opI32LtU     byte = 0x49
	opPrefixFC   byte = 0xFC
	fcMemoryCopy      = 10
	blockEmpty   byte = 0x40

	valI32 byte = 0x7F
)

var magicVersion = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

type funcType struct {
	params  []byte
	results []byte
}

func (f funcType) equal(o funcType) bool {
	return bytes.Equal(f.params, o.params) && bytes.Equal(f.results, o.results)
}

type function struct {
	body    []byte
	typeIdx uint32
}

type export struct {
	name string
	kind byte
	idx  uint32
}

// module is a minimal core module: one memory, functions without locals
// and exports.
type module struct {
	types   []funcType
	funcs   []function
	exports []export
	pages   uint32
}

func (m *module) findOrAddType(ft funcType) uint32 {
	for i, t := range m.types {
		if t.equal(ft) {
			return uint32(i)
		}
	}
	m.types = append(m.types, ft)
	return uint32(len(m.types) - 1)
}

// addFunc registers an exported function. body must not include the
// trailing end opcode.
func (m *module) addFunc(name string, ft funcType, body []byte) {
	idx := uint32(len(m.funcs))
	m.funcs = append(m.funcs, function{typeIdx: m.findOrAddType(ft), body: body})
	m.exports = append(m.exports, export{name: name, kind: exportFunc, idx: idx})
}

func (m *module) encode() []byte {
	buf := &buffer{}
	buf.appendByte(magicVersion...)

	sec := &buffer{}
	sec.writeU32(uint32(len(m.types)))
	for _, ft := range m.types {
		sec.appendByte(funcTypeMarker)
		sec.writeU32(uint32(len(ft.params)))
		sec.appendByte(ft.params...)
		sec.writeU32(uint32(len(ft.results)))
		sec.appendByte(ft.results...)
	}
	buf.writeSection(sectionType, sec)

	sec = &buffer{}
	sec.writeU32(uint32(len(m.funcs)))
	for _, f := range m.funcs {
		sec.writeU32(f.typeIdx)
	}
	buf.writeSection(sectionFunction, sec)

	sec = &buffer{}
	sec.writeU32(1)
	sec.appendByte(limitsNoMax)
	sec.writeU32(m.pages)
	buf.writeSection(sectionMemory, sec)

	sec = &buffer{}
	sec.writeU32(uint32(len(m.exports)))
	for _, e := range m.exports {
		sec.writeName(e.name)
		sec.appendByte(e.kind)
		sec.writeU32(e.idx)
	}
	buf.writeSection(sectionExport, sec)

	sec = &buffer{}
	sec.writeU32(uint32(len(m.funcs)))
	for _, f := range m.funcs {
		code := &buffer{}
		code.writeU32(0) // no local groups
		code.appendByte(f.body...)
		code.appendByte(opEnd)
		sec.writeU32(uint32(len(code.bytes)))
		sec.appendByte(code.bytes...)
	}
	buf.writeSection(sectionCode, sec)

	return buf.bytes
}
