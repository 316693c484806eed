package types

import "go.bytecodealliance.org/wit"

// Wasm value types and memory opcodes from the core binary format.
const (
	ValI32 byte = 0x7F
	ValI64 byte = 0x7E
	ValF32 byte = 0x7D
	ValF64 byte = 0x7C

	opI32Load    byte = 0x28
	opI64Load    byte = 0x29
	opF32Load    byte = 0x2A
	opF64Load    byte = 0x2B
	opI32Load8S  byte = 0x2C
	opI32Load8U  byte = 0x2D
	opI32Load16S byte = 0x2E
	opI32Load16U byte = 0x2F
	opI32Store   byte = 0x36
	opI64Store   byte = 0x37
	opF32Store   byte = 0x38
	opF64Store   byte = 0x39
	opI32Store8  byte = 0x3A
	opI32Store16 byte = 0x3B
)

// Wasm is the WebAssembly spelling of a primitive: the value type it is
// carried in and the load/store instructions that move it to and from memory.
type Wasm struct {
	ValType byte
	Load    byte
	Store   byte
}

// Primitive describes one fixed-width scalar.
type Primitive struct {
	Wit      wit.Type
	Name     string
	CType    string
	PyType   string
	Wasm     Wasm
	Width    uint32
	Class    Class
	WireCode byte
}

func (p *Primitive) String() string {
	return p.Name
}

// IsFloat reports whether the C spelling needs a float typedef.
func (p *Primitive) IsFloat() bool {
	return p.Class == Float
}

// Bits returns the width in bits.
func (p *Primitive) Bits() int {
	return int(p.Width) * 8
}
