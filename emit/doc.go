// Package emit defines the contract shared by all artifact emitters.
//
// An Emitter renders one parsed message and its packed layout into one
// target's source or binary form. Emitters never compute offsets or widths
// themselves; they read them from layout.Info and the type table so that
// every artifact agrees on the wire layout.
//
// Implementations live in subpackages:
//
//	cheader/   C header: aggregate, constants enum, decode/encode
//	pymodule/  Python module: dataclass, struct format, from/into buffer
//	wasmmod/   WebAssembly module: field accessors, decode/encode
//	manifest/  JSON description of the layout
package emit
