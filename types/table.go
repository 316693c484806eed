package types

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/msgc/errors"
)

// Table is an immutable registry of primitive types keyed by schema name.
type Table struct {
	byName map[string]*Primitive
	order  []*Primitive
}

func newTable(prims ...Primitive) *Table {
	t := &Table{
		byName: make(map[string]*Primitive, len(prims)),
		order:  make([]*Primitive, 0, len(prims)),
	}
	for i := range prims {
		p := &prims[i]
		t.byName[p.Name] = p
		t.order = append(t.order, p)
	}
	return t
}

var defaultTable = newTable(
	Primitive{Name: "int8", Width: 1, Class: Signed, WireCode: 'b', CType: "int8_t", PyType: "int", Wit: wit.S8{},
		Wasm: Wasm{ValType: ValI32, Load: opI32Load8S, Store: opI32Store8}},
	Primitive{Name: "uint8", Width: 1, Class: Unsigned, WireCode: 'B', CType: "uint8_t", PyType: "int", Wit: wit.U8{},
		Wasm: Wasm{ValType: ValI32, Load: opI32Load8U, Store: opI32Store8}},
	Primitive{Name: "int16", Width: 2, Class: Signed, WireCode: 'h', CType: "int16_t", PyType: "int", Wit: wit.S16{},
		Wasm: Wasm{ValType: ValI32, Load: opI32Load16S, Store: opI32Store16}},
	Primitive{Name: "uint16", Width: 2, Class: Unsigned, WireCode: 'H', CType: "uint16_t", PyType: "int", Wit: wit.U16{},
		Wasm: Wasm{ValType: ValI32, Load: opI32Load16U, Store: opI32Store16}},
	Primitive{Name: "int32", Width: 4, Class: Signed, WireCode: 'i', CType: "int32_t", PyType: "int", Wit: wit.S32{},
		Wasm: Wasm{ValType: ValI32, Load: opI32Load, Store: opI32Store}},
	Primitive{Name: "uint32", Width: 4, Class: Unsigned, WireCode: 'I', CType: "uint32_t", PyType: "int", Wit: wit.U32{},
		Wasm: Wasm{ValType: ValI32, Load: opI32Load, Store: opI32Store}},
	// q/Q rather than l/L: under an explicit byte-order prefix struct uses
	// standard sizes and l is 4 bytes.
	Primitive{Name: "int64", Width: 8, Class: Signed, WireCode: 'q', CType: "int64_t", PyType: "int", Wit: wit.S64{},
		Wasm: Wasm{ValType: ValI64, Load: opI64Load, Store: opI64Store}},
	Primitive{Name: "uint64", Width: 8, Class: Unsigned, WireCode: 'Q', CType: "uint64_t", PyType: "int", Wit: wit.U64{},
		Wasm: Wasm{ValType: ValI64, Load: opI64Load, Store: opI64Store}},
	Primitive{Name: "float32", Width: 4, Class: Float, WireCode: 'f', CType: "float32_t", PyType: "float", Wit: wit.F32{},
		Wasm: Wasm{ValType: ValF32, Load: opF32Load, Store: opF32Store}},
	Primitive{Name: "float64", Width: 8, Class: Float, WireCode: 'd', CType: "float64_t", PyType: "float", Wit: wit.F64{},
		Wasm: Wasm{ValType: ValF64, Load: opF64Load, Store: opF64Store}},
)

// Default returns the built-in table of the ten primitive types.
// The same *Table is returned on every call.
func Default() *Table {
	return defaultTable
}

// Lookup returns the primitive registered under name.
func (t *Table) Lookup(name string) (*Primitive, error) {
	if p, ok := t.byName[name]; ok {
		return p, nil
	}
	return nil, errors.New(errors.PhaseParse, errors.KindUnknownType).
		Token(name).
		Detail("not a primitive type").
		Build()
}

// Has reports whether name is a registered type.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names lists the registered type names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	for i, p := range t.order {
		names[i] = p.Name
	}
	return names
}

// All returns the primitives in table order.
func (t *Table) All() []*Primitive {
	out := make([]*Primitive, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of registered types.
func (t *Table) Len() int {
	return len(t.order)
}
