// Package layout computes the byte layout of a parsed message.
//
// Two layouts are derived from the same field list:
//
//   - Packed: the wire layout. Storage fields are placed back to back in
//     declaration order with no padding; constant fields take no space.
//   - Natural: the in-memory layout a C compiler gives the aggregate, where
//     each scalar is aligned to its own width and the total is rounded up
//     to the widest member.
//
// The packed layout is the contract every emitter implements. The natural
// layout is diagnostic only; emitted code copies field by field so the two
// may differ without affecting the wire format.
//
// # Usage
//
//	info := layout.Calculate(msg)
//	// info.Size, info.Slots, info.Format() available
package layout
