// Package types defines the primitive scalar type table.
//
// The table is the single source of truth for every width and every
// per-target spelling used by the layout calculator and the emitters.
// It is built once by Default and never mutated.
//
// # Key Types
//
//   - Primitive: one scalar type with width, class and target spellings
//   - Class: signed integer, unsigned integer or float
//   - Table: immutable name to Primitive registry
package types
