package schema

import "github.com/wippyai/msgc/types"

// FieldKind discriminates storage fields from constant fields.
type FieldKind uint8

const (
	// Storage fields occupy bytes in the packed layout.
	Storage FieldKind = iota
	// Constant fields are named literals with no footprint.
	Constant
)

func (k FieldKind) String() string {
	switch k {
	case Storage:
		return "storage"
	case Constant:
		return "constant"
	}
	return "unknown"
}

// Field is one declaration. Value is set only when Kind is Constant.
type Field struct {
	Type  *types.Primitive
	Name  string
	Value string
	Line  int
	Kind  FieldKind
}

// IsStorage reports whether the field contributes to the binary layout.
func (f Field) IsStorage() bool {
	return f.Kind == Storage
}

// Width returns the field's footprint in the packed layout.
func (f Field) Width() uint32 {
	switch f.Kind {
	case Storage:
		return f.Type.Width
	case Constant:
		return 0
	}
	return 0
}
