// Package pymodule renders a message as a self-contained Python module.
//
// The module holds one dataclass with an annotated attribute per storage
// field, class-level constants for constant fields, and a shared
// struct.Struct whose format is layout.Info.Format(). from_buffer and
// into_buffer are exact inverses for buffers of the packed size.
package pymodule

import (
	"strings"

	"github.com/wippyai/msgc/emit"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
)

const (
	// Target selects the Python module emitter.
	Target = "python"
	// Suffix is the module file extension.
	Suffix = ".py"
)

// keywords are the Python 3 hard keywords.
var keywords = emit.NewNames(
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
)

// methods are the class attributes the generated record defines itself.
var methods = emit.NewNames("from_buffer", "into_buffer")

// Emitter renders Python modules.
type Emitter struct{}

// New returns a Python module emitter.
func New() *Emitter {
	return &Emitter{}
}

// Target returns "python".
func (*Emitter) Target() string { return Target }

// Suffix returns ".py".
func (*Emitter) Suffix() string { return Suffix }

// StructName returns the module-level name of the message's struct.Struct.
// It starts with a single underscore followed by a letter so class-private
// name mangling never applies to it inside the record's methods.
func StructName(msg *schema.Message) string {
	return "_struct_" + msg.Name
}

// check rejects keywords and names the generated methods would shadow.
func check(msg *schema.Message) error {
	if keywords[msg.Name] {
		return emit.MessageClash(Target, msg, "message name is a Python keyword")
	}
	for _, f := range msg.Fields {
		switch {
		case keywords[f.Name]:
			return emit.Clash(Target, msg, f, f.Name, "field name is a Python keyword")
		case methods[f.Name]:
			return emit.Clash(Target, msg, f, f.Name, "field name is a generated method")
		}
	}
	return nil
}

// Emit renders the module for msg, or an InvalidIdentifier error when a
// name is a keyword or a generated method.
func (*Emitter) Emit(msg *schema.Message, info layout.Info) ([]byte, error) {
	if err := check(msg); err != nil {
		return nil, err
	}

	w := emit.NewWriter("    ")
	name := msg.Name
	st := StructName(msg)

	w.Line("# Code generated by msgc. DO NOT EDIT.")
	w.Line("# message %s: %d bytes on the wire, little-endian", name, info.Size)
	w.Line("import struct")
	w.Line("from dataclasses import dataclass")
	w.Blank()
	w.Line("%s = struct.Struct(%q)", st, info.Format())
	w.Blank()
	w.Blank()
	w.Line("@dataclass")
	w.Line("class %s:", name)
	w.Indent()

	constants := msg.Constants()
	for _, f := range constants {
		w.Line("%s = %s", f.Name, f.Value)
	}
	if len(constants) > 0 {
		w.Blank()
	}

	for _, s := range info.Slots {
		w.Line("%s: %s", s.Field.Name, s.Field.Type.PyType)
	}
	if len(info.Slots) > 0 {
		w.Blank()
	}

	w.Line("@classmethod")
	w.Line("def from_buffer(cls, buff: bytes) -> %q:", name)
	w.Indent()
	w.Line("return cls(*%s.unpack(buff))", st)
	w.Dedent()
	w.Blank()

	attrs := make([]string, len(info.Slots))
	for i, s := range info.Slots {
		attrs[i] = "self." + s.Field.Name
	}
	w.Line("def into_buffer(self) -> bytes:")
	w.Indent()
	w.Line("return %s.pack(%s)", st, strings.Join(attrs, ", "))
	w.Dedent()

	w.Dedent()
	return w.Bytes(), nil
}
