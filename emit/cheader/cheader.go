// Package cheader renders a message as a self-contained C header.
//
// The header declares one aggregate with a member per storage field, an
// anonymous enum holding the constant fields as <Name>_<field>, a packed
// size macro MSGC_PACKED_SIZE_<Name> and two static inline routines:
//
//	size_t decode_<Name>(<Name>* dst, const void* src, size_t srcLen);
//	size_t encode_<Name>(const <Name>* src, void* dst, size_t dstLen);
//
// Both return 0 when the buffer is shorter than the packed size and the
// packed size otherwise. Fields are copied one memcpy at a time at their
// packed offsets, so padding the compiler adds to the aggregate never leaks
// into the wire format. Bytes are copied in host order; the header refuses
// to compile on a big-endian host.
package cheader

import (
	"strings"

	"github.com/wippyai/msgc/emit"
	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
	"github.com/wippyai/msgc/types"
)

const (
	// Target selects the C header emitter.
	Target = "c"
	// Suffix is the header file extension.
	Suffix = ".h"
)

// keywords are the C11 reserved words.
var keywords = emit.NewNames(
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while", "_Alignas", "_Alignof",
	"_Atomic", "_Bool", "_Complex", "_Generic", "_Imaginary", "_Noreturn",
	"_Static_assert", "_Thread_local",
)

// includedNames are file-scope identifiers the included headers declare.
var includedNames = emit.NewNames(
	"size_t", "ptrdiff_t", "wchar_t", "max_align_t",
	"int8_t", "int16_t", "int32_t", "int64_t",
	"uint8_t", "uint16_t", "uint32_t", "uint64_t",
	"int_least8_t", "int_least16_t", "int_least32_t", "int_least64_t",
	"uint_least8_t", "uint_least16_t", "uint_least32_t", "uint_least64_t",
	"int_fast8_t", "int_fast16_t", "int_fast32_t", "int_fast64_t",
	"uint_fast8_t", "uint_fast16_t", "uint_fast32_t", "uint_fast64_t",
	"intptr_t", "uintptr_t", "intmax_t", "uintmax_t",
	"memchr", "memcmp", "memcpy", "memmove", "memset",
	"strcat", "strchr", "strcmp", "strcoll", "strcpy", "strcspn", "strerror",
	"strlen", "strncat", "strncmp", "strncpy", "strpbrk", "strrchr", "strspn",
	"strstr", "strtok", "strxfrm",
)

// includedMacros are macros the included headers define. A macro also
// breaks struct members, so members are checked against these too.
var includedMacros = func() emit.Names {
	n := emit.NewNames("NULL", "offsetof", "SIZE_MAX", "PTRDIFF_MIN", "PTRDIFF_MAX",
		"INTPTR_MIN", "INTPTR_MAX", "UINTPTR_MAX", "INTMAX_MIN", "INTMAX_MAX",
		"UINTMAX_MAX", "INTMAX_C", "UINTMAX_C", "WCHAR_MIN", "WCHAR_MAX",
		"WINT_MIN", "WINT_MAX", "SIG_ATOMIC_MIN", "SIG_ATOMIC_MAX")
	for _, bits := range []string{"8", "16", "32", "64"} {
		n.Add("INT"+bits+"_MIN", "INT"+bits+"_MAX", "UINT"+bits+"_MAX",
			"INT"+bits+"_C", "UINT"+bits+"_C")
		for _, kind := range []string{"LEAST", "FAST"} {
			n.Add("INT_"+kind+bits+"_MIN", "INT_"+kind+bits+"_MAX", "UINT_"+kind+bits+"_MAX")
		}
	}
	return n
}()

// Emitter renders C headers.
type Emitter struct{}

// New returns a C header emitter.
func New() *Emitter {
	return &Emitter{}
}

// Target returns "c".
func (*Emitter) Target() string { return Target }

// Suffix returns ".h".
func (*Emitter) Suffix() string { return Suffix }

// SizeMacro returns the name of the packed size macro.
func SizeMacro(msg *schema.Message) string {
	return "MSGC_PACKED_SIZE_" + msg.Name
}

// check rejects names that would not compile: keywords and standard names
// as the message or a member, and enumerators that redeclare something the
// header or its includes declare.
func check(msg *schema.Message, info layout.Info) error {
	switch {
	case keywords[msg.Name]:
		return emit.MessageClash(Target, msg, "message name is a C keyword")
	case includedNames[msg.Name], includedMacros[msg.Name]:
		return emit.MessageClash(Target, msg, "message name is declared by a standard header")
	}
	for _, s := range info.Slots {
		switch {
		case keywords[s.Field.Name]:
			return emit.Clash(Target, msg, s.Field, s.Field.Name, "member name is a C keyword")
		case includedMacros[s.Field.Name]:
			return emit.Clash(Target, msg, s.Field, s.Field.Name, "member name is a standard macro")
		}
	}

	// Float aliases and guards count even when unused here: another
	// generated header in the same translation unit may declare them.
	declared := emit.NewNames()
	for _, p := range types.Default().All() {
		if p.IsFloat() {
			declared.Add(p.CType, floatGuard(p))
		}
	}
	if declared[msg.Name] {
		return emit.MessageClash(Target, msg, "message name is a generated float alias")
	}
	declared.Add(msg.Name, SizeMacro(msg), "decode_"+msg.Name, "encode_"+msg.Name)
	for _, f := range msg.Constants() {
		ident := msg.Name + "_" + f.Name
		if declared[ident] || includedNames[ident] || includedMacros[ident] {
			return emit.Clash(Target, msg, f, ident, "enumerator collides with a name the header declares")
		}
	}
	return nil
}

func floatGuard(p *types.Primitive) string {
	return "MSGC_" + strings.ToUpper(p.CType)
}

// Emit renders the header for msg, or an InvalidIdentifier error when a
// name would not compile.
func (*Emitter) Emit(msg *schema.Message, info layout.Info) ([]byte, error) {
	if err := check(msg, info); err != nil {
		return nil, err
	}

	w := emit.NewWriter("    ")
	name := msg.Name
	sizeMacro := SizeMacro(msg)

	w.Line("/* Code generated by msgc. DO NOT EDIT. */")
	w.Line("/* message %s: %d bytes on the wire, little-endian */", name, info.Size)
	w.Line("#pragma once")
	w.Blank()
	w.Line("#include <stddef.h>")
	w.Line("#include <stdint.h>")
	w.Line("#include <string.h>")
	w.Blank()
	w.Line("#if defined(__BYTE_ORDER__) && __BYTE_ORDER__ != __ORDER_LITTLE_ENDIAN__")
	w.Line("#error \"%s%s requires a little-endian host\"", name, Suffix)
	w.Line("#endif")
	w.Blank()

	writeFloatTypedefs(w, info)

	w.Line("#define %s %d", sizeMacro, info.Size)
	w.Blank()

	if constants := msg.Constants(); len(constants) > 0 {
		w.Line("enum {")
		w.Indent()
		for _, f := range constants {
			w.Line("%s_%s = %s,", name, f.Name, f.Value)
		}
		w.Dedent()
		w.Line("};")
		w.Blank()
	}

	if nat := layout.NaturalLayout(msg); nat.Padded() {
		w.Line("/* in-memory sizeof(%s) is %d (aligned), wire size is %d */", name, nat.Size, info.Size)
	}
	w.Line("typedef struct %s {", name)
	w.Indent()
	if len(info.Slots) == 0 {
		// C forbids an empty struct.
		w.Line("uint8_t _empty;")
	}
	for _, s := range info.Slots {
		w.Line("%s %s;", s.Field.Type.CType, s.Field.Name)
	}
	w.Dedent()
	w.Line("} %s;", name)
	w.Blank()

	writeDecode(w, name, sizeMacro, info)
	w.Blank()
	writeEncode(w, name, sizeMacro, info)

	return w.Bytes(), nil
}

// writeFloatTypedefs declares float32_t/float64_t for the float widths the
// message uses. Guards let several generated headers share one translation
// unit.
func writeFloatTypedefs(w *emit.Writer, info layout.Info) {
	seen := make(map[*types.Primitive]bool)
	for _, s := range info.Slots {
		p := s.Field.Type
		if !p.IsFloat() || seen[p] {
			continue
		}
		seen[p] = true
		native := "float"
		if p.Width == 8 {
			native = "double"
		}
		guard := floatGuard(p)
		w.Line("#ifndef %s", guard)
		w.Line("#define %s", guard)
		w.Line("typedef %s %s;", native, p.CType)
		w.Line("#endif")
		w.Blank()
	}
}

func writeDecode(w *emit.Writer, name, sizeMacro string, info layout.Info) {
	w.Line("static inline size_t decode_%s(%s* dst, const void* src, size_t srcLen) {", name, name)
	w.Indent()
	w.Line("if (srcLen < %s) {", sizeMacro)
	w.Indent()
	w.Line("return 0;")
	w.Dedent()
	w.Line("}")
	if len(info.Slots) == 0 {
		w.Line("(void)dst;")
		w.Line("(void)src;")
	} else {
		w.Line("const uint8_t* in = (const uint8_t*)src;")
		for _, s := range info.Slots {
			w.Line("memcpy(&dst->%s, in + %d, %d);", s.Field.Name, s.Offset, s.Width)
		}
	}
	w.Line("return %s;", sizeMacro)
	w.Dedent()
	w.Line("}")
}

func writeEncode(w *emit.Writer, name, sizeMacro string, info layout.Info) {
	w.Line("static inline size_t encode_%s(const %s* src, void* dst, size_t dstLen) {", name, name)
	w.Indent()
	w.Line("if (dstLen < %s) {", sizeMacro)
	w.Indent()
	w.Line("return 0;")
	w.Dedent()
	w.Line("}")
	if len(info.Slots) == 0 {
		w.Line("(void)src;")
		w.Line("(void)dst;")
	} else {
		w.Line("uint8_t* out = (uint8_t*)dst;")
		for _, s := range info.Slots {
			w.Line("memcpy(out + %d, &src->%s, %d);", s.Offset, s.Field.Name, s.Width)
		}
	}
	w.Line("return %s;", sizeMacro)
	w.Dedent()
	w.Line("}")
}
