package emit

import (
	"fmt"
	"strings"

	"github.com/wippyai/msgc/layout"
	"github.com/wippyai/msgc/schema"
)

// Emitter renders a message for one target.
type Emitter interface {
	// Target is the short name used to select the emitter ("c", "python").
	Target() string
	// Suffix is appended to an output base path.
	Suffix() string
	Emit(msg *schema.Message, info layout.Info) ([]byte, error)
}

// Artifact is the output of one emitter.
type Artifact struct {
	Target string
	Suffix string
	Data   []byte
}

// Writer accumulates generated text line by line.
type Writer struct {
	b      strings.Builder
	indent string
	depth  int
}

// NewWriter returns a Writer that indents nested lines with indent.
func NewWriter(indent string) *Writer {
	return &Writer{indent: indent}
}

// Line writes one indented line. With args, format is passed to fmt.Sprintf.
func (w *Writer) Line(format string, args ...any) {
	for i := 0; i < w.depth; i++ {
		w.b.WriteString(w.indent)
	}
	if len(args) > 0 {
		fmt.Fprintf(&w.b, format, args...)
	} else {
		w.b.WriteString(format)
	}
	w.b.WriteByte('\n')
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.b.WriteByte('\n')
}

// Indent increases the nesting depth.
func (w *Writer) Indent() {
	w.depth++
}

// Dedent decreases the nesting depth.
func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

func (w *Writer) String() string {
	return w.b.String()
}

func (w *Writer) Bytes() []byte {
	return []byte(w.b.String())
}
