package emit

import (
	"github.com/wippyai/msgc/errors"
	"github.com/wippyai/msgc/schema"
)

// Names is a set of identifiers a generated artifact already uses, either
// as language keywords or as names it declares itself.
type Names map[string]bool

func NewNames(words ...string) Names {
	n := make(Names, len(words))
	n.Add(words...)
	return n
}

func (n Names) Add(words ...string) {
	for _, w := range words {
		n[w] = true
	}
}

// Clash reports that field f, spelled as ident in the target, cannot be
// declared because the target already uses ident.
func Clash(target string, msg *schema.Message, f schema.Field, ident, detail string) *errors.Error {
	return errors.New(errors.PhaseEmit, errors.KindInvalidIdentifier).
		Line(f.Line).
		Token(ident).
		Path(msg.Name, f.Name).
		Detail("%s: %s", target, detail).
		Build()
}

// MessageClash reports a message name the target cannot declare.
func MessageClash(target string, msg *schema.Message, detail string) *errors.Error {
	return errors.New(errors.PhaseEmit, errors.KindInvalidIdentifier).
		Token(msg.Name).
		Path(msg.Name).
		Detail("%s: %s", target, detail).
		Build()
}
