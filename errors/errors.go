package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse  Phase = "parse"  // schema text to message
	PhaseLayout Phase = "layout" // offset and size calculation
	PhaseEmit   Phase = "emit"   // artifact rendering
	PhaseVerify Phase = "verify" // runtime cross-check of artifacts
	PhaseConfig Phase = "config" // project file loading
	PhaseIO     Phase = "io"     // schema and artifact files
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidMessageName   Kind = "invalid_message_name"
	KindUnknownType          Kind = "unknown_type"
	KindInvalidIdentifier    Kind = "invalid_identifier"
	KindMalformedDeclaration Kind = "malformed_declaration"
	KindDuplicateField       Kind = "duplicate_field"
	KindInvalidConstant      Kind = "invalid_constant"
	KindShortBuffer          Kind = "short_buffer"
	KindLayoutMismatch       Kind = "layout_mismatch"
	KindUnknownTarget        Kind = "unknown_target"
	KindInvalidConfig        Kind = "invalid_config"
	KindIO                   Kind = "io"
)

// Sentinels for errors.Is. They carry no phase, so they match any phase.
var (
	ErrInvalidMessageName   = &Error{Kind: KindInvalidMessageName}
	ErrUnknownType          = &Error{Kind: KindUnknownType}
	ErrInvalidIdentifier    = &Error{Kind: KindInvalidIdentifier}
	ErrMalformedDeclaration = &Error{Kind: KindMalformedDeclaration}
	ErrDuplicateField       = &Error{Kind: KindDuplicateField}
	ErrInvalidConstant      = &Error{Kind: KindInvalidConstant}
	ErrShortBuffer          = &Error{Kind: KindShortBuffer}
	ErrLayoutMismatch       = &Error{Kind: KindLayoutMismatch}
	ErrUnknownTarget        = &Error{Kind: KindUnknownTarget}
	ErrInvalidConfig        = &Error{Kind: KindInvalidConfig}
)

// Error is the structured error type used throughout msgc
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Token  string
	Detail string
	Path   []string
	Line   int
	Column int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Line > 0 {
		b.WriteString(" at line ")
		b.WriteString(strconv.Itoa(e.Line))
		if e.Column > 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(e.Column))
		}
	}

	if len(e.Path) > 0 {
		b.WriteString(" in ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Token != "" {
		b.WriteString(": ")
		b.WriteString(strconv.Quote(e.Token))
	}

	if e.Detail != "" {
		if e.Token != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Kinds must be equal; the phase is compared only when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || e.Phase == t.Phase
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Line sets the 1-based schema line
func (b *Builder) Line(line int) *Builder {
	b.err.Line = line
	return b
}

// Column sets the 1-based column of the offending token
func (b *Builder) Column(col int) *Builder {
	b.err.Column = col
	return b
}

// Token sets the offending token text
func (b *Builder) Token(tok string) *Builder {
	b.err.Token = tok
	return b
}

// Path sets the message/field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidMessageName creates an error for a message name that is not an identifier
func InvalidMessageName(name string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidMessageName,
		Token:  name,
		Detail: "message name must match [A-Za-z_][A-Za-z0-9_]*",
	}
}

// UnknownType creates an error for a type name missing from the type table
func UnknownType(line, col int, name string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownType,
		Line:   line,
		Column: col,
		Token:  name,
		Detail: "not a primitive type",
	}
}

// InvalidIdentifier creates an error for a field name that is not an identifier
func InvalidIdentifier(line, col int, name string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidIdentifier,
		Line:   line,
		Column: col,
		Token:  name,
		Detail: "field name must match [A-Za-z_][A-Za-z0-9_]*",
	}
}

// MalformedDeclaration creates an error for a line that fits neither declaration shape
func MalformedDeclaration(line int, text string, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedDeclaration,
		Line:   line,
		Token:  text,
		Detail: detail,
	}
}

// DuplicateField creates an error for a field name declared twice
func DuplicateField(phase Phase, line int, name string, first int) *Error {
	e := &Error{
		Phase: phase,
		Kind:  KindDuplicateField,
		Line:  line,
		Token: name,
	}
	if first > 0 {
		e.Detail = fmt.Sprintf("already declared on line %d", first)
	} else {
		e.Detail = "field name is not unique"
	}
	return e
}

// InvalidConstant creates an error for a literal that does not fit its declared type
func InvalidConstant(line, col int, literal, typeName string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidConstant,
		Line:   line,
		Column: col,
		Token:  literal,
		Detail: fmt.Sprintf("not a valid %s literal", typeName),
		Cause:  cause,
	}
}

// ShortBuffer creates an error for a buffer smaller than the packed size
func ShortBuffer(phase Phase, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShortBuffer,
		Detail: fmt.Sprintf("buffer holds %d bytes, need %d", have, need),
	}
}

// LayoutMismatch creates an error for two artifacts disagreeing on a field
func LayoutMismatch(path []string, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindLayoutMismatch,
		Path:   path,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// UnknownTarget creates an error for an emitter target that is not registered
func UnknownTarget(phase Phase, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownTarget,
		Token:  target,
		Detail: "no emitter for target",
	}
}

// InvalidConfig creates a configuration error
func InvalidConfig(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Detail: detail,
		Cause:  cause,
	}
}

// IO wraps a file system error
func IO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseIO,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
