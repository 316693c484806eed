// Package errors provides structured error types for the msgc compiler.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the schema position (line, column, offending token),
// a detail message and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindUnknownType).
//		Line(3).
//		Token("uint9").
//		Detail("type is not in the type table").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownType(3, 1, "uint9")
//	err := errors.ShortBuffer(errors.PhaseVerify, 8, 4)
//
// Every kind has a sentinel (ErrUnknownType, ErrMalformedDeclaration, ...)
// that matches through errors.Is regardless of phase or position.
package errors
