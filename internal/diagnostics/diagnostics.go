// Package diagnostics defines the single fatal-error kind produced by every
// stage of the Wandle semantic analyzer, in the style of funxy's
// diagnostics.DiagnosticError: one error type, a small closed set of codes,
// and a position-qualified human-readable message.
package diagnostics

import (
	"fmt"

	"github.com/wandlelang/wandle/internal/token"
)

// ErrorCode discriminates the fatal-error categories the analyzer can
// report. Tests key off these rather than message text.
type ErrorCode string

const (
	ErrDuplicateName     ErrorCode = "duplicate-name"
	ErrInvalidAlias      ErrorCode = "invalid-alias"
	ErrUnknownType       ErrorCode = "unknown-type"
	ErrUnknownName       ErrorCode = "unknown-name"
	ErrArityMismatch     ErrorCode = "arity-mismatch"
	ErrTypeMismatch      ErrorCode = "type-mismatch"
	ErrNotReady          ErrorCode = "not-ready"
	ErrWrongKind         ErrorCode = "wrong-kind"
	ErrMissingReturn     ErrorCode = "missing-return"
	ErrInheritanceCycle  ErrorCode = "inheritance-cycle"
	ErrMalformedSyntax   ErrorCode = "malformed-syntax"
)

// prefixes gives each ErrorCode a human-readable category label, so
// callers that inspect only the string (e.g. a CLI diff test) still see
// a stable, documented prefix.
var prefixes = map[ErrorCode]string{
	ErrDuplicateName:    "Duplicate name",
	ErrInvalidAlias:     "Invalid alias",
	ErrUnknownType:      "Unknown type",
	ErrUnknownName:      "Unknown name",
	ErrArityMismatch:    "Arity mismatch",
	ErrTypeMismatch:     "Type mismatch",
	ErrNotReady:         "Not ready",
	ErrWrongKind:        "Wrong kind",
	ErrMissingReturn:    "Missing return",
	ErrInheritanceCycle: "Inheritance cycle",
	ErrMalformedSyntax:  "Malformed syntax",
}

// Error is the sole fatal-error type produced by this module. Every pass
// aborts on the first one it produces; there is no recovery.
type Error struct {
	Code    ErrorCode
	Token   token.Token
	Message string
}

// New builds an Error, formatting Message like fmt.Sprintf when args are
// given.
func New(code ErrorCode, tok token.Token, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: code, Token: tok, Message: msg}
}

func (e *Error) Error() string {
	prefix := prefixes[e.Code]
	if prefix == "" {
		prefix = string(e.Code)
	}
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, col %d)", prefix, e.Message, e.Token.Line, e.Token.Column)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}
