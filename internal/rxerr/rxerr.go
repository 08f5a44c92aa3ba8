// Package rxerr defines the compile-time error taxonomy for the regex engine.
package rxerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the exhaustive compile-time error taxonomy (spec §7).
type Kind string

const (
	Memory        Kind = "Memory"
	TooLong       Kind = "TooLong"
	Overflow      Kind = "Overflow"
	BadRepeat     Kind = "BadRepeat"
	BadSet        Kind = "BadSet"
	BadDirective  Kind = "BadDirective"
	MissingBrace  Kind = "MissingBrace"
	BadGroup      Kind = "BadGroup"
	MissingParen  Kind = "MissingParen"
	BadEscape     Kind = "BadEscape"
	MissingBracket Kind = "MissingBracket"
	BadName       Kind = "BadName"
	Undefined     Kind = "Undefined"
	Redefined     Kind = "Redefined"
	ExtraJunk     Kind = "ExtraJunk"
)

// CompileError reports a single parse/compile failure with its position in the
// pattern. Execution never returns this type; it only ever returns bool/false.
type CompileError struct {
	Kind    Kind
	Message string
	Pos     int // rune offset into the pattern
}

func (e *CompileError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds a CompileError at the given pattern position.
func New(kind Kind, pos int, format string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Wrap folds an internal invariant failure into the CompileError taxonomy,
// giving callers a stable Kind to switch on. The cause is wrapped with
// pkg/errors and only the resulting message text is stored in Message; the
// stack trace pkg/errors records is not kept in the CompileError.
func Wrap(kind Kind, pos int, cause error, format string, args ...interface{}) *CompileError {
	wrapped := errors.Wrapf(cause, format, args...)
	return &CompileError{Kind: kind, Pos: pos, Message: wrapped.Error()}
}
