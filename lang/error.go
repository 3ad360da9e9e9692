package lang

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrorKind is the closed set of failure classes a translation can report.
type ErrorKind int

const (
	// LexError is an unrecognized character sequence in the source text.
	LexError ErrorKind = iota + 1
	// ParseError is a token that does not fit the grammar.
	ParseError
	// DuplicateDeclaration is a name declared twice in the same scope.
	DuplicateDeclaration
	// UnresolvedVariable is a variable extraction with no visible declaration.
	UnresolvedVariable
	// UnboundTemplateVariable is a template variable with no context binding
	// at instantiation time.
	UnboundTemplateVariable
	// TypeMismatch is a value whose shape does not match its declared type.
	TypeMismatch
	// InvalidRange is an index window whose bounds are inverted or out of
	// the source sequence.
	InvalidRange
	// UnresolvedReference is a bind target with no matching declaration.
	UnresolvedReference
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "lexical error"
	case ParseError:
		return "parse error"
	case DuplicateDeclaration:
		return "duplicate declaration"
	case UnresolvedVariable:
		return "unresolved variable"
	case UnboundTemplateVariable:
		return "unbound template variable"
	case TypeMismatch:
		return "type mismatch"
	case InvalidRange:
		return "invalid range"
	case UnresolvedReference:
		return "unresolved reference"
	default:
		return "unknown error"
	}
}

// Sentinels, one per kind, for use with errors.Is.
var (
	ErrLex                     = NewError(LexError)
	ErrParse                   = NewError(ParseError)
	ErrDuplicateDeclaration    = NewError(DuplicateDeclaration)
	ErrUnresolvedVariable      = NewError(UnresolvedVariable)
	ErrUnboundTemplateVariable = NewError(UnboundTemplateVariable)
	ErrTypeMismatch            = NewError(TypeMismatch)
	ErrInvalidRange            = NewError(InvalidRange)
	ErrUnresolvedReference     = NewError(UnresolvedReference)
)

// Error is the structured error produced by every phase of the pipeline.
// It carries a kind, an optional message, an optional source position, an
// optional wrapped cause and attributes for structured logging.
// It implements both error and slog.LogValuer.
type Error struct {
	kind  ErrorKind
	msg   string
	pos   *Position
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error of the given kind.
func NewError(kind ErrorKind) *Error {
	return &Error{kind: kind}
}

// Kind returns the failure class of the error.
func (e *Error) Kind() ErrorKind { return e.kind }

// Position returns the source position and whether one was recorded.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build the message from the parts that are set:
	//
	//   "<kind> at <pos>: <msg>: <err>"
	part := make([]string, 0, 3)

	head := e.kind.String()
	if e.pos != nil {
		head += " at " + e.pos.String()
	}

	part = append(part, head)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports kind equality, so errors.Is(err, ErrTypeMismatch) matches any
// type-mismatch error regardless of message, position or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.kind == t.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)
	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.pos != nil {
		attrs = append(attrs, slog.String("pos", e.pos.String()))
	}

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	clone := *e
	clone.err = err

	return &clone
}

// WithMessage creates a new Error with the given message.
func (e *Error) WithMessage(msg string) *Error {
	clone := *e
	clone.msg = msg

	return &clone
}

// WithPosition creates a new Error annotated with a source position.
func (e *Error) WithPosition(pos Position) *Error {
	clone := *e
	clone.pos = &pos

	return &clone
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	clone := *e
	clone.attrs = newAttrs

	return &clone
}

// WrapError wraps a standard error into an Error of the given kind.
// If err already is an *Error, it is returned unchanged.
func WrapError(kind ErrorKind, err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{kind: kind, err: err}
}

// maxSuggestions caps the "did you mean" candidates attached to lookup
// failures.
const maxSuggestions = 3

// suggest ranks candidates by fuzzy similarity to name and returns up to
// maxSuggestions of the closest, best first.
func suggest(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}

	return out
}
