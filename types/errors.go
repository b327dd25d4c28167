package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies domain errors so the CLI layer can map them to exit
// behavior without inspecting message text.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not-found"
	KindInvalidValue ErrorKind = "invalid-value"
	KindCorruptStore ErrorKind = "corrupt-store"
	KindConflict     ErrorKind = "conflict"
)

// Sentinel errors for errors.Is matching. Each carries only a kind; any
// *Error of the same kind matches it.
var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrInvalidValue = &Error{Kind: KindInvalidValue}
	ErrCorruptStore = &Error{Kind: KindCorruptStore}
	ErrConflict     = &Error{Kind: KindConflict}
)

// Error is the typed error returned by every core component. Field names the
// offending input for validation and invalid-value errors; Err carries the
// underlying cause (e.g. the raw parse error for a corrupt store).
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Field != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Field)
		sb.WriteString(")")
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality, so errors.Is(err, types.ErrNotFound) matches any
// not-found error regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NewValidationError reports bad or missing required input.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NewNotFoundError reports a missing id or path.
func NewNotFoundError(what string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v not found", what, id)}
}

// NewInvalidValueError reports a value outside the configured vocabulary.
// The message lists the valid set so the caller can surface it verbatim.
func NewInvalidValueError(field, value string, valid []string) *Error {
	return &Error{
		Kind:    KindInvalidValue,
		Field:   field,
		Message: fmt.Sprintf("%q is not a valid %s (valid: %s)", value, field, strings.Join(valid, ", ")),
	}
}

// NewCorruptStoreError reports an unparsable backing document. The parse
// failure is preserved as the wrapped cause.
func NewCorruptStoreError(path string, err error) *Error {
	return &Error{Kind: KindCorruptStore, Message: fmt.Sprintf("store file %s is unreadable", path), Err: err}
}

// NewConflictError reports an id collision between partitions.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}
