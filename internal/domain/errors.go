package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind names a class of rejected board operation.
type ErrorKind string

const (
	KindEmptyTitle           ErrorKind = "EmptyTitle"
	KindEmptyColumnTitle     ErrorKind = "EmptyColumnTitle"
	KindDuplicateColumnTitle ErrorKind = "DuplicateColumnTitle"
	KindNoColumns            ErrorKind = "NoColumns"
	KindMissingStatus        ErrorKind = "MissingStatus"
	KindNotFound             ErrorKind = "NotFound"
	KindInvariantViolation   ErrorKind = "InvariantViolation"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvariantViolation = errors.New("board state invariant violated")
)

// FieldError is a single validation failure tied to one form field, for
// example "title" or "columns[2].title".
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationErrors collects every failure found in one input so a form
// can render all of them at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether any failure is of the given kind.
func (v ValidationErrors) Has(kind ErrorKind) bool {
	for _, fe := range v {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// Field returns the failures recorded for one field.
func (v ValidationErrors) Field(name string) []FieldError {
	var out []FieldError
	for _, fe := range v {
		if fe.Field == name {
			out = append(out, fe)
		}
	}
	return out
}

// NotFoundError reports an operation on an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvariantError means the store's cross-references broke. It signals a
// programming error and must be surfaced, never swallowed.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Detail
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// KindOf maps an error returned by the board engine to its kind. Errors
// that are not engine errors map to the empty kind.
func KindOf(err error) ErrorKind {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs) && len(verrs) > 0:
		return verrs[0].Kind
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvariantViolation):
		return KindInvariantViolation
	}
	return ""
}
