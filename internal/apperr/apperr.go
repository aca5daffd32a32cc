// Package apperr defines the error kinds surfaced to API clients.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindIntegrity:
		return "integrity"
	}

	return "internal"
}

// FieldError points at a single offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified error. Services return it (possibly wrapped) and
// handlers translate it with HTTPStatus.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}

		return e.Message + " (" + strings.Join(parts, "; ") + ")"
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Field builds a FieldError.
func Field(field, message string) FieldError {
	return FieldError{Field: field, Message: message}
}

// Validation reports malformed input or a broken cross-field rule.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// InvalidField is shorthand for a validation error on one field.
func InvalidField(field, message string) *Error {
	return Validation("invalid input", Field(field, message))
}

// NotFound reports a missing referenced entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a uniqueness violation or a state conflict.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Integrity reports a delete blocked by existing references.
func Integrity(message string) *Error {
	return &Error{Kind: KindIntegrity, Message: message}
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// KindOf returns the kind of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}

	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindIntegrity:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}
