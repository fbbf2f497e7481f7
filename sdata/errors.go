package sdata

import (
	"fmt"
)

// ErrorKind identifies the failed constraint of ValidationError
type ErrorKind string

// Kinds of validation errors
const (
	KindObject      ErrorKind = "object.base"
	KindNumber      ErrorKind = "number.base"
	KindInteger     ErrorKind = "number.integer"
	KindMin         ErrorKind = "number.min"
	KindMax         ErrorKind = "number.max"
	KindString      ErrorKind = "string.base"
	KindEmpty       ErrorKind = "string.empty"
	KindMinLength   ErrorKind = "string.min"
	KindMaxLength   ErrorKind = "string.max"
	KindHostname    ErrorKind = "string.hostname"
	KindPattern     ErrorKind = "string.regex"
	KindForbidden   ErrorKind = "any.unknown"
	KindLanguageTag ErrorKind = "language.tag"
)

// ValidationError describes why structured data failed validation
type ValidationError struct {
	Kind    ErrorKind
	Key     string // the innermost key of failed value
	Message string // human-readable message
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, key string, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Key:     key,
		Message: fmt.Sprintf(`"%s" `, key) + fmt.Sprintf(format, args...),
	}
}

func newLanguageTagError() *ValidationError {
	return &ValidationError{
		Kind:    KindLanguageTag,
		Key:     "language",
		Message: "Invalid language tag",
	}
}
