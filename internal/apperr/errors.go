// Package apperr holds the typed errors returned by the kanbanify services.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeStorage    Code = "STORAGE_ERROR"
	CodeAuth       Code = "AUTH_ERROR"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// Error carries a human readable message together with a machine code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return New(CodeValidation, format, args...)
}

func Auth(format string, args ...any) *Error {
	return New(CodeAuth, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(CodeNotFound, format, args...)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func IsValidation(err error) bool {
	return err != nil && CodeOf(err) == CodeValidation
}

// ValidateString rejects values that are empty after trimming whitespace.
func ValidateString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return Validation("%s cannot be empty or null", field)
	}
	return nil
}
