// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package taskerr defines the error taxonomy shared by the declaration model,
// the coercion layer and the dispatch runner.
//
// Every failure is a *Error whose Kind is one of the category sentinels below,
// so callers can branch with errors.Is on the category or errors.As on the
// concrete value when they need the Code or the offending Field.
package taskerr

import (
	"errors"
	"fmt"
)

// Category sentinels.
var (
	// ErrType reports a raw value that cannot be coerced to its declared type.
	ErrType = errors.New("type error")
	// ErrConfig reports a declaration that violates a structural invariant.
	ErrConfig = errors.New("config error")
	// ErrArgument reports positional tokens or options the resolved task does not declare.
	ErrArgument = errors.New("argument error")
	// ErrInvocation reports a resolved task that cannot be invoked.
	ErrInvocation = errors.New("invocation error")
)

// Code identifies the precise failure within a category.
type Code string

const (
	ExpectedString   Code = "expected_string"
	ExpectedNumber   Code = "expected_number"
	ExpectedBoolean  Code = "expected_boolean"
	InvalidEnumValue Code = "invalid_enum_value"
	PathNotFound     Code = "path_not_found"
	PathExists       Code = "path_exists"
	NotAFile         Code = "not_a_file"
	NotADirectory    Code = "not_a_directory"

	ArgumentOrderingViolation Code = "argument_ordering_violation"
	DuplicateArgument         Code = "duplicate_argument"
	ReservedName              Code = "reserved_name"
	EmptyEnum                 Code = "empty_enum"
	NoMaterializeMode         Code = "no_materialize_mode"
	UnknownType               Code = "unknown_type"

	UnexpectedArguments Code = "unexpected_arguments"
	UnexpectedOptions   Code = "unexpected_options"

	NoHandlerBound Code = "no_handler_bound"
)

// Error is the concrete error value for every category.
type Error struct {
	Kind    error
	Code    Code
	Field   string // e.g. "<name>" or "--name"; empty when not tied to one field
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the category sentinel to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// WithField returns a copy of e attributed to the given field.
func (e *Error) WithField(field string) *Error {
	cp := *e
	cp.Field = field
	return &cp
}

// Typef builds an ErrType error.
func Typef(code Code, format string, args ...any) *Error {
	return &Error{Kind: ErrType, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Configf builds an ErrConfig error.
func Configf(code Code, format string, args ...any) *Error {
	return &Error{Kind: ErrConfig, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Argumentf builds an ErrArgument error.
func Argumentf(code Code, format string, args ...any) *Error {
	return &Error{Kind: ErrArgument, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Invocationf builds an ErrInvocation error.
func Invocationf(code Code, format string, args ...any) *Error {
	return &Error{Kind: ErrInvocation, Code: code, Message: fmt.Sprintf(format, args...)}
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}
