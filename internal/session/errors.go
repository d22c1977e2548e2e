// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"errors"
	"fmt"
)

var (
	// ErrUnboundVariable is matched by every *UnboundVariableError.
	ErrUnboundVariable = errors.New("unbound variable")
	// ErrTypeMismatch is matched by every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrHandleClosed is returned when a file handle is used or closed after it has been closed.
	ErrHandleClosed = errors.New("file handle is closed")
	// ErrInvalidName is returned when binding a name that is not a valid identifier.
	ErrInvalidName = errors.New("invalid variable name")
	// ErrInvalidMode is returned when parsing an unknown open mode.
	ErrInvalidMode = errors.New("invalid open mode")
)

// UnboundVariableError is returned when resolving a name that has no binding.
type UnboundVariableError struct {
	Name string
}

// Error implements the error interface for UnboundVariableError.
func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// Is reports whether target is ErrUnboundVariable.
func (e *UnboundVariableError) Is(target error) bool {
	return target == ErrUnboundVariable
}

// TypeMismatchError is returned when a variable holds a different kind of value than an operation needs.
type TypeMismatchError struct {
	Name string
	Want []Kind
	Got  Kind
}

// Error implements the error interface for TypeMismatchError.
func (e *TypeMismatchError) Error() string {
	want := ""

	for i, k := range e.Want {
		if i > 0 {
			want += " or "
		}

		want += k.String()
	}

	return fmt.Sprintf("variable %q is a %s, expected a %s", e.Name, e.Got, want)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
