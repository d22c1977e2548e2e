// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interpreter

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrFatal is matched by every *FatalError.
	ErrFatal = errors.New("fatal error")
	// ErrArity is matched by every *ArityError.
	ErrArity = errors.New("wrong number of arguments")
	// ErrArgument is matched by every *ArgumentError.
	ErrArgument = errors.New("invalid argument")
	// ErrClosed is returned when executing commands after the session has been torn down.
	ErrClosed = errors.New("session is closed")
	// ErrPanic is matched by every *PanicError.
	ErrPanic = errors.New("command panicked")
)

// FatalError is an unrecoverable condition. The session has been torn down when it is returned.
type FatalError struct {
	Err error
}

// Error implements the error interface for FatalError.
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %v", e.Err)
}

// Is reports whether target is ErrFatal.
func (e *FatalError) Is(target error) bool {
	return target == ErrFatal
}

// Unwrap returns the underlying cause.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// ArityError is returned when a command has the wrong number of positional arguments.
// It is raised before the command has any side effect.
type ArityError struct {
	Verb  string
	Min   int
	Max   int
	Got   int
	Usage string
}

// Error implements the error interface for ArityError.
func (e *ArityError) Error() string {
	want := strconv.Itoa(e.Min)
	if e.Max != e.Min {
		want = fmt.Sprintf("%d to %d", e.Min, e.Max)
	}

	noun := "arguments"
	if e.Max == 1 {
		noun = "argument"
	}

	return fmt.Sprintf("%s takes %s %s, got %d (usage: %s)", e.Verb, want, noun, e.Got, e.Usage)
}

// Is reports whether target is ErrArity.
func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

// ArgumentError is returned when an argument has the right position but an unusable value.
type ArgumentError struct {
	Verb string
	Arg  string
	Msg  string
}

// Error implements the error interface for ArgumentError.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument %q: %s", e.Verb, e.Arg, e.Msg)
}

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// PanicError is returned when a handler panics. It is constructed with the value that caused the panic.
type PanicError struct {
	v any
}

// Error implements the error interface for PanicError.
func (e *PanicError) Error() string {
	prefix := "command panic:"

	switch x := e.v.(type) {
	case string:
		return fmt.Sprintf("%s %s", prefix, x)
	case error:
		return fmt.Sprintf("%s %s", prefix, x.Error())
	default:
		return fmt.Sprintf("%s %v", prefix, x)
	}
}

// Is reports whether target is ErrPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.v.(error)
	return err
}
