// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package fileops

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/matt-FFFFFF/filescript/internal/session"
)

var (
	// ErrNotFound is matched by a *PathError of kind NotFound.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is matched by a *PathError of kind AlreadyExists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrPermissionDenied is matched by a *PathError of kind PermissionDenied.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInUse is matched by a *PathError of kind InUse.
	ErrInUse = errors.New("in use by an open handle")
	// ErrInvalidPath is matched by a *PathError of kind Invalid.
	ErrInvalidPath = errors.New("invalid path")
	// ErrIO is matched by every *IOError.
	ErrIO = errors.New("i/o error")
	// ErrMode is matched by every *ModeError.
	ErrMode = errors.New("operation not permitted by open mode")
)

// PathErrorKind distinguishes the cause of a PathError.
type PathErrorKind int

// Path error kinds.
const (
	NotFound PathErrorKind = iota
	AlreadyExists
	PermissionDenied
	InUse
	Invalid
)

func (k PathErrorKind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case AlreadyExists:
		return ErrAlreadyExists
	case PermissionDenied:
		return ErrPermissionDenied
	case InUse:
		return ErrInUse
	}

	return ErrInvalidPath
}

// String returns the kind name.
func (k PathErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case PermissionDenied:
		return "PermissionDenied"
	case InUse:
		return "InUse"
	}

	return "Invalid"
}

// PathError is a failure caused by the state of a path rather than by reading or writing it.
type PathError struct {
	Op   string
	Path string
	Kind PathErrorKind
	Err  error
}

// Error implements the error interface for PathError.
func (e *PathError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind.sentinel())
	if e.Err != nil && !errors.Is(e.Err, e.Kind.sentinel()) {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is reports whether target is the sentinel for the error's kind.
func (e *PathError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying cause.
func (e *PathError) Unwrap() error {
	return e.Err
}

// IOError is a read or write that failed part way. The session state is left as it was.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface for IOError.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, ErrIO, e.Err)
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ModeError is returned when a handle's mode forbids an operation.
type ModeError struct {
	Op   string
	Path string
	Mode session.Mode
}

// Error implements the error interface for ModeError.
func (e *ModeError) Error() string {
	return fmt.Sprintf("%s %s: %s (opened with mode %q)", e.Op, e.Path, ErrMode, e.Mode)
}

// Is reports whether target is ErrMode.
func (e *ModeError) Is(target error) bool {
	return target == ErrMode
}

func newPathError(op, path string, kind PathErrorKind, err error) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// classify maps a filesystem error to a PathError if the cause is the path itself,
// otherwise to an IOError.
func classify(op, path string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return newPathError(op, path, NotFound, err)
	case errors.Is(err, fs.ErrExist):
		return newPathError(op, path, AlreadyExists, err)
	case errors.Is(err, fs.ErrPermission):
		return newPathError(op, path, PermissionDenied, err)
	}

	return &IOError{Op: op, Path: path, Err: err}
}
