// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dsl

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrUnknownVerb is returned when a statement or a help request names a verb that does not exist.
	ErrUnknownVerb = errors.New("unknown verb")
	// ErrUnterminatedQuote is returned when a quoted argument is not closed.
	ErrUnterminatedQuote = errors.New("unterminated quote")
	// ErrMalformedRegex is returned when a /pattern/flags literal cannot be parsed.
	ErrMalformedRegex = errors.New("malformed regex literal")
	// ErrMissingArgument is returned when a required argument, such as the target of open, is missing.
	ErrMissingArgument = errors.New("missing required argument")
)

// ParseError describes a line of source that could not be turned into a Command.
// Col is the 1-based column of the offending character.
type ParseError struct {
	Col        int
	Msg        string
	Suggestion string
	Err        error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at column %d: %s", e.Col, e.Msg)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}

	return msg
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(col int, cause error, format string, args ...any) *ParseError {
	return &ParseError{Col: col, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// UnknownVerbError is returned by help when asked about a verb that does not exist.
type UnknownVerbError struct {
	Name       string
	Suggestion string
}

// Error implements the error interface for UnknownVerbError.
func (e *UnknownVerbError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown verb %q (did you mean %q?)", e.Name, e.Suggestion)
	}

	return fmt.Sprintf("unknown verb %q", e.Name)
}

// Is reports whether target is ErrUnknownVerb.
func (e *UnknownVerbError) Is(target error) bool {
	return target == ErrUnknownVerb
}

// NewUnknownVerbError builds an UnknownVerbError with a suggestion filled in.
func NewUnknownVerbError(name string) *UnknownVerbError {
	return &UnknownVerbError{Name: name, Suggestion: Suggest(name)}
}
