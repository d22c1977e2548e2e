// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interpreter

import (
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/filescript/internal/dsl"
	"github.com/matt-FFFFFF/filescript/internal/pattern"
)

// ReopenPolicy decides what happens when OPEN names a path already held by another variable.
type ReopenPolicy int

// Reopen policies.
const (
	// ReopenError fails with a PathError of kind InUse.
	ReopenError ReopenPolicy = iota
	// ReopenReuse moves the existing handle to the new name.
	ReopenReuse
)

// String returns the policy name as used in configuration.
func (p ReopenPolicy) String() string {
	if p == ReopenReuse {
		return "reuse"
	}

	return "error"
}

// ParseReopenPolicy converts "error" or "reuse" to a policy. An empty string means ReopenError.
func ParseReopenPolicy(s string) (ReopenPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return ReopenError, nil
	case "reuse":
		return ReopenReuse, nil
	}

	return ReopenError, fmt.Errorf("%w: unknown reopen policy %q, want error or reuse", ErrArgument, s)
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithCompiler replaces the regular expression compiler used by SEARCH and REPLACE.
func WithCompiler(c pattern.Compiler) Option {
	return func(i *Interpreter) {
		if c != nil {
			i.compiler = c
		}
	}
}

// WithReopenPolicy sets the reopen policy.
func WithReopenPolicy(p ReopenPolicy) Option {
	return func(i *Interpreter) {
		i.reopen = p
	}
}

// WithCopyOverwrite makes COPY overwrite an existing destination without the overwrite keyword.
func WithCopyOverwrite(overwrite bool) Option {
	return func(i *Interpreter) {
		i.copyOverwrite = overwrite
	}
}

// WithCommentPrefix sets the marker that starts a comment.
func WithCommentPrefix(prefix string) Option {
	return func(i *Interpreter) {
		i.parser = dsl.NewParser(prefix)
	}
}
