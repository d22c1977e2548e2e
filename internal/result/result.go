// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package result

import (
	"io"
	"os"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/filescript/internal/pattern"
)

// Status is the outcome of one command.
type Status int

// Command statuses.
const (
	StatusSuccess Status = iota
	StatusError
	StatusSkipped
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	}

	return "unknown"
}

// Result is the outcome of executing one statement.
// Output is the text shown to the user; Count, Matches and Entries carry the typed value
// for verbs that produce one.
type Result struct {
	Line    int             // 1-based line of the statement in its script, 0 for interactive input
	Source  string          // statement as written
	Verb    string          // upper-case verb name
	Status  Status          // outcome
	Output  string          // textual result
	Count   int             // replacement or line count
	Matches []pattern.Match // search hits
	Entries []string        // directory entries
	Error   error           // error, if any
}

// New returns a successful result for a statement.
func New(line int, source, verb string) *Result {
	return &Result{Line: line, Source: source, Verb: verb}
}

// Fail records err and marks the result as failed.
func (r *Result) Fail(err error) *Result {
	r.Error = err
	r.Status = StatusError

	return r
}

// Skip marks the result as not executed.
func (r *Result) Skip() *Result {
	r.Status = StatusSkipped
	return r
}

// Label is the source of the statement, or the verb when there is no source.
func (r *Result) Label() string {
	if r.Source != "" {
		return r.Source
	}

	if r.Verb != "" {
		return r.Verb
	}

	return "[unnamed]"
}

// Results is the ordered outcome of a run.
type Results []*Result

// HasError reports whether any result failed.
func (r Results) HasError() bool {
	for v := range slices.Values(r) {
		if v.Error != nil || v.Status == StatusError {
			return true
		}
	}

	return false
}

// Errors aggregates every failure, or returns nil.
func (r Results) Errors() error {
	var merr error

	for _, v := range r {
		if v.Error != nil {
			merr = multierror.Append(merr, v.Error)
		}
	}

	return merr
}

// Print outputs the results to stdout with default options.
func (r Results) Print() error {
	return WriteText(os.Stdout, r, nil)
}

// Write outputs the results to w with default options.
func (r Results) Write(w io.Writer) error {
	return WriteText(w, r, nil)
}

// WriteWithOptions outputs the results to w with the given options.
func (r Results) WriteWithOptions(w io.Writer, options *OutputOptions) error {
	return WriteText(w, r, options)
}
