// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl runs an interactive prompt over an interpreter.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	"github.com/matt-FFFFFF/filescript/internal/dsl"
	"github.com/matt-FFFFFF/filescript/internal/interpreter"
	"github.com/matt-FFFFFF/filescript/internal/result"
)

// DefaultPrompt is shown before every line of input.
const DefaultPrompt = "fs> "

// REPL reads commands from a LineReader and prints their results.
type REPL struct {
	interp *interpreter.Interpreter
	reader LineReader
	out    io.Writer
	prompt string
	stop   <-chan struct{}
}

// Option configures a REPL.
type Option func(*REPL)

// WithPrompt sets the prompt. An empty prompt keeps the default.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		if prompt != "" {
			r.prompt = prompt
		}
	}
}

// WithStopSignal ends the loop before the next prompt once stop is closed.
func WithStopSignal(stop <-chan struct{}) Option {
	return func(r *REPL) {
		r.stop = stop
	}
}

// New returns a REPL executing commands read from reader and writing results to out.
func New(interp *interpreter.Interpreter, reader LineReader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		interp: interp,
		reader: reader,
		out:    out,
		prompt: DefaultPrompt,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run reads and executes lines until EXIT, end of input, Ctrl+C or a fatal error.
func (r *REPL) Run(ctx context.Context) error {
	for !r.interp.Stopped() {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-r.stop:
			return nil
		default:
		}

		line, err := r.reader.Prompt(r.prompt)

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrAborted):
			fmt.Fprintln(r.out, "Aborted") //nolint:errcheck
			return nil
		case err != nil:
			return fmt.Errorf("error reading line: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		r.reader.AppendHistory(line)

		results := r.interp.ExecLine(ctx, 0, line)
		if err := result.WriteText(r.out, results, result.InteractiveOutputOptions()); err != nil {
			return err
		}

		for _, res := range results {
			if errors.Is(res.Error, interpreter.ErrFatal) {
				ctxlog.Error(ctx, "session terminated", "error", res.Error)
				return res.Error
			}
		}
	}

	return nil
}

// Completer returns a completion function offering verb names for the first word
// of a line and bound variable names after it.
func Completer(interp *interpreter.Interpreter) func(string) []string {
	return func(line string) []string {
		cut := strings.LastIndexAny(line, " \t") + 1
		head, word := line[:cut], line[cut:]

		candidates := interp.Session().Names()
		if strings.TrimSpace(head) == "" || strings.HasSuffix(strings.TrimSpace(head), ";") {
			candidates = dsl.Names()
			word = strings.ToLower(word)
		}

		var out []string

		for _, c := range candidates {
			if strings.HasPrefix(c, word) {
				out = append(out, head+c)
			}
		}

		return out
	}
}
