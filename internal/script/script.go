// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package script feeds the lines of a script to an interpreter.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	"github.com/matt-FFFFFF/filescript/internal/interpreter"
	"github.com/matt-FFFFFF/filescript/internal/result"
)

const maxLineSize = 1024 * 1024

var (
	// ErrScriptFailed is returned when one or more commands of a script failed.
	ErrScriptFailed = errors.New("script failed")
	// ErrReadScript is returned when the script source cannot be read.
	ErrReadScript = errors.New("failed to read script")
)

// Runner executes scripts line by line in the session of one interpreter.
// Several scripts run by the same Runner share bindings and working directory.
type Runner struct {
	interp   *interpreter.Interpreter
	failFast bool
	onResult func(*result.Result)
	stop     <-chan struct{}
}

// Option configures a Runner.
type Option func(*Runner)

// WithFailFast stops a script at its first failed command. The remaining lines are reported as skipped.
func WithFailFast(failFast bool) Option {
	return func(r *Runner) {
		r.failFast = failFast
	}
}

// WithResultHandler registers a function called with every result as soon as it is produced.
func WithResultHandler(f func(*result.Result)) Option {
	return func(r *Runner) {
		r.onResult = f
	}
}

// WithStopSignal stops the run before the next line once stop is closed.
func WithStopSignal(stop <-chan struct{}) Option {
	return func(r *Runner) {
		r.stop = stop
	}
}

// NewRunner returns a Runner over interp.
func NewRunner(interp *interpreter.Interpreter, opts ...Option) *Runner {
	r := &Runner{interp: interp}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes every line read from src. name labels the script in errors.
// The returned error aggregates every failed command, wrapped in ErrScriptFailed.
func (r *Runner) Run(ctx context.Context, name string, src io.Reader) (result.Results, error) {
	ctx = ctxlog.With(ctx, "script", name)

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	var (
		results result.Results
		merr    *multierror.Error
		failed  bool
	)

	lineNo := 0

	for scanner.Scan() {
		lineNo++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		if r.interp.Stopped() {
			ctxlog.Debug(ctx, "interpreter stopped, ignoring remaining lines", "line", lineNo)
			break
		}

		if stopRequested(r.stop) {
			ctxlog.Info(ctx, "stop requested, ignoring remaining lines", "line", lineNo)
			break
		}

		if failed && r.failFast {
			if strings.TrimSpace(text) != "" {
				r.emit(&results, result.New(lineNo, strings.TrimSpace(text), "").Skip())
			}

			continue
		}

		for _, res := range r.interp.ExecLine(ctx, lineNo, text) {
			r.emit(&results, res)

			if res.Status == result.StatusError {
				failed = true
				merr = multierror.Append(merr, fmt.Errorf("%s:%d: %w", name, res.Line, res.Error))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return results, errors.Join(ErrReadScript, fmt.Errorf("%s: %w", name, err))
	}

	if err := merr.ErrorOrNil(); err != nil {
		ctxlog.Warn(ctx, "script finished with errors", "failed", merr.Len(), "results", len(results))
		return results, errors.Join(ErrScriptFailed, err)
	}

	return results, nil
}

func stopRequested(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

func (r *Runner) emit(results *result.Results, res *result.Result) {
	*results = append(*results, res)

	if r.onResult != nil {
		r.onResult(res)
	}
}
