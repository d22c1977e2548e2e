// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package interpreter executes parsed DSL commands against a session.
//
// Every error raised while executing a command is reported in that command's result;
// only a FatalError tears the session down.
package interpreter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/filescript/internal/commandregistry"
	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	"github.com/matt-FFFFFF/filescript/internal/dsl"
	"github.com/matt-FFFFFF/filescript/internal/fileops"
	"github.com/matt-FFFFFF/filescript/internal/pattern"
	"github.com/matt-FFFFFF/filescript/internal/result"
	"github.com/matt-FFFFFF/filescript/internal/session"
	"github.com/spf13/afero"
)

// Interpreter owns one session and dispatches commands to their handlers.
// It is not safe for concurrent use.
type Interpreter struct {
	engine        *fileops.Engine
	session       *session.Session
	registry      *commandregistry.Registry
	parser        *dsl.Parser
	compiler      pattern.Compiler
	reopen        ReopenPolicy
	copyOverwrite bool
	stopped       bool
}

// New creates an interpreter over fsys with a session rooted at cwd.
// An empty cwd means the process working directory. The directory must exist.
func New(fsys afero.Fs, cwd string, opts ...Option) (*Interpreter, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}

		cwd = wd
	}

	if !filepath.IsAbs(cwd) {
		abs, err := filepath.Abs(cwd)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve working directory %q: %w", cwd, err)
		}

		cwd = abs
	}

	i := &Interpreter{
		engine:   fileops.New(fsys),
		registry: commandregistry.New(),
		parser:   dsl.NewParser(""),
		compiler: pattern.RE2,
	}

	for _, opt := range opts {
		opt(i)
	}

	cwd = filepath.Clean(cwd)
	if err := i.engine.EnsureDir("start", cwd); err != nil {
		return nil, err
	}

	i.session = session.New(cwd)

	if err := i.registerHandlers(); err != nil {
		return nil, err
	}

	return i, nil
}

// Session returns the interpreter's session.
func (i *Interpreter) Session() *session.Session {
	return i.session
}

// Engine returns the file operations engine.
func (i *Interpreter) Engine() *fileops.Engine {
	return i.engine
}

// Stopped reports whether EXIT was executed or the session was torn down.
func (i *Interpreter) Stopped() bool {
	return i.stopped || i.session.Closed()
}

// Close tears the session down, closing every open handle.
func (i *Interpreter) Close() error {
	i.stopped = true
	return i.session.Close()
}

// ExecLine parses a line and executes each of its statements.
// Blank and comment statements produce no result. A parse error fails the whole line.
func (i *Interpreter) ExecLine(ctx context.Context, line int, text string) result.Results {
	cmds, err := i.parser.ParseLine(text)
	if err != nil {
		ctxlog.Warn(ctx, "parse failed", "session", i.session.ID(), "line", line, "error", err)
		return result.Results{result.New(line, strings.TrimSpace(text), "").Fail(err)}
	}

	out := make(result.Results, 0, len(cmds))

	for _, cmd := range cmds {
		if cmd.IsNoop() {
			continue
		}

		out = append(out, i.Exec(ctx, line, cmd))
	}

	return out
}

// Exec executes one command and reports its outcome. It never panics.
func (i *Interpreter) Exec(ctx context.Context, line int, cmd dsl.Command) (res *result.Result) {
	res = result.New(line, cmd.Source, cmd.Verb.String())

	if cmd.IsNoop() {
		return res
	}

	if i.session.Closed() {
		return res.Fail(ErrClosed)
	}

	if i.stopped {
		return res.Skip()
	}

	logger := ctxlog.Logger(ctx).With("session", i.session.ID(), "verb", res.Verb, "line", line)

	if err := i.checkFatal(ctx); err != nil {
		logger.Error("fatal error, closing session", "error", err)
		return res.Fail(i.teardown(err))
	}

	sig := cmd.Signature()
	if n := len(cmd.Args); n < sig.MinArgs() || n > sig.MaxArgs() {
		return res.Fail(&ArityError{
			Verb:  res.Verb,
			Min:   sig.MinArgs(),
			Max:   sig.MaxArgs(),
			Got:   n,
			Usage: sig.Usage(),
		})
	}

	h, err := i.registry.Lookup(cmd.Verb)
	if err != nil {
		return res.Fail(err)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("command panicked", "panic", r)
			res.Fail(&PanicError{v: r})
		}
	}()

	logger.Debug("executing", "source", cmd.Source)

	if err := h.Handle(ctx, cmd, res); err != nil {
		logger.Warn("command failed", "error", err)
		return res.Fail(err)
	}

	if cmd.Target != "" && cmd.Verb != dsl.VerbOpen {
		if err := i.session.Bind(cmd.Target, session.NewStringBuffer(res.Output)); err != nil {
			logger.Warn("binding result failed", "target", cmd.Target, "error", err)
			return res.Fail(err)
		}
	}

	return res
}

// checkFatal detects conditions no command can recover from.
func (i *Interpreter) checkFatal(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := i.engine.EnsureDir("access", i.session.Cwd()); err != nil {
		return fmt.Errorf("working directory is unreachable: %w", err)
	}

	return nil
}

// teardown closes the session and returns the FatalError to report.
func (i *Interpreter) teardown(cause error) error {
	if err := i.Close(); err != nil {
		cause = multierror.Append(cause, err)
	}

	return &FatalError{Err: cause}
}
