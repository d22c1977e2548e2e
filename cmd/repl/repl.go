// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl contains the repl subcommand.
package repl

import (
	"context"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/filescript"
	"github.com/matt-FFFFFF/filescript/cmd/cmdstate"
	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	interactive "github.com/matt-FFFFFF/filescript/internal/repl"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

// ReaderFactory creates the line reader used by the prompt.
var ReaderFactory = func(fs afero.Fs, historyFile string, complete func(string) []string) interactive.LineReader {
	return interactive.NewLineReader(fs, historyFile, complete)
}

// ReplCmd starts an interactive session.
var ReplCmd = &cli.Command{
	Name:  "repl",
	Usage: "Start an interactive session",
	Description: `Read statements from the terminal and execute them one line at a time.
The session lasts until EXIT, end of input, or Ctrl+C at the prompt.
When stdin is not a terminal, lines are read from it without prompting.`,
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	cfg := cmdstate.Config(ctx)

	interp, err := cmdstate.NewInterpreter(ctx)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to start session: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	defer func() {
		if err := interp.Close(); err != nil {
			logger.Error("Failed to close session", "error", err)
		}
	}()

	reader := ReaderFactory(afero.NewOsFs(), cfg.HistoryPath(), interactive.Completer(interp))
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warn("Failed to save history", "error", err)
		}
	}()

	if _, ok := reader.(*interactive.ScannerReader); !ok {
		banner(cmd.Root().Writer)
	}

	r := interactive.New(interp, reader, cmd.Root().Writer,
		interactive.WithPrompt(cfg.Prompt),
		interactive.WithStopSignal(cmdstate.Stop(ctx)),
	)

	if err := r.Run(ctx); err != nil {
		logger.Error("Session ended with an error", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

func banner(w io.Writer) {
	_, _ = fmt.Fprintf(w, "filescript %s\nType 'help' for a list of verbs, 'exit' to leave.\n", filescript.Version)
}
