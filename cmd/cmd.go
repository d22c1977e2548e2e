// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/filescript"
	"github.com/matt-FFFFFF/filescript/cmd/cmdstate"
	"github.com/matt-FFFFFF/filescript/cmd/repl"
	"github.com/matt-FFFFFF/filescript/cmd/run"
	"github.com/matt-FFFFFF/filescript/cmd/show"
	"github.com/matt-FFFFFF/filescript/cmd/verbs"
	"github.com/matt-FFFFFF/filescript/internal/color"
	"github.com/matt-FFFFFF/filescript/internal/config"
	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	configFlag   = "config"
	logLevelFlag = "log-level"
	logJSONFlag  = "log-json"
	noColorFlag  = "no-color"
	dirFlag      = "dir"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		repl.ReplCmd,
		verbs.VerbsCmd,
		show.ShowCmd,
	},
	Flags:     rootFlags(),
	Before:    before,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "filescript",
	Version:   fmt.Sprintf("%s (%s)", filescript.Version, filescript.Commit),
	Description: `filescript is an interpreter for a small line-oriented language that manipulates files.
Each statement is a verb followed by its arguments, optionally binding its result to a name
with 'as name'. Files are opened into handles, and handles and text buffers live in a session
that lasts for the whole run, so scripts and interactive use can build on each other.`,
	Usage:     "filescript run -f script.fs",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      configFlag,
			Usage:     "Path to a .yaml, .toml or .hcl configuration file. Defaults to .filescript.* in the working directory",
			Sources:   cli.EnvVars("FILESCRIPT_CONFIG"),
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:    logLevelFlag,
			Usage:   "Log level: DEBUG, INFO, WARN or ERROR",
			Sources: cli.EnvVars(ctxlog.EnvLogLevel),
		},
		&cli.BoolFlag{
			Name:  logJSONFlag,
			Usage: "Write logs as JSON",
		},
		&cli.BoolFlag{
			Name:  noColorFlag,
			Usage: "Disable colored output. NO_COLOR is also honoured",
		},
		&cli.StringFlag{
			Name:    dirFlag,
			Aliases: []string{"C"},
			Usage:   "Start the session in this directory",
		},
	}
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool(noColorFlag) {
		color.SetEnabled(false)
	}

	if lvl := cmd.String(logLevelFlag); lvl != "" && !ctxlog.SetLevel(lvl) {
		return ctx, fmt.Errorf("unknown log level %q", lvl)
	}

	if cmd.Bool(logJSONFlag) {
		ctx = ctxlog.New(ctx, ctxlog.JSONLogger)
	}

	dir := cmd.String(dirFlag)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ctx, fmt.Errorf("cannot determine working directory: %w", err)
		}

		dir = wd
	}

	cfg, file, err := config.Resolve(cmd.String(configFlag), dir)
	if err != nil {
		return ctx, err
	}

	if file != "" {
		ctxlog.Debug(ctx, "loaded config", "file", file)
	}

	switch {
	case cmd.IsSet(dirFlag):
		cfg.WorkingDir = dir
	case cfg.WorkingDir != "" && !filepath.IsAbs(cfg.WorkingDir) && file != "":
		cfg.WorkingDir = filepath.Join(filepath.Dir(file), cfg.WorkingDir)
	}

	return cmdstate.WithConfig(ctx, cfg), nil
}
