// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package verbs contains the verbs subcommand, which documents the language.
package verbs

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/filescript/internal/diag"
	"github.com/urfave/cli/v3"
)

const verbArg = "verb"

// VerbsCmd lists the verbs of the language, or describes one of them.
var VerbsCmd = &cli.Command{
	Name:        "verbs",
	Usage:       "List the verbs of the language",
	Description: "With no argument, list every verb and its usage. With a verb, describe its arguments.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name: verbArg,
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		name := cmd.StringArg(verbArg)
		if name == "" {
			_, err := fmt.Fprintln(cmd.Root().Writer, diag.HelpAll())
			return err
		}

		text, err := diag.HelpVerb(name)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		_, err = fmt.Fprintln(cmd.Root().Writer, text)

		return err
	},
}
