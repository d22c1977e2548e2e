// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show contains the show subcommand.
package show

import (
	"context"
	"errors"
	"os"

	"github.com/matt-FFFFFF/filescript/internal/result"
	"github.com/urfave/cli/v3"
)

const (
	fileArg        = "file"
	errorsOnlyFlag = "errors-only"
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrDecodeResults is returned when the results cannot be decoded from the file.
	ErrDecodeResults = errors.New("failed to decode results")
	// ErrWriteResults is returned when the results cannot be written to stdout.
	ErrWriteResults = errors.New("failed to write results to stdout")
)

// ShowCmd is the command that shows a transcript saved by run --out.
var ShowCmd = &cli.Command{
	Name:        "show",
	Usage:       "Show previously saved results",
	Description: "Show the results saved by 'filescript run --out'.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name: fileArg,
		},
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  errorsOnlyFlag,
			Usage: "Only show failed commands",
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		file, err := os.Open(cmd.StringArg(fileArg))
		if err != nil {
			return errors.Join(ErrReadFile, err)
		}
		defer file.Close() // nolint:errcheck

		results, err := result.ReadBinary(file)
		if err != nil {
			return errors.Join(ErrDecodeResults, err)
		}

		if cmd.Bool(errorsOnlyFlag) {
			results = failed(results)
		}

		if err := result.WriteText(cmd.Root().Writer, results, result.DefaultOutputOptions()); err != nil {
			return errors.Join(ErrWriteResults, err)
		}

		return nil
	},
}

func failed(results result.Results) result.Results {
	var out result.Results

	for _, r := range results {
		if r.Error != nil {
			out = append(out, r)
		}
	}

	return out
}
