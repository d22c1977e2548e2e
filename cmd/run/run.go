// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the run subcommand.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/filescript/cmd/cmdstate"
	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	"github.com/matt-FFFFFF/filescript/internal/result"
	"github.com/matt-FFFFFF/filescript/internal/script"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag     = "file"
	outFlag      = "out"
	failFastFlag = "fail-fast"
	quietFlag    = "quiet"
	cliExitStr   = ""
)

// ErrGetScript is returned when a script cannot be fetched.
var ErrGetScript = errors.New("failed to get script")

// RunCmd is the command that runs one or more scripts in a single session.
var RunCmd = &cli.Command{
	Name:  "run",
	Usage: "Run filescript scripts",
	Description: `Run one or more filescript scripts.
All scripts are executed in order in one session, so variables bound by a script
are visible to the scripts after it. Execution stops after EXIT.

Script URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.

To save the results to a transcript that can be displayed later with show, use --out.
`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage: "Specify the URL of the script to run. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
				"Specify multiple times to run multiple files.",
			OnlyOnce: false,
		},
		&cli.StringFlag{
			Name:      outFlag,
			Usage:     "Write a binary transcript of the results to this file",
			TakesFile: true,
			Value:     "",
			OnlyOnce:  true,
		},
		&cli.BoolFlag{
			Name:        failFastFlag,
			Usage:       "Stop a script at its first failed command",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        quietFlag,
			Aliases:     []string{"q"},
			Usage:       "Only print the output of commands, without status lines",
			DefaultText: "false",
			Value:       false,
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	urls := cmd.StringSlice(fileFlag)
	if len(urls) == 0 {
		logger.Error("Please specify at least one script using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

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

	opts := result.DefaultOutputOptions()
	if cmd.Bool(quietFlag) {
		opts = result.InteractiveOutputOptions()
	}

	runner := script.NewRunner(interp,
		script.WithFailFast(cfg.FailFast || cmd.Bool(failFastFlag)),
		script.WithStopSignal(cmdstate.Stop(ctx)),
		script.WithResultHandler(func(res *result.Result) {
			if err := result.WriteResult(cmd.Root().Writer, res, opts); err != nil {
				logger.Warn("failed to write result", "error", err)
			}
		}),
	)

	var (
		all  result.Results
		errs []error
	)

	for i, u := range urls {
		if u == "" {
			logger.Error(fmt.Sprintf("The URL at index %d is empty. Please provide a valid URL.", i))
			return cli.Exit(cliExitStr, 1)
		}

		src, err := getURL(ctx, u)
		if err != nil {
			logger.Error(err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		res, err := runner.Run(ctx, u, bytes.NewReader(src))
		all = append(all, res...)

		if err != nil {
			errs = append(errs, err)
		}

		if interp.Stopped() {
			break
		}
	}

	if outFileName := cmd.String(outFlag); outFileName != "" {
		if err := writeTranscript(outFileName, all); err != nil {
			logger.Error(err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		logger.Info(fmt.Sprintf("Results written to %s", outFileName))
	}

	if len(errs) > 0 {
		logger.Error("Some commands failed. See above for details.", "error", errors.Join(errs...))
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

func writeTranscript(name string, results result.Results) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", name, err)
	}

	defer f.Close() //nolint:errcheck

	if err := result.WriteBinary(f, results); err != nil {
		return fmt.Errorf("failed to write results to file %s: %w", name, err)
	}

	return nil
}

// getURL retrieves the content from the specified URL using Hashicorp's go-getter.
// It removes the temporary file after reading its content.
func getURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetScript
	}

	tmpDir, err := os.MkdirTemp("", "filescript-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetScript, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetScript, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string
	// Remote sources are fetched as a directory and the file is read from there.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrGetScript, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetScript, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetScript, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrGetScript, err)
	}

	return data, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// splitFileNameFromGetterURL splits the URL into the directory and file name.
// It returns the new getter URL without the file name and the file name itself.
// Any ref query parameter is carried over to the new URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref, fileName string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if strings.Contains(last, goGetterRefSeparator) {
		refSplit := strings.Split(last, goGetterRefSeparator)
		if len(refSplit) > 1 {
			ref = strings.Join(refSplit[1:], "")
		}

		last = refSplit[0]
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName = filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
