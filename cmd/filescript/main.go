// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the filescript command-line application.
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/filescript/cmd"
	"github.com/matt-FFFFFF/filescript/cmd/cmdstate"
	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	"github.com/matt-FFFFFF/filescript/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	stopCtx, stop := context.WithCancel(context.Background())
	defer stop()

	ctx = cmdstate.WithStop(ctx, stopCtx.Done())

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, stop, cancel)

	err := cmd.RootCmd.Run(ctx, os.Args)
	if err != nil {
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
}
