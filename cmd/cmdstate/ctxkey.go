// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate carries the state shared by the subcommands in the context:
// the resolved configuration and the stop signal raised by the first interrupt.
package cmdstate

import (
	"context"

	"github.com/matt-FFFFFF/filescript/internal/config"
	"github.com/matt-FFFFFF/filescript/internal/interpreter"
	"github.com/spf13/afero"
)

type (
	configKey struct{}
	stopKey   struct{}
)

// FsFactory returns the filesystem interpreters run against.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// Config returns the configuration from the context, or the defaults.
func Config(ctx context.Context) *config.Config {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return config.Default()
	}

	return cfg
}

// WithStop returns a context carrying the stop channel.
func WithStop(ctx context.Context, stop <-chan struct{}) context.Context {
	return context.WithValue(ctx, stopKey{}, stop)
}

// Stop returns the stop channel from the context. A nil channel never fires.
func Stop(ctx context.Context) <-chan struct{} {
	stop, _ := ctx.Value(stopKey{}).(<-chan struct{})
	return stop
}

// NewInterpreter creates an interpreter configured from the context.
func NewInterpreter(ctx context.Context) (*interpreter.Interpreter, error) {
	cfg := Config(ctx)
	return interpreter.New(FsFactory(), cfg.WorkingDir, cfg.InterpreterOptions()...)
}
