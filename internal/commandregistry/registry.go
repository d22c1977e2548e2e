// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/matt-FFFFFF/filescript/internal/dsl"
	"github.com/matt-FFFFFF/filescript/internal/result"
)

var (
	// ErrNoHandler is returned when a verb has no registered handler.
	ErrNoHandler = errors.New("no handler registered for verb")
	// ErrDuplicateHandler is returned when a verb is registered twice.
	ErrDuplicateHandler = errors.New("handler already registered for verb")
)

// Handler executes one parsed command, recording its output in res.
type Handler interface {
	Handle(ctx context.Context, cmd dsl.Command, res *result.Result) error
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(ctx context.Context, cmd dsl.Command, res *result.Result) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, cmd dsl.Command, res *result.Result) error {
	return f(ctx, cmd, res)
}

// Registry holds the mapping between verbs and their handlers.
type Registry struct {
	handlers map[dsl.Verb]Handler
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[dsl.Verb]Handler)}
}

// Register adds the handler for v.
func (r *Registry) Register(v dsl.Verb, h Handler) error {
	if _, exists := r.handlers[v]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, v)
	}

	r.handlers[v] = h

	return nil
}

// Lookup returns the handler for v.
func (r *Registry) Lookup(v dsl.Verb) (Handler, error) {
	h, ok := r.handlers[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, v)
	}

	return h, nil
}

// Verbs returns the registered verbs in declaration order.
func (r *Registry) Verbs() []dsl.Verb {
	out := make([]dsl.Verb, 0, len(r.handlers))
	for v := range r.handlers {
		out = append(out, v)
	}

	slices.Sort(out)

	return out
}

// Missing returns the verbs of the DSL that have no handler.
func (r *Registry) Missing() []dsl.Verb {
	var out []dsl.Verb

	for _, s := range dsl.Signatures() {
		if _, ok := r.handlers[s.Verb]; !ok {
			out = append(out, s.Verb)
		}
	}

	return out
}
