// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package session holds the variable bindings and working directory of one interpreter run.
// A Session is not safe for concurrent use; commands are executed one at a time.
package session

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/filescript/internal/dsl"
)

// Session maps variable names to values. Every *FileHandle reachable from the
// mapping is open: handles are closed before their name is overwritten or removed.
type Session struct {
	id     string
	cwd    string
	vars   map[string]Value
	order  []string
	closed bool
}

// New creates an empty session rooted at cwd.
func New(cwd string) *Session {
	return &Session{
		id:   uuid.NewString(),
		cwd:  cwd,
		vars: make(map[string]Value),
	}
}

// ID is a unique identifier for the session, used in logs.
func (s *Session) ID() string { return s.id }

// Cwd returns the working directory relative paths resolve against.
func (s *Session) Cwd() string { return s.cwd }

// SetCwd changes the working directory. The caller checks that dir exists.
func (s *Session) SetCwd(dir string) { s.cwd = dir }

// Len returns the number of bound variables.
func (s *Session) Len() int { return len(s.vars) }

// Bind binds name to v. An existing binding is released first and keeps its position in
// insertion order.
func (s *Session) Bind(name string, v Value) error {
	if !dsl.IsIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if old, ok := s.vars[name]; ok {
		if err := release(old, v); err != nil {
			return err
		}

		s.vars[name] = v

		return nil
	}

	s.vars[name] = v
	s.order = append(s.order, name)

	return nil
}

// Resolve returns the value bound to name.
func (s *Session) Resolve(name string) (Value, error) {
	v, ok := s.vars[name]
	if !ok {
		return nil, &UnboundVariableError{Name: name}
	}

	return v, nil
}

// ResolveContent returns the handle or buffer bound to name.
func (s *Session) ResolveContent(name string) (Content, error) {
	v, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	c, ok := v.(Content)
	if !ok {
		return nil, &TypeMismatchError{Name: name, Want: []Kind{KindHandle, KindBuffer}, Got: v.Kind()}
	}

	return c, nil
}

// ResolveHandle returns the file handle bound to name.
func (s *Session) ResolveHandle(name string) (*FileHandle, error) {
	v, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	h, ok := v.(*FileHandle)
	if !ok {
		return nil, &TypeMismatchError{Name: name, Want: []Kind{KindHandle}, Got: v.Kind()}
	}

	return h, nil
}

// Unbind releases the value bound to name and removes the binding.
func (s *Session) Unbind(name string) error {
	v, ok := s.vars[name]
	if !ok {
		return &UnboundVariableError{Name: name}
	}

	s.remove(name)

	return release(v, nil)
}

// Transfer moves the value bound to from over to the name to without releasing it.
// Any value previously bound to to is released. If that release fails, from stays bound.
func (s *Session) Transfer(from, to string) error {
	if from == to {
		return nil
	}

	v, ok := s.vars[from]
	if !ok {
		return &UnboundVariableError{Name: from}
	}

	if !dsl.IsIdentifier(to) {
		return fmt.Errorf("%w: %q", ErrInvalidName, to)
	}

	if err := s.Bind(to, v); err != nil {
		return err
	}

	s.remove(from)

	return nil
}

// Variables returns every binding in insertion order.
func (s *Session) Variables() []Variable {
	out := make([]Variable, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, Variable{Name: n, Value: s.vars[n]})
	}

	return out
}

// Names returns every bound name in insertion order.
func (s *Session) Names() []string {
	return slices.Clone(s.order)
}

// HandleFor returns the variable holding an open handle for path.
func (s *Session) HandleFor(path string) (string, *FileHandle, bool) {
	for _, n := range s.order {
		if h, ok := s.vars[n].(*FileHandle); ok && h.Path() == path {
			return n, h, true
		}
	}

	return "", nil, false
}

// Handles returns every bound file handle in insertion order.
func (s *Session) Handles() []*FileHandle {
	var out []*FileHandle

	for _, n := range s.order {
		if h, ok := s.vars[n].(*FileHandle); ok {
			out = append(out, h)
		}
	}

	return out
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// Close releases every binding. Failures are aggregated; calling Close again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	var result error

	for _, n := range s.order {
		if err := release(s.vars[n], nil); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing %q: %w", n, err))
		}
	}

	s.vars = make(map[string]Value)
	s.order = nil

	return result
}

func (s *Session) remove(name string) {
	delete(s.vars, name)

	if i := slices.Index(s.order, name); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// release closes old unless it is the same handle as replacement.
func release(old, replacement Value) error {
	h, ok := old.(*FileHandle)
	if !ok {
		return nil
	}

	if r, same := replacement.(*FileHandle); same && r == h {
		return nil
	}

	return h.Close()
}
