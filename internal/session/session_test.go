// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindResolve(t *testing.T) {
	s := New("/work")
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "/work", s.Cwd())

	require.NoError(t, s.Bind("buf", NewStringBuffer("hello")))

	v, err := s.Resolve("buf")
	require.NoError(t, err)
	assert.Equal(t, KindBuffer, v.Kind())
	assert.Equal(t, "5 bytes", v.Describe())

	_, err = s.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnboundVariable)

	var ue *UnboundVariableError

	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "missing", ue.Name)
}

func TestBindInvalidName(t *testing.T) {
	s := New("/")
	assert.ErrorIs(t, s.Bind("9x", PathAlias{Path: "/a"}), ErrInvalidName)
	assert.Equal(t, 0, s.Len())
}

func TestRebindReleasesOldHandle(t *testing.T) {
	s := New("/")
	h1 := NewFileHandle("/a.txt", ModeReadWrite, "one")
	h2 := NewFileHandle("/b.txt", ModeRead, "two")

	require.NoError(t, s.Bind("f", h1))
	require.NoError(t, s.Bind("other", NewStringBuffer("")))
	require.NoError(t, s.Bind("f", h2))

	assert.True(t, h1.Closed())
	assert.False(t, h2.Closed())

	names := s.Names()
	assert.Equal(t, []string{"f", "other"}, names, "rebinding keeps insertion position")

	// rebinding the same handle to the same name must not close it
	require.NoError(t, s.Bind("f", h2))
	assert.False(t, h2.Closed())
}

func TestUnbindClosesHandle(t *testing.T) {
	s := New("/")
	h := NewFileHandle("/a.txt", ModeReadWrite, "x")
	require.NoError(t, s.Bind("f", h))

	require.NoError(t, s.Unbind("f"))
	assert.True(t, h.Closed())

	_, err := s.Resolve("f")
	assert.ErrorIs(t, err, ErrUnboundVariable)

	assert.ErrorIs(t, s.Unbind("f"), ErrUnboundVariable)
}

func TestResolveTyped(t *testing.T) {
	s := New("/")
	require.NoError(t, s.Bind("p", PathAlias{Path: "/etc"}))
	require.NoError(t, s.Bind("b", NewStringBuffer("x")))
	require.NoError(t, s.Bind("h", NewFileHandle("/h", ModeRead, "")))

	_, err := s.ResolveContent("p")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.EqualError(t, err, `variable "p" is a path, expected a handle or buffer`)

	c, err := s.ResolveContent("b")
	require.NoError(t, err)
	assert.Equal(t, "x", c.Text())

	_, err = s.ResolveHandle("b")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	h, err := s.ResolveHandle("h")
	require.NoError(t, err)
	assert.Equal(t, "/h", h.Path())

	_, err = s.ResolveHandle("nope")
	assert.ErrorIs(t, err, ErrUnboundVariable)
}

func TestTransfer(t *testing.T) {
	s := New("/")
	h := NewFileHandle("/a", ModeReadWrite, "")
	require.NoError(t, s.Bind("a", h))
	require.NoError(t, s.Bind("z", NewStringBuffer("")))

	require.NoError(t, s.Transfer("a", "b"))
	assert.False(t, h.Closed())

	_, err := s.Resolve("a")
	require.ErrorIs(t, err, ErrUnboundVariable)

	got, err := s.ResolveHandle("b")
	require.NoError(t, err)
	assert.Same(t, h, got)
	assert.Equal(t, []string{"z", "b"}, s.Names())

	assert.ErrorIs(t, s.Transfer("nope", "c"), ErrUnboundVariable)
	assert.NoError(t, s.Transfer("b", "b"))
}

func TestTransferKeepsSourceWhenReleaseFails(t *testing.T) {
	s := New("/")
	h := NewFileHandle("/a", ModeReadWrite, "")
	stale := NewFileHandle("/b", ModeReadWrite, "")
	require.NoError(t, s.Bind("a", h))
	require.NoError(t, s.Bind("b", stale))
	require.NoError(t, stale.Close())

	require.ErrorIs(t, s.Transfer("a", "b"), ErrHandleClosed)

	got, err := s.ResolveHandle("a")
	require.NoError(t, err)
	assert.Same(t, h, got)
	assert.False(t, h.Closed())

	assert.ErrorIs(t, s.Close(), ErrHandleClosed, "the stale handle still fails to close")
	assert.True(t, h.Closed(), "the handle is still owned by the session")
}

func TestHandleFor(t *testing.T) {
	s := New("/")
	h := NewFileHandle("/dir/a.txt", ModeReadWrite, "")
	require.NoError(t, s.Bind("b", NewStringBuffer("")))
	require.NoError(t, s.Bind("f", h))

	name, got, ok := s.HandleFor("/dir/a.txt")
	require.True(t, ok)
	assert.Equal(t, "f", name)
	assert.Same(t, h, got)

	_, _, ok = s.HandleFor("/dir/b.txt")
	assert.False(t, ok)

	assert.Equal(t, []*FileHandle{h}, s.Handles())
}

func TestVariablesInsertionOrder(t *testing.T) {
	s := New("/")
	for _, n := range []string{"c", "a", "b"} {
		require.NoError(t, s.Bind(n, NewStringBuffer(n)))
	}

	require.NoError(t, s.Unbind("a"))
	require.NoError(t, s.Bind("a", NewStringBuffer("again")))

	var names []string
	for _, v := range s.Variables() {
		names = append(names, v.Name)
	}

	assert.Equal(t, []string{"c", "b", "a"}, names)
}

func TestCloseReleasesEverything(t *testing.T) {
	s := New("/")
	h1 := NewFileHandle("/a", ModeReadWrite, "")
	h2 := NewFileHandle("/b", ModeReadWrite, "")

	require.NoError(t, s.Bind("a", h1))
	require.NoError(t, s.Bind("b", h2))
	require.NoError(t, s.Bind("s", NewStringBuffer("")))

	require.NoError(t, s.Close())
	assert.True(t, h1.Closed())
	assert.True(t, h2.Closed())
	assert.True(t, s.Closed())
	assert.Equal(t, 0, s.Len())

	assert.NoError(t, s.Close())
}

func TestCloseAggregatesErrors(t *testing.T) {
	s := New("/")
	h1 := NewFileHandle("/a", ModeReadWrite, "")
	h2 := NewFileHandle("/b", ModeReadWrite, "")

	require.NoError(t, s.Bind("a", h1))
	require.NoError(t, s.Bind("b", h2))

	// closed behind the session's back
	require.NoError(t, h1.Close())
	require.NoError(t, h2.Close())

	err := s.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHandleClosed)
	assert.Contains(t, err.Error(), `closing "a"`)
	assert.Contains(t, err.Error(), `closing "b"`)
}

func TestSetCwd(t *testing.T) {
	s := New("/a")
	s.SetCwd("/b")
	assert.Equal(t, "/b", s.Cwd())
}
