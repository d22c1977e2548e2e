// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in        string
		want      Mode
		canWrite  bool
		canAppend bool
	}{
		{in: "", want: ModeReadWrite, canWrite: true, canAppend: true},
		{in: "r", want: ModeRead},
		{in: "W", want: ModeWrite, canWrite: true, canAppend: true},
		{in: "a", want: ModeAppend, canAppend: true},
		{in: "rw", want: ModeReadWrite, canWrite: true, canAppend: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
			assert.Equal(t, tt.canWrite, m.CanWrite())
			assert.Equal(t, tt.canAppend, m.CanAppend())
		})
	}

	_, err := ParseMode("x")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestFileHandleLifecycle(t *testing.T) {
	h := NewFileHandle("/tmp/a.txt", ModeWrite, "abc")
	assert.Equal(t, KindHandle, h.Kind())
	assert.Equal(t, "/tmp/a.txt (w)", h.Describe())
	assert.Equal(t, 0, h.Cursor())

	h.SetCursor(10)
	assert.Equal(t, 3, h.Cursor())

	h.SetText("a")
	assert.Equal(t, "a", h.Text())
	assert.Equal(t, 1, h.Cursor())

	h.Repoint("/tmp/b.txt")
	assert.Equal(t, "/tmp/b.txt", h.Path())

	require.NoError(t, h.Close())
	assert.True(t, h.Closed())
	assert.ErrorIs(t, h.Close(), ErrHandleClosed)
}

func TestStringBufferCursor(t *testing.T) {
	b := NewStringBuffer("hello")
	assert.Equal(t, 5, b.Cursor())

	b.SetCursor(-1)
	assert.Equal(t, 0, b.Cursor())

	b.SetText("")
	assert.Equal(t, "", b.Text())
	assert.Equal(t, 0, b.Cursor())
}
