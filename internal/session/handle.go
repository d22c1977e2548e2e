// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import (
	"fmt"
	"strings"
)

// Mode is the access mode a file was opened with.
type Mode int

// Open modes.
const (
	ModeReadWrite Mode = iota
	ModeRead
	ModeWrite
	ModeAppend
)

// DefaultMode is used when open is given no mode.
const DefaultMode = ModeReadWrite

// ParseMode parses r, w, a or rw. An empty string is DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "":
		return DefaultMode, nil
	case "r":
		return ModeRead, nil
	case "w":
		return ModeWrite, nil
	case "a":
		return ModeAppend, nil
	case "rw":
		return ModeReadWrite, nil
	}

	return 0, fmt.Errorf("%w: %q (want r, w, a or rw)", ErrInvalidMode, s)
}

// String returns the short mode name.
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "r"
	case ModeWrite:
		return "w"
	case ModeAppend:
		return "a"
	case ModeReadWrite:
		return "rw"
	}

	return "?"
}

// CanWrite reports whether content may be overwritten, truncated or rewritten.
func (m Mode) CanWrite() bool {
	return m == ModeWrite || m == ModeReadWrite
}

// CanAppend reports whether content may be appended to.
func (m Mode) CanAppend() bool {
	return m != ModeRead
}

// FileHandle is an open file within a session. It holds the buffered content of the file;
// the file operations engine keeps the buffer and the file on disk in step.
type FileHandle struct {
	path    string
	mode    Mode
	content string
	cursor  int
	closed  bool
}

var _ Content = (*FileHandle)(nil)

// NewFileHandle returns an open handle for path holding content with the cursor at 0.
func NewFileHandle(path string, mode Mode, content string) *FileHandle {
	return &FileHandle{path: path, mode: mode, content: content}
}

// Kind implements Value.
func (h *FileHandle) Kind() Kind { return KindHandle }

// Describe implements Value.
func (h *FileHandle) Describe() string {
	return fmt.Sprintf("%s (%s)", h.path, h.mode)
}

// Path returns the absolute path of the file.
func (h *FileHandle) Path() string { return h.path }

// Mode returns the mode the file was opened with.
func (h *FileHandle) Mode() Mode { return h.mode }

// Text returns the buffered content.
func (h *FileHandle) Text() string { return h.content }

// SetText replaces the buffered content.
func (h *FileHandle) SetText(text string) {
	h.content = text
	h.cursor = clampCursor(h.cursor, len(text))
}

// Cursor returns the byte offset of the cursor.
func (h *FileHandle) Cursor() int { return h.cursor }

// SetCursor moves the cursor, clamped to the content.
func (h *FileHandle) SetCursor(pos int) { h.cursor = clampCursor(pos, len(h.content)) }

// Repoint changes the path after the file has been moved or renamed.
func (h *FileHandle) Repoint(path string) { h.path = path }

// Closed reports whether the handle has been released.
func (h *FileHandle) Closed() bool { return h.closed }

// Close releases the handle. Closing twice returns ErrHandleClosed.
func (h *FileHandle) Close() error {
	if h.closed {
		return fmt.Errorf("%s: %w", h.path, ErrHandleClosed)
	}

	h.closed = true
	h.content = ""
	h.cursor = 0

	return nil
}

func (h *FileHandle) value() {}
