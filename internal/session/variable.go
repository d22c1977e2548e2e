// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package session

import "fmt"

// Kind is the kind of value held by a variable.
type Kind int

// Variable kinds.
const (
	KindHandle Kind = iota
	KindBuffer
	KindPath
)

// String returns the lower-case kind name used in dumps and errors.
func (k Kind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindBuffer:
		return "buffer"
	case KindPath:
		return "path"
	}

	return "unknown"
}

// Value is what a variable is bound to: a *FileHandle, a *StringBuffer or a PathAlias.
// The set is closed; other packages cannot add kinds.
type Value interface {
	Kind() Kind
	// Describe is a short human readable descriptor used by dump.
	Describe() string
	value()
}

// Content is a Value with buffered text that the content verbs can operate on.
type Content interface {
	Value
	Text() string
	SetText(text string)
	Cursor() int
	SetCursor(pos int)
}

// Variable is a named binding as returned by Session.Variables.
type Variable struct {
	Name  string
	Value Value
}

// StringBuffer is an in-memory text value.
type StringBuffer struct {
	text   string
	cursor int
}

var _ Content = (*StringBuffer)(nil)

// NewStringBuffer returns a buffer holding text with the cursor at the end.
func NewStringBuffer(text string) *StringBuffer {
	return &StringBuffer{text: text, cursor: len(text)}
}

// Kind implements Value.
func (b *StringBuffer) Kind() Kind { return KindBuffer }

// Describe implements Value.
func (b *StringBuffer) Describe() string {
	return fmt.Sprintf("%d bytes", len(b.text))
}

// Text returns the buffered text.
func (b *StringBuffer) Text() string { return b.text }

// SetText replaces the buffered text.
func (b *StringBuffer) SetText(text string) {
	b.text = text
	b.cursor = clampCursor(b.cursor, len(text))
}

// Cursor returns the byte offset of the cursor.
func (b *StringBuffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor, clamped to the text.
func (b *StringBuffer) SetCursor(pos int) { b.cursor = clampCursor(pos, len(b.text)) }

func (b *StringBuffer) value() {}

// PathAlias is a name for a filesystem path.
type PathAlias struct {
	Path string
}

// Kind implements Value.
func (p PathAlias) Kind() Kind { return KindPath }

// Describe implements Value.
func (p PathAlias) Describe() string { return p.Path }

func (p PathAlias) value() {}

func clampCursor(pos, n int) int {
	switch {
	case pos < 0:
		return 0
	case pos > n:
		return n
	}

	return pos
}
