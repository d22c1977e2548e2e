// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Verb
	}{
		{"open", VerbOpen},
		{"OPEN", VerbOpen},
		{"CountLines", VerbCountLines},
		{"linecount", VerbCountLines},
		{"listdir", VerbList},
		{"dumpenv", VerbDump},
		{"unbind", VerbClose},
		{"quit", VerbExit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, s.Verb)
		})
	}

	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestEveryVerbHasASignature(t *testing.T) {
	for v := VerbOpen; v <= VerbExit; v++ {
		s, ok := SignatureOf(v)
		require.True(t, ok, "verb %d", v)
		assert.NotEmpty(t, s.Summary)
		assert.NotEqual(t, "UNKNOWN", v.String())
	}

	assert.Equal(t, "NOOP", VerbNoop.String())
	assert.Equal(t, "UNKNOWN", Verb(999).String())
	assert.Equal(t, "COUNTLINES", VerbCountLines.String())
}

func TestSignatureArity(t *testing.T) {
	open, _ := SignatureOf(VerbOpen)
	assert.Equal(t, 1, open.MinArgs())
	assert.Equal(t, 2, open.MaxArgs())
	assert.Equal(t, -1, open.PatternSlot())

	replace, _ := SignatureOf(VerbReplace)
	assert.Equal(t, 3, replace.MinArgs())
	assert.Equal(t, 3, replace.MaxArgs())
	assert.Equal(t, 1, replace.PatternSlot())

	dump, _ := SignatureOf(VerbDump)
	assert.Equal(t, 0, dump.MinArgs())
	assert.Equal(t, 0, dump.MaxArgs())
}

func TestUsage(t *testing.T) {
	tests := []struct {
		verb Verb
		want string
	}{
		{VerbOpen, "open <path> [mode] as <var>"},
		{VerbSearch, "search <var> <pattern> [as <var>]"},
		{VerbCopy, "copy <source> <destination> [overwrite]"},
		{VerbHelp, "help [verb]"},
		{VerbPwd, "pwd"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s, _ := SignatureOf(tt.verb)
			assert.Equal(t, tt.want, s.Usage())
		})
	}
}

func TestNamesIncludesAliases(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "open")
	assert.Contains(t, names, "linecount")
	assert.IsNonDecreasing(t, names)
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "open", Suggest("opn"))
	assert.Equal(t, "write", Suggest("wirte"))
	assert.Equal(t, "", Suggest("xyzzyq"))
	assert.Equal(t, "", Suggest(""))
}

func TestUnknownVerbError(t *testing.T) {
	err := NewUnknownVerbError("shw")
	assert.True(t, errors.Is(err, ErrUnknownVerb))
	assert.Equal(t, "show", err.Suggestion)
	assert.Equal(t, `unknown verb "shw" (did you mean "show"?)`, err.Error())
}
