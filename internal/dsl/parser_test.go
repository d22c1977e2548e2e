// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dsl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignorePositions = cmp.Options{
	cmpopts.IgnoreFields(Arg{}, "Col"),
	cmpopts.IgnoreFields(Command{}, "Source"),
	cmpopts.EquateEmpty(),
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{
			name: "open with mode and as",
			line: `OPEN "test.txt" "w" as f`,
			want: Command{
				Verb:   VerbOpen,
				Name:   "OPEN",
				Args:   []Arg{{Value: "test.txt", Quoted: true}, {Value: "w", Quoted: true}},
				Target: "f",
			},
		},
		{
			name: "open without mode",
			line: `open "my file.txt" as doc`,
			want: Command{
				Verb:   VerbOpen,
				Name:   "open",
				Args:   []Arg{{Value: "my file.txt", Quoted: true}},
				Target: "doc",
			},
		},
		{
			name: "open with target last",
			line: `open notes.txt rw notes`,
			want: Command{
				Verb:   VerbOpen,
				Name:   "open",
				Args:   []Arg{{Value: "notes.txt"}, {Value: "rw"}},
				Target: "notes",
			},
		},
		{
			name: "open with target last and no mode",
			line: `open notes.txt notes`,
			want: Command{
				Verb:   VerbOpen,
				Name:   "open",
				Args:   []Arg{{Value: "notes.txt"}},
				Target: "notes",
			},
		},
		{
			name: "mixed case verb",
			line: `WrItE f "hello"`,
			want: Command{
				Verb: VerbWrite,
				Name: "WrItE",
				Args: []Arg{{Value: "f"}, {Value: "hello", Quoted: true}},
			},
		},
		{
			name: "alias verb",
			line: `linecount f as n`,
			want: Command{
				Verb:   VerbCountLines,
				Name:   "linecount",
				Args:   []Arg{{Value: "f"}},
				Target: "n",
			},
		},
		{
			name: "quoted as is an argument",
			line: `write f "as"`,
			want: Command{
				Verb: VerbWrite,
				Name: "write",
				Args: []Arg{{Value: "f"}, {Value: "as", Quoted: true}},
			},
		},
		{
			name: "trailing as is an argument",
			line: `write f as`,
			want: Command{
				Verb: VerbWrite,
				Name: "write",
				Args: []Arg{{Value: "f"}, {Value: "as"}},
			},
		},
		{
			name: "as as a search pattern",
			line: `search f as`,
			want: Command{
				Verb: VerbSearch,
				Name: "search",
				Args: []Arg{{Value: "f"}, {Value: "as"}},
			},
		},
		{
			name: "as before the last two tokens is an argument",
			line: `read f as a b`,
			want: Command{
				Verb: VerbRead,
				Name: "read",
				Args: []Arg{{Value: "f"}, {Value: "as"}, {Value: "a"}, {Value: "b"}},
			},
		},
		{
			name: "regex literal with flags",
			line: `search f /^ab+c$/im as hits`,
			want: Command{
				Verb:   VerbSearch,
				Name:   "search",
				Args:   []Arg{{Value: "f"}, {Value: "^ab+c$"}},
				Flags:  "im",
				Target: "hits",
			},
		},
		{
			name: "regex literal containing slash",
			line: `replace f /a/b/ "x"`,
			want: Command{
				Verb: VerbReplace,
				Name: "replace",
				Args: []Arg{{Value: "f"}, {Value: "a/b"}, {Value: "x", Quoted: true}},
			},
		},
		{
			name: "quoted pattern is not a literal",
			line: `search f "/etc/"`,
			want: Command{
				Verb: VerbSearch,
				Name: "search",
				Args: []Arg{{Value: "f"}, {Value: "/etc/", Quoted: true}},
			},
		},
		{
			name: "slash in path slot is untouched",
			line: `copy /tmp/a /tmp/b overwrite`,
			want: Command{
				Verb: VerbCopy,
				Name: "copy",
				Args: []Arg{{Value: "/tmp/a"}, {Value: "/tmp/b"}, {Value: "overwrite"}},
			},
		},
		{
			name: "verb with no args",
			line: `dump`,
			want: Command{Verb: VerbDump, Name: "dump"},
		},
		{
			name: "blank",
			line: "    ",
			want: Command{Verb: VerbNoop},
		},
		{
			name: "comment",
			line: "  # open x as y",
			want: Command{Verb: VerbNoop},
		},
		{
			name: "arity is not checked by the parser",
			line: "truncate a b c",
			want: Command{
				Verb: VerbTruncate,
				Name: "truncate",
				Args: []Arg{{Value: "a"}, {Value: "b"}, {Value: "c"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got, ignorePositions); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		cause error
		col   int
	}{
		{name: "unknown verb", line: "frobnicate f", cause: ErrUnknownVerb, col: 1},
		{name: "unterminated quote", line: `write f "abc`, cause: ErrUnterminatedQuote, col: 9},
		{name: "open without target", line: `open "a.txt" w`, cause: ErrMissingArgument, col: 1},
		{name: "open with nothing", line: `open`, cause: ErrMissingArgument, col: 1},
		{name: "as with bad name", line: `read f as 9lives`, cause: ErrMissingArgument, col: 11},
		{name: "as on verb without target", line: `truncate f as g`, cause: ErrParse, col: 12},
		{name: "regex without close", line: `search f /abc`, cause: ErrMalformedRegex, col: 10},
		{name: "regex empty", line: `search f //i`, cause: ErrMalformedRegex, col: 10},
		{name: "regex bad flag", line: `search f /abc/x`, cause: ErrMalformedRegex, col: 15},
		{name: "regex duplicate flag", line: `search f /abc/ii`, cause: ErrMalformedRegex, col: 16},
		{name: "regex bad flag after non-ascii", line: `search f /é+/x`, cause: ErrMalformedRegex, col: 14},
		{name: "regex bad flag after non-ascii flag", line: `search f /a/ié`, cause: ErrMalformedRegex, col: 14},
		{name: "as with quoted name", line: `read f as "g"`, cause: ErrMissingArgument, col: 11},
		{name: "separator in single statement", line: `pwd; dump`, cause: ErrParse, col: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.ErrorIs(t, err, tt.cause)

			var pe *ParseError

			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.col, pe.Col)
		})
	}
}

func TestParseUnknownVerbSuggestion(t *testing.T) {
	_, err := Parse(`opn "a.txt" as f`)

	var pe *ParseError

	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "open", pe.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "open"?`)
}

func TestParseLine(t *testing.T) {
	p := NewParser("")

	cmds, err := p.ParseLine(`open a.txt as a; write a "x;y" ;; show a # done`)
	require.NoError(t, err)
	require.Len(t, cmds, 3)

	assert.Equal(t, VerbOpen, cmds[0].Verb)
	assert.Equal(t, "open a.txt as a", cmds[0].Source)
	assert.Equal(t, VerbWrite, cmds[1].Verb)
	assert.Equal(t, []string{"a", "x;y"}, cmds[1].ArgValues())
	assert.Equal(t, VerbShow, cmds[2].Verb)

	cmds, err = p.ParseLine("   ")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.True(t, cmds[0].IsNoop())

	_, err = p.ParseLine("pwd; nope")
	assert.ErrorIs(t, err, ErrUnknownVerb)
}

func TestSplitStatements(t *testing.T) {
	got, err := SplitStatements(`pwd ; write f "a;b";dump`, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"pwd", `write f "a;b"`, "dump"}, got)
}

func TestCustomCommentPrefix(t *testing.T) {
	p := NewParser("--")

	cmd, err := p.Parse("-- a comment")
	require.NoError(t, err)
	assert.True(t, cmd.IsNoop())

	cmd, err = p.Parse("list #dir")
	require.NoError(t, err)
	assert.Equal(t, []string{"#dir"}, cmd.ArgValues())
}
