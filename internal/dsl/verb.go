// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dsl

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Verb identifies the operation a Command performs.
type Verb int

// The verbs understood by the interpreter.
// VerbNoop is produced for blank and comment-only statements.
const (
	VerbNoop Verb = iota
	VerbOpen
	VerbRead
	VerbWrite
	VerbAppend
	VerbShow
	VerbTruncate
	VerbCountLines
	VerbSearch
	VerbReplace
	VerbCopy
	VerbMove
	VerbRemove
	VerbRename
	VerbList
	VerbDump
	VerbHelp
	VerbClose
	VerbSet
	VerbAlias
	VerbCd
	VerbPwd
	VerbExit
)

// ArgKind describes what a positional argument is expected to hold.
type ArgKind int

// Argument kinds.
const (
	ArgVar     ArgKind = iota // name of a bound variable
	ArgName                   // name of a variable to create
	ArgPath                   // filesystem path, or an alias/handle variable
	ArgText                   // free text
	ArgPattern                // regular expression
	ArgMode                   // open mode
	ArgKeyword                // fixed keyword such as "overwrite"
	ArgVerb                   // name of a verb
)

// TargetPolicy says whether a verb accepts an `as <name>` target.
type TargetPolicy int

// Target policies.
const (
	TargetNone TargetPolicy = iota
	TargetOptional
	TargetRequired
)

// Param is one positional parameter in a verb signature.
type Param struct {
	Name     string
	Kind     ArgKind
	Optional bool
}

// Signature is the argument contract of a verb.
type Signature struct {
	Verb    Verb
	Name    string
	Aliases []string
	Params  []Param
	Target  TargetPolicy
	Summary string
}

var signatures = []Signature{
	{
		Verb:    VerbOpen,
		Name:    "open",
		Params:  []Param{{Name: "path", Kind: ArgPath}, {Name: "mode", Kind: ArgMode, Optional: true}},
		Target:  TargetRequired,
		Summary: "Open a file (mode r, w, a or rw; default rw) and bind it to a variable",
	},
	{
		Verb:    VerbRead,
		Name:    "read",
		Params:  []Param{{Name: "var", Kind: ArgVar}},
		Target:  TargetOptional,
		Summary: "Reload the content of a file from disk and print it",
	},
	{
		Verb:    VerbWrite,
		Name:    "write",
		Params:  []Param{{Name: "var", Kind: ArgVar}, {Name: "text", Kind: ArgText}},
		Summary: "Overwrite the content with text",
	},
	{
		Verb:    VerbAppend,
		Name:    "append",
		Params:  []Param{{Name: "var", Kind: ArgVar}, {Name: "text", Kind: ArgText}},
		Summary: "Append text to the end of the content",
	},
	{
		Verb:    VerbShow,
		Name:    "show",
		Params:  []Param{{Name: "var", Kind: ArgVar}},
		Target:  TargetOptional,
		Summary: "Print the buffered content without touching the disk",
	},
	{
		Verb:    VerbTruncate,
		Name:    "truncate",
		Params:  []Param{{Name: "var", Kind: ArgVar}},
		Summary: "Empty the content",
	},
	{
		Verb:    VerbCountLines,
		Name:    "countlines",
		Aliases: []string{"linecount"},
		Params:  []Param{{Name: "var", Kind: ArgVar}},
		Target:  TargetOptional,
		Summary: "Print the number of lines in the content",
	},
	{
		Verb:    VerbSearch,
		Name:    "search",
		Params:  []Param{{Name: "var", Kind: ArgVar}, {Name: "pattern", Kind: ArgPattern}},
		Target:  TargetOptional,
		Summary: "List every match of a regular expression by line and offset",
	},
	{
		Verb: VerbReplace,
		Name: "replace",
		Params: []Param{
			{Name: "var", Kind: ArgVar},
			{Name: "pattern", Kind: ArgPattern},
			{Name: "replacement", Kind: ArgText},
		},
		Summary: "Replace every match of a regular expression; $1 or \\1 refer to groups",
	},
	{
		Verb: VerbCopy,
		Name: "copy",
		Params: []Param{
			{Name: "source", Kind: ArgPath},
			{Name: "destination", Kind: ArgPath},
			{Name: "overwrite", Kind: ArgKeyword, Optional: true},
		},
		Summary: "Copy a file; fails if the destination exists unless overwrite is given",
	},
	{
		Verb: VerbMove,
		Name: "move",
		Params: []Param{
			{Name: "source", Kind: ArgPath},
			{Name: "destination", Kind: ArgPath},
			{Name: "overwrite", Kind: ArgKeyword, Optional: true},
		},
		Summary: "Move a file; fails if the source is missing",
	},
	{
		Verb:    VerbRemove,
		Name:    "remove",
		Params:  []Param{{Name: "path", Kind: ArgPath}},
		Summary: "Delete a file",
	},
	{
		Verb:    VerbRename,
		Name:    "rename",
		Params:  []Param{{Name: "old", Kind: ArgPath}, {Name: "new", Kind: ArgPath}},
		Summary: "Rename a file within its directory",
	},
	{
		Verb:    VerbList,
		Name:    "list",
		Aliases: []string{"listdir"},
		Params:  []Param{{Name: "dir", Kind: ArgPath}},
		Target:  TargetOptional,
		Summary: "List the entries of a directory in name order",
	},
	{
		Verb:    VerbDump,
		Name:    "dump",
		Aliases: []string{"dumpenv"},
		Summary: "Show every bound variable",
	},
	{
		Verb:    VerbHelp,
		Name:    "help",
		Params:  []Param{{Name: "verb", Kind: ArgVerb, Optional: true}},
		Summary: "Show all verbs, or the usage of one verb",
	},
	{
		Verb:    VerbClose,
		Name:    "close",
		Aliases: []string{"unbind"},
		Params:  []Param{{Name: "var", Kind: ArgVar}},
		Summary: "Unbind a variable, closing its file handle",
	},
	{
		Verb:    VerbSet,
		Name:    "set",
		Params:  []Param{{Name: "name", Kind: ArgName}, {Name: "text", Kind: ArgText}},
		Summary: "Bind a string buffer",
	},
	{
		Verb:    VerbAlias,
		Name:    "alias",
		Params:  []Param{{Name: "name", Kind: ArgName}, {Name: "path", Kind: ArgPath}},
		Summary: "Bind a name to a path",
	},
	{
		Verb:    VerbCd,
		Name:    "cd",
		Params:  []Param{{Name: "dir", Kind: ArgPath}},
		Summary: "Change the working directory of the session",
	},
	{
		Verb:    VerbPwd,
		Name:    "pwd",
		Summary: "Print the working directory of the session",
	},
	{
		Verb:    VerbExit,
		Name:    "exit",
		Aliases: []string{"quit"},
		Summary: "Stop processing commands",
	},
}

var (
	byVerb = make(map[Verb]Signature, len(signatures))
	byName = make(map[string]Signature, len(signatures)*2)
)

func init() {
	for _, s := range signatures {
		byVerb[s.Verb] = s
		byName[s.Name] = s

		for _, a := range s.Aliases {
			byName[a] = s
		}
	}
}

// Lookup finds the signature for a verb name. Matching is case-insensitive.
func Lookup(name string) (Signature, bool) {
	s, ok := byName[strings.ToLower(name)]
	return s, ok
}

// SignatureOf returns the signature of v.
func SignatureOf(v Verb) (Signature, bool) {
	s, ok := byVerb[v]
	return s, ok
}

// Signatures returns every verb signature in declaration order.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	copy(out, signatures)

	return out
}

// Names returns every verb name and alias, sorted.
func Names() []string {
	out := make([]string, 0, len(byName))
	for n := range byName {
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}

// String returns the upper-case verb name, e.g. "OPEN".
func (v Verb) String() string {
	if v == VerbNoop {
		return "NOOP"
	}

	if s, ok := byVerb[v]; ok {
		return strings.ToUpper(s.Name)
	}

	return "UNKNOWN"
}

// MinArgs is the number of required positional arguments.
func (s Signature) MinArgs() int {
	n := 0

	for _, p := range s.Params {
		if !p.Optional {
			n++
		}
	}

	return n
}

// MaxArgs is the total number of positional arguments accepted.
func (s Signature) MaxArgs() int {
	return len(s.Params)
}

// PatternSlot is the index of the pattern parameter, or -1.
func (s Signature) PatternSlot() int {
	for i, p := range s.Params {
		if p.Kind == ArgPattern {
			return i
		}
	}

	return -1
}

// Usage renders the signature, e.g. `open <path> [mode] as <var>`.
func (s Signature) Usage() string {
	sb := strings.Builder{}
	sb.WriteString(s.Name)

	for _, p := range s.Params {
		sb.WriteString(" ")

		if p.Optional {
			sb.WriteString("[" + p.Name + "]")
			continue
		}

		sb.WriteString("<" + p.Name + ">")
	}

	switch s.Target {
	case TargetRequired:
		sb.WriteString(" as <var>")
	case TargetOptional:
		sb.WriteString(" [as <var>]")
	}

	return sb.String()
}

const maxSuggestDistance = 2

// Suggest returns the verb name closest to name, or "" when nothing is close.
func Suggest(name string) string {
	name = strings.ToLower(name)
	if name == "" {
		return ""
	}

	names := Names()

	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDist := "", maxSuggestDistance+1

	for _, n := range names {
		if d := fuzzy.LevenshteinDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}

	return best
}
