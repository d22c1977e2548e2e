// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dsl

import (
	"strings"
	"unicode/utf8"
)

const (
	targetKeyword = "as"
	regexFlags    = "imsU"
)

var validModes = map[string]struct{}{"r": {}, "w": {}, "a": {}, "rw": {}}

// Arg is one positional argument of a Command.
type Arg struct {
	Value  string
	Quoted bool
	Col    int
}

// Command is a parsed statement. Flags holds the flags of a /regex/flags literal, if any.
type Command struct {
	Verb   Verb
	Name   string
	Args   []Arg
	Target string
	Flags  string
	Source string
}

// IsNoop reports whether the command does nothing (blank or comment-only source).
func (c Command) IsNoop() bool {
	return c.Verb == VerbNoop
}

// ArgValues returns the argument values in order.
func (c Command) ArgValues() []string {
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		out[i] = a.Value
	}

	return out
}

// Signature returns the signature of the command's verb.
func (c Command) Signature() Signature {
	s, _ := SignatureOf(c.Verb)
	return s
}

// Parser turns DSL source into Commands.
type Parser struct {
	CommentPrefix string
}

// NewParser returns a Parser using commentPrefix, or DefaultCommentPrefix when empty.
func NewParser(commentPrefix string) *Parser {
	if commentPrefix == "" {
		commentPrefix = DefaultCommentPrefix
	}

	return &Parser{CommentPrefix: commentPrefix}
}

// Parse parses a line holding exactly one statement using the default comment prefix.
func Parse(line string) (Command, error) {
	return NewParser("").Parse(line)
}

// Parse parses a line holding exactly one statement.
// An unquoted ';' is an error here, use ParseLine for multi-statement lines.
func (p *Parser) Parse(line string) (Command, error) {
	toks, err := Tokenize(line, p.CommentPrefix)
	if err != nil {
		return Command{}, err
	}

	for _, t := range toks {
		if t.Kind == TokenSeparator {
			return Command{}, newParseError(t.Col, ErrParse, "unexpected statement separator")
		}
	}

	return parseTokens(toks, strings.TrimSpace(line))
}

// ParseLine parses every ';' separated statement on a line.
// Empty statements are dropped; a blank line yields a single no-op.
func (p *Parser) ParseLine(line string) ([]Command, error) {
	stmts, err := p.split(line)
	if err != nil {
		return nil, err
	}

	cmds := make([]Command, 0, len(stmts))

	for _, s := range stmts {
		if len(s.toks) == 0 && len(stmts) > 1 {
			continue
		}

		cmd, err := parseTokens(s.toks, s.source)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, cmd)
	}

	if len(cmds) == 0 {
		cmds = append(cmds, Command{Verb: VerbNoop, Source: strings.TrimSpace(line)})
	}

	return cmds, nil
}

// SplitStatements splits a line on unquoted ';' and returns the source of each statement.
func SplitStatements(line, commentPrefix string) ([]string, error) {
	stmts, err := NewParser(commentPrefix).split(line)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, s.source)
	}

	return out, nil
}

type statement struct {
	toks   []Token
	source string
}

func (p *Parser) split(line string) ([]statement, error) {
	toks, err := Tokenize(line, p.CommentPrefix)
	if err != nil {
		return nil, err
	}

	rs := []rune(line)

	var (
		out   []statement
		cur   []Token
		start int
	)

	for _, t := range toks {
		if t.Kind != TokenSeparator {
			cur = append(cur, t)
			continue
		}

		out = append(out, statement{toks: cur, source: strings.TrimSpace(string(rs[start : t.Col-1]))})
		cur = nil
		start = t.Col
	}

	out = append(out, statement{toks: cur, source: strings.TrimSpace(string(rs[start:]))})

	return out, nil
}

func parseTokens(toks []Token, source string) (Command, error) {
	if len(toks) == 0 {
		return Command{Verb: VerbNoop, Source: source}, nil
	}

	head := toks[0]

	sig, ok := Lookup(head.Value)
	if !ok {
		pe := newParseError(head.Col, ErrUnknownVerb, "unknown verb %q", head.Value)
		pe.Suggestion = Suggest(head.Value)

		return Command{}, pe
	}

	cmd := Command{
		Verb:   sig.Verb,
		Name:   head.Value,
		Source: source,
	}

	rest := toks[1:]

	target, rest, err := splitTarget(sig, rest)
	if err != nil {
		return Command{}, err
	}

	for _, t := range rest {
		cmd.Args = append(cmd.Args, Arg{Value: t.Value, Quoted: t.Quoted(), Col: t.Col})
	}

	if sig.Verb == VerbOpen && target == "" {
		cmd.Args, target = openTargetFromArgs(cmd.Args)
	}

	if sig.Target == TargetRequired && target == "" {
		return Command{}, newParseError(head.Col, ErrMissingArgument,
			"%s requires a target variable: %s", sig.Name, sig.Usage())
	}

	cmd.Target = target

	if err := parseRegexLiteral(sig, &cmd); err != nil {
		return Command{}, err
	}

	return cmd, nil
}

// splitTarget removes an `as <name>` suffix from toks. An unquoted `as` is the keyword only
// as the second-to-last token; anywhere else it is an ordinary argument.
func splitTarget(sig Signature, toks []Token) (string, []Token, error) {
	idx := len(toks) - 2
	if idx < 0 || toks[idx].Kind != TokenWord || !strings.EqualFold(toks[idx].Value, targetKeyword) {
		return "", toks, nil
	}

	if sig.Target == TargetNone {
		return "", nil, newParseError(toks[idx].Col, ErrParse, "%s does not take a target variable", sig.Name)
	}

	name := toks[idx+1]
	if name.Kind != TokenWord || !IsIdentifier(name.Value) {
		return "", nil, newParseError(name.Col, ErrMissingArgument, "invalid variable name %q", name.Value)
	}

	return name.Value, toks[:idx], nil
}

// openTargetFromArgs accepts `open path [mode] name` without the `as` keyword.
func openTargetFromArgs(args []Arg) ([]Arg, string) {
	switch len(args) {
	case 3:
		last := args[2]
		if !last.Quoted && IsIdentifier(last.Value) {
			return args[:2], last.Value
		}
	case 2:
		last := args[1]
		if _, isMode := validModes[last.Value]; isMode || last.Quoted {
			return args, ""
		}

		if IsIdentifier(last.Value) {
			return args[:1], last.Value
		}
	}

	return args, ""
}

// parseRegexLiteral turns an unquoted /body/flags argument in the pattern slot into its body
// and records the flags on cmd.
func parseRegexLiteral(sig Signature, cmd *Command) error {
	slot := sig.PatternSlot()
	if slot < 0 || slot >= len(cmd.Args) {
		return nil
	}

	arg := cmd.Args[slot]
	if arg.Quoted || !strings.HasPrefix(arg.Value, "/") {
		return nil
	}

	end := strings.LastIndex(arg.Value, "/")
	if end == 0 {
		return newParseError(arg.Col, ErrMalformedRegex, "regex literal %q has no closing '/'", arg.Value)
	}

	body, flags := arg.Value[1:end], arg.Value[end+1:]
	if body == "" {
		return newParseError(arg.Col, ErrMalformedRegex, "regex literal %q is empty", arg.Value)
	}

	seen := make(map[rune]struct{}, len(flags))
	col := arg.Col + utf8.RuneCountInString(arg.Value[:end+1])

	for _, f := range flags {
		if !strings.ContainsRune(regexFlags, f) {
			return newParseError(col, ErrMalformedRegex, "unknown regex flag %q", f)
		}

		if _, dup := seen[f]; dup {
			return newParseError(col, ErrMalformedRegex, "duplicate regex flag %q", f)
		}

		seen[f] = struct{}{}
		col++
	}

	cmd.Args[slot].Value = body
	cmd.Flags = flags

	return nil
}
