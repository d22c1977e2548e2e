// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pattern implements search and replace over text.
// Matching itself is delegated to a Compiler; the default one wraps the regexp package.
package pattern

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// ErrPattern is matched by every *PatternError.
var ErrPattern = errors.New("invalid pattern")

// PatternError is returned when an expression or its flags cannot be compiled.
type PatternError struct {
	Expr string
	Err  error
}

// Error implements the error interface for PatternError.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Expr, e.Err)
}

// Is reports whether target is ErrPattern.
func (e *PatternError) Is(target error) bool {
	return target == ErrPattern
}

// Unwrap returns the underlying cause.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Compiler turns an expression and its flags into a Pattern.
type Compiler interface {
	Compile(expr, flags string) (Pattern, error)
}

// Pattern is a compiled expression.
type Pattern interface {
	// FindAllIndex returns the [start, end) byte offsets of every non-overlapping match, leftmost first.
	FindAllIndex(s string) [][]int
	// ReplaceAll substitutes tmpl for every match and returns the result and the number of matches.
	ReplaceAll(s, tmpl string) (string, int)
}

// CompilerFunc adapts a function to a Compiler.
type CompilerFunc func(expr, flags string) (Pattern, error)

// Compile calls f.
func (f CompilerFunc) Compile(expr, flags string) (Pattern, error) {
	return f(expr, flags)
}

// RE2 is the default Compiler, backed by regexp.
// Supported flags are i, m, s and U.
var RE2 Compiler = CompilerFunc(compileRE2)

const supportedFlags = "imsU"

func compileRE2(expr, flags string) (Pattern, error) {
	for _, f := range flags {
		if !strings.ContainsRune(supportedFlags, f) {
			return nil, &PatternError{Expr: expr, Err: fmt.Errorf("unsupported flag %q", f)}
		}
	}

	src := expr
	if flags != "" {
		src = "(?" + flags + ")" + expr
	}

	re, err := regexp.Compile(src)
	if err != nil {
		return nil, &PatternError{Expr: expr, Err: err}
	}

	return &rePattern{re: re}, nil
}

type rePattern struct {
	re *regexp.Regexp
}

func (p *rePattern) FindAllIndex(s string) [][]int {
	return p.re.FindAllStringIndex(s, -1)
}

func (p *rePattern) ReplaceAll(s, tmpl string) (string, int) {
	matches := p.re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, 0
	}

	sb := strings.Builder{}
	last := 0

	for _, m := range matches {
		sb.WriteString(s[last:m[0]])
		sb.Write(p.re.ExpandString(nil, tmpl, s, m))
		last = m[1]
	}

	sb.WriteString(s[last:])

	return sb.String(), len(matches)
}

// Match is one search hit. Line is 1-based, Offset is the byte offset within the line.
type Match struct {
	Line   int
	Offset int
	Text   string
}

// String renders the match as `line:offset: text`.
func (m Match) String() string {
	return fmt.Sprintf("%d:%d: %s", m.Line, m.Offset, m.Text)
}

// Matches scans text line by line and yields every match ordered by line then offset.
// The sequence can be ranged over more than once.
func Matches(p Pattern, text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		n := 0

		for line := range lines(text) {
			n++

			for _, loc := range p.FindAllIndex(line) {
				if !yield(Match{Line: n, Offset: loc[0], Text: line[loc[0]:loc[1]]}) {
					return
				}
			}
		}
	}
}

// Search compiles expr and returns every match in text.
// An invalid expression fails before any scanning.
func Search(c Compiler, text, expr, flags string) ([]Match, error) {
	p, err := c.Compile(expr, flags)
	if err != nil {
		return nil, err
	}

	out := []Match{}
	for m := range Matches(p, text) {
		out = append(out, m)
	}

	return out, nil
}

// Replace compiles expr and substitutes replacement for every match in text.
// Lines are matched one at a time, exactly as Matches scans them, so ^ and $ anchor
// at line boundaries and a match never spans a line terminator.
// The replacement may refer to groups as $1, ${name} or \1.
// Zero matches is not an error: text is returned unchanged with a count of 0.
func Replace(c Compiler, text, expr, flags, replacement string) (string, int, error) {
	p, err := c.Compile(expr, flags)
	if err != nil {
		return "", 0, err
	}

	tmpl := NormalizeTemplate(replacement)
	sb := strings.Builder{}
	total := 0

	for line, term := range lines(text) {
		out, n := p.ReplaceAll(line, tmpl)
		total += n

		sb.WriteString(out)
		sb.WriteString(term)
	}

	if total == 0 {
		return text, 0, nil
	}

	return sb.String(), total, nil
}

var backrefRE = regexp.MustCompile(`\\(\d+)`)

// NormalizeTemplate rewrites \N back-references to ${N}.
func NormalizeTemplate(tmpl string) string {
	return backrefRE.ReplaceAllString(tmpl, `$${$1}`)
}

// lines yields each line of text without its terminator, followed by the terminator
// ("\n", "\r\n" or "" for unterminated trailing content). Nothing is yielded for the
// empty remainder after a final terminator.
func lines(text string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for text != "" {
			line, term := text, ""
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				line, term = text[:i], "\n"
				text = text[i+1:]
			} else {
				text = ""
			}

			if strings.HasSuffix(line, "\r") && term != "" {
				line, term = line[:len(line)-1], "\r\n"
			}

			if !yield(line, term) {
				return
			}
		}
	}
}
