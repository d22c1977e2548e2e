// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dsl

import (
	"strings"
	"unicode"
)

// DefaultCommentPrefix starts a comment when it begins a token.
const DefaultCommentPrefix = "#"

// TokenKind classifies a Token.
type TokenKind int

// Token kinds.
const (
	TokenWord      TokenKind = iota // bare word
	TokenString                     // quoted string, quotes removed
	TokenSeparator                  // unquoted ';'
)

// Token is a lexical unit of a DSL line. Col is the 1-based column where it starts.
type Token struct {
	Kind  TokenKind
	Value string
	Col   int
}

// Quoted reports whether the token came from a quoted string.
func (t Token) Quoted() bool {
	return t.Kind == TokenString
}

// Tokenize splits one line of source into tokens.
//
// Double-quoted strings understand the escapes \n, \t, \\ and \"; any other backslash
// sequence is kept as written so regular expressions survive. Single-quoted strings are
// taken literally. Lexing stops at commentPrefix when it starts a token.
func Tokenize(line, commentPrefix string) ([]Token, error) {
	if commentPrefix == "" {
		commentPrefix = DefaultCommentPrefix
	}

	rs := []rune(line)
	prefix := []rune(commentPrefix)

	var toks []Token

	for i := 0; i < len(rs); {
		r := rs[i]

		switch {
		case unicode.IsSpace(r):
			i++
		case hasPrefixAt(rs, i, prefix):
			return toks, nil
		case r == ';':
			toks = append(toks, Token{Kind: TokenSeparator, Value: ";", Col: i + 1})
			i++
		case r == '"':
			s, next, err := lexDoubleQuoted(rs, i)
			if err != nil {
				return nil, err
			}

			toks = append(toks, Token{Kind: TokenString, Value: s, Col: i + 1})
			i = next
		case r == '\'':
			s, next, err := lexSingleQuoted(rs, i)
			if err != nil {
				return nil, err
			}

			toks = append(toks, Token{Kind: TokenString, Value: s, Col: i + 1})
			i = next
		default:
			s, next, err := lexWord(rs, i)
			if err != nil {
				return nil, err
			}

			toks = append(toks, Token{Kind: TokenWord, Value: s, Col: i + 1})
			i = next
		}
	}

	return toks, nil
}

func hasPrefixAt(rs []rune, i int, prefix []rune) bool {
	if len(prefix) == 0 || i+len(prefix) > len(rs) {
		return false
	}

	for j, p := range prefix {
		if rs[i+j] != p {
			return false
		}
	}

	return true
}

func lexWord(rs []rune, start int) (string, int, error) {
	i := start
	for i < len(rs) && !unicode.IsSpace(rs[i]) && rs[i] != ';' {
		if rs[i] == '"' || rs[i] == '\'' {
			return "", 0, newParseError(i+1, ErrUnterminatedQuote, "unexpected quote inside bare word")
		}

		i++
	}

	return string(rs[start:i]), i, nil
}

func lexDoubleQuoted(rs []rune, start int) (string, int, error) {
	sb := strings.Builder{}

	for i := start + 1; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '"':
			return sb.String(), i + 1, nil
		case '\\':
			if i+1 >= len(rs) {
				return "", 0, newParseError(start+1, ErrUnterminatedQuote, "unterminated string")
			}

			i++

			switch e := rs[i]; e {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\', '"':
				sb.WriteRune(e)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(r)
		}
	}

	return "", 0, newParseError(start+1, ErrUnterminatedQuote, "unterminated string")
}

func lexSingleQuoted(rs []rune, start int) (string, int, error) {
	for i := start + 1; i < len(rs); i++ {
		if rs[i] == '\'' {
			return string(rs[start+1 : i]), i + 1, nil
		}
	}

	return "", 0, newParseError(start+1, ErrUnterminatedQuote, "unterminated string")
}

// IsIdentifier reports whether s is a valid variable name:
// a letter or underscore followed by letters, digits, '_', '-' or '.'.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return true
}
