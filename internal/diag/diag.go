// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package diag renders the session dump and the verb help as tables.
package diag

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matt-FFFFFF/filescript/internal/dsl"
	"github.com/matt-FFFFFF/filescript/internal/session"
)

// NoVariables is printed by Dump for an empty session.
const NoVariables = "no variables bound"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
)

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == len(headers)-1:
				return mutedStyle
			}

			return cellStyle
		}).
		Render()
}

// Dump renders every variable with its kind and descriptor, in the order given.
func Dump(vars []session.Variable) string {
	if len(vars) == 0 {
		return NoVariables
	}

	rows := make([][]string, 0, len(vars))
	for _, v := range vars {
		rows = append(rows, []string{v.Name, v.Value.Kind().String(), v.Value.Describe()})
	}

	return render([]string{"NAME", "KIND", "DETAIL"}, rows)
}

// HelpAll renders the usage of every verb.
func HelpAll() string {
	sigs := dsl.Signatures()
	rows := make([][]string, 0, len(sigs))

	for _, s := range sigs {
		rows = append(rows, []string{s.Usage(), s.Summary})
	}

	return render([]string{"USAGE", "DESCRIPTION"}, rows)
}

// HelpVerb renders the signature of one verb. Unknown names fail with *dsl.UnknownVerbError.
func HelpVerb(name string) (string, error) {
	s, ok := dsl.Lookup(name)
	if !ok {
		return "", dsl.NewUnknownVerbError(name)
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "usage: %s\n", s.Usage()) // nolint:errcheck
	fmt.Fprintf(&sb, "  %s\n", s.Summary)      // nolint:errcheck

	if len(s.Aliases) > 0 {
		fmt.Fprintf(&sb, "  aliases: %s\n", strings.Join(s.Aliases, ", ")) // nolint:errcheck
	}

	rows := make([][]string, 0, len(s.Params))
	for _, p := range s.Params {
		req := "required"
		if p.Optional {
			req = "optional"
		}

		rows = append(rows, []string{p.Name, kindName(p.Kind), req})
	}

	switch s.Target {
	case dsl.TargetRequired:
		rows = append(rows, []string{"as <var>", "name", "required"})
	case dsl.TargetOptional:
		rows = append(rows, []string{"as <var>", "name", "optional"})
	}

	if len(rows) > 0 {
		sb.WriteString(render([]string{"ARGUMENT", "TYPE", ""}, rows))
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func kindName(k dsl.ArgKind) string {
	switch k {
	case dsl.ArgVar:
		return "variable"
	case dsl.ArgName:
		return "name"
	case dsl.ArgPath:
		return "path"
	case dsl.ArgText:
		return "text"
	case dsl.ArgPattern:
		return "regex"
	case dsl.ArgMode:
		return "mode"
	case dsl.ArgKeyword:
		return "keyword"
	case dsl.ArgVerb:
		return "verb"
	}

	return "?"
}
