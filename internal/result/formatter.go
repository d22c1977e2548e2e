// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package result

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/filescript/internal/color"
)

// OutputOptions controls what is included in the output.
type OutputOptions struct {
	ShowLabels    bool // Whether to print a status line with the statement for each result
	IncludeOutput bool // Whether to include the textual output of successful statements
	ShowSkipped   bool // Whether to list statements that were not executed
}

// DefaultOutputOptions is the transcript layout used by run and show.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		ShowLabels:    true,
		IncludeOutput: true,
		ShowSkipped:   true,
	}
}

// InteractiveOutputOptions prints only output and errors, for the prompt.
func InteractiveOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeOutput: true,
	}
}

// WriteText writes formatted results to w.
func WriteText(w io.Writer, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, r := range results {
		if err := WriteResult(w, r, options); err != nil {
			return err
		}
	}

	return nil
}

// WriteResult writes one formatted result to w.
func WriteResult(w io.Writer, r *Result, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	if r.Status == StatusSkipped && !options.ShowSkipped {
		return nil
	}

	indent := ""

	if options.ShowLabels {
		if err := writeStatusLine(w, r); err != nil {
			return err
		}

		indent = "    "
	}

	if r.Error != nil {
		prefix := color.ColorizeNoReset("➜ Error:", color.FgRed)
		if !options.ShowLabels {
			prefix = color.ColorizeNoReset("✗ Error:", color.FgRed)
		}

		errIndent := ""
		if options.ShowLabels {
			errIndent = "  "
		}

		if _, err := fmt.Fprintf(w, "%s%s %s%s\n", errIndent, prefix, r.Error.Error(), resetCode()); err != nil {
			return err
		}

		return nil
	}

	if options.IncludeOutput && r.Output != "" {
		if _, err := io.WriteString(w, formatOutput(r.Output, indent)); err != nil {
			return err
		}
	}

	return nil
}

func writeStatusLine(w io.Writer, r *Result) error {
	var statusStr, labelPrefix string

	switch r.Status {
	case StatusSkipped:
		statusStr = color.Colorize("~", color.FgYellow)
		labelPrefix = color.ControlString(color.Bold, color.FgYellow)
	case StatusError:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	case StatusSuccess:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	default:
		statusStr = color.Colorize("?", color.FgWhite)
	}

	if !color.Enabled() {
		labelPrefix = ""
	}

	line := ""
	if r.Line > 0 {
		line = fmt.Sprintf("%d: ", r.Line)
	}

	_, err := fmt.Fprintf(w, "%s %s%s%s%s\n", statusStr, line, labelPrefix, r.Label(), resetCode())

	return err
}

func resetCode() string {
	if !color.Enabled() {
		return ""
	}

	return color.ControlString(color.Reset)
}

// formatOutput indents every line of output and makes sure it ends with a newline.
func formatOutput(output, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	sb.Grow(len(output) + len(lines)*(len(indent)+1))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
