// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package fileops

import "strings"

// CountLines returns the number of '\n' terminators, plus one if the text ends with
// unterminated content. Empty text has zero lines.
func CountLines(text string) int {
	if text == "" {
		return 0
	}

	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}

	return n
}
