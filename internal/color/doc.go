// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for the transcript and prompt output.
// Color is off when NO_COLOR is set, on when FORCE_COLOR is set, and otherwise follows
// whether stdout is a terminal (golang.org/x/term).
package color
