// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger uses PrettyHandler to write human readable records to stderr.
// The initial level comes from FILESCRIPT_LOG_LEVEL (DEBUG, INFO, WARN or ERROR; WARN otherwise)
// and can be changed at runtime through LevelVar or SetLevel.
package ctxlog
