// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry maps each DSL verb to the handler that executes it.
package commandregistry
