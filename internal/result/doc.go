// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package result holds the outcome of each executed statement.
// Results can be printed as a transcript or saved in a binary form and shown again later.
package result
