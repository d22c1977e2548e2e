// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package fileops

import (
	"path/filepath"
	"strings"
)

// Resolve returns p as a clean absolute path, joined to cwd when p is relative.
func Resolve(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}

	return filepath.Join(cwd, p)
}

// Sibling resolves name next to the file at path when name is a bare file name.
// Names containing a separator resolve against cwd like any other path.
func Sibling(cwd, path, name string) string {
	if !strings.ContainsRune(name, filepath.Separator) && !strings.ContainsRune(name, '/') {
		return filepath.Join(filepath.Dir(path), name)
	}

	return Resolve(cwd, name)
}
