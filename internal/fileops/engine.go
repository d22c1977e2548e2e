// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fileops performs the filesystem side of every DSL verb.
// Content verbs go through session.Content, so a file handle and a string buffer
// are treated alike; only handles touch the disk.
package fileops

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/matt-FFFFFF/filescript/internal/session"
	"github.com/spf13/afero"
)

const (
	// sixFourFour is the file mode for files created by the engine.
	sixFourFour = 0o644
	// tempPattern names the temporary file used while replacing a file's content.
	tempPattern = ".filescript-*.tmp"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Engine executes file operations against an afero.Fs.
// All paths it receives are absolute; see Resolve.
type Engine struct {
	fs afero.Fs
}

// New returns an Engine over fsys. A nil fsys means the OS filesystem.
func New(fsys afero.Fs) *Engine {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	return &Engine{fs: fsys}
}

// Fs returns the underlying filesystem.
func (e *Engine) Fs() afero.Fs {
	return e.fs
}

// Open opens path with mode and loads its content.
// Mode r requires the file to exist, w creates or empties it, a and rw create it when missing.
func (e *Engine) Open(path string, mode session.Mode) (*session.FileHandle, error) {
	const op = "open"

	fi, err := e.fs.Stat(path)

	switch {
	case err == nil && fi.IsDir():
		return nil, newPathError(op, path, Invalid, errors.New("is a directory"))
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, classify(op, path, err)
	case err != nil && mode == session.ModeRead:
		return nil, classify(op, path, err)
	}

	exists := err == nil

	if !exists || mode == session.ModeWrite {
		if err := e.checkParent(op, path); err != nil {
			return nil, err
		}

		if err := e.replaceFile(op, path, ""); err != nil {
			return nil, err
		}

		return session.NewFileHandle(path, mode, ""), nil
	}

	content, err := e.load(op, path)
	if err != nil {
		return nil, err
	}

	return session.NewFileHandle(path, mode, content), nil
}

// Read reloads a handle's buffer from disk and moves the cursor to the end.
// A string buffer is left as it is.
func (e *Engine) Read(c session.Content) error {
	h, ok := c.(*session.FileHandle)
	if !ok {
		c.SetCursor(len(c.Text()))
		return nil
	}

	content, err := e.load("read", h.Path())
	if err != nil {
		return err
	}

	h.SetText(content)
	h.SetCursor(len(content))

	return nil
}

// Write replaces the content with text and resets the cursor.
func (e *Engine) Write(c session.Content, text string) error {
	if err := e.store(c, "write", text, session.Mode.CanWrite); err != nil {
		return err
	}

	c.SetCursor(0)

	return nil
}

// Append adds text to the end of the content and moves the cursor to the end.
func (e *Engine) Append(c session.Content, text string) error {
	next := c.Text() + text
	if err := e.store(c, "append", next, session.Mode.CanAppend); err != nil {
		return err
	}

	c.SetCursor(len(next))

	return nil
}

// Truncate empties the content.
func (e *Engine) Truncate(c session.Content) error {
	return e.store(c, "truncate", "", session.Mode.CanWrite)
}

// Rewrite replaces the content with text, keeping the cursor where it can.
// It is used by replace.
func (e *Engine) Rewrite(c session.Content, text string) error {
	return e.store(c, "replace", text, session.Mode.CanWrite)
}

// store writes text to disk for handles, then updates the buffer.
// On failure the buffer keeps its previous content.
func (e *Engine) store(c session.Content, op, text string, allowed func(session.Mode) bool) error {
	h, ok := c.(*session.FileHandle)
	if !ok {
		c.SetText(text)
		return nil
	}

	if h.Closed() {
		return &IOError{Op: op, Path: h.Path(), Err: session.ErrHandleClosed}
	}

	if !allowed(h.Mode()) {
		return &ModeError{Op: op, Path: h.Path(), Mode: h.Mode()}
	}

	if err := e.replaceFile(op, h.Path(), text); err != nil {
		return err
	}

	h.SetText(text)

	return nil
}

// Copy duplicates src to dst and returns the destination path.
// When dst is an existing directory the file is copied into it.
func (e *Engine) Copy(src, dst string, overwrite bool) (string, error) {
	const op = "copy"

	dst, err := e.prepareTransfer(op, src, dst, overwrite)
	if err != nil {
		return "", err
	}

	data, err := afero.ReadFile(e.fs, src)
	if err != nil {
		return "", classify(op, src, err)
	}

	if err := e.replaceFile(op, dst, string(data)); err != nil {
		return "", err
	}

	return dst, nil
}

// Move relocates src to dst and returns the destination path.
// When dst is an existing directory the file is moved into it.
func (e *Engine) Move(src, dst string, overwrite bool) (string, error) {
	const op = "move"

	dst, err := e.prepareTransfer(op, src, dst, overwrite)
	if err != nil {
		return "", err
	}

	if err := e.fs.Rename(src, dst); err != nil {
		return "", classify(op, src, err)
	}

	return dst, nil
}

// Rename moves oldPath to newPath, which must be in the same directory and must not exist.
func (e *Engine) Rename(oldPath, newPath string) error {
	const op = "rename"

	if filepath.Dir(oldPath) != filepath.Dir(newPath) {
		return newPathError(op, newPath, Invalid, errors.New("rename must stay within the same directory"))
	}

	if ok, _ := e.Exists(newPath); ok {
		return newPathError(op, newPath, AlreadyExists, nil)
	}

	if _, err := e.prepareTransfer(op, oldPath, newPath, false); err != nil {
		return err
	}

	if err := e.fs.Rename(oldPath, newPath); err != nil {
		return classify(op, oldPath, err)
	}

	return nil
}

// Remove deletes the file at path.
func (e *Engine) Remove(path string) error {
	const op = "remove"

	fi, err := e.fs.Stat(path)
	if err != nil {
		return classify(op, path, err)
	}

	if fi.IsDir() {
		return newPathError(op, path, Invalid, errors.New("is a directory"))
	}

	if err := e.fs.Remove(path); err != nil {
		return classify(op, path, err)
	}

	return nil
}

// List returns the entries of dir ordered by name.
func (e *Engine) List(dir string) ([]Entry, error) {
	const op = "list"

	if err := e.EnsureDir(op, dir); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return nil, classify(op, dir, err)
	}

	out := make([]Entry, 0, len(infos))
	for _, fi := range infos {
		out = append(out, Entry{Name: fi.Name(), IsDir: fi.IsDir(), Size: fi.Size()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// EnsureDir checks that dir exists and is a directory.
func (e *Engine) EnsureDir(op, dir string) error {
	fi, err := e.fs.Stat(dir)
	if err != nil {
		return classify(op, dir, err)
	}

	if !fi.IsDir() {
		return newPathError(op, dir, Invalid, errors.New("not a directory"))
	}

	return nil
}

// Exists reports whether path exists.
func (e *Engine) Exists(path string) (bool, error) {
	return afero.Exists(e.fs, path)
}

func (e *Engine) load(op, path string) (string, error) {
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return "", classify(op, path, err)
	}

	return string(data), nil
}

func (e *Engine) checkParent(op, path string) error {
	if err := e.EnsureDir(op, filepath.Dir(path)); err != nil {
		var pe *PathError
		if errors.As(err, &pe) {
			pe.Path = path
		}

		return err
	}

	return nil
}

// prepareTransfer validates the source and destination of a copy, move or rename
// and returns the final destination.
func (e *Engine) prepareTransfer(op, src, dst string, overwrite bool) (string, error) {
	fi, err := e.fs.Stat(src)
	if err != nil {
		return "", classify(op, src, err)
	}

	if fi.IsDir() {
		return "", newPathError(op, src, Invalid, errors.New("is a directory"))
	}

	if dfi, err := e.fs.Stat(dst); err == nil && dfi.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	if dst == src {
		return "", newPathError(op, dst, Invalid, errors.New("source and destination are the same file"))
	}

	if err := e.checkParent(op, dst); err != nil {
		return "", err
	}

	dfi, err := e.fs.Stat(dst)

	switch {
	case err == nil && dfi.IsDir():
		return "", newPathError(op, dst, Invalid, errors.New("is a directory"))
	case err == nil && !overwrite:
		return "", newPathError(op, dst, AlreadyExists, nil)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return "", classify(op, dst, err)
	}

	return dst, nil
}

// replaceFile writes text to a temporary file next to path and renames it into place,
// so path holds either its old or its new content.
func (e *Engine) replaceFile(op, path, text string) error {
	perm := os.FileMode(sixFourFour)
	if fi, err := e.fs.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	tmp, err := afero.TempFile(e.fs, filepath.Dir(path), tempPattern)
	if err != nil {
		return classify(op, path, err)
	}

	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = e.fs.Remove(tmpName)

		if errors.Is(cause, fs.ErrPermission) {
			return newPathError(op, path, PermissionDenied, cause)
		}

		return &IOError{Op: op, Path: path, Err: cause}
	}

	if _, err := tmp.WriteString(text); err != nil {
		return cleanup(err)
	}

	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}

	if err := tmp.Close(); err != nil {
		_ = e.fs.Remove(tmpName)
		return &IOError{Op: op, Path: path, Err: err}
	}

	if err := e.fs.Chmod(tmpName, perm); err != nil {
		_ = e.fs.Remove(tmpName)
		return &IOError{Op: op, Path: path, Err: err}
	}

	if err := e.fs.Rename(tmpName, path); err != nil {
		_ = e.fs.Remove(tmpName)
		return classify(op, path, renameCause(err))
	}

	return nil
}

// renameCause hides a not-exist error from a failed rename of our own temp file,
// which would otherwise be reported as the target being missing.
func renameCause(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.New(err.Error())
	}

	return err
}
