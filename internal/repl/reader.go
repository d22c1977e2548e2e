// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

// ErrAborted is returned by a LineReader when the user aborts the prompt with Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

// LineReader reads one line of input per prompt. Prompt returns io.EOF when input is exhausted.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// NewLineReader returns an editing line reader when stdin is a terminal, and a plain
// line scanner otherwise. History is loaded from and saved to historyFile when it is set.
func NewLineReader(fs afero.Fs, historyFile string, complete func(string) []string) LineReader {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !liner.TerminalSupported() {
		return NewScannerReader(os.Stdin)
	}

	return newLinerReader(fs, historyFile, complete)
}

type linerReader struct {
	state       *liner.State
	fs          afero.Fs
	historyFile string
}

func newLinerReader(fs afero.Fs, historyFile string, complete func(string) []string) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	if complete != nil {
		line.SetCompleter(complete)
	}

	r := &linerReader{state: line, fs: fs, historyFile: historyFile}

	if historyFile != "" {
		if f, err := fs.Open(historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
	}

	return r
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	s, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}

	return s, err
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

func (r *linerReader) Close() error {
	var herr error

	if r.historyFile != "" {
		herr = r.saveHistory()
	}

	return errors.Join(herr, r.state.Close())
}

func (r *linerReader) saveHistory() error {
	f, err := r.fs.Create(r.historyFile)
	if err != nil {
		return fmt.Errorf("cannot save history: %w", err)
	}

	defer f.Close() //nolint:errcheck

	if _, err := r.state.WriteHistory(f); err != nil {
		return fmt.Errorf("cannot save history: %w", err)
	}

	return nil
}

// ScannerReader reads lines without editing or echoing a prompt. It is used for piped input.
type ScannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader returns a ScannerReader over in.
func NewScannerReader(in io.Reader) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(in)}
}

// Prompt returns the next line of input.
func (r *ScannerReader) Prompt(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}

	if err := r.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

// AppendHistory does nothing.
func (r *ScannerReader) AppendHistory(string) {}

// Close does nothing.
func (r *ScannerReader) Close() error { return nil }
