// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package result

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io"

	"github.com/matt-FFFFFF/filescript/internal/pattern"
)

var (
	// ErrWriteGob is returned when writing the results to a binary format fails.
	ErrWriteGob = errors.New("failed to write binary results")
	// ErrReadGob is returned when a binary transcript cannot be decoded.
	ErrReadGob = errors.New("failed to read binary results")
	// ErrRecorded is matched by every error restored from a transcript.
	ErrRecorded = errors.New("recorded error")
)

// RecordedError is an error restored from a transcript. Only its message survives.
type RecordedError struct {
	Msg string
}

// Error implements the error interface for RecordedError.
func (e *RecordedError) Error() string { return e.Msg }

// Is reports whether target is ErrRecorded.
func (e *RecordedError) Is(target error) bool { return target == ErrRecorded }

// record is the gob form of a Result; errors are flattened to their message.
type record struct {
	Line    int
	Source  string
	Verb    string
	Status  Status
	Output  string
	Count   int
	Matches []pattern.Match
	Entries []string
	Err     string
	HasErr  bool
}

// GobEncode implements gob.GobEncoder.
func (r *Result) GobEncode() ([]byte, error) {
	rec := record{
		Line:    r.Line,
		Source:  r.Source,
		Verb:    r.Verb,
		Status:  r.Status,
		Output:  r.Output,
		Count:   r.Count,
		Matches: r.Matches,
		Entries: r.Entries,
	}

	if r.Error != nil {
		rec.Err = r.Error.Error()
		rec.HasErr = true
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, errors.Join(ErrWriteGob, err)
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (r *Result) GobDecode(data []byte) error {
	var rec record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return errors.Join(ErrReadGob, err)
	}

	*r = Result{
		Line:    rec.Line,
		Source:  rec.Source,
		Verb:    rec.Verb,
		Status:  rec.Status,
		Output:  rec.Output,
		Count:   rec.Count,
		Matches: rec.Matches,
		Entries: rec.Entries,
	}

	if rec.HasErr {
		r.Error = &RecordedError{Msg: rec.Err}
	}

	return nil
}

// WriteBinary saves results as a transcript that ReadBinary can restore.
func WriteBinary(w io.Writer, results Results) error {
	if err := gob.NewEncoder(w).Encode(results); err != nil {
		return errors.Join(ErrWriteGob, err)
	}

	return nil
}

// ReadBinary restores a transcript written by WriteBinary.
func ReadBinary(rd io.Reader) (Results, error) {
	var results Results
	if err := gob.NewDecoder(rd).Decode(&results); err != nil {
		return nil, errors.Join(ErrReadGob, err)
	}

	return results, nil
}
