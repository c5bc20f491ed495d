// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Observation is a sequence of output symbols. When the sequence was
// generated by a model, States holds the hidden state sequence; it is empty
// for data read from a file.
type Observation struct {
	ID      string   `json:"id"`
	States  []string `json:"states,omitempty"`
	Outputs []string `json:"outputs"`
}

// NewObservation creates an observation with no state annotation.
func NewObservation(id string, outputs []string) *Observation {
	return &Observation{ID: id, Outputs: outputs}
}

// Len returns the number of output symbols.
func (o *Observation) Len() int { return len(o.Outputs) }

func (o *Observation) String() string {
	return strings.Join(o.States, " ") + "\n " + strings.Join(o.Outputs, " ") + "\n"
}

// ReadObservation reads whitespace separated output symbols from r.
func ReadObservation(r io.Reader, id string) (*Observation, error) {

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var outputs []string
	for scanner.Scan() {
		outputs = append(outputs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrFileUnreadable)
	}
	return NewObservation(id, outputs), nil
}

// ReadObservationFile reads an observation file. The observation ID is the
// file base name.
func ReadObservationFile(fn string) (*Observation, error) {

	f, err := os.Open(fn)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to open file %s: %w", fn, ErrFileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open file %s: %v: %w", fn, err, ErrFileUnreadable)
	}
	defer f.Close()
	return ReadObservation(f, filepath.Base(fn))
}
