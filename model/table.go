// Copyright (c) 2015 AKUALAB INC., All rights reserved.
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
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Row is an ordered mapping from a symbol to a probability.
// Keys are kept in first insertion order. Missing keys have probability zero.
type Row struct {
	keys  []string
	probs map[string]float64
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{probs: make(map[string]float64)}
}

// Set inserts or overwrites the probability for key. An overwritten key keeps
// its original position.
func (row *Row) Set(key string, p float64) {
	if _, ok := row.probs[key]; !ok {
		row.keys = append(row.keys, key)
	}
	row.probs[key] = p
}

// Prob returns the probability for key, zero if absent. Safe on a nil row.
func (row *Row) Prob(key string) float64 {
	if row == nil {
		return 0
	}
	return row.probs[key]
}

// Has returns true if key was set in the row.
func (row *Row) Has(key string) bool {
	if row == nil {
		return false
	}
	_, ok := row.probs[key]
	return ok
}

// Keys returns the keys in insertion order.
func (row *Row) Keys() []string {
	if row == nil {
		return nil
	}
	return append([]string(nil), row.keys...)
}

// Len returns the number of keys.
func (row *Row) Len() int {
	if row == nil {
		return 0
	}
	return len(row.keys)
}

// Table maps a source symbol to a Row of target probabilities. The same type
// holds transition (state -> state) and emission (state -> output) tables.
type Table struct {
	keys []string
	rows map[string]*Row
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{rows: make(map[string]*Row)}
}

// Set sets P(to | from) = p.
func (t *Table) Set(from, to string, p float64) {
	row, ok := t.rows[from]
	if !ok {
		row = NewRow()
		t.rows[from] = row
		t.keys = append(t.keys, from)
	}
	row.Set(to, p)
}

// Row returns the row for a source symbol.
func (t *Table) Row(from string) (*Row, bool) {
	row, ok := t.rows[from]
	return row, ok
}

// Prob returns P(to | from), zero when either symbol is missing.
func (t *Table) Prob(from, to string) float64 {
	return t.rows[from].Prob(to)
}

// Sources returns the row keys in insertion order.
func (t *Table) Sources() []string {
	return append([]string(nil), t.keys...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.keys) }

// ReadTable reads a table from r. Each line has the form
//
//	<from> <to> <prob>
//
// Blank lines are skipped and fields beyond the third are ignored. A line with
// fewer than three fields or a bad probability aborts the read with
// ErrMalformedLine. Repeated (from, to) pairs keep the last value.
func ReadTable(r io.Reader) (*Table, error) {

	t := NewTable()
	scanner := bufio.NewScanner(r)
	var n int
	for scanner.Scan() {
		n++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected 3 fields, got %d: %w", n, len(fields), ErrMalformedLine)
		}
		p, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad probability %q: %w", n, fields[2], ErrMalformedLine)
		}
		t.Set(fields[0], fields[1], p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrFileUnreadable)
	}
	glog.V(2).Infof("read table with %d rows from %d lines", t.Len(), n)
	return t, nil
}

// ReadTableFile reads a table from a file. When the file is missing
// (ErrFileNotFound) or cannot be read (ErrFileUnreadable) the returned table
// is empty but not nil so callers can decide whether to proceed.
func ReadTableFile(fn string) (*Table, error) {

	f, err := os.Open(fn)
	if errors.Is(err, fs.ErrNotExist) {
		return NewTable(), fmt.Errorf("unable to open file %s: %w", fn, ErrFileNotFound)
	}
	if err != nil {
		return NewTable(), fmt.Errorf("unable to open file %s: %v: %w", fn, err, ErrFileUnreadable)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if errors.Is(err, ErrFileUnreadable) {
		return NewTable(), fmt.Errorf("file %s: %w", fn, err)
	}
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", fn, err)
	}
	return t, nil
}
