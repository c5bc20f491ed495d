// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dhmm has the configuration and result types shared by the dhmm
// command and its packages.
package dhmm

import (
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Result is the outcome of one operation on one observation.
type Result struct {
	ID         string   `json:"id"`
	Op         string   `json:"op"`
	States     []string `json:"states,omitempty"`
	Outputs    []string `json:"outputs,omitempty"`
	FinalState string   `json:"final_state,omitempty"`
	Prob       float64  `json:"prob"`
	LogProb    *float64 `json:"log_prob,omitempty"`
}

// ResultWriter writes results as a stream of JSON objects separated by
// newlines.
type ResultWriter struct {
	enc *json.Encoder
}

// NewResultWriter creates a writer that encodes results to w.
func NewResultWriter(w io.Writer) *ResultWriter {
	return &ResultWriter{enc: json.NewEncoder(w)}
}

// Write encodes one result.
func (rw *ResultWriter) Write(r *Result) error {
	return rw.enc.Encode(r)
}

// ReadResults decodes a stream written by ResultWriter.
func ReadResults(r io.Reader) ([]*Result, error) {

	dec := json.NewDecoder(r)
	var results []*Result
	for {
		res := new(Result)
		err := dec.Decode(res)
		if err == io.EOF {
			return results, nil
		}
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
}

// WriteJSONFile writes v to file fn as JSON.
func WriteJSONFile(fn string, v interface{}) error {

	f, e := os.Create(fn)
	if e != nil {
		return e
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(v)
}

// ReadJSONFile reads JSON from file fn into v.
func ReadJSONFile(fn string, v interface{}) error {

	f, e := os.Open(fn)
	if e != nil {
		return e
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}
