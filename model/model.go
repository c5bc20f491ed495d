// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package model has the building blocks shared by the discrete models in dhmm:
ordered probability tables, the weighted sampler, observation sequences and
the interfaces implemented by the models.
*/
package model

import "math/rand"

const (
	// DefaultSeed provided for model implementation.
	DefaultSeed = 33
)

// Error is the type of the sentinel errors returned by this package.
type Error string

func (err Error) Error() string { return string(err) }

const (
	// ErrFileNotFound is returned when a table or observation file does not exist.
	ErrFileNotFound = Error("model: file not found")
	// ErrFileUnreadable is returned when a file exists but cannot be read.
	ErrFileUnreadable = Error("model: file unreadable")
	// ErrMalformedLine is returned for a table line that cannot be parsed.
	ErrMalformedLine = Error("model: malformed line")
	// ErrInvalidDistribution is returned when sampling from an empty or
	// non-positive distribution.
	ErrInvalidDistribution = Error("model: invalid distribution")
)

// Scorer computes the log probability of an output sequence.
type Scorer interface {
	LogProb(outputs []string) (float64, error)
}

// Decoder finds the most likely state sequence for an output sequence.
type Decoder interface {
	Viterbi(outputs []string) (path []string, prob float64, err error)
}

// The Sampler type generates random observations using the model.
type Sampler interface {
	Generate(r *rand.Rand, n int) (*Observation, error)
}
