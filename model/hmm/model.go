// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hmm provides an implementation of discrete hidden Markov models.

A model is defined by two probability tables: state transitions and state
outputs (emissions). A reserved start symbol is a non-emitting state whose
transition row is the initial state distribution. The package supports
sequence generation, the forward algorithm and Viterbi decoding.

A Model is read-only after NewModel returns and may be shared by goroutines.
*/
package hmm

import (
	"fmt"

	"github.com/akualab/dhmm/model"
	"github.com/golang/glog"
)

const (
	// DefaultStartSymbol is the name of the start state in transition files.
	DefaultStartSymbol = "#"

	// TransSuffix and EmitSuffix are appended to a basename by Load.
	TransSuffix = ".trans"
	EmitSuffix  = ".emit"
)

// Error is the type of the sentinel errors returned by this package.
type Error string

func (err Error) Error() string { return string(err) }

const (
	// ErrUndefinedState is returned when a state needed by an algorithm has
	// no row in the corresponding table.
	ErrUndefinedState = Error("hmm: undefined state")
	// ErrEmptyObservation is returned by Forward, LogProb and Viterbi when the
	// output sequence is empty.
	ErrEmptyObservation = Error("hmm: empty observation")
)

var (
	_ model.Scorer  = (*Model)(nil)
	_ model.Decoder = (*Model)(nil)
	_ model.Sampler = (*Model)(nil)
)

// Model is a discrete hidden Markov model.
type Model struct {

	// Model name.
	ModelName string `json:"name"`

	trans *model.Table
	emit  *model.Table
	start string

	// Initial state distribution: the transition row of the start symbol.
	// Nil when the transition table has no start row.
	initial *model.Row

	// Emitting states. The order is fixed at construction and decides all
	// ties in Forward and Viterbi.
	states []string

	// a(i,j) = P[q(t+1) = j | q(t) = i] over states.
	a [][]float64

	// π(i) = P[q(0) = i]
	pi []float64

	seed int64
}

// Option type is used to pass options to NewModel().
type Option func(*Model)

// NewModel creates a new HMM from transition and emission tables. Nil tables
// are treated as empty.
//
// The emitting states are all transition sources except the start symbol in
// table order, followed by transition targets not yet seen in order of first
// appearance.
func NewModel(trans, emit *model.Table, options ...Option) *Model {

	if trans == nil {
		trans = model.NewTable()
	}
	if emit == nil {
		emit = model.NewTable()
	}
	m := &Model{
		ModelName: "HMM",
		trans:     trans,
		emit:      emit,
		start:     DefaultStartSymbol,
		seed:      model.DefaultSeed,
	}

	// Set options.
	for _, option := range options {
		option(m)
	}

	m.initial, _ = trans.Row(m.start)
	m.states = stateOrder(trans, m.start)
	m.index()

	glog.Infof("New HMM %s. Num states = %d.", m.ModelName, len(m.states))
	if glog.V(2) {
		glog.Infof("States:      %v.", m.states)
		glog.Infof("Init. Probs: %v.", m.pi)
	}
	return m
}

func stateOrder(trans *model.Table, start string) []string {

	seen := map[string]bool{start: true}
	var states []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	sources := trans.Sources()
	for _, s := range sources {
		add(s)
	}
	for _, s := range sources {
		row, _ := trans.Row(s)
		for _, to := range row.Keys() {
			add(to)
		}
	}
	return states
}

// index builds the dense transition matrix and initial vector.
func (m *Model) index() {

	N := len(m.states)
	m.pi = make([]float64, N)
	m.a = make([][]float64, N)
	for i, from := range m.states {
		m.pi[i] = m.initial.Prob(from)
		m.a[i] = make([]float64, N)
		row, _ := m.trans.Row(from)
		for j, to := range m.states {
			m.a[i][j] = row.Prob(to)
		}
	}
}

// outputProbs returns b(j,t) = P[o(t) | q(t) = j] indexed [state][time].
func (m *Model) outputProbs(outputs []string) [][]float64 {

	b := make([][]float64, len(m.states))
	for j, s := range m.states {
		row, _ := m.emit.Row(s)
		b[j] = make([]float64, len(outputs))
		for t, o := range outputs {
			b[j][t] = row.Prob(o)
		}
	}
	return b
}

// check validates the preconditions shared by the trellis algorithms.
func (m *Model) check(outputs []string) error {
	if len(outputs) == 0 {
		return ErrEmptyObservation
	}
	if m.initial == nil {
		return fmt.Errorf("no transitions for start symbol %q: %w", m.start, ErrUndefinedState)
	}
	if len(m.states) == 0 {
		return fmt.Errorf("model has no emitting states: %w", ErrUndefinedState)
	}
	return nil
}

// Name returns the name of the model.
func (m *Model) Name() string { return m.ModelName }

// States returns the emitting states in model order.
func (m *Model) States() []string { return append([]string(nil), m.states...) }

// StartSymbol returns the name of the start state.
func (m *Model) StartSymbol() string { return m.start }

// Initial returns the initial state distribution, nil if the transition table
// has no row for the start symbol.
func (m *Model) Initial() *model.Row { return m.initial }

// Trans returns P(to | from) from the transition table.
func (m *Model) Trans(from, to string) float64 { return m.trans.Prob(from, to) }

// Emit returns P(output | state) from the emission table.
func (m *Model) Emit(state, output string) float64 { return m.emit.Prob(state, output) }

// Name is an option to set the model name.
func Name(name string) Option {
	return func(m *Model) { m.ModelName = name }
}

// StartSymbol is an option to set the start state name.
// Default is DefaultStartSymbol.
func StartSymbol(s string) Option {
	return func(m *Model) { m.start = s }
}

// Seed sets a seed value for the generator returned by NewGenerator.
// Uses default seed value if omitted.
func Seed(seed int64) Option {
	return func(m *Model) { m.seed = seed }
}
