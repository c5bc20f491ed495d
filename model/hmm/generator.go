// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"fmt"
	"math/rand"

	"github.com/akualab/dhmm/model"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Generate returns a random observation of length n. Starting from the start
// symbol, it samples the next state from the current state's transition row
// and an output from the new state's emission row, n times.
//
// Returns ErrUndefinedState when a reached state has no transition or no
// emission row, and model.ErrInvalidDistribution when a row cannot be sampled.
func (m *Model) Generate(r *rand.Rand, n int) (*model.Observation, error) {

	if n < 0 {
		return nil, fmt.Errorf("invalid sequence length %d", n)
	}

	states := make([]string, 0, n)
	outputs := make([]string, 0, n)
	s := m.start
	for i := 0; i < n; i++ {
		row, ok := m.trans.Row(s)
		if !ok {
			return nil, fmt.Errorf("no transitions for state %q: %w", s, ErrUndefinedState)
		}
		next, err := model.Sample(row, r)
		if err != nil {
			return nil, fmt.Errorf("transitions for state %q: %w", s, err)
		}

		erow, ok := m.emit.Row(next)
		if !ok {
			return nil, fmt.Errorf("no outputs for state %q: %w", next, ErrUndefinedState)
		}
		o, err := model.Sample(erow, r)
		if err != nil {
			return nil, fmt.Errorf("outputs for state %q: %w", next, err)
		}

		states = append(states, next)
		outputs = append(outputs, o)
		s = next
	}

	obs := &model.Observation{
		ID:      uuid.NewString(),
		States:  states,
		Outputs: outputs,
	}
	glog.V(3).Infof("generated observation [%s] of length %d", obs.ID, n)
	return obs, nil
}

// Generator generates random observations using a model and its own
// random source. Not safe to use with multiple goroutines.
type Generator struct {
	s model.Sampler
	r *rand.Rand
}

// NewGenerator returns an hmm data generator seeded with the model seed.
func NewGenerator(hmm *Model) *Generator {
	r := rand.New(rand.NewSource(hmm.seed))
	return &Generator{
		s: hmm,
		r: r,
	}
}

// Next returns the next observation sequence of length n.
func (gen *Generator) Next(n int) (*model.Observation, error) {
	return gen.s.Generate(gen.r, n)
}
