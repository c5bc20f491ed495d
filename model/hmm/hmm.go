// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"math"

	"github.com/akualab/dhmm/floatx"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// Compute alphas. Indices are: α(state, time)
//
//	α = | α(0,0),   α(0,1)   ... α(0,T-1)   |
//	    | α(1,0),   α(1,1)   ... α(1,T-1)   |
//	    ...
//	    | α(N-1,0), α(N-1,1) ... α(N-1,T-1) |
//
//	1. Initialization: α(i,0) =  π(i) b(i,o(0)); 0<=i<N
//	2. Induction:      α(j,t+1) =  sum_{i=0}^{N-1} α(i,t) a(i,j) b(j,o(t+1)); 0<=t<T-1; 0<=j<N
//	3. Termination:    P(O/Φ) = sum_{i=0}^{N-1} α(i,T-1)
//
// Missing transitions and outputs have probability zero.
func (m *Model) alpha(outputs []string) (α [][]float64, e error) {

	if e = m.check(outputs); e != nil {
		return
	}

	// Num states.
	N := len(m.states)
	T := len(outputs)
	if glog.V(3) {
		glog.Infof("alpha N: %d, T: %d", N, T)
	}
	b := m.outputProbs(outputs)

	α = floatx.MakeFloat2D(N, T)

	// 1. Initialization.
	for i := 0; i < N; i++ {
		α[i][0] = m.pi[i] * b[i][0]
	}

	// 2. Induction.
	for t := 1; t < T; t++ {
		for j := 0; j < N; j++ {
			var sum float64
			for i := 0; i < N; i++ {
				sum += α[i][t-1] * m.a[i][j] * b[j][t]
			}
			α[j][t] = sum
			if glog.V(4) {
				glog.Infof("t: %4d | j: %s | alpha: %5e", t, m.states[j], sum)
			}
		}
	}
	return
}

// Forward computes the total probability of the output sequence, summing
// over all state paths. It also returns the state with the highest α at the
// last time step; when several states tie the first one in model order is
// returned. The final state is a byproduct of the computation and not the
// most likely path end, use Viterbi for decoding.
//
// Probabilities are multiplied in the linear domain and will underflow to
// zero for long sequences, see LogProb.
func (m *Model) Forward(outputs []string) (final string, prob float64, e error) {

	α, e := m.alpha(outputs)
	if e != nil {
		return
	}
	last := floatx.SubSlice2D(α, len(outputs)-1)
	prob = floats.Sum(last)
	final = m.states[floats.MaxIdx(last)]
	return
}

// LogProb returns log P(O/Φ). It uses the forward recursion with the alphas
// normalized at each time step, as in Rabiner/Juang, so it does not underflow
// on long sequences. Returns -Inf when the sequence has probability zero.
func (m *Model) LogProb(outputs []string) (logProb float64, e error) {

	if e = m.check(outputs); e != nil {
		return
	}

	N := len(m.states)
	T := len(outputs)
	b := m.outputProbs(outputs)

	α := make([]float64, N)
	next := make([]float64, N)
	for i := 0; i < N; i++ {
		α[i] = m.pi[i] * b[i][0]
	}
	for t := 0; ; t++ {
		// Applied scale for t independent of j.
		sumAlphas := floats.Sum(α)
		if sumAlphas == 0 {
			return math.Inf(-1), nil
		}
		floatx.Apply(floatx.ScaleFunc(1/sumAlphas), α, nil)
		logProb += math.Log(sumAlphas)
		if t == T-1 {
			break
		}

		for j := 0; j < N; j++ {
			var sum float64
			for i := 0; i < N; i++ {
				sum += α[i] * m.a[i][j] * b[j][t+1]
			}
			next[j] = sum
		}
		α, next = next, α
	}
	if glog.V(3) {
		glog.Infof("log prob: %f, T: %d", logProb, T)
	}
	return
}
