// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"github.com/akualab/dhmm/floatx"
	"github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
)

// The viterbi algorithm computes the probable sequence of states for an HMM.
// These are the equations:
//
//	delta(j, t) = max_{z_1,... z_{t-1}} P(z_1,..,z_{t-1}, z_t=j, x_1,...,x_t )
//
// Recursion   delta(j, t) [nstates x T]
//
//	delta(j, 0) = π(j) b(j, 0)    for j in [0, N-1]
//	delta(j, t) = max_k [ delta(k, t-1) a(k, j) b(j, t) ]   j in [0, N-1], t in [1, T-1]
//	index(j, t) = argmax_k [ delta(k, t-1) a(k,j) b(j, t) ] j in [0, N-1], t in [1, T-1]
//
// Decoding z* is the output sequence [Tx1]
//
//	z*(T-1) = argmax_j delta(j, T-1)
//	z*(t) = index(z*(t+1), t+1)  t in [0, T-2]
//	prob = max_j delta(j, T-1)
//
// All argmax operations return the first maximum in model state order.
func (m *Model) viterbi(outputs []string) (bt []int, viterbiProb float64, e error) {

	if e = m.check(outputs); e != nil {
		return
	}

	// Num states
	N := len(m.states)
	T := len(outputs)
	b := m.outputProbs(outputs)

	// Allocate delta, index and bt
	delta := floatx.MakeFloat2D(N, T)
	index := floatx.MakeInt2D(N, T)
	bt = make([]int, T)

	// Init delta
	for i := 0; i < N; i++ {
		delta[i][0] = m.pi[i] * b[i][0]
		index[i][0] = -1
	}

	// Recursion
	for t := 1; t < T; t++ {
		for i := 0; i < N; i++ {
			// Computing max in k to define delta(i,t)
			// init max with k=0
			max := delta[0][t-1] * m.a[0][i] * b[i][t]
			argmax := 0
			for k := 1; k < N; k++ {
				tempProb := delta[k][t-1] * m.a[k][i] * b[i][t]
				if tempProb > max {
					max = tempProb
					argmax = k
				}
			}
			delta[i][t] = max
			index[i][t] = argmax
			if glog.V(4) {
				glog.Infof("t: %4d | %s <= %s | delta: %5e", t, m.states[i], m.states[argmax], max)
			}
		}
	}

	// Decoding
	last := floatx.SubSlice2D(delta, T-1)
	argmax := floats.MaxIdx(last)
	bt[T-1] = argmax
	viterbiProb = last[argmax]

	for t := T - 2; t >= 0; t-- {
		bt[t] = index[bt[t+1]][t+1]
	}

	return
}

// Viterbi returns the most likely state sequence for the output sequence and
// its joint probability. The path has the same length as outputs. Ties are
// resolved in favor of the first state in model order.
func (m *Model) Viterbi(outputs []string) (path []string, prob float64, e error) {

	bt, prob, e := m.viterbi(outputs)
	if e != nil {
		return
	}
	path = make([]string, len(bt))
	for t, i := range bt {
		path[t] = m.states[i]
	}
	if glog.V(3) {
		glog.Infof("viterbi path: %v, prob: %e", path, prob)
	}
	return
}
