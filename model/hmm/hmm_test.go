// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"testing"

	"github.com/akualab/dhmm"
	"github.com/akualab/dhmm/model"
)

const tol = 1e-9

// Two states: C emits "a" and V emits "b".
func makeCV(t *testing.T) *Model {

	trans := model.NewTable()
	trans.Set("#", "C", 0.6)
	trans.Set("#", "V", 0.4)
	trans.Set("C", "C", 0.7)
	trans.Set("C", "V", 0.3)
	trans.Set("V", "C", 0.4)
	trans.Set("V", "V", 0.6)

	emit := model.NewTable()
	emit.Set("C", "a", 1.0)
	emit.Set("V", "b", 1.0)

	return NewModel(trans, emit, Name("cv"))
}

// bruteForce enumerates all state paths. Returns the total probability, the
// best path and its probability.
func bruteForce(m *Model, outputs []string) (total float64, best []string, bestProb float64) {

	states := m.States()
	N := len(states)
	T := len(outputs)
	idx := make([]int, T)
	bestProb = -1
	for {
		p := m.Initial().Prob(states[idx[0]]) * m.Emit(states[idx[0]], outputs[0])
		for t := 1; t < T; t++ {
			p *= m.Trans(states[idx[t-1]], states[idx[t]]) * m.Emit(states[idx[t]], outputs[t])
		}
		total += p
		if p > bestProb {
			bestProb = p
			best = make([]string, T)
			for t, i := range idx {
				best[t] = states[i]
			}
		}

		// Next path, odometer style.
		t := T - 1
		for ; t >= 0; t-- {
			idx[t]++
			if idx[t] < N {
				break
			}
			idx[t] = 0
		}
		if t < 0 {
			return
		}
	}
}

func TestStateOrder(t *testing.T) {

	m := makeCV(t)
	dhmm.CompareSliceString(t, []string{"C", "V"}, m.States(), "state order")
	if m.Initial().Prob("C") != 0.6 {
		t.Fatalf("wrong initial prob for C: %f", m.Initial().Prob("C"))
	}

	// Targets that are never sources are appended in order of appearance.
	trans := model.NewTable()
	trans.Set("#", "X", 1)
	trans.Set("X", "Z", 0.5)
	trans.Set("X", "Y", 0.5)
	m = NewModel(trans, nil)
	dhmm.CompareSliceString(t, []string{"X", "Z", "Y"}, m.States(), "state order with sinks")
}

func TestForward(t *testing.T) {

	m := makeCV(t)
	final, prob, err := m.Forward([]string{"a", "b"})
	dhmm.CheckError(t, err)

	// Only C emits "a" so the only path is C -> V.
	expected := 0.6 * 1.0 * 0.3 * 1.0
	dhmm.CompareFloats(t, expected, prob, "forward prob", tol)
	if final != "V" {
		t.Fatalf("expected final state V, got %s", final)
	}

	α, err := m.alpha([]string{"a", "b"})
	dhmm.CheckError(t, err)
	dhmm.CompareSliceFloat(t, []float64{0.6, 0}, α[0], "alpha C", tol)
	dhmm.CompareSliceFloat(t, []float64{0, expected}, α[1], "alpha V", tol)
}

func TestViterbi(t *testing.T) {

	m := makeCV(t)
	outputs := []string{"a", "a", "b"}
	path, prob, err := m.Viterbi(outputs)
	dhmm.CheckError(t, err)

	_, best, bestProb := bruteForce(m, outputs)
	dhmm.CompareSliceString(t, best, path, "viterbi path")
	dhmm.CompareSliceString(t, []string{"C", "C", "V"}, path, "viterbi path")
	dhmm.CompareFloats(t, bestProb, prob, "viterbi prob", tol)
	dhmm.CompareFloats(t, 0.6*0.7*0.3, prob, "viterbi prob", tol)
}

func TestZeroProbObservation(t *testing.T) {

	m := makeCV(t)
	outputs := []string{"a", "z", "b"}

	final, prob, err := m.Forward(outputs)
	dhmm.CheckError(t, err)
	if prob != 0 {
		t.Fatalf("expected prob 0, got %g", prob)
	}
	if final != "C" {
		t.Fatalf("all states tie at zero, expected first state C, got %s", final)
	}

	logProb, err := m.LogProb(outputs)
	dhmm.CheckError(t, err)
	if !math.IsInf(logProb, -1) {
		t.Fatalf("expected -Inf, got %f", logProb)
	}

	path, vprob, err := m.Viterbi(outputs)
	dhmm.CheckError(t, err)
	if vprob != 0 || len(path) != len(outputs) {
		t.Fatalf("expected zero prob path of length %d, got %v %g", len(outputs), path, vprob)
	}
}

func TestEmptyObservation(t *testing.T) {

	m := makeCV(t)
	if _, _, err := m.Forward(nil); !errors.Is(err, ErrEmptyObservation) {
		t.Fatalf("forward: expected ErrEmptyObservation, got %v", err)
	}
	if _, _, err := m.Viterbi([]string{}); !errors.Is(err, ErrEmptyObservation) {
		t.Fatalf("viterbi: expected ErrEmptyObservation, got %v", err)
	}
	if _, err := m.LogProb(nil); !errors.Is(err, ErrEmptyObservation) {
		t.Fatalf("logprob: expected ErrEmptyObservation, got %v", err)
	}
}

func TestMissingStartRow(t *testing.T) {

	trans := model.NewTable()
	trans.Set("C", "C", 1)
	m := NewModel(trans, nil)
	if m.Initial() != nil {
		t.Fatal("expected nil initial distribution")
	}
	if _, _, err := m.Forward([]string{"a"}); !errors.Is(err, ErrUndefinedState) {
		t.Fatalf("forward: expected ErrUndefinedState, got %v", err)
	}
	if _, _, err := m.Viterbi([]string{"a"}); !errors.Is(err, ErrUndefinedState) {
		t.Fatalf("viterbi: expected ErrUndefinedState, got %v", err)
	}
}

func TestStartSymbolOption(t *testing.T) {

	trans := model.NewTable()
	trans.Set("<s>", "A", 1)
	trans.Set("A", "A", 1)
	emit := model.NewTable()
	emit.Set("A", "x", 0.5)
	m := NewModel(trans, emit, StartSymbol("<s>"))

	_, prob, err := m.Forward([]string{"x", "x"})
	dhmm.CheckError(t, err)
	dhmm.CompareFloats(t, 0.25, prob, "forward prob", tol)
}

func TestTieBreak(t *testing.T) {

	// Fully symmetric model, every path has the same probability.
	trans := model.NewTable()
	for _, from := range []string{"#", "B", "A"} {
		trans.Set(from, "B", 0.5)
		trans.Set(from, "A", 0.5)
	}
	emit := model.NewTable()
	emit.Set("B", "x", 1)
	emit.Set("A", "x", 1)
	m := NewModel(trans, emit)

	outputs := []string{"x", "x", "x"}
	path, _, err := m.Viterbi(outputs)
	dhmm.CheckError(t, err)
	dhmm.CompareSliceString(t, []string{"B", "B", "B"}, path, "tie break path")

	final, _, err := m.Forward(outputs)
	dhmm.CheckError(t, err)
	if final != "B" {
		t.Fatalf("expected first state B, got %s", final)
	}
}

func TestLongSequence(t *testing.T) {

	m := makeCV(t)
	n := 3000
	outputs := make([]string, n)
	for i := range outputs {
		outputs[i] = "a"
	}

	_, prob, err := m.Forward(outputs)
	dhmm.CheckError(t, err)
	if prob != 0 {
		t.Logf("no underflow, forward prob: %g", prob)
	}

	logProb, err := m.LogProb(outputs)
	dhmm.CheckError(t, err)
	expected := math.Log(0.6) + float64(n-1)*math.Log(0.7)
	dhmm.CompareFloats(t, expected, logProb, "log prob", tol)
}

func TestPOS(t *testing.T) {

	m, warnings, err := Load("testdata/pos")
	dhmm.CheckError(t, err)
	if len(warnings) > 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	obs, err := model.ReadObservationFile("testdata/pos.obs")
	dhmm.CheckError(t, err)

	total, best, bestProb := bruteForce(m, obs.Outputs)

	_, prob, err := m.Forward(obs.Outputs)
	dhmm.CheckError(t, err)
	dhmm.CompareFloats(t, total, prob, "forward prob", tol)

	path, vprob, err := m.Viterbi(obs.Outputs)
	dhmm.CheckError(t, err)
	dhmm.CompareFloats(t, bestProb, vprob, "viterbi prob", tol)
	dhmm.CompareSliceString(t, best, path, "viterbi path")
	dhmm.CompareSliceString(t, []string{"DET", "NOUN", "VERB", "DET", "NOUN", "."}, path, "garden path")
	t.Logf("path: %v, viterbi: %g, forward: %g", path, vprob, prob)
}

// makeRandomModel creates a model with random, partly zero, probabilities.
func makeRandomModel(r *rand.Rand, ns, no int) *Model {

	state := func(i int) string { return "s" + strconv.Itoa(i) }
	trans := model.NewTable()
	emit := model.NewTable()
	for i := -1; i < ns; i++ {
		from := "#"
		if i >= 0 {
			from = state(i)
		}
		for j := 0; j < ns; j++ {
			if r.Float64() < 0.2 {
				continue
			}
			trans.Set(from, state(j), r.Float64())
		}
		if i < 0 {
			continue
		}
		for k := 0; k < no; k++ {
			if r.Float64() < 0.2 {
				continue
			}
			emit.Set(from, "o"+strconv.Itoa(k), r.Float64())
		}
	}
	return NewModel(trans, emit)
}

func TestRandomModels(t *testing.T) {

	r := rand.New(rand.NewSource(model.DefaultSeed))
	for iter := 0; iter < 50; iter++ {
		m := makeRandomModel(r, 3, 4)
		T := 1 + r.Intn(5)
		outputs := make([]string, T)
		for i := range outputs {
			outputs[i] = "o" + strconv.Itoa(r.Intn(4))
		}

		if m.Initial() == nil || len(m.States()) == 0 {
			continue
		}
		total, _, bestProb := bruteForce(m, outputs)

		_, prob, err := m.Forward(outputs)
		dhmm.CheckError(t, err)
		if prob < 0 {
			t.Fatalf("negative forward prob %g", prob)
		}
		dhmm.CompareFloats(t, total, prob, "forward prob", tol)

		path, vprob, err := m.Viterbi(outputs)
		dhmm.CheckError(t, err)
		if len(path) != T {
			t.Fatalf("expected path of length %d, got %d", T, len(path))
		}
		dhmm.CompareFloats(t, bestProb, vprob, "viterbi prob", tol)
		if vprob > prob*(1+tol) {
			t.Fatalf("viterbi prob %g > forward prob %g", vprob, prob)
		}

		logProb, err := m.LogProb(outputs)
		dhmm.CheckError(t, err)
		if prob > 0 {
			dhmm.CompareFloats(t, math.Log(prob), logProb, "log prob", tol)
		} else if !math.IsInf(logProb, -1) {
			t.Fatalf("expected -Inf log prob, got %f", logProb)
		}

		// Same inputs, same bits.
		_, prob2, _ := m.Forward(outputs)
		path2, vprob2, _ := m.Viterbi(outputs)
		if prob2 != prob || vprob2 != vprob {
			t.Fatalf("results are not repeatable")
		}
		dhmm.CompareSliceString(t, path, path2, "repeated viterbi path")
	}
}

func TestConcurrentUse(t *testing.T) {

	m, _, err := Load("testdata/pos")
	dhmm.CheckError(t, err)
	outputs := []string{"the", "old", "man", "the", "boat", "."}
	_, want, err := m.Forward(outputs)
	dhmm.CheckError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			if _, got, _ := m.Forward(outputs); got != want {
				errs <- errors.New("forward result changed under concurrency")
			}
			if _, _, err := m.Viterbi(outputs); err != nil {
				errs <- err
			}
			if _, err := m.Generate(rand.New(rand.NewSource(seed)), 10); err != nil {
				errs <- err
			}
		}(int64(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
