// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hmm

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/akualab/dhmm"
	"github.com/akualab/dhmm/model"
)

func TestLoad(t *testing.T) {

	m, warnings, err := Load("testdata/cv", Name("cv"))
	dhmm.CheckError(t, err)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if m.Name() != "cv" {
		t.Fatalf("wrong name %s", m.Name())
	}
	dhmm.CompareSliceString(t, []string{"C", "V"}, m.States(), "states")

	final, prob, err := m.Forward([]string{"a", "b"})
	dhmm.CheckError(t, err)
	dhmm.CompareFloats(t, 0.18, prob, "forward prob", tol)
	if final != "V" {
		t.Fatalf("expected final state V, got %s", final)
	}
}

func TestLoadMissingFiles(t *testing.T) {

	m, warnings, err := Load(filepath.Join(t.TempDir(), "nothing"))
	dhmm.CheckError(t, err)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
	for _, w := range warnings {
		if !errors.Is(w, model.ErrFileNotFound) {
			t.Fatalf("expected ErrFileNotFound, got %v", w)
		}
	}
	if _, _, err := m.Forward([]string{"a"}); !errors.Is(err, ErrUndefinedState) {
		t.Fatalf("expected ErrUndefinedState, got %v", err)
	}
}

func TestLoadMissingEmissions(t *testing.T) {

	dir := t.TempDir()
	b, err := os.ReadFile("testdata/cv.trans")
	dhmm.CheckError(t, err)
	base := filepath.Join(dir, "cv")
	dhmm.CheckError(t, os.WriteFile(base+TransSuffix, b, 0644))

	m, warnings, err := Load(base)
	dhmm.CheckError(t, err)
	if len(warnings) != 1 || !errors.Is(warnings[0], model.ErrFileNotFound) {
		t.Fatalf("expected one missing file warning, got %v", warnings)
	}

	// Transitions are loaded.
	dhmm.CompareSliceString(t, []string{"C", "V"}, m.States(), "states")

	// No outputs: zero probability but no error.
	_, prob, err := m.Forward([]string{"a"})
	dhmm.CheckError(t, err)
	if prob != 0 {
		t.Fatalf("expected zero prob, got %g", prob)
	}

	if _, err := m.Generate(rand.New(rand.NewSource(1)), 1); !errors.Is(err, ErrUndefinedState) {
		t.Fatalf("expected ErrUndefinedState, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {

	base := filepath.Join(t.TempDir(), "bad")
	dhmm.CheckError(t, os.WriteFile(base+TransSuffix, []byte("# C 1.0\nC C\n"), 0644))
	dhmm.CheckError(t, os.WriteFile(base+EmitSuffix, []byte("C a 1.0\n"), 0644))

	m, _, err := Load(base)
	if !errors.Is(err, model.ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	if m != nil {
		t.Fatal("expected nil model")
	}
}

func TestZeroObservationFile(t *testing.T) {

	m, _, err := Load("testdata/pos")
	dhmm.CheckError(t, err)
	obs, err := model.ReadObservationFile("testdata/zero.obs")
	dhmm.CheckError(t, err)

	_, prob, err := m.Forward(obs.Outputs)
	dhmm.CheckError(t, err)
	if prob != 0 {
		t.Fatalf("expected prob 0 for unknown symbol, got %g", prob)
	}
}
