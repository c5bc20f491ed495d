// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dhmm

import (
	"math"
	"testing"
)

// Comparef64 returns true if the relative difference between f1 and f2
// is less than tol.
func Comparef64(f1, f2, tol float64) bool {
	if f1 == f2 {
		return true
	}
	avg := math.Abs(f1+f2) / 2.0
	sErr := math.Abs(f2-f1) / avg
	return sErr < tol
}

// CompareSliceFloat compares slices elementwise using Comparef64.
func CompareSliceFloat(t *testing.T, expected []float64, actual []float64, message string, tol float64) {
	if len(expected) != len(actual) {
		t.Errorf("[%s]. Expected length: [%d], Got: [%d]", message, len(expected), len(actual))
		return
	}
	for i := range expected {
		if !Comparef64(expected[i], actual[i], tol) {
			t.Errorf("[%s]. Expected: [%g], Got: [%g]",
				message, expected[i], actual[i])
		}
	}
}

// CompareFloats compares floats using Comparef64.
func CompareFloats(t *testing.T, expected float64, actual float64, message string, tol float64) {
	if !Comparef64(expected, actual, tol) {
		t.Errorf("[%s]. Expected: [%g], Got: [%g]",
			message, expected, actual)
	}
}

// CompareSliceString compares two slices of strings elementwise.
func CompareSliceString(t *testing.T, expected []string, actual []string, message string) {
	if len(expected) != len(actual) {
		t.Errorf("[%s]. Expected: %v, Got: %v", message, expected, actual)
		return
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("[%s]. Expected: [%s], Got: [%s]",
				message, expected[i], actual[i])
		}
	}
}

// CheckError calls Fatal if error is not nil.
func CheckError(t *testing.T, e error) {

	if e != nil {
		t.Fatal(e)
	}
}
