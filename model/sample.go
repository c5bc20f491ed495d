// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"math/rand"
)

// Sample draws a key from row with probability proportional to its weight.
// The weights need not sum to one. Keys are visited in row order and a
// uniform draw in [0, total) selects the first key whose cumulative weight
// exceeds it, so a seeded source always yields the same sequence of draws.
// Keys with non-positive weight are never selected.
//
// Returns ErrInvalidDistribution if the row is empty or has no positive weight.
func Sample(row *Row, r *rand.Rand) (string, error) {

	if row.Len() == 0 {
		return "", fmt.Errorf("empty distribution: %w", ErrInvalidDistribution)
	}

	var total float64
	for _, k := range row.keys {
		if p := row.probs[k]; p > 0 {
			total += p
		}
	}
	if !(total > 0) {
		return "", fmt.Errorf("no positive weight in %v: %w", row.keys, ErrInvalidDistribution)
	}

	ran := r.Float64() * total
	cum := 0.0
	last := ""
	for _, k := range row.keys {
		p := row.probs[k]
		if p <= 0 {
			continue
		}
		cum += p
		last = k
		if ran < cum {
			return k, nil
		}
	}

	// Rounding left ran >= cum; the last positive key owns the remainder.
	return last, nil
}
