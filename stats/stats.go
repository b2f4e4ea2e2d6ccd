// SPDX-License-Identifier: MIT

// Package stats aggregates samples of cluster sizes.
//
// A sample cs holds the size of the cluster containing a fixed site, once per
// realization. Because large clusters are hit more often by site sampling,
// cluster numbers divide the observed frequency by s:
//
//	n_s = count(s) / (s·M)       Σ s·n_s = 1
//	w_s = count(s) / M           Σ w_s   = 1
//
// MeanSize is the site-sampling average ⟨s⟩; AltMeanSize is the
// cluster-sampling average Σ s·n_s / Σ n_s.
package stats

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptySample is returned for a sample with no entries.
	ErrEmptySample = errors.New("stats: empty sample")

	// ErrInvalidSize is returned for a cluster size below 1.
	ErrInvalidSize = errors.New("stats: cluster size < 1")
)

// Distribution pairs ascending unique sizes with one value per size.
type Distribution struct {
	Sizes  []int
	Values []float64
}

// counts returns the ascending unique sizes of cs and their multiplicities.
func counts(cs []int) ([]int, []int, error) {
	if len(cs) == 0 {
		return nil, nil, ErrEmptySample
	}
	sorted := slices.Clone(cs)
	slices.Sort(sorted)
	if sorted[0] < 1 {
		return nil, nil, fmt.Errorf("size %d: %w", sorted[0], ErrInvalidSize)
	}
	var sizes, mult []int
	for _, s := range sorted {
		if n := len(sizes); n > 0 && sizes[n-1] == s {
			mult[n-1]++
			continue
		}
		sizes = append(sizes, s)
		mult = append(mult, 1)
	}

	return sizes, mult, nil
}

// ClusterNumbers returns n_s for every size present in cs.
//
// Errors: ErrEmptySample, ErrInvalidSize.
// Complexity: O(M log M).
func ClusterNumbers(cs []int) (Distribution, error) {
	sizes, mult, err := counts(cs)
	if err != nil {
		return Distribution{}, fmt.Errorf("ClusterNumbers: %w", err)
	}
	m := float64(len(cs))
	ns := make([]float64, len(sizes))
	for i, s := range sizes {
		ns[i] = float64(mult[i]) / (float64(s) * m)
	}

	return Distribution{Sizes: sizes, Values: ns}, nil
}

// Ws returns the probability w_s that a realization yields size s.
//
// Errors: ErrEmptySample, ErrInvalidSize.
func Ws(cs []int) (Distribution, error) {
	sizes, mult, err := counts(cs)
	if err != nil {
		return Distribution{}, fmt.Errorf("Ws: %w", err)
	}
	m := float64(len(cs))
	ws := make([]float64, len(sizes))
	for i := range sizes {
		ws[i] = float64(mult[i]) / m
	}

	return Distribution{Sizes: sizes, Values: ws}, nil
}

// MeanSize returns the arithmetic mean of cs.
//
// Errors: ErrEmptySample.
func MeanSize(cs []int) (float64, error) {
	if len(cs) == 0 {
		return 0, fmt.Errorf("MeanSize: %w", ErrEmptySample)
	}

	return stat.Mean(toFloats(cs), nil), nil
}

// AltMeanSize returns Σ s·n_s / Σ n_s.
//
// Errors: ErrEmptySample, ErrInvalidSize.
func AltMeanSize(cs []int) (float64, error) {
	d, err := ClusterNumbers(cs)
	if err != nil {
		return 0, fmt.Errorf("AltMeanSize: %w", err)
	}

	return floats.Dot(toFloats(d.Sizes), d.Values) / floats.Sum(d.Values), nil
}

func toFloats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}

	return out
}
